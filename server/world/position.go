package world

import "github.com/LGLsign/cuberite/server/world/generation"

// ChunkPos holds the position of a chunk. The type is provided as a utility struct for keeping track of a
// chunk's position. Chunks do not themselves have a position. The X and Z coordinates point to the
// position of the chunk on the X and Z axis in the world, where the chunk is 16x16 blocks.
//
// ChunkPos is an alias of generation.ChunkPos: the generation package owns the definition, since a chunk
// coordinate is part of the core generation data model, and World is merely a collaborator that exercises
// it.
type ChunkPos = generation.ChunkPos

// chunkPosFromBlockPos returns the ChunkPos of the chunk that a block column at x, z is in.
func chunkPosFromBlockPos(x, z int) ChunkPos {
	return ChunkPos{int32(x >> 4), int32(z >> 4)}
}
