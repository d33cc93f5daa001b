package generation

import "fmt"

// InvalidConfigError is returned from Start (via NewPipeline) when a PipelineConfig names an unknown
// selector, is missing a required option, or otherwise could not be resolved into a pipeline. It is
// fatal: the caller must treat the generator as not started.
type InvalidConfigError struct {
	// Option names the PipelineConfig option that caused the failure, e.g. "biome_gen".
	Option string
	// Reason describes why the option could not be resolved.
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Option, e.Reason)
}

// StageFaultError wraps a panic or error recovered from a single pipeline stage while generating one
// chunk. Pipeline.Generate returns it; ChunkGenerator never returns it to a caller, its worker logs it and
// abandons the chunk.
type StageFaultError struct {
	// Stage names the pipeline stage that faulted, e.g. "composition".
	Stage string
	// Pos is the chunk that failed to generate.
	Pos   ChunkPos
	Cause error
}

func (e *StageFaultError) Error() string {
	return fmt.Sprintf("stage fault: %s for chunk %v: %v", e.Stage, e.Pos, e.Cause)
}

func (e *StageFaultError) Unwrap() error {
	return e.Cause
}

// ErrQueueShutdown is returned by QueueGenerateChunk when a request is submitted after Stop has been
// called. Producers should treat it as a silent no-op; the generator does not retry it.
type queueShutdownError struct{}

func (queueShutdownError) Error() string { return "chunk generator: queue is shut down" }

// ErrQueueShutdown is the sentinel error value producers may compare against with errors.Is.
var ErrQueueShutdown error = queueShutdownError{}
