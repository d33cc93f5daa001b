package generation

import "strings"

// PipelineConfig is a parsed key/value view into the generator section of the owning world's
// configuration file. Parsing the underlying file format is out of scope for this package: callers build
// a PipelineConfig from whatever config representation they use (an INI section, a flag set, a test
// literal) and pass it to Start.
type PipelineConfig struct {
	// BiomeGen selects the biome generator, e.g. "constant:plains".
	BiomeGen string
	// HeightGen selects the terrain height generator, e.g. "flat:64".
	HeightGen string
	// CompositionGen selects the terrain composition generator, e.g. "classic".
	CompositionGen string
	// Structures lists the structure generators to apply, in order.
	Structures []string
	// Finishers lists the finish generators to apply, in order.
	Finishers []string
	// Seed controls every stochastic decision made across the pipeline.
	Seed int32
	// QueueHighWater is the pending-request count above which the worker may skip chunks nobody is
	// viewing. Zero selects DefaultQueueHighWater.
	QueueHighWater int
}

// DefaultQueueHighWater is used when a PipelineConfig does not set QueueHighWater.
const DefaultQueueHighWater = 2048

// highWater returns the configured QueueHighWater, or DefaultQueueHighWater if unset.
func (c PipelineConfig) highWater() int {
	if c.QueueHighWater <= 0 {
		return DefaultQueueHighWater
	}
	return c.QueueHighWater
}

// ParseList splits a comma-separated, whitespace-trimmed list of selectors, as found in the "structures"
// and "finishers" configuration options. Empty elements are dropped, so both "" and "a,,b" behave
// sensibly.
func ParseList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// normaliseSelector lower-cases a selector so that registry lookups are case-insensitive.
func normaliseSelector(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
