package audio

import (
	"fmt"
	"time"

	"github.com/ivolkov/audiodigest/internal/format"
)

// DefaultSizeBudget is the per-request payload ceiling of the transcription
// service (25 MiB).
const DefaultSizeBudget = 25 * 1024 * 1024

// Chunk is a planned slice of an audio source. Chunks are contiguous and
// non-overlapping: chunk 0 starts at zero, each chunk ends where the next
// begins, and the last chunk ends at the total duration.
type Chunk struct {
	Index int           // Zero-based; defines processing and reassembly order.
	Start time.Duration // Inclusive start offset in the source.
	End   time.Duration // Exclusive end offset in the source.
}

// Duration returns the length of this chunk.
func (c Chunk) Duration() time.Duration {
	return c.End - c.Start
}

// String returns a human-readable representation for logging.
func (c Chunk) String() string {
	return fmt.Sprintf("chunk %d: %s-%s",
		c.Index,
		format.Duration(c.Start),
		format.Duration(c.End))
}

// Plan computes a chunk sequence for decoded audio under a byte budget.
//
// The chunk duration is derived from a single whole-file bytes-per-millisecond
// ratio, so every chunk's estimated size stays under budget as long as the
// bitrate is near constant. Variable-bitrate sources can exceed the budget;
// no per-chunk re-measurement is performed after encoding.
//
// Returns ErrChunkPlanning when the ratio is degenerate (a bitrate so high
// that no positive chunk duration fits the budget, or an empty stream).
func Plan(decoded Decoded, budget int64) ([]Chunk, error) {
	durationMs := decoded.Duration().Milliseconds()
	if durationMs <= 0 {
		return nil, fmt.Errorf("%w: empty audio stream", ErrChunkPlanning)
	}

	bytesPerMs := decoded.BytesPerMs()
	chunkMs := int64(float64(budget) / bytesPerMs)
	if chunkMs <= 0 {
		return nil, fmt.Errorf("%w: budget %d too small for %0.f bytes/ms", ErrChunkPlanning, budget, bytesPerMs)
	}

	count := (durationMs + chunkMs - 1) / chunkMs
	chunks := make([]Chunk, 0, count)
	for i := int64(0); i < count; i++ {
		start := i * chunkMs
		end := min((i+1)*chunkMs, durationMs)
		chunks = append(chunks, Chunk{
			Index: int(i),
			Start: time.Duration(start) * time.Millisecond,
			End:   time.Duration(end) * time.Millisecond,
		})
	}
	return chunks, nil
}
