package transcribe

import (
	"context"
	"fmt"
	"strings"

	"github.com/ivolkov/audiodigest/internal/audio"
)

// chunkFileName is the multipart filename hint for in-memory chunk uploads.
const chunkFileName = "audio.mp3"

// Decoder provides PCM decoding and in-memory MP3 encoding for the chunked
// path. *audio.Decoder implements this.
type Decoder interface {
	Decode(ctx context.Context, path string) (audio.Decoded, error)
	EncodeMP3(ctx context.Context, pcm []byte) ([]byte, error)
}

// Progress is a callback reporting chunk transcription progress.
type Progress func(current, total int)

// Orchestrator decides between the single-call and chunked transcription
// paths and reassembles one ordered transcript.
//
// Chunks are processed strictly sequentially in index order: this bounds
// peak memory and keeps the request pattern rate-friendly. The first chunk
// failure aborts the whole run with no partial output.
type Orchestrator struct {
	transcriber Transcriber
	decoder     Decoder
	budget      int64
	progress    Progress
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithSizeBudget overrides the per-request byte ceiling.
func WithSizeBudget(budget int64) OrchestratorOption {
	return func(o *Orchestrator) {
		if budget > 0 {
			o.budget = budget
		}
	}
}

// WithProgress sets a progress callback for the chunked path.
func WithProgress(fn Progress) OrchestratorOption {
	return func(o *Orchestrator) { o.progress = fn }
}

// NewOrchestrator creates an Orchestrator with the default 25 MiB budget.
func NewOrchestrator(t Transcriber, d Decoder, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		transcriber: t,
		decoder:     d,
		budget:      audio.DefaultSizeBudget,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run transcribes a normalized source and returns the SRT transcript.
//
// Sources under the size budget are sent as a single whole-file request.
// Sources at or above it are decoded, planned into budget-sized chunks,
// and transcribed chunk by chunk; results are concatenated in index order
// with a separating newline and trimmed of trailing whitespace.
func (o *Orchestrator) Run(ctx context.Context, src audio.Source) (string, error) {
	if src.Size < o.budget {
		text, err := o.transcriber.TranscribeFile(ctx, src.Path)
		if err != nil {
			return "", fmt.Errorf("transcribe %s: %w", src.Path, err)
		}
		return text, nil
	}
	return o.runChunked(ctx, src)
}

// runChunked drives the multi-chunk path.
func (o *Orchestrator) runChunked(ctx context.Context, src audio.Source) (string, error) {
	decoded, err := o.decoder.Decode(ctx, src.Path)
	if err != nil {
		return "", err
	}

	chunks, err := audio.Plan(decoded, o.budget)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, chunk := range chunks {
		// A canceled caller stops the pipeline between chunks; the
		// in-flight request itself is not interruptible mid-upload.
		if err := ctx.Err(); err != nil {
			return "", err
		}

		pcm := decoded.Slice(chunk.Start, chunk.End)
		buf, err := o.decoder.EncodeMP3(ctx, pcm)
		if err != nil {
			return "", fmt.Errorf("%s: %w", chunk, err)
		}

		text, err := o.transcriber.TranslateBuffer(ctx, chunkFileName, buf)
		if err != nil {
			return "", fmt.Errorf("%s: %w", chunk, err)
		}

		b.WriteString(text)
		b.WriteString("\n")

		if o.progress != nil {
			o.progress(chunk.Index+1, len(chunks))
		}
	}

	return strings.TrimSpace(b.String()), nil
}
