package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ivolkov/audiodigest/internal/analyze"
	"github.com/ivolkov/audiodigest/internal/audio"
	"github.com/ivolkov/audiodigest/internal/config"
	"github.com/ivolkov/audiodigest/internal/format"
	"github.com/ivolkov/audiodigest/internal/subtitle"
)

// Result artifact file names inside a run directory.
const (
	transcriptFileName = "transcription.srt"
	summaryFileName    = "summary.md"
	analysisFileName   = "analysis.json"
)

// runDirStamp is the timestamp layout for run directory names.
const runDirStamp = "20060102_150405"

func newAnalyzeCmd(env *Env) *cobra.Command {
	var resultsDir string

	cmd := &cobra.Command{
		Use:   "analyze <audio-file>",
		Short: "Transcribe an audio file and generate a summary and analysis",
		Long: `Transcribe an audio file with Whisper, then generate a markdown
summary and a JSON analysis (word count, speaking speed, frequent topics).

Files larger than the upload limit are decoded and split into duration-based
chunks that are transcribed one by one. Results are written to a timestamped
directory under the results directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), env, args[0], resultsDir)
		},
	}

	cmd.Flags().StringVarP(&resultsDir, "results-dir", "r", "",
		"directory for result artifacts (default from config)")

	return cmd
}

func runAnalyze(ctx context.Context, env *Env, inputPath, resultsDir string) error {
	src, err := audio.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrFileNotFound, inputPath)
	}

	apiKey := env.Getenv(EnvOpenAIAPIKey)
	if apiKey == "" {
		return ErrAPIKeyMissing
	}

	if resultsDir == "" {
		cfg, err := env.ConfigLoader.Load()
		if err != nil {
			fmt.Fprintf(env.Stderr, "Warning: %v\n", err)
		}
		resultsDir = cfg.ResultsDir
		if resultsDir == "" {
			resultsDir = config.DefaultResultsDir
		}
	}

	paths, err := env.FFmpegResolver.Resolve()
	if err != nil {
		return err
	}

	warn := func(msg string) { fmt.Fprintln(env.Stderr, "Warning:", msg) }

	normalizer := env.Pipeline.NewNormalizer(paths.FFmpeg, warn)
	normalized, cleanup, err := normalizer.Normalize(ctx, src)
	if err != nil {
		return err
	}
	defer cleanup()

	prober := env.Pipeline.NewProber(paths, warn)
	duration, err := prober.Duration(ctx, normalized.Path)
	if err != nil {
		return err
	}
	minutes := audio.Minutes(duration)
	fmt.Fprintf(env.Stderr, "Audio duration: %s (%s)\n",
		format.Duration(duration), format.Size(normalized.Size))

	progress := func(current, total int) {
		fmt.Fprintf(env.Stderr, "Chunk %d/%d transcribed\n", current, total)
	}
	orchestrator := env.Pipeline.NewOrchestrator(apiKey, paths.FFmpeg, progress)

	fmt.Fprintf(env.Stderr, "Transcribing %s...\n", normalized.Path)
	transcript, err := orchestrator.Run(ctx, normalized)
	if err != nil {
		return err
	}
	plain := subtitle.ToPlainText(transcript)

	runDir, err := makeRunDir(resultsDir, env.Now().Format(runDirStamp))
	if err != nil {
		return err
	}
	if err := writeResult(runDir, transcriptFileName, []byte(transcript+"\n")); err != nil {
		return err
	}

	// Summary and analysis are independent chat calls; run them together.
	var (
		summary  string
		analysis analyze.Analysis
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = env.Collaborators.NewSummarizer(apiKey).Summarize(gctx, plain)
		return err
	})
	g.Go(func() error {
		var err error
		analysis, err = env.Collaborators.NewAnalyzer(apiKey).Analyze(gctx, plain, minutes)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	analysisJSON, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	if err := writeResult(runDir, summaryFileName, []byte(summary+"\n")); err != nil {
		return err
	}
	if err := writeResult(runDir, analysisFileName, append(analysisJSON, '\n')); err != nil {
		return err
	}

	fmt.Fprintln(env.Stdout, "Summary:")
	fmt.Fprintln(env.Stdout, summary)
	fmt.Fprintln(env.Stdout)
	fmt.Fprintln(env.Stdout, "Analytics:")
	fmt.Fprintln(env.Stdout, string(analysisJSON))
	fmt.Fprintf(env.Stderr, "Results saved to %s\n", runDir)

	return nil
}
