// Command audiodigest transcribes audio recordings with OpenAI Whisper and
// generates summary, analysis and report artifacts from the transcript.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ivolkov/audiodigest/internal/analyze"
	"github.com/ivolkov/audiodigest/internal/apierr"
	"github.com/ivolkov/audiodigest/internal/audio"
	"github.com/ivolkov/audiodigest/internal/cli"
	"github.com/ivolkov/audiodigest/internal/ffmpeg"
	"github.com/ivolkov/audiodigest/internal/products"
	"github.com/ivolkov/audiodigest/internal/report"
	"github.com/ivolkov/audiodigest/internal/transcribe"
)

// Exit codes.
const (
	exitOK            = 0
	exitGeneral       = 1
	exitUsage         = 2
	exitSetup         = 3
	exitValidation    = 4
	exitTranscription = 5
	exitAnalysis      = 6
	exitInterrupt     = 130
)

// cobraUsageErrorPatterns identifies usage errors from cobra, which returns
// plain errors without sentinel types.
var cobraUsageErrorPatterns = []string{
	"unknown command",
	"unknown flag",
	"unknown shorthand flag",
	"accepts",
	"requires",
	"needs an argument",
	"if any flags in the group",
	"at least one of the flags",
	"none of the others can be",
}

func main() {
	// A missing .env file is fine; explicit environment wins anyway.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := cli.DefaultEnv()
	root := cli.NewRootCmd(env)
	root.SetContext(ctx)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitOK)
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK

	case errors.Is(err, context.Canceled):
		return exitInterrupt

	case errors.Is(err, ffmpeg.ErrNotFound),
		errors.Is(err, cli.ErrAPIKeyMissing):
		return exitSetup

	case errors.Is(err, cli.ErrFileNotFound),
		errors.Is(err, audio.ErrFileNotFound),
		errors.Is(err, cli.ErrUnknownConfigKey),
		errors.Is(err, products.ErrInvalidList),
		errors.Is(err, report.ErrNoInput):
		return exitValidation

	case errors.Is(err, transcribe.ErrRequestFailed),
		errors.Is(err, audio.ErrDurationUnavailable),
		errors.Is(err, audio.ErrConversionFailed),
		errors.Is(err, audio.ErrDecodeFailed),
		errors.Is(err, audio.ErrChunkPlanning):
		return exitTranscription

	case errors.Is(err, analyze.ErrEmptyResponse),
		errors.Is(err, report.ErrEmptyResponse),
		errors.Is(err, products.ErrNoToolCall):
		return exitAnalysis

	case errors.Is(err, apierr.ErrRateLimit),
		errors.Is(err, apierr.ErrQuotaExceeded),
		errors.Is(err, apierr.ErrTimeout),
		errors.Is(err, apierr.ErrAuthFailed),
		errors.Is(err, apierr.ErrBadRequest):
		return exitTranscription

	case isUsageError(err):
		return exitUsage

	default:
		return exitGeneral
	}
}

func isUsageError(err error) bool {
	msg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
