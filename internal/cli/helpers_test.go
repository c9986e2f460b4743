package cli_test

import (
	"bytes"
	"context"
	"time"

	"github.com/ivolkov/audiodigest/internal/cli"
)

// fixedTime is the deterministic clock for run directory names.
var fixedTime = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

// fixedStamp is fixedTime rendered in the run directory layout.
const fixedStamp = "20250314_150926"

// testEnv bundles an Env with captured output buffers.
type testEnv struct {
	env    *cli.Env
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv builds an Env with every external dependency mocked and an
// OPENAI_API_KEY in the environment. Callers override fields as needed.
func newTestEnv(opts ...cli.EnvOption) *testEnv {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	base := []cli.EnvOption{
		cli.WithStdout(stdout),
		cli.WithStderr(stderr),
		cli.WithGetenv(func(key string) string {
			if key == cli.EnvOpenAIAPIKey {
				return "test-key"
			}
			return ""
		}),
		cli.WithNow(func() time.Time { return fixedTime }),
		cli.WithConfigLoader(&mockConfigLoader{}),
		cli.WithFFmpegResolver(&mockFFmpegResolver{}),
		cli.WithPipelineFactory(&mockPipelineFactory{
			Prober:       &mockProber{},
			Normalizer:   &mockNormalizer{},
			Orchestrator: &mockOrchestrator{},
		}),
		cli.WithCollaboratorFactory(&mockCollaboratorFactory{}),
	}

	env := cli.NewEnv(append(base, opts...)...)
	return &testEnv{env: env, stdout: stdout, stderr: stderr}
}

// execute runs the command tree with the given args.
func (te *testEnv) execute(args ...string) error {
	root := cli.NewRootCmd(te.env)
	root.SetArgs(args)
	root.SetOut(te.stdout)
	root.SetErr(te.stderr)
	return root.ExecuteContext(context.Background())
}
