package transform

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/arthur-debert/prettycat/pkg/logging"
)

// FirstAvailable returns the first tool name on PATH, or "" when none is.
// Availability is checked per invocation rather than cached: tools appear
// and disappear between pager sessions and LookPath is cheap.
func FirstAvailable(names ...string) string {
	for _, name := range names {
		if _, err := exec.LookPath(name); err == nil {
			return name
		}
	}
	return ""
}

// RunTool executes an external tool and returns its stdout. A non-zero
// exit is tolerated: whatever the tool wrote is returned as-is, with the
// status logged at debug level. Only a failure to start at all is an error.
func RunTool(ctx context.Context, name string, args ...string) ([]byte, error) {
	logging.LogCommand(name, args)
	defer logging.LogDuration(time.Now(), "run "+name)
	logger := logging.GetLogger("transform.toolrun")

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return nil, err
		}
		logger.Debug().
			Str("tool", name).
			Err(err).
			Str("stderr", stderr.String()).
			Msg("tool exited non-zero, using partial output")
	}
	return stdout.Bytes(), nil
}

// RunToolInput is RunTool with bytes piped to the tool's stdin.
func RunToolInput(ctx context.Context, input []byte, name string, args ...string) ([]byte, error) {
	logging.LogCommand(name, args)
	defer logging.LogDuration(time.Now(), "run "+name)
	logger := logging.GetLogger("transform.toolrun")

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = bytes.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return nil, err
		}
		logger.Debug().
			Str("tool", name).
			Err(err).
			Str("stderr", stderr.String()).
			Msg("tool exited non-zero, using partial output")
	}
	return stdout.Bytes(), nil
}
