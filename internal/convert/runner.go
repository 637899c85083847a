package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// StepRunner runs one ffmpeg invocation (args[0] is the executable) and
// writes its merged stdout and stderr to output. A non-zero exit must be
// reported through an error with an ExitCode() int method, as
// *exec.ExitError does.
type StepRunner func(ctx context.Context, args []string, output io.Writer) error

// execStepRunner runs the step as a subprocess. Handing the same writer to
// Stdout and Stderr makes exec share a single pipe, preserving the order in
// which the tool interleaves both streams.
func execStepRunner(ctx context.Context, args []string, output io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("empty command")
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = output
	cmd.Stderr = output
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", args[0], err)
	}
	return cmd.Wait()
}

// exitCode extracts the process exit code from err, or -1
func exitCode(err error) int {
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return -1
}
