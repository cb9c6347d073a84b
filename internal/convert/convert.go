// Package convert owns the per-request external converter process.
package convert

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Status classifies how a conversion terminated. Exactly one status is ever
// produced per job.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailed
	StatusTimeout
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failure"
	case StatusTimeout:
		return "timeout"
	}
	return "unknown"
}

// Outcome carries the terminal state of one converter invocation.
type Outcome struct {
	Status   Status
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Runner lets us stub the external converter in tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct {
	logger *slog.Logger
}

func (r execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()
	r.logger.Debug("running converter", "cmd", name, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	// Both streams are attached before the child starts so they are drained
	// as output arrives; a converter blocked on a full pipe would never exit.
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	dur := time.Since(start)

	if err != nil {
		r.logger.Error("converter exec failed",
			"cmd", name,
			"duration_ms", dur.Milliseconds(),
			"error", err,
			"stderr", truncate(errb.String(), 8<<10),
		)
	} else {
		r.logger.Debug("converter exec ok",
			"cmd", name,
			"duration_ms", dur.Milliseconds(),
			"stdout_bytes", out.Len(),
			"stderr_bytes", errb.Len(),
		)
	}

	return out.Bytes(), errb.Bytes(), err
}

// Orchestrator spawns one converter process per conversion request. Jobs
// share nothing; every invocation gets its own child, buffers and deadline.
type Orchestrator struct {
	name    string
	args    []string
	timeout time.Duration
	logger  *slog.Logger

	// Runner is replaceable in tests.
	Runner Runner
}

// New builds an Orchestrator for the given converter command line. The
// command may carry leading arguments ("python3 converter.py"); the input
// and output paths are appended per invocation.
func New(command string, timeout time.Duration, logger *slog.Logger) *Orchestrator {
	fields := strings.Fields(command)
	var name string
	var args []string
	if len(fields) > 0 {
		name = fields[0]
		args = fields[1:]
	}
	return &Orchestrator{
		name:    name,
		args:    args,
		timeout: timeout,
		logger:  logger,
		Runner:  execRunner{logger: logger},
	}
}

// Convert runs the converter as `<command> <inputPath> <outputPath>` under the
// configured deadline. On deadline the child receives SIGKILL and the outcome
// is StatusTimeout; the deadline check runs before the exit-status check, so
// a kill-induced exit never reports as a plain failure.
func (o *Orchestrator) Convert(ctx context.Context, inputPath, outputPath string) Outcome {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()
	args := append(append([]string{}, o.args...), inputPath, outputPath)
	stdout, stderr, err := o.Runner.Run(ctx, o.name, args...)

	outcome := Outcome{
		Stdout:   string(stdout),
		Stderr:   string(stderr),
		Duration: time.Since(start),
	}
	switch {
	case ctx.Err() == context.DeadlineExceeded:
		outcome.Status = StatusTimeout
	case err != nil:
		outcome.Status = StatusFailed
	default:
		outcome.Status = StatusSuccess
	}
	return outcome
}

// Timeout reports the configured per-job deadline.
func (o *Orchestrator) Timeout() time.Duration {
	return o.timeout
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
