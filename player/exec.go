package player

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/amp-labs/hero-slider/logger"
)

// process is a small builder over exec.Cmd.
type process struct {
	cmd      *exec.Cmd
	finished []func()
}

func newProcess(ctx context.Context, name string, args ...string) *process {
	c := exec.CommandContext(ctx, name, args...)
	c.Env = os.Environ()

	return &process{cmd: c}
}

func (p *process) appendEnv(key, value string) *process {
	p.cmd.Env = append(p.cmd.Env, key+"="+value)

	return p
}

// observeOutput hands the combined stdout and stderr to f once the
// process has exited.
func (p *process) observeOutput(f func([]byte)) *process {
	var buf bytes.Buffer

	p.cmd.Stdout = &buf
	p.cmd.Stderr = &buf

	p.finished = append(p.finished, func() {
		f(buf.Bytes())
	})

	return p
}

// run starts the process and waits for it. A non-zero exit is reported
// through the exit code, not the error; the error is for processes that
// could not run at all.
func (p *process) run(ctx context.Context) (int, error) {
	logger.Get(ctx).Debug("run cmd", "cmd", strings.Join(p.cmd.Args, " "))

	code, err := status(p.cmd.Run())

	for _, f := range p.finished {
		f()
	}

	return code, err
}

func status(err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return exitErr.ExitCode(), nil
	}

	return 1, err
}
