package purfectconsole

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"

	"github.com/google/uuid"
)

// Process is a child program whose standard streams are wired to a
// console: entered lines become its input and everything it writes is
// appended to the surface.
type Process struct {
	id      uuid.UUID
	cmd     *exec.Cmd
	pty     PTY
	console *Console
	logger  *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}

	mu       sync.Mutex
	exitCode int
	err      error
}

// ID returns the process' unique id
func (p *Process) ID() string {
	return p.id.String()
}

// Pid returns the operating system process id
func (p *Process) Pid() int {
	if p.cmd.Process == nil {
		return -1
	}
	return p.cmd.Process.Pid
}

// UsesPTY reports whether the child runs on a pseudo-terminal
func (p *Process) UsesPTY() bool {
	return p.pty != nil
}

// Wait blocks until the child exits and returns its exit code. A non-zero
// exit is not an error; err reports failures to run or wait.
func (p *Process) Wait() (int, error) {
	<-p.done
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exitCode, p.err
}

// Done returns a channel closed when the child has exited
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Kill terminates the child if it is still running
func (p *Process) Kill() error {
	select {
	case <-p.done:
		return nil
	default:
	}
	if p.cmd.Process == nil {
		return nil
	}
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

func (p *Process) resize(cols, rows int) {
	if p.pty == nil {
		return
	}
	if err := p.pty.Resize(cols, rows); err != nil {
		p.logger.Warn("resize pty", "error", err)
	}
}

// RunCommand starts name with args, wired to the console's input and
// output. With Options.UsePTY it runs on a pseudo-terminal when the
// platform has one, falling back to pipes.
func (c *Console) RunCommand(name string, args ...string) (*Process, error) {
	if c.Closed() {
		return nil, ErrClosed
	}

	cmd := exec.Command(name, args...)
	cmd.Dir = c.opts.WorkingDir
	cmd.Env = append(os.Environ(), c.caps.Environ()...)

	ctx, cancel := context.WithCancel(context.Background())
	p := &Process{
		id:      uuid.New(),
		cmd:     cmd,
		console: c,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	p.logger = c.logger.With("process", p.id.String())
	logger := p.logger

	var childIn io.Writer
	var childOut io.Reader

	if c.opts.UsePTY {
		pty, err := NewPTY()
		if err == nil {
			p.pty = pty
			cols, rows := c.caps.Size()
			if err := pty.Resize(cols, rows); err != nil {
				logger.Warn("resize pty", "error", err)
			}
		} else {
			logger.Warn("using pipes", "error", &ResourceError{Kind: "pty", Err: err})
		}
	}

	if p.pty != nil {
		if err := p.pty.Start(cmd); err != nil {
			p.pty.Close()
			cancel()
			return nil, fmt.Errorf("start %s: %w", name, err)
		}
		childIn, childOut = p.pty, p.pty
	} else {
		stdin, err := cmd.StdinPipe()
		if err != nil {
			cancel()
			return nil, fmt.Errorf("stdin pipe: %w", err)
		}
		// Same writer for both streams so exec merges them into one pipe
		cmd.Stdout = c.Output()
		cmd.Stderr = c.Output()
		if err := cmd.Start(); err != nil {
			cancel()
			return nil, fmt.Errorf("start %s: %w", name, err)
		}
		childIn = stdin
	}

	c.procMu.Lock()
	c.procs[p.id] = p
	c.procMu.Unlock()
	logger.Debug("process started", "name", name, "pid", p.Pid(), "pty", p.pty != nil)

	go p.pumpInput(ctx, childIn)

	var outDone chan struct{}
	if childOut != nil {
		outDone = make(chan struct{})
		go func() {
			defer close(outDone)
			if _, err := io.Copy(c.Output(), childOut); err != nil && !errors.Is(err, ErrClosed) {
				logger.Warn("child output", "error", err)
			}
		}()
	}

	go p.wait(outDone)
	return p, nil
}

// pumpInput forwards entered lines to the child until it exits
func (p *Process) pumpInput(ctx context.Context, w io.Writer) {
	for {
		line, err := p.console.bridge.NextLine(ctx)
		if err != nil {
			return
		}
		if _, err := w.Write(line); err != nil {
			return
		}
	}
}

func (p *Process) wait(outDone chan struct{}) {
	err := p.cmd.Wait()
	if outDone != nil {
		// Pseudo-terminal output drains after the child exits
		<-outDone
		p.pty.Close()
	}
	p.cancel()

	p.mu.Lock()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		p.exitCode = 0
	case errors.As(err, &exitErr):
		p.exitCode = exitErr.ExitCode()
	default:
		p.exitCode = -1
		p.err = err
	}
	code := p.exitCode
	p.mu.Unlock()

	c := p.console
	c.procMu.Lock()
	delete(c.procs, p.id)
	c.procMu.Unlock()

	close(p.done)
	p.logger.Debug("process exited", "code", code)
}
