//go:build linux

package purfectconsole

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// LinuxPTY implements PTY over /dev/ptmx. The slave side is put in
// canonical mode without echo: the console edits and echoes the line
// itself and only hands over complete lines.
type LinuxPTY struct {
	master *os.File
	slave  *os.File
	fd     int
}

// NewPTY creates a new PTY
func NewPTY() (PTY, error) {
	return newLinuxPTY()
}

func newLinuxPTY() (*LinuxPTY, error) {
	master, err := os.OpenFile("/dev/ptmx", os.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, err
	}
	fd := int(master.Fd())

	if err := unix.IoctlSetPointerInt(fd, unix.TIOCSPTLCK, 0); err != nil {
		master.Close()
		return nil, fmt.Errorf("unlock pty: %w", err)
	}
	n, err := unix.IoctlGetUint32(fd, unix.TIOCGPTN)
	if err != nil {
		master.Close()
		return nil, fmt.Errorf("pty number: %w", err)
	}

	// Don't use O_NOCTTY so it can become the child's controlling terminal
	slave, err := os.OpenFile(fmt.Sprintf("/dev/pts/%d", n), os.O_RDWR, 0)
	if err != nil {
		master.Close()
		return nil, err
	}

	if err := configureLineMode(int(slave.Fd())); err != nil {
		slave.Close()
		master.Close()
		return nil, err
	}

	return &LinuxPTY{master: master, slave: slave, fd: fd}, nil
}

// configureLineMode turns echo off, canonical input on and output newline
// translation off
func configureLineMode(fd int) error {
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("get termios: %w", err)
	}
	t.Lflag &^= unix.ECHO | unix.ECHOE | unix.ECHOK | unix.ECHONL
	t.Lflag |= unix.ICANON
	t.Oflag &^= unix.ONLCR
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, t); err != nil {
		return fmt.Errorf("set termios: %w", err)
	}
	return nil
}

// Start starts the command on the slave side
func (p *LinuxPTY) Start(cmd *exec.Cmd) error {
	if p.slave == nil {
		return errors.New("pty already started")
	}
	cmd.Stdin = p.slave
	cmd.Stdout = p.slave
	cmd.Stderr = p.slave

	// Ctty is the fd in the child's perspective (after dup2, it's 0)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
		Ctty:    0,
	}

	if err := cmd.Start(); err != nil {
		return err
	}

	// Child has its own copy
	p.slave.Close()
	p.slave = nil
	return nil
}

// Read reads child output. The EIO Linux reports once every slave
// descriptor is closed is returned as io.EOF.
func (p *LinuxPTY) Read(b []byte) (int, error) {
	n, err := p.master.Read(b)
	if err != nil && errors.Is(err, unix.EIO) {
		err = io.EOF
	}
	return n, err
}

// Write writes child input
func (p *LinuxPTY) Write(b []byte) (int, error) {
	return p.master.Write(b)
}

// Resize sets the window size
func (p *LinuxPTY) Resize(cols, rows int) error {
	ws := &unix.Winsize{Row: uint16(rows), Col: uint16(cols)}
	if err := unix.IoctlSetWinsize(p.fd, unix.TIOCSWINSZ, ws); err != nil {
		return fmt.Errorf("resize pty: %w", err)
	}
	return nil
}

// Close closes both sides
func (p *LinuxPTY) Close() error {
	if p.slave != nil {
		p.slave.Close()
	}
	return p.master.Close()
}
