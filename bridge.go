package purfectconsole

import (
	"context"
	"io"
	"sync"
	"unicode/utf8"
)

// DefaultQueueSize is the number of submitted lines the bridge holds before
// Submit reports ErrInputBacklog
const DefaultQueueSize = 256

// Bridge is the duplex channel between the console and whatever consumes
// its input and produces its output. Submitted lines queue up for the input
// reader; produced bytes are decoded and handed to the output sink.
//
// Bridge is safe for concurrent use.
type Bridge struct {
	// closeMu orders every enqueue against Close: once Close returns no
	// line can be accepted
	closeMu sync.RWMutex
	closed  bool
	lines   chan []byte
	done    chan struct{}
	space   chan struct{} // signalled when a reader frees a slot

	readMu  sync.Mutex
	pending []byte // unread rest of the current line

	outMu   sync.Mutex
	partial []byte // incomplete UTF-8 sequence from the last write
	sink    func(text string)
}

// NewBridge creates a bridge holding up to queueSize pending lines. sink
// receives decoded output in production order.
func NewBridge(queueSize int, sink func(text string)) *Bridge {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Bridge{
		lines: make(chan []byte, queueSize),
		done:  make(chan struct{}),
		space: make(chan struct{}, 1),
		sink:  sink,
	}
}

// Submit queues line plus a newline for the input reader without blocking.
// It returns ErrInputBacklog when the queue is full and ErrClosed after
// Close.
func (b *Bridge) Submit(line string) error {
	b.closeMu.RLock()
	defer b.closeMu.RUnlock()
	if b.closed {
		return ErrClosed
	}
	select {
	case b.lines <- []byte(line + "\n"):
		return nil
	default:
		return ErrInputBacklog
	}
}

// SubmitContext queues a line, waiting for queue space until ctx is done or
// the bridge is closed
func (b *Bridge) SubmitContext(ctx context.Context, line string) error {
	for {
		err := b.Submit(line)
		if err != ErrInputBacklog {
			if err == nil && len(b.lines) < cap(b.lines) {
				// Pass the wakeup on to the next waiting submitter
				b.signalSpace()
			}
			return err
		}
		select {
		case <-b.space:
		case <-b.done:
			return ErrClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (b *Bridge) signalSpace() {
	select {
	case b.space <- struct{}{}:
	default:
	}
}

// Pending returns the number of queued, unread lines
func (b *Bridge) Pending() int {
	return len(b.lines)
}

// Read implements the input side. It blocks until a line is available and
// returns io.EOF once the bridge is closed and drained.
func (b *Bridge) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	b.readMu.Lock()
	defer b.readMu.Unlock()

	if len(b.pending) == 0 {
		select {
		case line := <-b.lines:
			b.pending = line
		case <-b.done:
			select {
			case line := <-b.lines:
				b.pending = line
			default:
				return 0, io.EOF
			}
		}
		b.signalSpace()
	}

	n := copy(p, b.pending)
	b.pending = b.pending[n:]
	return n, nil
}

// NextLine returns the rest of the current line, or the next queued line,
// including its newline. It waits until a line arrives, ctx is done, or the
// bridge is closed and drained (io.EOF).
func (b *Bridge) NextLine(ctx context.Context) ([]byte, error) {
	b.readMu.Lock()
	defer b.readMu.Unlock()

	if len(b.pending) > 0 {
		line := b.pending
		b.pending = nil
		return line, nil
	}
	// A done context wins over a queued line
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	select {
	case line := <-b.lines:
		b.signalSpace()
		return line, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-b.done:
		select {
		case line := <-b.lines:
			b.signalSpace()
			return line, nil
		default:
			return nil, io.EOF
		}
	}
}

// Write implements the output side. Complete characters are passed to the
// sink; a trailing partial UTF-8 sequence waits for the next write.
func (b *Bridge) Write(p []byte) (int, error) {
	b.outMu.Lock()
	defer b.outMu.Unlock()
	if b.Closed() {
		return 0, ErrClosed
	}

	data := p
	if len(b.partial) > 0 {
		data = append(b.partial, p...)
		b.partial = nil
	}

	// Hold back an incomplete trailing sequence
	cut := len(data)
	for i := len(data) - 1; i >= 0 && i >= len(data)-utf8.UTFMax; i-- {
		if utf8.RuneStart(data[i]) {
			if !utf8.FullRune(data[i:]) {
				cut = i
			}
			break
		}
	}
	if cut < len(data) {
		b.partial = append([]byte(nil), data[cut:]...)
	}

	if cut > 0 && b.sink != nil {
		b.sink(string([]rune(string(data[:cut]))))
	}
	return len(p), nil
}

// WriteByte feeds a single produced byte
func (b *Bridge) WriteByte(c byte) error {
	_, err := b.Write([]byte{c})
	return err
}

// Close shuts both directions. It is idempotent; queued lines remain
// readable, further submits and writes fail with ErrClosed.
func (b *Bridge) Close() error {
	b.closeMu.Lock()
	defer b.closeMu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.done)
	}
	return nil
}

// Closed reports whether Close has been called
func (b *Bridge) Closed() bool {
	b.closeMu.RLock()
	defer b.closeMu.RUnlock()
	return b.closed
}

// Done returns a channel closed when the bridge closes
func (b *Bridge) Done() <-chan struct{} {
	return b.done
}
