package purfectconsole

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(t *testing.T, opts Options) (*Console, *Buffer) {
	t.Helper()
	buf := NewBuffer()
	c, err := New(buf, opts)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, buf
}

// typeText presses and releases a key for every rune of text
func typeText(c *Console, text string) {
	for _, r := range text {
		ev := RuneEvent(r, ModNone)
		c.HandleKey(ev)
		c.HandleKeyRelease(ev)
	}
}

func press(c *Console, k Key) bool {
	ev := SpecialEvent(k, ModNone)
	consumed := c.HandleKey(ev)
	c.HandleKeyRelease(ev)
	return consumed
}

func TestNewRejectsNilSurface(t *testing.T) {
	_, err := New(nil, DefaultOptions())
	assert.Error(t, err)
}

func TestConsoleAppliesDefaults(t *testing.T) {
	c, _ := newTestConsole(t, Options{})
	opts := c.Options()
	assert.Equal(t, "Console", opts.Title)
	assert.Equal(t, DefaultQueueSize, opts.QueueSize)
	assert.NotNil(t, opts.Logger)
	assert.NotEmpty(t, c.ID())
}

func TestConsoleEnterSubmitsLine(t *testing.T) {
	c, buf := newTestConsole(t, DefaultOptions())

	typeText(c, "ls")
	assert.True(t, press(c, KeyEnter))

	assert.Equal(t, []string{"ls"}, c.History())
	line, err := bufio.NewReader(c.Input()).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "ls\n", line)

	input, err := c.InputLine()
	require.NoError(t, err)
	assert.Empty(t, input)
	assert.Equal(t, buf.Len(), c.InputStart())
}

func TestConsoleSnapsBackBeforeTyping(t *testing.T) {
	c, buf := newTestConsole(t, DefaultOptions())
	fmt.Fprint(c.Output(), "$ ")
	typeText(c, "abc")

	require.NoError(t, buf.SetCaret(0))
	typeText(c, "x")
	assert.Equal(t, "$ abcx", buf.String())
}

func TestConsoleQuotesTypedInHistoryLandInInput(t *testing.T) {
	c, buf := newTestConsole(t, DefaultOptions())
	fmt.Fprint(c.Output(), "$ ")

	for _, r := range []rune{'\'', '"', '&'} {
		require.NoError(t, buf.SetCaret(0))
		typeText(c, string(r))
	}
	assert.Equal(t, "$ '\"&", buf.String())
}

func TestConsoleHistoryOutputIsProtected(t *testing.T) {
	c, buf := newTestConsole(t, DefaultOptions())
	fmt.Fprint(c.Output(), "$ ")
	typeText(c, "ab")

	for i := 0; i < 4; i++ {
		press(c, KeyBackspace)
	}
	assert.Equal(t, "$ ", buf.String())

	// From inside the prompt the caret snaps back before deleting
	require.NoError(t, buf.SetCaret(1))
	assert.True(t, press(c, KeyBackspace))
	assert.Equal(t, "$ ", buf.String())
	assert.Equal(t, 2, buf.Caret())
}

func TestConsoleOutputReanchorsInput(t *testing.T) {
	c, buf := newTestConsole(t, DefaultOptions())

	const writers, writes = 4, 100
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < writes; j++ {
				fmt.Fprint(c.Output(), "out\n")
			}
		}()
	}
	for i := 0; i < 50; i++ {
		typeText(c, "z")
	}
	wg.Wait()

	fmt.Fprint(c.Output(), "done")
	assert.Equal(t, buf.Len(), c.InputStart())
	assert.Equal(t, writers*writes, strings.Count(buf.String(), "out\n"))
	assert.Equal(t, 50, strings.Count(buf.String(), "z"))
}

func TestConsoleScheduleHook(t *testing.T) {
	var mu sync.Mutex
	var queued []func()
	opts := DefaultOptions()
	opts.Schedule = func(fn func()) {
		mu.Lock()
		queued = append(queued, fn)
		mu.Unlock()
	}
	c, buf := newTestConsole(t, opts)

	_, err := fmt.Fprint(c.Output(), "hi")
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	mu.Lock()
	for _, fn := range queued {
		fn()
	}
	mu.Unlock()
	assert.Equal(t, "hi", buf.String())
	assert.Equal(t, 2, c.InputStart())
}

func TestConsoleInputLineAccessors(t *testing.T) {
	c, buf := newTestConsole(t, DefaultOptions())
	fmt.Fprint(c.Output(), "> ")

	require.NoError(t, c.SetInputLine("draft"))
	line, err := c.InputLine()
	require.NoError(t, err)
	assert.Equal(t, "draft", line)
	assert.Equal(t, "> draft", buf.String())
	assert.Equal(t, 2, c.InputStart())
}

func TestConsoleHistoryGetSet(t *testing.T) {
	opts := DefaultOptions()
	opts.History = []string{"a", "b"}
	c, _ := newTestConsole(t, opts)
	assert.Equal(t, []string{"a", "b"}, c.History())

	c.SetHistory([]string{"x", "y", "z"})
	assert.Equal(t, []string{"x", "y", "z"}, c.History())

	press(c, KeyUp)
	line, _ := c.InputLine()
	assert.Equal(t, "z", line)
}

func TestConsoleSubmitSkipsHistory(t *testing.T) {
	c, _ := newTestConsole(t, DefaultOptions())
	require.NoError(t, c.Submit("scripted"))

	line, err := c.Bridge().NextLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "scripted\n", string(line))
	assert.Empty(t, c.History())
}

func TestConsoleSubmitBacklog(t *testing.T) {
	opts := DefaultOptions()
	opts.QueueSize = 1
	c, _ := newTestConsole(t, opts)

	require.NoError(t, c.Submit("one"))
	assert.ErrorIs(t, c.Submit("two"), ErrInputBacklog)

	// Entered lines are still recorded when the queue is full
	typeText(c, "three")
	press(c, KeyEnter)
	assert.Equal(t, []string{"three"}, c.History())
}

func TestConsoleCloseIsIdempotent(t *testing.T) {
	c, _ := newTestConsole(t, DefaultOptions())

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.True(t, c.Closed())

	select {
	case <-c.Done():
	default:
		t.Fatal("Done not closed")
	}
	assert.ErrorIs(t, c.Submit("late"), ErrClosed)
	_, err := c.Output().Write([]byte("late"))
	assert.ErrorIs(t, err, ErrClosed)
	_, err = c.RunCommand("true")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestConsoleCloseUnblocksSubmitContext(t *testing.T) {
	opts := DefaultOptions()
	opts.QueueSize = 1
	c, _ := newTestConsole(t, opts)
	require.NoError(t, c.Submit("fill"))

	done := make(chan error, 1)
	go func() {
		done <- c.SubmitContext(context.Background(), "blocked")
	}()
	time.Sleep(10 * time.Millisecond)
	c.Close()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("SubmitContext still blocked after Close")
	}
}

func TestConsoleHistoryFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.yaml")

	opts := DefaultOptions()
	opts.History = []string{"seed"}
	opts.HistoryFile = path
	c, err := New(NewBuffer(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"seed"}, c.History())

	typeText(c, "  two spaces")
	press(c, KeyEnter)
	require.NoError(t, c.Close())

	opts.History = []string{"ignored"}
	c2, err := New(NewBuffer(), opts)
	require.NoError(t, err)
	defer c2.Close()
	assert.Equal(t, []string{"seed", "  two spaces"}, c2.History())
}

func TestConsoleResizeUpdatesCapabilities(t *testing.T) {
	c, _ := newTestConsole(t, DefaultOptions())
	c.Resize(100, 30)

	cols, rows := c.Capabilities().Size()
	assert.Equal(t, [2]int{100, 30}, [2]int{cols, rows})
	assert.Contains(t, c.Capabilities().Environ(), "COLUMNS=100")

	c.Resize(0, -1)
	cols, rows = c.Capabilities().Size()
	assert.Equal(t, [2]int{100, 30}, [2]int{cols, rows})
}
