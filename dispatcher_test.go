package purfectconsole

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dispatchFixture struct {
	buf       *Buffer
	region    *InputRegion
	history   *History
	d         *Dispatcher
	submitted []string
	logs      *bytes.Buffer
}

// newDispatchFixture builds a dispatcher over a buffer showing prompt, with
// input typed after it
func newDispatchFixture(t *testing.T, prompt, input string, history ...string) *dispatchFixture {
	t.Helper()
	f := &dispatchFixture{buf: NewBuffer(), logs: &bytes.Buffer{}}
	f.buf.Append(prompt)
	f.region = NewInputRegion(f.buf)
	f.buf.Append(input)
	f.history = NewHistory(history)
	logger := slog.New(slog.NewTextHandler(f.logs, nil))
	f.d = NewDispatcher(f.buf, f.region, f.history, func(line string) error {
		f.submitted = append(f.submitted, line)
		return nil
	}, logger)
	return f
}

func (f *dispatchFixture) input(t *testing.T) string {
	t.Helper()
	text, err := f.region.Text()
	require.NoError(t, err)
	return text
}

func ctrl(r rune) KeyEvent {
	return RuneEvent(r, ModCtrl)
}

func key(k Key) KeyEvent {
	return SpecialEvent(k, ModNone)
}

func TestDispatcherIgnoredKeys(t *testing.T) {
	f := newDispatchFixture(t, "$ ", "ls")
	require.NoError(t, f.buf.SetCaret(0))

	for _, k := range []Key{KeyNone, KeyTab, KeyShift, KeyControl, KeyF1, KeyF12, KeyF24,
		KeyCapsLock, KeyKPAdd, KeyKPDecimal, KeyKanji, KeyContextMenu, KeyPrintScreen} {
		assert.False(t, f.d.HandleKey(key(k)), "key %s", k)
		assert.Equal(t, 0, f.buf.Caret(), "ignored key %s must not snap back", k)
	}
}

func TestDispatcherSelectAllToggles(t *testing.T) {
	f := newDispatchFixture(t, "$ ", "abc")

	require.NoError(t, f.buf.SetSelection(2, 5))
	assert.True(t, f.d.HandleKey(ctrl('a')))
	start, end := f.buf.Selection()
	assert.Equal(t, [2]int{0, 5}, [2]int{start, end})

	assert.True(t, f.d.HandleKey(RuneEvent('A', ModMeta)))
	start, end = f.buf.Selection()
	assert.Equal(t, [2]int{2, 5}, [2]int{start, end})
}

func TestDispatcherSelectAllWithoutSelection(t *testing.T) {
	f := newDispatchFixture(t, "$ ", "abc")
	assert.True(t, f.d.HandleKey(ctrl('a')))
	start, end := f.buf.Selection()
	assert.Equal(t, [2]int{2, 5}, [2]int{start, end})
}

func TestDispatcherHomeEnd(t *testing.T) {
	f := newDispatchFixture(t, "$ ", "abc")

	assert.True(t, f.d.HandleKey(key(KeyHome)))
	assert.Equal(t, 2, f.buf.Caret())
	assert.True(t, f.d.HandleKey(key(KeyEnd)))
	assert.Equal(t, 5, f.buf.Caret())
}

func TestDispatcherCopyAndCutNeverDelete(t *testing.T) {
	for _, ev := range []KeyEvent{ctrl('c'), ctrl('x'), key(KeyCopy), key(KeyCut), RuneEvent('x', ModMeta)} {
		t.Run(ev.String(), func(t *testing.T) {
			f := newDispatchFixture(t, "$ ", "abc")
			require.NoError(t, f.buf.SetCaret(4))
			f.region.Remember()

			require.NoError(t, f.buf.SetSelection(0, 2))
			assert.True(t, f.d.HandleKey(ev))

			text, _ := f.buf.Clipboard().ReadText()
			assert.Equal(t, "$ ", text)
			assert.Equal(t, "$ abc", f.buf.String())
			assert.Equal(t, 4, f.buf.Caret())
			assert.False(t, f.buf.HasSelection())
		})
	}
}

func TestDispatcherCopyWithoutSelectionLeavesClipboard(t *testing.T) {
	f := newDispatchFixture(t, "$ ", "abc")
	require.NoError(t, f.buf.Clipboard().WriteText("keep"))

	assert.True(t, f.d.HandleKey(ctrl('c')))
	text, _ := f.buf.Clipboard().ReadText()
	assert.Equal(t, "keep", text)
}

func TestDispatcherHistoryRecall(t *testing.T) {
	f := newDispatchFixture(t, "$ ", "draft", "a", "b", "c")

	steps := []struct {
		ev   KeyEvent
		want string
	}{
		{key(KeyUp), "c"},
		{key(KeyKPUp), "b"},
		{key(KeyDown), "c"},
		{key(KeyPageUp), "a"},
		{key(KeyKPDown), "b"},
		{key(KeyPageDown), "c"},
	}
	for _, s := range steps {
		assert.True(t, f.d.HandleKey(s.ev))
		assert.Equal(t, s.want, f.input(t), "after %s", s.ev)
		assert.Equal(t, "$ "+s.want, f.buf.String())
	}
}

func TestDispatcherHistoryRecallEmpty(t *testing.T) {
	f := newDispatchFixture(t, "$ ", "draft")
	assert.True(t, f.d.HandleKey(key(KeyUp)))
	assert.Equal(t, "", f.input(t))
}

func TestDispatcherEnterSubmits(t *testing.T) {
	f := newDispatchFixture(t, "$ ", "echo  hi ")
	require.NoError(t, f.buf.SetCaret(3))

	assert.True(t, f.d.HandleKey(key(KeyEnter)))
	assert.Equal(t, []string{"echo  hi "}, f.submitted)
	assert.Equal(t, []string{"echo  hi "}, f.history.Entries())
	assert.Equal(t, f.buf.Len(), f.region.Start())
	assert.Equal(t, f.buf.Len(), f.buf.Caret())
	assert.Equal(t, "", f.input(t))
}

func TestDispatcherEnterSubmitFailureIsLogged(t *testing.T) {
	f := newDispatchFixture(t, "$ ", "ls")
	f.d.submit = func(string) error { return ErrInputBacklog }

	assert.True(t, f.d.HandleKey(key(KeyEnter)))
	assert.Equal(t, []string{"ls"}, f.history.Entries())
	assert.Contains(t, f.logs.String(), "submit input line")
}

func TestDispatcherBackwardKeysStopAtStart(t *testing.T) {
	for _, ev := range []KeyEvent{key(KeyLeft), key(KeyKPLeft), key(KeyBackspace), ctrl('h')} {
		t.Run(ev.String(), func(t *testing.T) {
			f := newDispatchFixture(t, "$ ", "ab")

			require.NoError(t, f.buf.SetCaret(2))
			assert.True(t, f.d.HandleKey(ev), "at start")

			require.NoError(t, f.buf.SetCaret(3))
			assert.False(t, f.d.HandleKey(ev), "inside input")
		})
	}
}

func TestDispatcherBackwardKeySnapsBackFromHistory(t *testing.T) {
	f := newDispatchFixture(t, "$ ", "ab")
	require.NoError(t, f.buf.SetCaret(4))
	f.region.Remember()
	require.NoError(t, f.buf.SetCaret(1))

	assert.False(t, f.d.HandleKey(key(KeyBackspace)))
	assert.Equal(t, 4, f.buf.Caret())

	// Remembered caret at the start: the edit is suppressed
	require.NoError(t, f.buf.SetCaret(2))
	f.region.Remember()
	require.NoError(t, f.buf.SetCaret(0))
	assert.True(t, f.d.HandleKey(key(KeyBackspace)))
	assert.Equal(t, 2, f.buf.Caret())
}

func TestDispatcherPrintableKeySnapsBack(t *testing.T) {
	f := newDispatchFixture(t, "$ ", "abc")
	require.NoError(t, f.buf.SetCaret(3))
	f.region.Remember()
	require.NoError(t, f.buf.SetCaret(0))

	assert.False(t, f.d.HandleKey(RuneEvent('x', ModNone)))
	assert.Equal(t, 3, f.buf.Caret())
	assert.Equal(t, "$ abc", f.buf.String())
}

func TestDispatcherPrintableKeyInsideInput(t *testing.T) {
	f := newDispatchFixture(t, "$ ", "abc")
	assert.False(t, f.d.HandleKey(RuneEvent('x', ModNone)))
	assert.Equal(t, 5, f.buf.Caret())
}

func TestDispatcherBoundsErrorIsRecovered(t *testing.T) {
	f := newDispatchFixture(t, "$ ", "abc")
	// Shrink the surface behind the region's back
	require.NoError(t, f.buf.Replace(0, f.buf.Len(), ""))

	assert.NotPanics(t, func() {
		assert.True(t, f.d.HandleKey(key(KeyHome)))
	})
	assert.Contains(t, f.logs.String(), "edit action ignored")
	assert.Contains(t, f.logs.String(), "op=caret")
	assert.Equal(t, "", f.buf.String())
}

func TestDispatcherKeyReleaseRemembers(t *testing.T) {
	f := newDispatchFixture(t, "$ ", "abc")

	require.NoError(t, f.buf.SetCaret(3))
	f.d.HandleKeyRelease(key(KeyLeft))
	assert.Equal(t, 3, f.region.RememberedCaret())

	require.NoError(t, f.buf.SetCaret(4))
	f.d.HandleKeyRelease(ctrl('a'))
	assert.Equal(t, 3, f.region.RememberedCaret())

	require.NoError(t, f.buf.SetCaret(1))
	f.d.HandleKeyRelease(key(KeyLeft))
	assert.Equal(t, 3, f.region.RememberedCaret())
}

func TestDispatcherSecondaryClickCopies(t *testing.T) {
	f := newDispatchFixture(t, "$ ", "abc")
	require.NoError(t, f.buf.SetSelection(0, 1))

	assert.True(t, f.d.HandleMousePress(MouseSecondary))
	text, _ := f.buf.Clipboard().ReadText()
	assert.Equal(t, "$", text)
	assert.Equal(t, f.region.RememberedCaret(), f.buf.Caret())
}

func TestDispatcherSecondaryClickPastes(t *testing.T) {
	f := newDispatchFixture(t, "$ ", "ab")
	require.NoError(t, f.buf.Clipboard().WriteText("XY"))
	require.NoError(t, f.buf.SetCaret(3))

	assert.True(t, f.d.HandleMousePress(MouseSecondary))
	assert.Equal(t, "$ aXYb", f.buf.String())
	assert.Equal(t, 5, f.buf.Caret())
}

func TestDispatcherSecondaryClickOutsideInput(t *testing.T) {
	f := newDispatchFixture(t, "$ ", "ab")
	require.NoError(t, f.buf.Clipboard().WriteText("XY"))
	require.NoError(t, f.buf.SetCaret(1))

	assert.False(t, f.d.HandleMousePress(MouseSecondary))
	assert.False(t, f.d.HandleMousePress(MousePrimary))
	assert.Equal(t, "$ ab", f.buf.String())
}

func TestDispatcherMouseReleaseRemembers(t *testing.T) {
	f := newDispatchFixture(t, "$ ", "abc")

	require.NoError(t, f.buf.SetCaret(4))
	f.d.HandleMouseRelease(MousePrimary)
	assert.Equal(t, 4, f.region.RememberedCaret())

	require.NoError(t, f.buf.SetCaret(0))
	f.d.HandleMouseRelease(MousePrimary)
	assert.Equal(t, 4, f.region.RememberedCaret())
}
