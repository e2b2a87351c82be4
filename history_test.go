package purfectconsole

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryPreviousWraps(t *testing.T) {
	h := NewHistory([]string{"a", "b", "c"})
	assert.Equal(t, 3, h.Cursor())

	var got []string
	for i := 0; i < 4; i++ {
		got = append(got, h.Previous())
	}
	assert.Equal(t, []string{"c", "b", "a", "c"}, got)
}

func TestHistoryNextWraps(t *testing.T) {
	h := NewHistory([]string{"a", "b", "c"})
	h.First()

	var got []string
	for i := 0; i < 4; i++ {
		got = append(got, h.Next())
	}
	assert.Equal(t, []string{"b", "c", "a", "b"}, got)
}

func TestHistoryNextFromEndStartsAtOldest(t *testing.T) {
	h := NewHistory([]string{"a", "b", "c"})
	assert.Equal(t, "a", h.Next())
}

func TestHistoryFirstLast(t *testing.T) {
	h := NewHistory([]string{"a", "b", "c"})
	assert.Equal(t, "a", h.First())
	assert.Equal(t, 0, h.Cursor())
	assert.Equal(t, "c", h.Last())
	assert.Equal(t, 2, h.Cursor())
}

func TestHistoryCyclicSymmetry(t *testing.T) {
	for size := 1; size <= 5; size++ {
		entries := make([]string, size)
		for i := range entries {
			entries[i] = fmt.Sprintf("cmd%d", i)
		}
		for start := 0; start < size; start++ {
			for n := 0; n <= 2*size; n++ {
				back := NewHistory(entries)
				fwd := NewHistory(entries)
				for i := 0; i < start; i++ {
					back.Next()
					fwd.Next()
				}

				want, got := back.at(back.Cursor()), fwd.at(fwd.Cursor())
				for i := 0; i < n; i++ {
					want = back.Previous()
				}
				for i := 0; i < size-n%size; i++ {
					got = fwd.Next()
				}
				assert.Equal(t, want, got, "size %d start %d n %d", size, start, n)
				assert.Equal(t, back.Cursor(), fwd.Cursor(), "size %d start %d n %d", size, start, n)
			}
		}
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory(nil)
	assert.Equal(t, "", h.Previous())
	assert.Equal(t, "", h.Next())
	assert.Equal(t, "", h.First())
	assert.Equal(t, "", h.Last())
	assert.Equal(t, 0, h.Len())
}

func TestHistoryRecordVerbatim(t *testing.T) {
	h := NewHistory(nil)
	h.Record("  spaced  ")
	h.Record("  spaced  ")
	h.Record("")

	assert.Equal(t, []string{"  spaced  ", "  spaced  ", ""}, h.Entries())
	assert.Equal(t, 3, h.Cursor())
}

func TestHistoryEntriesAreCopies(t *testing.T) {
	src := []string{"a", "b"}
	h := NewHistory(src)
	src[0] = "changed"
	assert.Equal(t, "a", h.First())

	out := h.Entries()
	out[1] = "changed"
	assert.Equal(t, "b", h.Last())

	h.Previous()
	h.SetEntries([]string{"x"})
	assert.Equal(t, 1, h.Cursor())
}
