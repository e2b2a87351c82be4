package cli

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
)

// Renderer draws the tail of the console buffer into the window on the
// actual CLI terminal
type Renderer struct {
	term *Terminal
	mu   sync.Mutex

	renderNeeded bool
	lastRows     []string // Previous frame for differential rendering
	renderTicker *time.Ticker

	// Output buffer for batching writes
	output strings.Builder

	borderChars borderCharSet
}

// borderCharSet contains the characters for drawing borders
type borderCharSet struct {
	topLeft     rune
	topRight    rune
	bottomLeft  rune
	bottomRight rune
	horizontal  rune
	vertical    rune
	titleLeft   rune
	titleRight  rune
}

var borderStyles = map[BorderStyle]borderCharSet{
	BorderSingle: {
		topLeft: '┌', topRight: '┐', bottomLeft: '└', bottomRight: '┘',
		horizontal: '─', vertical: '│', titleLeft: '┤', titleRight: '├',
	},
	BorderDouble: {
		topLeft: '╔', topRight: '╗', bottomLeft: '╚', bottomRight: '╝',
		horizontal: '═', vertical: '║', titleLeft: '╡', titleRight: '╞',
	},
	BorderHeavy: {
		topLeft: '┏', topRight: '┓', bottomLeft: '┗', bottomRight: '┛',
		horizontal: '━', vertical: '┃', titleLeft: '┫', titleRight: '┣',
	},
	BorderRounded: {
		topLeft: '╭', topRight: '╮', bottomLeft: '╰', bottomRight: '╯',
		horizontal: '─', vertical: '│', titleLeft: '┤', titleRight: '├',
	},
}

// NewRenderer creates a new renderer for the terminal
func NewRenderer(term *Terminal) *Renderer {
	r := &Renderer{
		term:         term,
		renderNeeded: true,
	}
	if term.options.BorderStyle != BorderNone {
		r.borderChars = borderStyles[term.options.BorderStyle]
	}
	return r
}

// RequestRender marks that a render is needed
func (r *Renderer) RequestRender() {
	r.mu.Lock()
	r.renderNeeded = true
	r.mu.Unlock()
}

// ForceFullRedraw clears the cached frame and requests a render
func (r *Renderer) ForceFullRedraw() {
	r.mu.Lock()
	r.lastRows = nil
	r.renderNeeded = true
	r.mu.Unlock()
}

// RenderLoop repaints at most every 16ms, and only when needed
func (r *Renderer) RenderLoop() {
	r.renderTicker = time.NewTicker(16 * time.Millisecond)
	defer r.renderTicker.Stop()

	for {
		select {
		case <-r.renderTicker.C:
			r.mu.Lock()
			needsRender := r.renderNeeded
			r.renderNeeded = false
			r.mu.Unlock()

			if needsRender {
				r.Render()
			}
		case <-r.term.stopRender:
			return
		}
	}
}

// lineSpan is one screen row of buffer text: runes [start, end)
type lineSpan struct {
	start, end int
}

// cellWidth returns the number of columns r occupies when drawn at col
func cellWidth(r rune, col, tabSize int) int {
	switch {
	case r == '\t':
		return tabSize - col%tabSize
	case r < ' ' || r == 0x7f:
		return 0
	}
	return runewidth.RuneWidth(r)
}

// wrapText splits text into screen rows of at most cols columns. Line feeds
// end a row and are not part of any span.
func wrapText(text []rune, cols, tabSize int) []lineSpan {
	if cols < 1 {
		cols = 1
	}
	var spans []lineSpan
	start, col := 0, 0
	for i, r := range text {
		if r == '\n' {
			spans = append(spans, lineSpan{start, i})
			start, col = i+1, 0
			continue
		}
		w := cellWidth(r, col, tabSize)
		if col+w > cols && col > 0 {
			spans = append(spans, lineSpan{start, i})
			start, col = i, 0
			w = cellWidth(r, 0, tabSize)
		}
		col += w
	}
	return append(spans, lineSpan{start, len(text)})
}

// caretCell returns the row and column where the caret is drawn
func caretCell(text []rune, spans []lineSpan, caret, tabSize int) (row, col int) {
	for i := len(spans) - 1; i >= 0; i-- {
		if spans[i].start <= caret {
			row = i
			break
		}
	}
	end := caret
	if end > spans[row].end {
		end = spans[row].end
	}
	for _, r := range text[spans[row].start:end] {
		col += cellWidth(r, col, tabSize)
	}
	return row, col
}

// visibleRows returns the index of the first span to show so that the
// window ends with the buffer tail, unless that would hide the caret
func visibleRows(spanCount, rows, caretRow int) int {
	first := spanCount - rows
	if caretRow < first {
		first = caretRow
	}
	if first < 0 {
		first = 0
	}
	return first
}

// Render repaints the rows that changed since the last frame
func (r *Renderer) Render() {
	r.term.mu.Lock()
	opts := r.term.options
	r.term.mu.Unlock()

	r.mu.Lock()
	prevRows := r.lastRows
	r.mu.Unlock()

	cols, rows := opts.Cols, opts.Rows
	tabSize := opts.Console.TabSize
	text, caret, selStart, selEnd := r.term.buffer.Snapshot()
	spans := wrapText(text, cols, tabSize)
	caretRow, caretCol := caretCell(text, spans, caret, tabSize)
	first := visibleRows(len(spans), rows, caretRow)

	startX, startY := opts.OffsetX, opts.OffsetY
	contentX, contentY := startX, startY
	if opts.BorderStyle != BorderNone {
		contentX++
		contentY++
	}

	r.output.Reset()
	r.output.WriteString("\033[?25l")

	if opts.BorderStyle != BorderNone {
		r.renderBorder(startX, startY, cols, rows, opts.Console.Title, first > 0)
	}

	base := "\033[0;" + opts.Console.FontColor.ToSGRCode(true) + ";" +
		opts.Console.BackgroundColor.ToSGRCode(false) + "m"
	full := prevRows == nil || len(prevRows) != rows
	newRows := make([]string, rows)
	for y := 0; y < rows; y++ {
		var line string
		if idx := first + y; idx < len(spans) {
			line = renderSpan(text, spans[idx], cols, tabSize, selStart, selEnd, base)
		} else {
			line = base + strings.Repeat(" ", cols)
		}
		newRows[y] = line
		if !full && prevRows[y] == line {
			continue
		}
		fmt.Fprintf(&r.output, "\033[%d;%dH", contentY+y+1, contentX+1)
		r.output.WriteString(line)
	}

	if opts.ShowStatusBar {
		line, col, _ := r.term.buffer.LineCol(caret)
		r.renderStatusBar(startX, contentY+rows, cols, line, col)
	}

	r.output.WriteString("\033[0m")

	if row := caretRow - first; row >= 0 && row < rows {
		if caretCol >= cols {
			caretCol = cols - 1
		}
		fmt.Fprintf(&r.output, "\033[%d;%dH\033[?25h", contentY+row+1, contentX+caretCol+1)
	}

	r.term.options.Out.Write([]byte(r.output.String()))
	r.term.buffer.ClearDirty()

	r.mu.Lock()
	r.lastRows = newRows
	r.mu.Unlock()
}

// renderSpan draws one row padded to cols, with the selection in reverse
// video
func renderSpan(text []rune, span lineSpan, cols, tabSize, selStart, selEnd int, base string) string {
	var sb strings.Builder
	sb.WriteString(base)
	col := 0
	reversed := false
	for i := span.start; i < span.end; i++ {
		inSel := i >= selStart && i < selEnd
		if inSel != reversed {
			if inSel {
				sb.WriteString("\033[7m")
			} else {
				sb.WriteString("\033[27m")
			}
			reversed = inSel
		}
		ch := text[i]
		w := cellWidth(ch, col, tabSize)
		switch {
		case ch == '\t':
			sb.WriteString(strings.Repeat(" ", w))
		case w > 0:
			sb.WriteRune(ch)
		case col > 0 && ch >= ' ':
			// Zero-width combining mark joins the previous cell
			sb.WriteRune(ch)
		}
		col += w
	}
	if reversed {
		sb.WriteString("\033[27m")
	}
	if col < cols {
		sb.WriteString(strings.Repeat(" ", cols-col))
	}
	return sb.String()
}

// renderBorder draws the window border. scrolled marks the right edge when
// the start of the buffer is out of view.
func (r *Renderer) renderBorder(x, y, innerCols, innerRows int, title string, scrolled bool) {
	bc := r.borderChars

	fmt.Fprintf(&r.output, "\033[%d;%dH\033[0m", y+1, x+1)
	r.output.WriteRune(bc.topLeft)

	titleWidth := runewidth.StringWidth(title)
	if title != "" && titleWidth < innerCols-4 {
		padding := (innerCols - titleWidth - 4) / 2
		r.output.WriteString(strings.Repeat(string(bc.horizontal), padding))
		r.output.WriteRune(bc.titleLeft)
		r.output.WriteString(" " + title + " ")
		r.output.WriteRune(bc.titleRight)
		r.output.WriteString(strings.Repeat(string(bc.horizontal), innerCols-padding-titleWidth-4))
	} else {
		r.output.WriteString(strings.Repeat(string(bc.horizontal), innerCols))
	}
	r.output.WriteRune(bc.topRight)

	for row := 0; row < innerRows; row++ {
		fmt.Fprintf(&r.output, "\033[%d;%dH", y+row+2, x+1)
		r.output.WriteRune(bc.vertical)
		fmt.Fprintf(&r.output, "\033[%d;%dH", y+row+2, x+innerCols+2)
		if scrolled && row == 0 {
			r.output.WriteString("\033[7m")
			r.output.WriteRune(bc.vertical)
			r.output.WriteString("\033[27m")
		} else {
			r.output.WriteRune(bc.vertical)
		}
	}

	fmt.Fprintf(&r.output, "\033[%d;%dH", y+innerRows+2, x+1)
	r.output.WriteRune(bc.bottomLeft)
	r.output.WriteString(strings.Repeat(string(bc.horizontal), innerCols))
	r.output.WriteRune(bc.bottomRight)
}

// renderStatusBar draws the caret position, history size and input backlog
func (r *Renderer) renderStatusBar(x, y, width, line, col int) {
	fmt.Fprintf(&r.output, "\033[%d;%dH\033[0;7m", y+1, x+1)

	c := r.term.console
	status := fmt.Sprintf(" Ln %d, Col %d | History: %d | Pending: %d | Ctrl+Q quits ",
		line+1, col+1, len(c.History()), c.Bridge().Pending())
	status = runewidth.Truncate(status, width, "")
	status = runewidth.FillRight(status, width)
	r.output.WriteString(status)
	r.output.WriteString("\033[0m")
}
