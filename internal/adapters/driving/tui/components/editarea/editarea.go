// Package editarea provides the multi-line text control of the editor view.
//
// The area only tracks text, caret and selection the way a host text
// control does. Every edit is reported back so the view can hand the new
// buffer to the edit session.
package editarea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/revisify/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/revisify/internal/core/domain"
)

// tabWidth is how many cells a tab occupies on screen.
const tabWidth = 4

// Area is an editable text region with a caret and a selection.
// The selection runs from anchor to head; head is where the caret is drawn.
type Area struct {
	styles *styles.Styles
	runes  []rune
	anchor int
	head   int

	width   int
	height  int
	offset  int
	focused bool
}

// New creates an empty, focused area.
func New(s *styles.Styles) *Area {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Area{
		styles:  s,
		width:   80,
		height:  10,
		focused: true,
	}
}

// SetBuffer replaces the text and selection. The selection direction is kept
// when the range is unchanged.
func (a *Area) SetBuffer(b domain.Buffer) {
	b = b.Normalize()
	a.runes = []rune(b.Text)

	cur := a.selection()
	if cur == b.Selection {
		return
	}
	a.anchor = b.Selection.Start
	a.head = b.Selection.End
}

// Buffer returns the text and the normalised selection.
func (a *Area) Buffer() domain.Buffer {
	return domain.Buffer{Text: string(a.runes), Selection: a.selection()}
}

// SelectAll selects the whole text with the caret at the end.
func (a *Area) SelectAll() {
	a.anchor = 0
	a.head = len(a.runes)
}

// SetSize sets the visible size in cells.
func (a *Area) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	a.width = width
	a.height = height
}

// Focus shows the caret.
func (a *Area) Focus() {
	a.focused = true
}

// Blur hides the caret.
func (a *Area) Blur() {
	a.focused = false
}

// HandleKey applies a key press. It reports whether the text changed and
// whether the key was consumed at all.
//
//nolint:gocyclo // one case per key type
func (a *Area) HandleKey(msg tea.KeyMsg) (edited, handled bool) {
	if msg.Alt {
		return false, false
	}

	switch msg.Type {
	case tea.KeyRunes:
		a.insert(string(msg.Runes))
		return true, true
	case tea.KeySpace:
		a.insert(" ")
		return true, true
	case tea.KeyEnter:
		a.insert("\n")
		return true, true
	case tea.KeyTab:
		a.insert("\t")
		return true, true
	case tea.KeyBackspace:
		return a.deleteBackward(), true
	case tea.KeyDelete:
		return a.deleteForward(), true
	case tea.KeyLeft, tea.KeyShiftLeft:
		a.moveTo(max(0, a.head-1), msg.Type == tea.KeyShiftLeft)
	case tea.KeyRight, tea.KeyShiftRight:
		a.moveTo(min(len(a.runes), a.head+1), msg.Type == tea.KeyShiftRight)
	case tea.KeyUp, tea.KeyShiftUp:
		a.moveTo(a.lineAbove(a.head), msg.Type == tea.KeyShiftUp)
	case tea.KeyDown, tea.KeyShiftDown:
		a.moveTo(a.lineBelow(a.head), msg.Type == tea.KeyShiftDown)
	case tea.KeyHome, tea.KeyShiftHome:
		a.moveTo(a.lineStart(a.head), msg.Type == tea.KeyShiftHome)
	case tea.KeyEnd, tea.KeyShiftEnd:
		a.moveTo(a.lineEnd(a.head), msg.Type == tea.KeyShiftEnd)
	case tea.KeyCtrlHome:
		a.moveTo(0, false)
	case tea.KeyCtrlEnd:
		a.moveTo(len(a.runes), false)
	default:
		return false, false
	}
	return false, true
}

func (a *Area) selection() domain.Selection {
	return domain.Selection{Start: min(a.anchor, a.head), End: max(a.anchor, a.head)}
}

// insert replaces the selection with s and leaves the caret after it.
func (a *Area) insert(s string) {
	sel := a.selection()
	ins := []rune(s)

	next := make([]rune, 0, len(a.runes)-sel.Len()+len(ins))
	next = append(next, a.runes[:sel.Start]...)
	next = append(next, ins...)
	next = append(next, a.runes[sel.End:]...)

	a.runes = next
	a.anchor = sel.Start + len(ins)
	a.head = a.anchor
}

func (a *Area) deleteBackward() bool {
	if !a.selection().IsEmpty() {
		a.insert("")
		return true
	}
	if a.head == 0 {
		return false
	}
	a.anchor = a.head - 1
	a.insert("")
	return true
}

func (a *Area) deleteForward() bool {
	if !a.selection().IsEmpty() {
		a.insert("")
		return true
	}
	if a.head == len(a.runes) {
		return false
	}
	a.anchor = a.head + 1
	a.insert("")
	return true
}

// moveTo moves the caret, extending the selection when extend is set.
func (a *Area) moveTo(pos int, extend bool) {
	if !extend && !a.selection().IsEmpty() {
		// Collapsing a selection with an arrow keeps the caret where it is.
		sel := a.selection()
		switch {
		case pos < a.head:
			pos = min(pos, sel.Start)
		case pos > a.head:
			pos = max(pos, sel.End)
		}
	}
	a.head = pos
	if !extend {
		a.anchor = pos
	}
}

func (a *Area) lineStart(pos int) int {
	for pos > 0 && a.runes[pos-1] != '\n' {
		pos--
	}
	return pos
}

func (a *Area) lineEnd(pos int) int {
	for pos < len(a.runes) && a.runes[pos] != '\n' {
		pos++
	}
	return pos
}

func (a *Area) lineAbove(pos int) int {
	start := a.lineStart(pos)
	if start == 0 {
		return 0
	}
	col := pos - start
	prevStart := a.lineStart(start - 1)
	return min(prevStart+col, start-1)
}

func (a *Area) lineBelow(pos int) int {
	end := a.lineEnd(pos)
	if end == len(a.runes) {
		return end
	}
	col := pos - a.lineStart(pos)
	nextStart := end + 1
	return min(nextStart+col, a.lineEnd(nextStart))
}

// row is one screen line: runes [start, end) of a logical line ending at lineEnd.
type row struct {
	start   int
	end     int
	lineEnd int
}

// layout splits the text into screen rows, wrapping at the area width.
func (a *Area) layout() []row {
	var rows []row
	start := 0
	for {
		end := a.lineEnd(start)
		if end == start {
			rows = append(rows, row{start: start, end: end, lineEnd: end})
		}
		for s := start; s < end; s += a.width {
			rows = append(rows, row{start: s, end: min(s+a.width, end), lineEnd: end})
		}
		if end == len(a.runes) {
			return rows
		}
		start = end + 1
	}
}

// caretRow returns the index of the row the caret is drawn on.
func caretRow(rows []row, head int) int {
	for i := len(rows) - 1; i >= 0; i-- {
		r := rows[i]
		if r.start <= head && (head < r.end || head == r.lineEnd) {
			return i
		}
	}
	return 0
}

// View renders the visible rows with the caret and selection.
func (a *Area) View() string {
	rows := a.layout()
	cr := caretRow(rows, a.head)

	if cr < a.offset {
		a.offset = cr
	}
	if cr >= a.offset+a.height {
		a.offset = cr - a.height + 1
	}
	a.offset = max(0, min(a.offset, len(rows)-1))

	last := min(len(rows), a.offset+a.height)
	lines := make([]string, 0, last-a.offset)
	for i := a.offset; i < last; i++ {
		lines = append(lines, a.renderRow(rows[i], i == cr))
	}
	return strings.Join(lines, "\n")
}

func (a *Area) renderRow(r row, hasCaret bool) string {
	sel := a.selection()

	var sb, plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			sb.WriteString(plain.String())
			plain.Reset()
		}
	}

	for i := r.start; i < r.end; i++ {
		cell := display(a.runes[i])
		switch {
		case hasCaret && a.focused && i == a.head:
			flush()
			sb.WriteString(a.styles.Cursor.Render(cell))
		case i >= sel.Start && i < sel.End:
			flush()
			sb.WriteString(a.styles.Selection.Render(cell))
		default:
			plain.WriteString(cell)
		}
	}
	flush()

	if hasCaret && a.focused && a.head == r.end {
		sb.WriteString(a.styles.Cursor.Render(" "))
	}
	return sb.String()
}

func display(r rune) string {
	if r == '\t' {
		return strings.Repeat(" ", tabWidth)
	}
	return string(r)
}
