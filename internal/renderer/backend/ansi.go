package backend

import (
	"bufio"
	"io"
	"strconv"
	"sync"

	"github.com/dshills/mandelterm/internal/renderer/core"
)

// Stream is a Backend that writes frames as ANSI-colored text lines.
// It is used when output is not a terminal, e.g. piped to a file.
// Each Show writes every row of the surface followed by a style reset
// and a newline; there is no cursor addressing.
type Stream struct {
	mu     sync.Mutex
	w      *bufio.Writer
	buf    *frame
	events chan Event
	err    error
}

// NewStream creates a stream backend of the given size writing to w.
func NewStream(w io.Writer, width, height int) *Stream {
	return &Stream{
		w:      bufio.NewWriter(w),
		buf:    newFrame(width, height),
		events: make(chan Event, 16),
	}
}

func (s *Stream) Init() error { return nil }

// Shutdown flushes any pending output.
func (s *Stream) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flush()
}

func (s *Stream) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.width, s.buf.height
}

// OnResize is a no-op: a stream never changes size.
func (s *Stream) OnResize(func(width, height int)) {}

func (s *Stream) SetCell(x, y int, cell core.Cell) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.set(x, y, cell)
}

func (s *Stream) GetCell(x, y int) core.Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.get(x, y)
}

func (s *Stream) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.clear()
}

// Show writes the whole surface.
func (s *Stream) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.buf.rows {
		last := core.DefaultStyle()
		for _, cell := range row {
			if !cell.Style.Equals(last) {
				s.writeStyle(cell.Style)
				last = cell.Style
			}
			s.write(string(cell.Rune))
		}
		if !last.IsDefault() {
			s.write("\x1b[0m")
		}
		s.write("\n")
	}
	s.flush()
}

func (s *Stream) PollEvent() Event {
	return <-s.events
}

func (s *Stream) PostEvent(event Event) {
	select {
	case s.events <- event:
	default:
	}
}

// Err returns the first write error, if any.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Stream) write(str string) {
	if s.err != nil {
		return
	}
	_, s.err = s.w.WriteString(str)
}

func (s *Stream) flush() {
	if s.err != nil {
		return
	}
	s.err = s.w.Flush()
}

// writeStyle emits a full SGR sequence for the style.
func (s *Stream) writeStyle(style core.Style) {
	seq := "\x1b[0"
	if !style.Foreground.IsDefault() {
		seq += ";" + sgrColor(style.Foreground, false)
	}
	if !style.Background.IsDefault() {
		seq += ";" + sgrColor(style.Background, true)
	}
	s.write(seq + "m")
}

// sgrColor returns the SGR parameters selecting c.
func sgrColor(c core.Color, background bool) string {
	base, bright, extended := 30, 90, "38"
	if background {
		base, bright, extended = 40, 100, "48"
	}

	if c.Indexed {
		switch {
		case c.R < 8:
			return strconv.Itoa(base + int(c.R))
		case c.R < 16:
			return strconv.Itoa(bright + int(c.R) - 8)
		default:
			return extended + ";5;" + strconv.Itoa(int(c.R))
		}
	}
	return extended + ";2;" + strconv.Itoa(int(c.R)) + ";" +
		strconv.Itoa(int(c.G)) + ";" + strconv.Itoa(int(c.B))
}
