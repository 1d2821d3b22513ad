// Package draw renders the playfield to ANSI terminals.
package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// maxChunkSize keeps single writes near a network MTU for smooth SSH output.
const maxChunkSize = 1400

// ChunkWriter accumulates a whole frame of terminal output and writes it in
// MTU-sized chunks on Flush. Positions passed to it are 1-based and relative
// to the render area; the offset is applied automatically.
type ChunkWriter struct {
	buf    strings.Builder
	out    *bufio.Writer
	numBuf [20]byte
	offCol int
	offRow int
}

var _ io.Writer = (*ChunkWriter)(nil)

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the render area offset.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor appends a cursor position sequence.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// Write appends raw bytes.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.buf.Write(p)
}

// WriteString appends a string.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// WriteAt writes s starting at (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(s)
}

// WriteColorAt writes s at (col, row) in the given color.
func (cw *ChunkWriter) WriteColorAt(col, row int, c Color, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(c.fg())
	cw.buf.WriteString(s)
	cw.buf.WriteString(resetColor)
}

// WriteCentered writes s horizontally centered on col and returns the column
// it started at.
func (cw *ChunkWriter) WriteCentered(col, row int, s string) int {
	start := max(col-utf8.RuneCountInString(s)/2, 1)
	cw.WriteAt(start, row, s)
	return start
}

// Len returns the number of buffered bytes.
func (cw *ChunkWriter) Len() int {
	return cw.buf.Len()
}

// Flush writes the buffered frame in chunks and resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.out.WriteString(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return cw.out.Flush()
}

// TermSizeFunc returns the terminal dimensions in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the process's own terminal.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and homes the cursor.
func ClearScreen(w io.Writer) {
	io.WriteString(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	io.WriteString(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	io.WriteString(w, "\033[?25h"+resetColor)
}

// FitArea clamps the terminal to the maximum render size and centers the
// render area inside it.
func FitArea(termWidth, termHeight, maxWidth, maxHeight int) (width, height, offsetCol, offsetRow int) {
	width = min(termWidth, maxWidth)
	height = min(termHeight, maxHeight)
	offsetCol = (termWidth - width) / 2
	offsetRow = (termHeight - height) / 2
	return
}
