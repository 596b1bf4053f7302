package render

import (
	"bufio"
	"io"
)

// Pre-allocated ANSI sequence fragments
var (
	csiReset = []byte("\x1b[0m")
	csiFgRGB = []byte("\x1b[38;2;") // followed by R;G;B;m
	csiBgRGB = []byte("\x1b[48;2;") // followed by R;G;B;m
	csiHome  = []byte("\x1b[H")
)

// writeInt writes a non-negative integer without allocation
// Optimized for color channel values (0-255)
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [20]byte
	i := len(buf) - 1
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}

func writeRGB(w *bufio.Writer, prefix []byte, c RGB) {
	w.Write(prefix)
	writeInt(w, int(c.R))
	w.WriteByte(';')
	writeInt(w, int(c.G))
	w.WriteByte(';')
	writeInt(w, int(c.B))
	w.WriteByte('m')
}

// ANSIOptions controls WriteANSI framing
type ANSIOptions struct {
	// Home moves the cursor to the top-left before the frame, for in-place animation
	Home bool
}

// WriteANSI writes row-major cells as 24-bit SGR text, one line per row
// Colors are re-emitted only when they change; each row ends with a reset
func WriteANSI(out io.Writer, cells []Cell, width, height int, opts ANSIOptions) error {
	if len(cells) < width*height {
		return io.ErrShortBuffer
	}

	w := bufio.NewWriterSize(out, 64*1024)
	if opts.Home {
		w.Write(csiHome)
	}

	for y := 0; y < height; y++ {
		var lastFg, lastBg RGB
		valid := false
		for x := 0; x < width; x++ {
			cell := cells[y*width+x]
			if !valid || cell.Fg != lastFg {
				writeRGB(w, csiFgRGB, cell.Fg)
				lastFg = cell.Fg
			}
			if !valid || cell.Bg != lastBg {
				writeRGB(w, csiBgRGB, cell.Bg)
				lastBg = cell.Bg
			}
			valid = true
			r := cell.Rune
			if r == 0 {
				r = ' '
			}
			w.WriteRune(r)
		}
		w.Write(csiReset)
		w.WriteByte('\n')
	}

	return w.Flush()
}
