package sixel

import (
	"io"
	"strconv"

	"github.com/go-sixel/sixelenc/quantize"
	"github.com/go-sixel/sixelenc/raster"
)

const esc = 0x1B

// streamWriter accumulates the first write error and ignores subsequent
// calls, so emit's call sites don't need an if err != nil after every write.
type streamWriter struct {
	w   io.Writer
	err error
}

func (s *streamWriter) writeByte(b byte) {
	if s.err != nil {
		return
	}
	_, s.err = s.w.Write([]byte{b})
}

func (s *streamWriter) writeString(str string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, str)
}

func percentOf255(v uint8) int {
	return int(v) * 100 / 255
}

// emitStream writes the full SIXEL byte stream for r, quantized and indexed
// by q, per §4.6. r's pixels are read through q.IndexOf band by band; r may
// already be the dithered working copy.
func emitStream(w io.Writer, r *raster.Raster, q quantize.Quantizer, opts Options) error {
	sw := &streamWriter{w: w}
	width, height := r.Width(), r.Height()

	sw.writeByte(esc)
	sw.writeString("Pq\"")
	sw.writeString("1;1;")
	sw.writeString(strconv.Itoa(width))
	sw.writeByte(';')
	sw.writeString(strconv.Itoa(height))
	if opts.Debug {
		sw.writeByte('\n')
	}

	for i, c := range q.Palette() {
		sw.writeByte('#')
		sw.writeString(strconv.Itoa(i))
		sw.writeString(";2;")
		sw.writeString(strconv.Itoa(percentOf255(c.R)))
		sw.writeByte(';')
		sw.writeString(strconv.Itoa(percentOf255(c.G)))
		sw.writeByte(';')
		sw.writeString(strconv.Itoa(percentOf255(c.B)))
	}
	if opts.Debug {
		sw.writeByte('\n')
	}

	for startRow := 0; startRow < height; startRow += bandHeight {
		bh := bandHeight
		if startRow+bh > height {
			bh = height - startRow
		}
		groups := packBand(r, q, startRow, bh)
		for gi, g := range groups {
			if gi > 0 {
				sw.writeByte('$')
				if opts.Debug {
					sw.writeByte('\n')
				}
			}
			sw.writeByte('#')
			sw.writeString(strconv.Itoa(g.id))
			for _, rn := range g.runs {
				ch := byte(rn.sixel) + 63
				if rn.count == 1 {
					sw.writeByte(ch)
				} else {
					sw.writeByte('!')
					sw.writeString(strconv.Itoa(rn.count))
					sw.writeByte(ch)
				}
			}
		}
		sw.writeByte('-')
		if opts.Debug {
			sw.writeByte('\n')
		}
	}

	sw.writeByte(esc)
	sw.writeByte('\\')

	return sw.err
}
