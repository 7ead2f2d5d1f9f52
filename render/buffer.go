package render

// Cell is one character cell of the frame
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
}

// Buffer is a fixed-size cell compositor shared by the terminal and window frontends
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	width, height = max(0, width), max(0, height)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to blank background using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Fg: ColorText, Bg: ColorBackground}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the cell at x,y; out of bounds yields a zero cell
func (b *Buffer) At(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Set composites a cell with the given blend mode; a zero rune keeps the existing glyph
func (b *Buffer) Set(x, y int, r rune, fg, bg RGB, mode BlendMode, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	op := uint8(mode) & 0x0F
	flags := uint8(mode) & 0xF0

	if r != 0 {
		dst.Rune = r
	}
	if flags&flagBg != 0 {
		dst.Bg = apply(op, dst.Bg, bg, alpha)
	}
	if flags&flagFg != 0 {
		dst.Fg = apply(op, dst.Fg, fg, alpha)
	}
}

// SetWithBg writes an opaque cell
func (b *Buffer) SetWithBg(x, y int, r rune, fg, bg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = Cell{Rune: r, Fg: fg, Bg: bg}
}

// SetBgOnly updates the background while preserving rune and foreground
func (b *Buffer) SetBgOnly(x, y int, bg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x].Bg = bg
}

// Text writes s left to right starting at x,y keeping the background
func (b *Buffer) Text(x, y int, s string, fg RGB) {
	for _, r := range s {
		if b.inBounds(x, y) {
			c := &b.cells[y*b.width+x]
			c.Rune = r
			c.Fg = fg
		}
		x++
	}
}

// WriteRGBA rasterizes the buffer into dst as cellW x cellH pixel blocks
// Cells with a glyph get a centered foreground block; dst must hold width*cellW*height*cellH*4 bytes
func (b *Buffer) WriteRGBA(dst []byte, cellW, cellH int) {
	stride := b.width * cellW * 4
	if cellW <= 0 || cellH <= 0 || len(dst) < stride*b.height*cellH {
		return
	}
	padX, padY := cellW/4, cellH/4
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.cells[y*b.width+x]
			glyph := c.Rune != ' ' && c.Rune != 0
			for py := 0; py < cellH; py++ {
				row := (y*cellH+py)*stride + x*cellW*4
				for px := 0; px < cellW; px++ {
					col := c.Bg
					if glyph && px >= padX && px < cellW-padX && py >= padY && py < cellH-padY {
						col = c.Fg
					}
					i := row + px*4
					dst[i] = col.R
					dst[i+1] = col.G
					dst[i+2] = col.B
					dst[i+3] = 255
				}
			}
		}
	}
}
