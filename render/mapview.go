package render

import (
	"fmt"
	"math"

	"github.com/lixenwraith/echomaze/maze"
	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/session"
)

// MapView draws a top-down view of a session
// Surfaces are dark until a ping wave reaches them; the camera frustum adds a faint tint
type MapView struct {
	CellW int

	reveal []float64 // per grid cell, 0..1
	seen   []bool    // per grid cell, inside the camera frustum
	ox, oy int       // screen position of grid cell 0,0
}

func NewMapView() *MapView {
	return &MapView{CellW: parameter.ViewCellColumns}
}

// Draw renders s at clock time now into buf; the last row is left for the HUD
func (m *MapView) Draw(buf *Buffer, s *session.Session, now, aspect float64) {
	buf.Clear()
	if s == nil || s.Geometry == nil {
		return
	}
	geo := s.Geometry
	grid := geo.Grid
	cols, rows := grid.Cols(), grid.Height()
	m.resize(cols * rows)

	m.accumulateReveal(s, s.Elapsed(now))
	m.markFrustum(s, aspect)

	px, py := grid.WorldToCell(s.Controller.Position.X, s.Controller.Position.Z, geo.CellSize)
	m.ox = origin(buf.Width(), cols*m.CellW, px*m.CellW)
	m.oy = origin(buf.Height()-1, rows, py)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			m.fillCell(buf, x, y, m.cellColor(grid, x, y))
		}
	}

	m.drawItems(buf, s)
	m.glyph(buf, px, py, playerGlyph(s.Controller.Yaw), ColorPlayer)
}

// origin centers a span of n units in width, or centers on focus when it does not fit
func origin(width, n, focus int) int {
	if n <= width {
		return (width - n) / 2
	}
	return width/2 - focus
}

func (m *MapView) resize(n int) {
	if cap(m.reveal) < n {
		m.reveal = make([]float64, n)
		m.seen = make([]bool, n)
		return
	}
	m.reveal = m.reveal[:n]
	m.seen = m.seen[:n]
	clear(m.reveal)
	clear(m.seen)
}

// accumulateReveal spreads each recent ping as a growing, fading disc
func (m *MapView) accumulateReveal(s *session.Session, t float64) {
	grid := s.Geometry.Grid
	cs := s.Geometry.CellSize
	cols, rows := grid.Cols(), grid.Height()
	life := parameter.PingRevealDuration.Seconds()

	for i := 0; i < s.Pings.Count(); i++ {
		e, _ := s.Pings.At(i)
		age := t - e.Time
		if age < 0 || age > life {
			continue
		}
		radius := math.Min(age*parameter.VisualWaveSpeed, e.Strength*parameter.PingRevealCells*cs)
		fade := 1 - age/life

		x0, y0 := grid.WorldToCell(e.Pos.X-radius, e.Pos.Z-radius, cs)
		x1, y1 := grid.WorldToCell(e.Pos.X+radius, e.Pos.Z+radius, cs)
		for y := max(0, y0); y <= min(rows-1, y1); y++ {
			for x := max(0, x0); x <= min(cols-1, x1); x++ {
				wx, wz := grid.CellCenter(x, y, cs)
				if math.Hypot(wx-e.Pos.X, wz-e.Pos.Z) > radius+0.5*cs {
					continue
				}
				idx := y*cols + x
				m.reveal[idx] = math.Max(m.reveal[idx], fade)
			}
		}
	}
}

// markFrustum flags cells covered by walls the camera can see
// Wall instances lead the scene in geometry order
func (m *MapView) markFrustum(s *session.Session, aspect float64) {
	grid := s.Geometry.Grid
	cs := s.Geometry.CellSize
	cols, rows := grid.Cols(), grid.Height()
	walls := s.Geometry.Walls
	const eps = 1e-6

	for _, i := range s.Visible(aspect) {
		if int(i) >= len(walls) {
			continue
		}
		w := &walls[i]
		x0, y0 := grid.WorldToCell(w.MinX()+eps, w.MinZ()+eps, cs)
		x1, y1 := grid.WorldToCell(w.MaxX()-eps, w.MaxZ()-eps, cs)
		for y := max(0, y0); y <= min(rows-1, y1); y++ {
			for x := max(0, x0); x <= min(cols-1, x1); x++ {
				m.seen[y*cols+x] = true
			}
		}
	}
}

func (m *MapView) cellColor(grid maze.Grid, x, y int) RGB {
	idx := y*grid.Cols() + x
	base, seen, lit := ColorFloor, ColorFloorSeen, ColorFloorLit
	if grid.IsWall(x, y) {
		base, seen, lit = ColorWall, ColorWallSeen, ColorWallLit
	}
	c := base
	if m.seen[idx] {
		c = Lerp(c, seen, parameter.ViewFrustumTint)
	}
	return Lerp(c, lit, m.reveal[idx])
}

func (m *MapView) fillCell(buf *Buffer, x, y int, bg RGB) {
	sx, sy := m.ox+x*m.CellW, m.oy+y
	for i := 0; i < m.CellW; i++ {
		buf.SetBgOnly(sx+i, sy, bg)
	}
}

func (m *MapView) glyph(buf *Buffer, x, y int, r rune, fg RGB) {
	buf.Set(m.ox+x*m.CellW, m.oy+y, r, fg, RGB{}, BlendFgOnly, 1)
}

func (m *MapView) revealed(grid maze.Grid, p maze.Point) bool {
	if p.X < 0 || p.Y < 0 || p.X >= grid.Cols() || p.Y >= grid.Height() {
		return false
	}
	return m.reveal[p.Y*grid.Cols()+p.X] > 0
}

// drawItems places key, beacons and door; lit beacons always show
func (m *MapView) drawItems(buf *Buffer, s *session.Session) {
	grid := s.Geometry.Grid
	rt := s.Runtime

	if k := s.Level.Key; k != nil && !rt.KeyCollected && m.revealed(grid, k.Cell) {
		m.glyph(buf, k.Cell.X, k.Cell.Y, 'k', ColorKey)
	}
	for i, b := range s.Level.Beacons {
		switch {
		case rt.Activated[i]:
			m.glyph(buf, b.Cell.X, b.Cell.Y, '*', ColorBeaconLit)
		case m.revealed(grid, b.Cell):
			m.glyph(buf, b.Cell.X, b.Cell.Y, 'o', ColorBeaconDark)
		}
	}
	if d := s.Geometry.ExitCell; m.revealed(grid, d) {
		c := ColorDoor
		if rt.CanExit() {
			c = ColorDoorOpen
		}
		m.glyph(buf, d.X, d.Y, 'D', c)
	}
}

// playerGlyph picks an arrow for a yaw; yaw 0 faces -Z, drawn upward
func playerGlyph(yaw float64) rune {
	sector := int(math.Round(yaw/(math.Pi/4))) & 7
	return [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}[sector]
}

// HUD returns the one-line status for s at clock time now
func HUD(s *session.Session, now float64) string {
	if s == nil || s.Level == nil {
		return ""
	}
	rt := s.Runtime
	spec := s.Level.Spec
	pings := "∞"
	if left := rt.PingsLeft(); left >= 0 {
		pings = fmt.Sprintf("%d", left)
	}
	line := fmt.Sprintf("L%d %s | pings %s | charge %d/%d", spec.ID, spec.Name, pings, rt.Recharge.Charges, rt.Recharge.Max)
	if n := len(s.Level.Beacons); n > 0 {
		line += fmt.Sprintf(" | beacons %d/%d", rt.LitCount(), n)
	}
	if s.Level.RequiresKey {
		key := "no"
		if rt.KeyCollected {
			key = "yes"
		}
		line += " | key " + key
	}
	if left := rt.TimeLeft(s.Elapsed(now)); left >= 0 {
		line += fmt.Sprintf(" | %.0fs", math.Ceil(left))
	}
	return line
}

// DrawHUD writes the status line on the last row
func DrawHUD(buf *Buffer, s *session.Session, now float64) {
	y := buf.Height() - 1
	for x := 0; x < buf.Width(); x++ {
		buf.SetBgOnly(x, y, ColorBackground)
	}
	buf.Text(0, y, HUD(s, now), ColorTextDim)
}

// Banner centers msg on the middle row over a solid strip
func Banner(buf *Buffer, msg string, fg RGB) {
	n := len([]rune(msg)) + 2
	x0 := (buf.Width() - n) / 2
	y := buf.Height() / 2
	for x := x0; x < x0+n; x++ {
		buf.SetWithBg(x, y, ' ', fg, ColorBackground)
	}
	buf.Text(x0+1, y, msg, fg)
}
