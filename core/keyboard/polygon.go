package keyboard

import "sort"

// Point is a vertex in viewport coordinates.
type Point struct{ X, Y float64 }

// Rect is an axis-aligned rectangle, Min inclusive and Max exclusive.
type Rect struct{ MinX, MinY, MaxX, MaxY float64 }

func (r Rect) Dx() float64 { return r.MaxX - r.MinX }
func (r Rect) Dy() float64 { return r.MaxY - r.MinY }

// Polygon is a closed outline; the last vertex connects back to the first.
type Polygon []Point

// Translate returns a copy of p moved by (dx, dy).
func (p Polygon) Translate(dx, dy float64) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = Point{v.X + dx, v.Y + dy}
	}
	return out
}

// Bounds returns the bounding box of p.
func (p Polygon) Bounds() Rect {
	if len(p) == 0 {
		return Rect{}
	}
	r := Rect{p[0].X, p[0].Y, p[0].X, p[0].Y}
	for _, v := range p[1:] {
		if v.X < r.MinX {
			r.MinX = v.X
		}
		if v.X > r.MaxX {
			r.MaxX = v.X
		}
		if v.Y < r.MinY {
			r.MinY = v.Y
		}
		if v.Y > r.MaxY {
			r.MaxY = v.Y
		}
	}
	return r
}

// Contains uses the even-odd crossing rule. Points on a left or top edge are
// inside, points on a right or bottom edge are not, so keys that share an
// edge never both claim a point.
func (p Polygon) Contains(x, y float64) bool {
	in := false
	n := len(p)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p[i], p[j]
		if (a.Y > y) == (b.Y > y) {
			continue
		}
		xc := (b.X-a.X)*(y-a.Y)/(b.Y-a.Y) + a.X
		if x < xc {
			in = !in
		}
	}
	return in
}

// Bands decomposes a rectilinear polygon into horizontal strips of
// rectangles, top to bottom.
func (p Polygon) Bands() []Rect {
	ys := make([]float64, 0, len(p))
	seen := map[float64]bool{}
	for _, v := range p {
		if !seen[v.Y] {
			seen[v.Y] = true
			ys = append(ys, v.Y)
		}
	}
	sort.Float64s(ys)

	var out []Rect
	n := len(p)
	for k := 0; k+1 < len(ys); k++ {
		y0, y1 := ys[k], ys[k+1]
		mid := (y0 + y1) / 2
		var xs []float64
		for i, j := 0, n-1; i < n; j, i = i, i+1 {
			a, b := p[i], p[j]
			if (a.Y > mid) != (b.Y > mid) {
				xs = append(xs, (b.X-a.X)*(mid-a.Y)/(b.Y-a.Y)+a.X)
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			out = append(out, Rect{xs[i], y0, xs[i+1], y1})
		}
	}
	return out
}

// Area is the enclosed area (shoelace formula).
func (p Polygon) Area() float64 {
	var s float64
	n := len(p)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		s += p[j].X*p[i].Y - p[i].X*p[j].Y
	}
	if s < 0 {
		s = -s
	}
	return s / 2
}
