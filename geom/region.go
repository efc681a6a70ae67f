package geom

import "fmt"

// Point is an integer position in 3D space.
type Point struct {
	X int64
	Y int64
	Z int64
}

func (p Point) Min(o Point) Point {
	return Point{min(p.X, o.X), min(p.Y, o.Y), min(p.Z, o.Z)}
}

func (p Point) Max(o Point) Point {
	return Point{max(p.X, o.X), max(p.Y, o.Y), max(p.Z, o.Z)}
}

// Region is an axis-aligned box with inclusive integer bounds. A region with
// any inverted axis is empty (volume 0); all empty regions are equal and
// behave as no-ops through every operation.
type Region struct {
	Min Point
	Max Point
}

// NewRegion returns the region spanning [min, max] on each axis.
func NewRegion(min, max Point) Region {
	return Region{Min: min, Max: max}
}

// Cube returns the region spanning [lo, hi] on every axis.
func Cube(lo, hi int64) Region {
	return Region{
		Min: Point{lo, lo, lo},
		Max: Point{hi, hi, hi},
	}
}

func (r Region) Width() int64 {
	return max(r.Max.X-r.Min.X+1, 0)
}

func (r Region) Height() int64 {
	return max(r.Max.Y-r.Min.Y+1, 0)
}

func (r Region) Depth() int64 {
	return max(r.Max.Z-r.Min.Z+1, 0)
}

// Volume is the number of unit cells covered by the region.
func (r Region) Volume() int64 {
	return r.Width() * r.Height() * r.Depth()
}

func (r Region) Empty() bool {
	return r.Max.X < r.Min.X || r.Max.Y < r.Min.Y || r.Max.Z < r.Min.Z
}

// IsPoint reports whether the region covers exactly one cell.
func (r Region) IsPoint() bool {
	return r.Min == r.Max
}

// Equal reports whether both regions cover the same cells. Empty regions are
// interchangeable regardless of their corners.
func (r Region) Equal(o Region) bool {
	if r.Empty() || o.Empty() {
		return r.Empty() && o.Empty()
	}
	return r.Min == o.Min && r.Max == o.Max
}

// ContainsPoint reports whether p lies within the region, bounds included.
func (r Region) ContainsPoint(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y &&
		p.Z >= r.Min.Z && p.Z <= r.Max.Z
}

// Contains reports whether o is fully enclosed by the region. An empty region
// is contained everywhere.
func (r Region) Contains(o Region) bool {
	if o.Empty() {
		return true
	}
	return r.ContainsPoint(o.Min) && r.ContainsPoint(o.Max)
}

// Intersects reports whether both regions share at least one cell,
// separating-axis test on each of the 3 axes.
func (r Region) Intersects(o Region) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return !(r.Max.X < o.Min.X || o.Max.X < r.Min.X ||
		r.Max.Y < o.Min.Y || o.Max.Y < r.Min.Y ||
		r.Max.Z < o.Min.Z || o.Max.Z < r.Min.Z)
}

// Intersect returns the overlap of both regions, possibly empty.
func (r Region) Intersect(o Region) Region {
	return Region{
		Min: r.Min.Max(o.Min),
		Max: r.Max.Min(o.Max),
	}
}

// UnionBound returns the smallest region containing both regions. This is a
// bounding box, not a set union.
func (r Region) UnionBound(o Region) Region {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Region{
		Min: r.Min.Min(o.Min),
		Max: r.Max.Max(o.Max),
	}
}

// Difference returns disjoint regions whose union covers exactly the cells of
// r not covered by o. The result is empty when o covers r and is r itself
// when they do not intersect. For all r and o:
//
//	r.Volume() == r.Intersect(o).Volume() + sum of piece volumes
func (r Region) Difference(o Region) []Region {
	if r.Empty() {
		return nil
	}
	overlap := r.Intersect(o)
	if overlap.Empty() {
		return []Region{r}
	}
	if overlap.Equal(r) {
		return nil
	}

	// Up to 27 candidate boxes: before / within / after the overlap on each
	// axis. The all-within box is the overlap itself and is dropped along
	// with every degenerate piece.
	type span struct {
		lo, hi int64
	}
	xs := [3]span{{r.Min.X, overlap.Min.X - 1}, {overlap.Min.X, overlap.Max.X}, {overlap.Max.X + 1, r.Max.X}}
	ys := [3]span{{r.Min.Y, overlap.Min.Y - 1}, {overlap.Min.Y, overlap.Max.Y}, {overlap.Max.Y + 1, r.Max.Y}}
	zs := [3]span{{r.Min.Z, overlap.Min.Z - 1}, {overlap.Min.Z, overlap.Max.Z}, {overlap.Max.Z + 1, r.Max.Z}}

	var pieces []Region
	for i, x := range xs {
		for j, y := range ys {
			for k, z := range zs {
				if i == 1 && j == 1 && k == 1 {
					continue
				}
				piece := Region{
					Min: Point{x.lo, y.lo, z.lo},
					Max: Point{x.hi, y.hi, z.hi},
				}
				if !piece.Empty() {
					pieces = append(pieces, piece)
				}
			}
		}
	}
	return pieces
}

// String formats the region the way reboot instructions spell it, e.g.
// "x=10..12,y=10..12,z=10..12".
func (r Region) String() string {
	return fmt.Sprintf("x=%d..%d,y=%d..%d,z=%d..%d",
		r.Min.X, r.Max.X, r.Min.Y, r.Max.Y, r.Min.Z, r.Max.Z)
}
