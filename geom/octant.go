package geom

// Octant identifies one of the up-to-8 sub-regions produced by bisecting a
// region at its midpoint. Bit 0 selects the high half along x, bit 1 along y,
// bit 2 along z.
type Octant uint8

const NumOctants = 8

func (o Octant) HighX() bool { return o&1 != 0 }
func (o Octant) HighY() bool { return o&2 != 0 }
func (o Octant) HighZ() bool { return o&4 != 0 }

// SubRegion pairs an octant tag with the region it covers.
type SubRegion struct {
	Octant Octant
	Region Region
}

// Octants splits the region at the midpoint of each axis. An axis of extent 1
// cannot be split, so fewer than 8 sub-regions may be returned. The
// sub-regions tile the region exactly, no gaps and no overlaps.
func (r Region) Octants() []SubRegion {
	if r.Empty() {
		return nil
	}

	midX := r.Min.X + (r.Max.X-r.Min.X)/2
	midY := r.Min.Y + (r.Max.Y-r.Min.Y)/2
	midZ := r.Min.Z + (r.Max.Z-r.Min.Z)/2

	subs := make([]SubRegion, 0, NumOctants)
	for o := Octant(0); o < NumOctants; o++ {
		sub := Region{Min: r.Min, Max: Point{midX, midY, midZ}}
		if o.HighX() {
			if midX == r.Max.X {
				continue
			}
			sub.Min.X, sub.Max.X = midX+1, r.Max.X
		}
		if o.HighY() {
			if midY == r.Max.Y {
				continue
			}
			sub.Min.Y, sub.Max.Y = midY+1, r.Max.Y
		}
		if o.HighZ() {
			if midZ == r.Max.Z {
				continue
			}
			sub.Min.Z, sub.Max.Z = midZ+1, r.Max.Z
		}
		subs = append(subs, SubRegion{Octant: o, Region: sub})
	}
	return subs
}
