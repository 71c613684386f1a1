package luvrange

// Pyramid is a colour-range hierarchy: level 0 is the input image, and each
// following level halves the resolution, with every pixel's range being the
// union of the ranges of the up-to-four pixels it covers. Coarse levels
// therefore contain, rather than approximate, the colours below them, which
// is what makes range metrics meaningful across scales.
type Pyramid struct {
	levels []*Image
}

// NewPyramid builds a pyramid over base. Levels are added until either the
// requested count is reached or a level would collapse below 1x1. The base
// image is referenced, not copied.
func NewPyramid(base *Image, levels int) *Pyramid {
	p := &Pyramid{levels: []*Image{base}}
	for len(p.levels) < levels {
		prev := p.levels[len(p.levels)-1]
		if prev.width <= 1 && prev.height <= 1 {
			break
		}
		p.levels = append(p.levels, halve(prev))
	}
	return p
}

// Levels returns the number of levels in the pyramid.
func (p *Pyramid) Levels() int {
	return len(p.levels)
}

// Level returns level l; 0 is the full-resolution base.
func (p *Pyramid) Level(l int) *Image {
	return p.levels[l]
}

// halve builds the next-coarser level. A parent pixel is valid if any child
// is valid, and its range is the union over its valid children.
func halve(src *Image) *Image {
	w := (src.width + 1) / 2
	h := (src.height + 1) / 2
	dst := NewImage(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc LuvRange
			any := false
			for dy := 0; dy < 2; dy++ {
				for dx := 0; dx < 2; dx++ {
					sx, sy := x*2+dx, y*2+dy
					if !src.Valid(sx, sy) {
						continue
					}
					if !any {
						acc = src.At(sx, sy)
						any = true
					} else {
						acc = acc.Union(src.At(sx, sy))
					}
				}
			}
			if any {
				dst.Set(x, y, acc)
			} else {
				dst.SetValid(x, y, false)
			}
		}
	}
	return dst
}
