package raster

import "image"

// clipMask is a per-pixel coverage mask, 0 (clipped) to 255 (visible),
// the same size as the surface. A nil mask means no clipping.
type clipMask struct {
	width, height int
	cov           []uint8
}

func newClipMask(width, height int) *clipMask {
	return &clipMask{width: width, height: height, cov: make([]uint8, width*height)}
}

// at returns the coverage at (x, y) as a factor in [0, 1].
func (m *clipMask) at(x, y int) float64 {
	if m == nil {
		return 1
	}
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return float64(m.cov[y*m.width+x]) / 255
}

// span marks the pixel run [x0, x1) on row y as visible.
func (m *clipMask) span(y, x0, x1 int) {
	if y < 0 || y >= m.height {
		return
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > m.width {
		x1 = m.width
	}
	row := m.cov[y*m.width : (y+1)*m.width]
	for x := x0; x < x1; x++ {
		row[x] = 255
	}
}

// intersect returns the pointwise minimum of m and other. Either side may
// be nil, meaning fully visible.
func (m *clipMask) intersect(other *clipMask) *clipMask {
	if m == nil {
		return other
	}
	if other == nil {
		return m
	}
	out := newClipMask(m.width, m.height)
	for i, v := range m.cov {
		o := other.cov[i]
		if o < v {
			out.cov[i] = o
		} else {
			out.cov[i] = v
		}
	}
	return out
}

// alphaImage returns the mask as an image.Alpha sharing the coverage
// buffer, for use as a draw mask. Returns nil for the nil mask.
func (m *clipMask) alphaImage() *image.Alpha {
	if m == nil {
		return nil
	}
	return &image.Alpha{
		Pix:    m.cov,
		Stride: m.width,
		Rect:   image.Rect(0, 0, m.width, m.height),
	}
}
