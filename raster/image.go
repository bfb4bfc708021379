package raster

import (
	"image"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/vg"
)

// rasterImage is the backend-resident image handle. It remembers its
// owning context so cross-context use can be rejected.
type rasterImage struct {
	owner *Context
	img   *image.NRGBA
}

// Size returns the image dimensions in pixels.
func (r *rasterImage) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// makeImage copies src into an NRGBA buffer owned by the context.
func makeImage(owner *Context, src image.Image) *rasterImage {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
	return &rasterImage{owner: owner, img: dst}
}

// drawImage composites img into the user-space rectangle dstRect under
// ctm, through the clip mask.
func drawImage(dst *Pixmap, img *rasterImage, dstRect vg.Rect, ctm vg.Affine, mode vg.InterpolationMode, clip *clipMask) {
	b := img.img.Bounds()
	sw, sh := float64(b.Dx()), float64(b.Dy())
	if sw == 0 || sh == 0 || dstRect.IsEmpty() {
		return
	}
	// Map source pixels onto dstRect, then through the transform.
	m := ctm.Mul(vg.Translate(dstRect.Min.X, dstRect.Min.Y)).
		Mul(vg.Scale(dstRect.Width()/sw, dstRect.Height()/sh))
	aff := f64.Aff3{m.A, m.C, m.E, m.B, m.D, m.F}

	var scaler xdraw.Transformer = xdraw.NearestNeighbor
	if mode == vg.InterpBilinear {
		scaler = xdraw.BiLinear
	}
	opts := &xdraw.Options{}
	if alpha := clip.alphaImage(); alpha != nil {
		opts.DstMask = alpha
		opts.DstMaskP = image.Point{}
	}
	scaler.Transform(dst.NRGBA(), aff, img.img, b, xdraw.Over, opts)
}
