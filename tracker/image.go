/*
DESCRIPTION
  image.go provides the per-pixel operations of the tracking pipeline:
  conversion to grayscale, absolute difference and binary thresholding.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tracker

import (
	"image"

	"golang.org/x/image/draw"
)

// fit copies src into dst, resampling if the sizes differ.
func fit(dst *image.RGBA, src image.Image) {
	sb := src.Bounds()
	if sb.Size() == dst.Bounds().Size() {
		draw.Draw(dst, dst.Bounds(), src, sb.Min, draw.Src)
		return
	}
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, sb, draw.Src, nil)
}

// grayscale converts src into dst using ITU-R 601 luma weights, as
// color.GrayModel does. dst and src must be the same size.
func grayscale(dst *image.Gray, src *image.RGBA) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	for y := 0; y < h; y++ {
		s := src.Pix[y*src.Stride : y*src.Stride+4*w]
		d := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x := range d {
			r, g, b := uint32(s[4*x]), uint32(s[4*x+1]), uint32(s[4*x+2])
			d[x] = uint8((19595*r + 38470*g + 7471*b + 1<<15) >> 16)
		}
	}
}

// absDiff sets dst to |a - b| pixelwise. All images must be the same size.
func absDiff(dst, a, b *image.Gray) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	for y := 0; y < h; y++ {
		pa := a.Pix[y*a.Stride : y*a.Stride+w]
		pb := b.Pix[y*b.Stride : y*b.Stride+w]
		pd := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x := range pd {
			if pa[x] > pb[x] {
				pd[x] = pa[x] - pb[x]
			} else {
				pd[x] = pb[x] - pa[x]
			}
		}
	}
}

// threshold sets pixels of img at or above level to 0xff and all others to 0.
func threshold(img *image.Gray, level int) {
	for i, v := range img.Pix {
		if int(v) >= level {
			img.Pix[i] = 0xff
		} else {
			img.Pix[i] = 0
		}
	}
}
