/*
DESCRIPTION
  convert.go converts images to the pixel layout of raylib textures.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package host

import (
	"image"
	"image/color"
)

// toRGBA writes img as opaque pixels into dst in row major order. dst must
// hold one element per pixel of img.
func toRGBA(dst []color.RGBA, img image.Image) {
	b := img.Bounds()
	w := b.Dx()
	switch img := img.(type) {
	case *image.Gray:
		for y := 0; y < b.Dy(); y++ {
			row := img.Pix[y*img.Stride : y*img.Stride+w]
			for x, v := range row {
				dst[y*w+x] = color.RGBA{v, v, v, 0xff}
			}
		}
	case *image.RGBA:
		for y := 0; y < b.Dy(); y++ {
			row := img.Pix[y*img.Stride : y*img.Stride+4*w]
			for x := 0; x < w; x++ {
				dst[y*w+x] = color.RGBA{row[4*x], row[4*x+1], row[4*x+2], 0xff}
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
				c.A = 0xff
				dst[(y-b.Min.Y)*w+x-b.Min.X] = c
			}
		}
	}
}
