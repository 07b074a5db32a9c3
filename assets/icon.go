// Package assets holds the application icon. It is drawn from a small
// pixel map rather than embedded files so every size stays crisp.
package assets

import (
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// IconBase is the edge length of the source pixel map.
const IconBase = 16

var iconRows = [IconBase]string{
	"................",
	"..kkkk....kkkk..",
	".krrrrk..krrrrk.",
	"krwwrrrkkrrrrrrk",
	"krwrrrrrrrrrrrrk",
	"krrrrrrrrrrrrrrk",
	"krrrrrrrrrrrrrrk",
	".krrrrrrrrrrrrk.",
	"..krrrrrrrrrrk..",
	"...krrrrrrrrk...",
	"....krrrrrrk....",
	".....krrrrk.....",
	"......krrk......",
	".......kk.......",
	"................",
	"................",
}

var iconPalette = map[byte]color.RGBA{
	'k': {20, 20, 20, 255},
	'r': {220, 40, 60, 255},
	'w': {255, 255, 255, 255},
}

// Icon returns the icon at its native size.
func Icon() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, IconBase, IconBase))
	for y, row := range iconRows {
		for x := 0; x < len(row); x++ {
			if c, ok := iconPalette[row[x]]; ok {
				img.SetRGBA(x, y, c)
			}
		}
	}
	return img
}

// IconImage returns the icon enlarged to size, which must be a positive
// multiple of IconBase.
func IconImage(size int) (image.Image, error) {
	if size <= 0 || size%IconBase != 0 {
		return nil, fmt.Errorf("icon size %d is not a multiple of %d", size, IconBase)
	}
	src := Icon()
	if size == IconBase {
		return src, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// IconSizes lists the sizes handed to window managers.
func IconSizes() []int {
	return []int{16, 32, 48, 64}
}

// Icons renders every size in IconSizes.
func Icons() []image.Image {
	sizes := IconSizes()
	out := make([]image.Image, 0, len(sizes))
	for _, s := range sizes {
		img, err := IconImage(s)
		if err != nil {
			continue
		}
		out = append(out, img)
	}
	return out
}
