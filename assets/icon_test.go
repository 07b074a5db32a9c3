package assets

import (
	"image/color"
	"testing"
)

func TestIconRowsAreSquare(t *testing.T) {
	for i, row := range iconRows {
		if len(row) != IconBase {
			t.Fatalf("row %d has %d pixels", i, len(row))
		}
		for j := 0; j < len(row); j++ {
			if _, ok := iconPalette[row[j]]; !ok && row[j] != '.' {
				t.Fatalf("row %d col %d: unknown pixel %q", i, j, row[j])
			}
		}
	}
}

func TestIconImage(t *testing.T) {
	img, err := IconImage(48)
	if err != nil {
		t.Fatalf("IconImage: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 48 {
		t.Fatalf("bounds = %v", b)
	}
	// Each source pixel becomes a 3x3 block.
	if got := color.RGBAModel.Convert(img.At(3*5, 3*5)); got != iconPalette['r'] {
		t.Fatalf("body pixel = %v", got)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Fatalf("corner alpha = %d, want transparent", a)
	}
	if _, err := IconImage(20); err == nil {
		t.Fatal("expected error for size 20")
	}
	if got := len(Icons()); got != len(IconSizes()) {
		t.Fatalf("Icons returned %d images", got)
	}
}
