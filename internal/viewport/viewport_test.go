package viewport

import (
	"image"
	"math"
	"testing"

	"golang.org/x/image/math/f64"
)

const eps = 1e-9

func TestComputeFitScaleWorkedExample(t *testing.T) {
	sx, sy := ComputeFitScale(800, 600, 400, 200)
	if sx != 0.75 || sy != 0.5 {
		t.Fatalf("ComputeFitScale(800, 600, 400, 200) = (%v, %v), want (0.75, 0.5)", sx, sy)
	}
}

func TestComputeFitScaleRange(t *testing.T) {
	sizes := []image.Point{
		{1, 1}, {16, 16}, {800, 600}, {600, 800}, {1920, 1080}, {3, 1000}, {1000, 3}, {31, 17},
	}
	for _, win := range sizes {
		for _, img := range sizes {
			sx, sy := ComputeFitScale(win.X, win.Y, img.X, img.Y)
			if sx <= 0 || sx > 1 || sy <= 0 || sy > 1 {
				t.Fatalf("window %v image %v: scale (%v, %v) outside (0, 1]", win, img, sx, sy)
			}
		}
	}
}

func TestComputeFitScaleSquareWindow(t *testing.T) {
	sx, sy := ComputeFitScale(512, 512, 64, 64)
	if sx != 1 || sy != 1 {
		t.Fatalf("square window and image: got (%v, %v), want (1, 1)", sx, sy)
	}
	sx, sy = ComputeFitScale(512, 512, 64, 32)
	if sx != 1 || sy != 0.5 {
		t.Fatalf("square window, wide image: got (%v, %v), want (1, 0.5)", sx, sy)
	}
}

func TestComputeFitScaleKeepsImageAspect(t *testing.T) {
	tests := []struct {
		win, img image.Point
	}{
		{image.Pt(800, 600), image.Pt(400, 300)},
		{image.Pt(800, 600), image.Pt(400, 200)},
		{image.Pt(600, 800), image.Pt(32, 64)},
		{image.Pt(1280, 720), image.Pt(7, 13)},
	}
	for _, tc := range tests {
		sx, sy := ComputeFitScale(tc.win.X, tc.win.Y, tc.img.X, tc.img.Y)
		areaW := float64(tc.win.X) * sx
		areaH := float64(tc.win.Y) * sy
		got := areaW / areaH
		want := float64(tc.img.X) / float64(tc.img.Y)
		if math.Abs(got-want) > 1e-6 {
			t.Fatalf("window %v image %v: displayed aspect %v, want %v", tc.win, tc.img, got, want)
		}
	}
}

func TestComputeFitScaleDegenerate(t *testing.T) {
	if sx, sy := ComputeFitScale(0, 600, 10, 10); sx != 0 || sy != 0 {
		t.Fatalf("zero window width: got (%v, %v)", sx, sy)
	}
	if sx, sy := ComputeFitScale(800, 600, 10, 0); sx != 0 || sy != 0 {
		t.Fatalf("zero image height: got (%v, %v)", sx, sy)
	}
}

func TestCursorToImagePixelCenter(t *testing.T) {
	tests := []struct {
		win, img image.Point
		zoom     float64
	}{
		{image.Pt(800, 600), image.Pt(400, 200), 1},
		{image.Pt(800, 600), image.Pt(17, 33), 2.5},
		{image.Pt(640, 960), image.Pt(64, 64), 0.3},
		{image.Pt(1024, 768), image.Pt(5, 3), 60},
	}
	for _, tc := range tests {
		sx, sy := ComputeFitScale(tc.win.X, tc.win.Y, tc.img.X, tc.img.Y)
		cx := float64(tc.win.X) / 2
		cy := float64(tc.win.Y) / 2
		x, y, ok := CursorToImagePixel(cx, cy, tc.win.X, tc.win.Y, sx, sy, tc.zoom, tc.img.X, tc.img.Y)
		if !ok {
			t.Fatalf("window %v image %v zoom %v: center missed", tc.win, tc.img, tc.zoom)
		}
		if abs(x-tc.img.X/2) > 1 || abs(y-tc.img.Y/2) > 1 {
			t.Fatalf("window %v image %v zoom %v: center mapped to (%d, %d)", tc.win, tc.img, tc.zoom, x, y)
		}
	}
}

func TestCursorToImagePixelOutside(t *testing.T) {
	windows := []image.Point{{800, 600}, {600, 800}, {300, 300}}
	images := []image.Point{{400, 200}, {16, 64}, {1, 1}}
	for _, zoom := range []float64{0.1, 1.0, 60.0} {
		for _, win := range windows {
			for _, img := range images {
				sx, sy := ComputeFitScale(win.X, win.Y, img.X, img.Y)
				left, top, w, h := displayArea(win.X, win.Y, sx, sy, zoom)
				midX := left + w/2
				midY := top + h/2
				outside := [][2]float64{
					{left - 1, midY},
					{left + w + 1, midY},
					{midX, top - 1},
					{midX, top + h + 1},
					{left - 0.001, top - 0.001},
				}
				for _, p := range outside {
					if x, y, ok := CursorToImagePixel(p[0], p[1], win.X, win.Y, sx, sy, zoom, img.X, img.Y); ok {
						t.Fatalf("zoom %v window %v image %v: cursor %v hit (%d, %d)", zoom, win, img, p, x, y)
					}
				}
			}
		}
	}
}

func TestCursorToImagePixelEdges(t *testing.T) {
	// Square window and image: the area covers the whole window, 10 window
	// pixels per image pixel.
	tests := []struct {
		name   string
		cx, cy float64
		wantX  int
		wantY  int
		wantOK bool
	}{
		{name: "top left", cx: 0, cy: 0, wantX: 0, wantY: 0, wantOK: true},
		{name: "inside first pixel", cx: 9.99, cy: 9.99, wantX: 0, wantY: 0, wantOK: true},
		{name: "second pixel", cx: 10, cy: 25, wantX: 1, wantY: 2, wantOK: true},
		{name: "last pixel", cx: 99.99, cy: 99.99, wantX: 9, wantY: 9, wantOK: true},
		{name: "right edge rejected", cx: 100, cy: 50, wantOK: false},
		{name: "bottom edge rejected", cx: 50, cy: 100, wantOK: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y, ok := CursorToImagePixel(tc.cx, tc.cy, 100, 100, 1, 1, 1, 10, 10)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if ok && (x != tc.wantX || y != tc.wantY) {
				t.Fatalf("got (%d, %d), want (%d, %d)", x, y, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestCursorToImagePixelNonPositiveZoom(t *testing.T) {
	for _, zoom := range []float64{0, -1} {
		if _, _, ok := CursorToImagePixel(50, 50, 100, 100, 1, 1, zoom, 10, 10); ok {
			t.Fatalf("zoom %v: expected miss", zoom)
		}
	}
}

func TestGeometryAff3(t *testing.T) {
	g := NewGeometry(image.Pt(800, 600), image.Pt(400, 200), 1)
	want := f64.Aff3{1.5, 0, 100, 0, 1.5, 150}
	got := g.Aff3()
	for i := range want {
		if math.Abs(got[i]-want[i]) > eps {
			t.Fatalf("Aff3 = %v, want %v", got, want)
		}
	}
	if b := g.Bounds(); b != image.Rect(100, 150, 700, 450) {
		t.Fatalf("Bounds = %v", b)
	}
	if !g.Visible() {
		t.Fatal("expected geometry to be visible")
	}
}

func TestGeometryHitMatchesForwardTransform(t *testing.T) {
	g := NewGeometry(image.Pt(1024, 768), image.Pt(32, 24), 3.7)
	m := g.Aff3()
	for y := 0; y < g.Image.Y; y++ {
		for x := 0; x < g.Image.X; x++ {
			// Centre of the texel in window space.
			wx := m[0]*(float64(x)+0.5) + m[2]
			wy := m[4]*(float64(y)+0.5) + m[5]
			p, ok := g.Hit(wx, wy)
			if !ok || p != image.Pt(x, y) {
				t.Fatalf("texel (%d, %d) at (%v, %v) resolved to %v ok=%v", x, y, wx, wy, p, ok)
			}
		}
	}
}

func TestApplyScroll(t *testing.T) {
	if got := ApplyScroll(1, 1); math.Abs(got-1.1) > eps {
		t.Fatalf("scroll up: got %v", got)
	}
	if got := ApplyScroll(1, -1); math.Abs(got-0.9) > eps {
		t.Fatalf("scroll down: got %v", got)
	}
	if got := ApplyScroll(1.5, 0); got != 1.5 {
		t.Fatalf("zero delta changed zoom to %v", got)
	}
	z := DefaultZoom
	for i := 0; i < 1000; i++ {
		z = ApplyScroll(z, 1)
		if z > MaxZoom {
			t.Fatalf("step %d: zoom %v exceeds %v", i, z, MaxZoom)
		}
	}
	if z != MaxZoom {
		t.Fatalf("zoom settled at %v, want %v", z, MaxZoom)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
