package surface

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"path/filepath"
	"testing"
)

// Verify at compile time that Pixmap implements image.Image and Color
// implements color.Color.
var (
	_ image.Image = (*Pixmap)(nil)
	_ color.Color = Color{}
)

func TestNewPixmap(t *testing.T) {
	pm := NewPixmap(16, 9)
	if pm.Width() != 16 || pm.Height() != 9 {
		t.Fatalf("size = %dx%d, want 16x9", pm.Width(), pm.Height())
	}
	if got, want := len(pm.Data()), 16*9*4; got != want {
		t.Errorf("len(Data()) = %d, want %d", got, want)
	}
	if got := pm.Aspect(); math.Abs(got-16.0/9.0) > 1e-12 {
		t.Errorf("Aspect() = %v, want %v", got, 16.0/9.0)
	}
}

func TestNewPixmap_Empty(t *testing.T) {
	for _, sz := range []struct{ w, h int }{{0, 10}, {10, 0}, {-1, 5}} {
		pm := NewPixmap(sz.w, sz.h)
		if pm.Width() != 0 || pm.Height() != 0 || len(pm.Data()) != 0 {
			t.Errorf("NewPixmap(%d, %d) not empty", sz.w, sz.h)
		}
		if c := pm.Sample(0.5, 0.5); c != Transparent {
			t.Errorf("Sample on empty pixmap = %v, want Transparent", c)
		}
	}
}

func TestPixmap_SetGetPixel(t *testing.T) {
	pm := NewPixmap(4, 4)
	pm.SetPixel(2, 1, RGB(1, 0.5, 0))

	got := pm.GetPixel(2, 1)
	if math.Abs(got.R-1) > 1e-9 || math.Abs(got.G-128.0/255) > 1e-9 || got.B != 0 || got.A != 1 {
		t.Errorf("GetPixel(2,1) = %+v, want (1, 128/255, 0, 1)", got)
	}

	// Out-of-bounds writes are ignored, reads are transparent.
	pm.SetPixel(-1, 0, White)
	pm.SetPixel(4, 4, White)
	if c := pm.GetPixel(4, 0); c != Transparent {
		t.Errorf("GetPixel out of bounds = %v, want Transparent", c)
	}
}

func TestPixmap_Clear(t *testing.T) {
	pm := NewPixmap(3, 2)
	pm.Clear(RGB(0, 0, 1))
	for i := 0; i < len(pm.Data()); i += 4 {
		d := pm.Data()[i : i+4]
		if d[0] != 0 || d[1] != 0 || d[2] != 255 || d[3] != 255 {
			t.Fatalf("pixel %d = %v, want [0 0 255 255]", i/4, d)
		}
	}
}

func TestPixmap_NRGBASharesMemory(t *testing.T) {
	pm := NewPixmap(5, 5)
	img := pm.NRGBA()
	img.SetNRGBA(3, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	i := (4*5 + 3) * 4
	if d := pm.Data(); d[i] != 10 || d[i+1] != 20 || d[i+2] != 30 || d[i+3] != 255 {
		t.Errorf("write through NRGBA view not visible: %v", d[i:i+4])
	}
}

func TestPixmap_SavePNG(t *testing.T) {
	pm := NewPixmap(8, 6)
	pm.Clear(Black)
	pm.SetPixel(1, 1, White)

	path := filepath.Join(t.TempDir(), "out.png")
	if err := pm.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}

	var buf bytes.Buffer
	if err := pm.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if img.Bounds() != pm.Bounds() {
		t.Errorf("decoded bounds = %v, want %v", img.Bounds(), pm.Bounds())
	}
	r, g, b, _ := img.At(1, 1).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("decoded pixel (1,1) = (%d,%d,%d), want white", r, g, b)
	}
}

func TestPixmap_SavePNG_BadPath(t *testing.T) {
	pm := NewPixmap(2, 2)
	if err := pm.SavePNG(filepath.Join(t.TempDir(), "missing", "out.png")); err == nil {
		t.Error("SavePNG() into missing directory should fail")
	}
}

// =============================================================================
// Sampling
// =============================================================================

func TestSample_TexelCenters(t *testing.T) {
	pm := NewPixmap(2, 1)
	pm.SetPixel(0, 0, Black)
	pm.SetPixel(1, 0, White)

	tests := []struct {
		name string
		u    float64
		want float64
	}{
		{"left center", 0.25, 0},
		{"right center", 0.75, 1},
		{"midpoint", 0.5, 0.5},
		{"clamped left", -3, 0},
		{"clamped right", 7, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pm.Sample(tt.u, 0.5)
			if math.Abs(got.R-tt.want) > 1e-9 {
				t.Errorf("Sample(%v, 0.5).R = %v, want %v", tt.u, got.R, tt.want)
			}
		})
	}
}

func TestSample_Uniform(t *testing.T) {
	pm := NewPixmap(7, 3)
	pm.Clear(White)
	for _, uv := range [][2]float64{{0, 0}, {1, 1}, {0.33, 0.9}, {-1, 2}} {
		if c := pm.Sample(uv[0], uv[1]); c != White {
			t.Errorf("Sample(%v) = %v, want White", uv, c)
		}
	}
}

func TestTexelSize(t *testing.T) {
	du, dv := NewPixmap(200, 100).TexelSize()
	if du != 1.0/200 || dv != 1.0/100 {
		t.Errorf("TexelSize() = (%v, %v), want (0.005, 0.01)", du, dv)
	}
}
