package cv

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"gocv.io/x/gocv"

	"github.com/viant/featurematch/descriptor"
	"github.com/viant/featurematch/extractor"
)

func noisePNG(t *testing.T) []byte {
	t.Helper()
	r := rand.New(rand.NewSource(5))
	img := image.NewGray(image.Rect(0, 0, 200, 200))
	for y := 0; y < 200; y += 8 {
		for x := 0; x < 200; x += 8 {
			v := uint8(r.Intn(256))
			for dy := 0; dy < 8; dy++ {
				for dx := 0; dx < 8; dx++ {
					img.SetGray(x+dx, y+dy, color.Gray{Y: v})
				}
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode failed: %v", err)
	}
	return buf.Bytes()
}

func TestSource_ExtractORB(t *testing.T) {
	src := New()
	cfg := extractor.Config{Type: extractor.ORB, Grayscale: true, Equalize: true}
	m, err := src.Extract(noisePNG(t), cfg)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if m.Cols != 32 || m.Type != descriptor.Uint8 {
		t.Fatalf("ORB descriptors = %dx%d %v", m.Rows, m.Cols, m.Type)
	}
	if m.Rows == 0 {
		t.Fatalf("expected keypoints on a textured image")
	}

	path := filepath.Join(t.TempDir(), "noise.png")
	if err := os.WriteFile(path, noisePNG(t), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	fromFile, err := src.ExtractFile(path, cfg)
	if err != nil {
		t.Fatalf("ExtractFile failed: %v", err)
	}
	if !fromFile.Equal(m) {
		t.Fatalf("file and buffer extraction differ")
	}
}

func TestSource_Unreadable(t *testing.T) {
	src := New()
	cfg := extractor.Config{Type: extractor.ORB}
	if _, err := src.Extract([]byte("not an image"), cfg); !errors.Is(err, extractor.ErrUnreadableImage) {
		t.Fatalf("Extract err = %v, want ErrUnreadableImage", err)
	}
	if _, err := src.ExtractFile(filepath.Join(t.TempDir(), "missing.jpg"), cfg); !errors.Is(err, extractor.ErrUnreadableImage) {
		t.Fatalf("ExtractFile err = %v, want ErrUnreadableImage", err)
	}
}

func TestSource_UniformImageHasNoFeatures(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode failed: %v", err)
	}
	m, err := New().Extract(buf.Bytes(), extractor.Config{Type: extractor.SIFT, Grayscale: true})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if m.Rows != 0 || m.Cols != 128 || m.Type != descriptor.Float32 {
		t.Fatalf("uniform image descriptors = %dx%d %v", m.Rows, m.Cols, m.Type)
	}
}

func TestElementType(t *testing.T) {
	if typ, err := elementType(gocv.MatTypeCV32F); err != nil || typ != descriptor.Float32 {
		t.Fatalf("elementType(CV32F) = %v, %v", typ, err)
	}
	if _, err := elementType(gocv.MatTypeCV8UC3); !errors.Is(err, descriptor.ErrUnknownType) {
		t.Fatalf("elementType(CV8UC3) err = %v", err)
	}
}
