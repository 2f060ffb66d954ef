package cv

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/viant/featurematch/descriptor"
	"github.com/viant/featurematch/extractor"
)

type detector interface {
	DetectAndCompute(src gocv.Mat, mask gocv.Mat) ([]gocv.KeyPoint, gocv.Mat)
	Close() error
}

// shape describes the descriptor row layout of an extractor; it is used for
// images without any detected feature.
type shape struct {
	cols int
	typ  descriptor.ElementType
}

var shapes = map[extractor.Type]shape{
	extractor.ORB:   {cols: 32, typ: descriptor.Uint8},
	extractor.BRISK: {cols: 64, typ: descriptor.Uint8},
	extractor.AKAZE: {cols: 61, typ: descriptor.Uint8},
	extractor.KAZE:  {cols: 64, typ: descriptor.Float32},
	extractor.SIFT:  {cols: 128, typ: descriptor.Float32},
}

// Source computes descriptors with OpenCV. The zero value is ready to use;
// detectors are created per call so a Source is safe for concurrent use.
type Source struct{}

// New returns an OpenCV backed descriptor source.
func New() *Source { return &Source{} }

// ExtractFile implements extractor.Source.
func (s *Source) ExtractFile(path string, cfg extractor.Config) (*descriptor.Matrix, error) {
	img := gocv.IMRead(path, readFlags(cfg))
	defer img.Close()
	if img.Empty() {
		return nil, fmt.Errorf("%w: %v", extractor.ErrUnreadableImage, path)
	}
	return s.compute(img, cfg)
}

// Extract implements extractor.Source.
func (s *Source) Extract(data []byte, cfg extractor.Config) (*descriptor.Matrix, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty buffer", extractor.ErrUnreadableImage)
	}
	img, err := gocv.IMDecode(data, readFlags(cfg))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", extractor.ErrUnreadableImage, err)
	}
	defer img.Close()
	if img.Empty() {
		return nil, fmt.Errorf("%w: undecodable buffer", extractor.ErrUnreadableImage)
	}
	return s.compute(img, cfg)
}

func readFlags(cfg extractor.Config) gocv.IMReadFlag {
	if cfg.Grayscale {
		return gocv.IMReadGrayScale
	}
	return gocv.IMReadColor
}

func (s *Source) compute(img gocv.Mat, cfg extractor.Config) (*descriptor.Matrix, error) {
	det, err := newDetector(cfg.Type)
	if err != nil {
		return nil, err
	}
	defer det.Close()

	src := img
	if cfg.Equalize && img.Type() == gocv.MatTypeCV8U {
		equalized := gocv.NewMat()
		defer equalized.Close()
		gocv.EqualizeHist(img, &equalized)
		src = equalized
	}

	mask := gocv.NewMat()
	defer mask.Close()
	_, descr := det.DetectAndCompute(src, mask)
	defer descr.Close()
	return toMatrix(descr, shapes[cfg.Type])
}

func newDetector(t extractor.Type) (detector, error) {
	switch t {
	case extractor.ORB:
		d := gocv.NewORB()
		return &d, nil
	case extractor.BRISK:
		d := gocv.NewBRISK()
		return &d, nil
	case extractor.AKAZE:
		d := gocv.NewAKAZE()
		return &d, nil
	case extractor.KAZE:
		d := gocv.NewKAZE()
		return &d, nil
	case extractor.SIFT:
		d := gocv.NewSIFT()
		return &d, nil
	}
	return nil, fmt.Errorf("%w: %v", extractor.ErrUnknownExtractor, t)
}

func toMatrix(m gocv.Mat, fallback shape) (*descriptor.Matrix, error) {
	if m.Empty() || m.Rows() == 0 {
		return descriptor.New(0, fallback.cols, fallback.typ)
	}
	if m.Channels() != 1 {
		return nil, fmt.Errorf("cv: unsupported descriptor channels: %d", m.Channels())
	}
	typ, err := elementType(m.Type())
	if err != nil {
		return nil, err
	}
	data := m.ToBytes()
	out := &descriptor.Matrix{Rows: m.Rows(), Cols: m.Cols(), Type: typ, Data: append([]byte(nil), data...)}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

func elementType(t gocv.MatType) (descriptor.ElementType, error) {
	switch t {
	case gocv.MatTypeCV8S:
		return descriptor.Int8, nil
	case gocv.MatTypeCV8U:
		return descriptor.Uint8, nil
	case gocv.MatTypeCV16S:
		return descriptor.Int16, nil
	case gocv.MatTypeCV16U:
		return descriptor.Uint16, nil
	case gocv.MatTypeCV32S:
		return descriptor.Int32, nil
	case gocv.MatTypeCV32F:
		return descriptor.Float32, nil
	case gocv.MatTypeCV64F:
		return descriptor.Float64, nil
	}
	return 0, fmt.Errorf("%w: mat type %d", descriptor.ErrUnknownType, int(t))
}
