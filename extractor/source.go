package extractor

import (
	"errors"

	"github.com/viant/featurematch/descriptor"
)

// ErrUnreadableImage signals that an image could not be decoded. Batch
// training skips such images.
var ErrUnreadableImage = errors.New("extractor: unreadable image")

// Config selects the extractor and the image preparation applied before it.
type Config struct {
	Type Type
	// Grayscale converts decoded images to a single channel.
	Grayscale bool
	// Equalize applies histogram equalization to 8-bit single channel images.
	Equalize bool
}

// Source computes descriptor matrices from images. A successfully decoded
// image always yields a matrix, possibly with zero rows; decode failures are
// reported as ErrUnreadableImage.
type Source interface {
	// ExtractFile decodes the image stored at path.
	ExtractFile(path string, cfg Config) (*descriptor.Matrix, error)

	// Extract decodes an encoded image (JPEG, PNG, ...) held in memory.
	Extract(data []byte, cfg Config) (*descriptor.Matrix, error)
}
