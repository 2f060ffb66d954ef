// Package cv implements extractor.Source with OpenCV through gocv.
//
// Images are decoded with imread/imdecode, optionally converted to grayscale
// and histogram equalized, then passed to the configured detector whose
// descriptor matrix is copied out as a descriptor.Matrix.
package cv
