// Package extractor defines how descriptor matrices are obtained from
// images: the Source contract implemented by vision backends, the closed set
// of supported extractor types, the naming convention of precomputed
// descriptor files, and directory scanning used by training entry points.
package extractor
