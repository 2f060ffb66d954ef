// Package descriptor defines the descriptor matrix produced by a feature
// extractor for a single image, and the compact binary record used to persist
// it. It includes:
//   - Matrix: row-major descriptor vectors with their native element type
//   - ElementType: the closed set of supported element widths
//   - canonical float32 conversion used by indexes and queries
//   - Save/Load and MarshalBinary/UnmarshalBinary for the .descr record
package descriptor
