// Package cover adapts the internal cover tree to the index.Index API. It is
// preferred over brute force for large collections where pruning pays off.
package cover
