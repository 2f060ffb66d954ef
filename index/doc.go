// Package index defines the nearest-neighbor abstraction used by matchers:
// an index is built once over descriptor vectors and then answers concurrent
// 1-NN queries. Implementations in this module include an exact brute-force
// scan and a cover tree.
package index
