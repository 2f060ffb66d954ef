// Package matcher builds named nearest-neighbor indexes over the descriptor
// vectors of reference images and answers best-match queries by
// distance-weighted voting.
//
// Every indexed vector keeps the position of the reference image it came
// from. A query vector votes for the owner of its nearest indexed vector with
// a weight that decreases with distance and floors at zero; the reference
// image with the largest accumulated weight wins if that weight reaches the
// caller's minVotes.
package matcher
