// Package bruteforce provides an exact vector index that answers 1-NN
// queries by scanning all vectors, computing L2 distances with BLAS level-1
// routines.
package bruteforce
