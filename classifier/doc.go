// Package classifier is the registry of named matchers and the entry point
// for training and querying them.
//
// A Classifier owns the name to matcher mapping. Training builds a new
// matcher outside any lock and swaps it in, releasing the previous one once
// in-flight queries have finished. Queries against one name run concurrently.
package classifier
