// Package catalog persists trained matchers in SQLite so they can be
// restored without recomputing descriptors.
//
// A matcher is stored as one row in the matcher table plus one row per
// reference image in the reference table, holding the reference name and
// its descriptor matrix encoded as a descriptor record BLOB.
package catalog
