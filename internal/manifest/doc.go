// Package manifest is the read-only view of a finished build that budget
// evaluation consumes: chunks (named groups of output files, possibly part of
// the initial load) and assets (output files with a byte size).
//
// The package also adapts bundler stats files into that shape. JSON stats are
// validated against an embedded JSON schema before decoding; MessagePack stats
// use the same field names. File names are normalised (NFC, no leading "./")
// so chunk file lists and asset names written by different tools compare
// equal.
package manifest
