// Package encode writes rendered trees and diffs back into their payload
// encoding.
//
// Output is JSON by default, indented or compact (EncodeWire), optionally
// colored for terminals (EncodeColors), or YAML (EncodeFormat). Keys are
// written in a fixed order so that encoding is deterministic: children by
// index, then "d", "s", "p" and "c".
//
// Decoding the encoding of a Root with package parse yields an equal Root.
package encode
