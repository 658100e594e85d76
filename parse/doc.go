// Package parse decodes rendered tree payloads into the ir and libdiff
// models.
//
// Payload bytes are first read into generic values (Parse), in JSON or
// YAML, and then decoded structurally (Root, Diff). The structural decoders
// also accept values produced elsewhere, for instance a message already
// unmarshalled by a transport.
//
// # Disambiguation
//
// The encoding carries no type tags, so each position is decoded by an
// ordered list of structural checks. A child that is an integer is a
// component id, a string is literal text, anything else must be a
// fragment object. Statics that are an integer are a template reference.
// In a diff, the presence of "s" means a full replacement and otherwise
// the presence of "d" means a comprehension update; the remaining index
// keys form a sparse update. Strings holding digits are never read as
// integers.
//
// Malformed payloads fail with an error wrapping ErrDecode and located by
// an ir.PathError. No partial result is returned.
package parse
