// Package session keeps the current tree of a rendered view between
// server messages.
//
// A Session is fed the join reply of a view, then each diff, and keeps the
// merged tree and its flattened output. Calls are serialized with a mutex.
// Any failure to merge or build discards the tree: the session then
// reports ErrNeedsResync until the next Join, since a tree that missed a
// diff cannot be repaired.
//
// Replay drives a session from a recorded event log, one JSON object per
// line:
//
//	{"event":"join","payload":{"rendered":{"0":"hi","s":["<a>","</a>"]}}}
//	{"event":"diff","payload":{"0":"bye"}}
//	{"event":"drop","payload":[3,4]}
package session
