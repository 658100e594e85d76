package ir

import (
	"strconv"
	"strings"
)

// PathError locates an error inside a tree. Path segments are joined the
// way Path formats them: "$" for the root, ".N" for a child, ".d[N]" for a
// comprehension repetition and ".c.N" for a component.
type PathError struct {
	Segments []string
	Err      error
}

func (e *PathError) Path() string {
	return "$" + strings.Join(e.Segments, "")
}

func (e *PathError) Error() string {
	return "at " + e.Path() + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// AtPath prefixes err's location with seg, wrapping err in a PathError
// unless it is one already.
func AtPath(err error, seg string) error {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*PathError); ok {
		pe.Segments = append([]string{seg}, pe.Segments...)
		return pe
	}
	return &PathError{Segments: []string{seg}, Err: err}
}

func ChildSeg(i int) string {
	return "." + strconv.Itoa(i)
}

func DynamicsSeg(i int) string {
	return ".d[" + strconv.Itoa(i) + "]"
}

func ComponentSeg(cid int) string {
	return ".c." + strconv.Itoa(cid)
}
