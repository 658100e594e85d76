package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Decode  bool
	Merge   bool
	Build   bool
	Session bool
}

var d *debug

func init() {
	d = &debug{}
	d.Decode = boolEnv("RTREE_DEBUG_DECODE")
	d.Merge = boolEnv("RTREE_DEBUG_MERGE")
	d.Build = boolEnv("RTREE_DEBUG_BUILD")
	d.Session = boolEnv("RTREE_DEBUG_SESSION")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Decode() bool {
	return d.Decode
}
func Merge() bool {
	return d.Merge
}
func Build() bool {
	return d.Build
}
func Session() bool {
	return d.Session
}
