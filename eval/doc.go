// Package eval evaluates expr-lang expressions against a rendered tree.
//
// The environment holds the flattened output of the tree as "html" and the
// counts "components", "templates", "fragments", "comprehensions" and
// "depth". It is used by "rtree check -expect" to assert properties of a
// render, for example
//
//	fragments == 3 && count("<li>") == depth
package eval
