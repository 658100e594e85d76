package ir

// Wire keys of the rendered tree encoding. Children are keyed by their
// index written in decimal.
const (
	StaticsKey    = "s"
	DynamicsKey   = "d"
	TemplatesKey  = "p"
	ComponentsKey = "c"
)
