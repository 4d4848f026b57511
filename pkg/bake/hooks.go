package bake

// Hooks lets a host application integrate with the bake pass. Implementations
// are registered on the Baker at startup; there is no dynamic lookup.
//
// PreBake runs before any probe is baked and may return an opaque context
// value that is handed back to PostBake. PostBake runs after the document is
// assembled. An error from either aborts the pass.
type Hooks interface {
	PreBake(probes []*Probe) (ctx interface{}, err error)
	PostBake(doc *Document, ctx interface{}) error
}
