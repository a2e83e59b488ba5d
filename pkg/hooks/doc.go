// Package hooks implements the per-instance hook store and the hook
// primitives components call during render.
//
// A Store owns an ordered arena of hook records, one per call site,
// addressed by call order. The render context (Context) is an explicit
// value threaded through the render: it identifies the store being
// rendered and the next record index to consume. Primitives must only
// be called while a context is open; the sequence of hook variants is
// locked in by the first render and any later deviation aborts the
// render with an OrderError — conditional or looped hook usage is
// forbidden by contract.
//
// State setters schedule a re-render of the owning instance and stage
// the value for the next render; they never rewrite a value an
// in-flight render closure has already observed. After the store is
// closed (instance unmount) setters are silent no-ops.
package hooks
