package core

// Document is a JSON-like document: a mapping from field names to
// scalars, nested mappings, sequences, and media objects. Documents are
// what callers insert into and read back from a collection.
type Document map[string]any

// Ptr returns a pointer to v. It is a convenience for populating
// optional pointer fields in option structs:
//
//	core.EmbTextOptions{MaxChunkSize: core.Ptr(200)}
func Ptr[T any](v T) *T {
	return &v
}

// copyPtr returns a pointer to a copy of *p, or nil.
// Accessors use it so callers cannot mutate constructed state.
func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// copyStrings returns a copy of s, preserving nil versus empty.
func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// stringSlice converts a typed string slice for error reporting.
func stringSlice[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
