package core

// Transform returns a copy of doc in which every media object reachable
// under the walking contract is replaced by its tagged wire object.
// Documents are transformed before they are sent to the service.
//
// The walk recurses into mapping values, including mappings that are
// elements of a sequence. It does not recurse into sequences nested
// inside sequences, and it does not serialize media objects that sit
// directly inside a sequence; both pass through unchanged. Wrap media
// in a mapping ({"text": media}) to place it inside a sequence.
//
// Scalars pass through unchanged, sibling keys are never dropped, and
// the input document is never mutated.
func Transform(doc Document) Document {
	if doc == nil {
		return nil
	}
	out := make(Document, len(doc))
	for key, value := range doc {
		out[key] = transformValue(value)
	}
	return out
}

// transformValue applies the walking contract to a mapping value.
func transformValue(value any) any {
	switch v := value.(type) {
	case MediaObject:
		return v.ToWire()
	case Document:
		return Transform(v)
	case map[string]any:
		return map[string]any(Transform(Document(v)))
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = transformElement(item)
		}
		return out
	case []Document:
		out := make([]Document, len(v))
		for i, item := range v {
			out[i] = Transform(item)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(v))
		for i, item := range v {
			out[i] = Transform(Document(item))
		}
		return out
	default:
		return value
	}
}

// transformElement applies the walking contract to a sequence element:
// mappings are recursed, everything else passes through untouched.
func transformElement(item any) any {
	switch m := item.(type) {
	case Document:
		return Transform(m)
	case map[string]any:
		return map[string]any(Transform(Document(m)))
	default:
		return item
	}
}
