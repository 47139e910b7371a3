package core

import (
	"fmt"
	"math"
)

// Wire tags identifying media objects inside document JSON.
const (
	WireTagEmbText  = "@embText"
	WireTagEmbImage = "@embImage"
)

// MediaObject is the capability implemented by rich-media values that
// can be embedded in documents. [Transform] dispatches on this
// interface, so new media variants plug into traversal without
// touching it.
type MediaObject interface {
	// ToWire returns the tagged wire object sent to the service: a
	// single-key map from the wire tag to the media fields.
	ToWire() map[string]any
}

// DecodeMedia reconstructs a media object from its full tagged wire
// form, e.g. {"@embText": {...}}. Use it when reading documents back
// from the service.
func DecodeMedia(obj map[string]any) (MediaObject, error) {
	if inner, ok := obj[WireTagEmbText]; ok {
		fields, ok := inner.(map[string]any)
		if !ok {
			return nil, &ValidationError{Field: WireTagEmbText, Message: "tag value must be an object"}
		}
		return EmbTextFromWire(fields)
	}
	if inner, ok := obj[WireTagEmbImage]; ok {
		fields, ok := inner.(map[string]any)
		if !ok {
			return nil, &ValidationError{Field: WireTagEmbImage, Message: "tag value must be an object"}
		}
		return EmbImageFromWire(fields)
	}
	return nil, fmt.Errorf("no media tag found (expected %q or %q)", WireTagEmbText, WireTagEmbImage)
}

// validateChunking checks the chunking directives shared by all media
// types. It runs after the per-type checks so their error precedence
// is preserved.
func validateChunking(maxChunkSize, chunkOverlap *int) error {
	if maxChunkSize != nil && *maxChunkSize <= 0 {
		return &ValidationError{Field: "maxChunkSize", Message: "must be a positive integer"}
	}
	if chunkOverlap != nil && *chunkOverlap < 0 {
		return &ValidationError{Field: "chunkOverlap", Message: "must be a non-negative integer"}
	}
	if maxChunkSize != nil && chunkOverlap != nil && *chunkOverlap >= *maxChunkSize {
		return &ValidationError{Field: "chunkOverlap", Message: "must be less than maxChunkSize"}
	}
	return nil
}

// Wire decoding helpers. JSON objects decoded with encoding/json carry
// float64 numbers and []any sequences, so typed access converts.

func wireString(fields map[string]any, key string, required bool) (string, error) {
	v, ok := fields[key]
	if !ok {
		if required {
			return "", &ValidationError{Field: key, Message: "field is required"}
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &ValidationError{Field: key, Message: "must be a string"}
	}
	return s, nil
}

func wireInt(fields map[string]any, key string) (*int, error) {
	v, ok := fields[key]
	if !ok {
		return nil, nil
	}
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return nil, &ValidationError{Field: key, Message: "must be an integer"}
		}
		i := int(n)
		return &i, nil
	case int:
		i := n
		return &i, nil
	default:
		return nil, &ValidationError{Field: key, Message: "must be an integer"}
	}
}

func wireBool(fields map[string]any, key string) (*bool, error) {
	v, ok := fields[key]
	if !ok {
		return nil, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, &ValidationError{Field: key, Message: "must be a boolean"}
	}
	return &b, nil
}

func wireStrings(fields map[string]any, key string) ([]string, error) {
	v, ok := fields[key]
	if !ok {
		return nil, nil
	}
	switch items := v.(type) {
	case []string:
		return copyStrings(items), nil
	case []any:
		out := make([]string, len(items))
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, &ValidationError{Field: key, Message: "must be a list of strings"}
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, &ValidationError{Field: key, Message: "must be a list of strings"}
	}
}
