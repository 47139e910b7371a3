package core

import (
	"errors"
	"testing"
)

func TestDecodeMediaText(t *testing.T) {
	media, err := DecodeMedia(map[string]any{
		WireTagEmbText: map[string]any{"data": "hello"},
	})
	if err != nil {
		t.Fatalf("DecodeMedia() error = %v", err)
	}

	text, ok := media.(*EmbText)
	if !ok {
		t.Fatalf("DecodeMedia() = %T, want *EmbText", media)
	}
	if text.Data() != "hello" {
		t.Errorf("Data() = %q", text.Data())
	}
}

func TestDecodeMediaImage(t *testing.T) {
	media, err := DecodeMedia(map[string]any{
		WireTagEmbImage: map[string]any{"data": tinyPNG, "mimeType": "image/png"},
	})
	if err != nil {
		t.Fatalf("DecodeMedia() error = %v", err)
	}

	if _, ok := media.(*EmbImage); !ok {
		t.Fatalf("DecodeMedia() = %T, want *EmbImage", media)
	}
}

func TestDecodeMediaUnknownTag(t *testing.T) {
	_, err := DecodeMedia(map[string]any{"@embAudio": map[string]any{"data": "x"}})
	if err == nil {
		t.Error("DecodeMedia() error = nil, want unknown tag error")
	}
}

func TestDecodeMediaBadTagValue(t *testing.T) {
	_, err := DecodeMedia(map[string]any{WireTagEmbText: "not an object"})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("DecodeMedia() error = %v, want *ValidationError", err)
	}
}

func TestDecodeMediaPropagatesValidation(t *testing.T) {
	_, err := DecodeMedia(map[string]any{
		WireTagEmbImage: map[string]any{"data": tinyPNG},
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error %T, want *ValidationError", err)
	}
	if verr.Field != "mimeType" {
		t.Errorf("Field = %q, want mimeType", verr.Field)
	}
}

func TestValidateChunking(t *testing.T) {
	tests := []struct {
		name    string
		size    *int
		overlap *int
		wantErr bool
	}{
		{"both unset", nil, nil, false},
		{"size only", Ptr(100), nil, false},
		{"overlap only", nil, Ptr(10), false},
		{"overlap zero", Ptr(100), Ptr(0), false},
		{"overlap below size", Ptr(100), Ptr(99), false},
		{"size zero", Ptr(0), nil, true},
		{"size negative", Ptr(-1), nil, true},
		{"overlap negative", nil, Ptr(-1), true},
		{"overlap equals size", Ptr(100), Ptr(100), true},
		{"overlap above size", Ptr(100), Ptr(101), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateChunking(tt.size, tt.overlap)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateChunking(%v, %v) error = %v, wantErr %v",
					tt.size, tt.overlap, err, tt.wantErr)
			}
		})
	}
}
