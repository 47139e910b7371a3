package core

import (
	"encoding/base64"
	"fmt"
)

// EmbImage is an image the service describes with a vision model,
// chunks, embeds, and indexes when its parent document is written. The
// payload is base64-encoded image bytes. Instances are immutable after
// construction; the server-computed chunks are attached only when a
// wire object is decoded.
type EmbImage struct {
	data             string
	mimeType         MimeType
	embModel         EmbModel
	visionModel      VisionModel
	maxChunkSize     *int
	chunkOverlap     *int
	isSeparatorRegex *bool
	separators       []string
	keepSeparator    *bool
	chunks           []string
}

// EmbImageOptions holds the optional directives for [NewEmbImage].
// The zero value (or a nil pointer) leaves every directive unset.
type EmbImageOptions struct {
	// EmbModel selects the embedding model. Must be one of
	// SupportedEmbModels when set.
	EmbModel EmbModel
	// VisionModel selects the model that describes the image. Must be
	// one of SupportedVisionModels when set.
	VisionModel VisionModel
	// MaxChunkSize caps the chunk length. Positive when set.
	MaxChunkSize *int
	// ChunkOverlap sets the overlap between adjacent chunks.
	// Non-negative, and less than MaxChunkSize when both are set.
	ChunkOverlap *int
	// IsSeparatorRegex treats Separators as regular expressions.
	IsSeparatorRegex *bool
	// Separators lists the boundaries chunking splits on.
	Separators []string
	// KeepSeparator keeps the matched separator in the chunk text.
	KeepSeparator *bool
}

// NewEmbImage creates an image media object from base64-encoded image
// data and its MIME type.
//
// Validation order is fixed: payload non-emptiness, base64
// well-formedness, MIME type membership, then the optional model
// memberships. The first failing check determines the error.
func NewEmbImage(data string, mimeType MimeType, opts *EmbImageOptions) (*EmbImage, error) {
	if opts == nil {
		opts = &EmbImageOptions{}
	}
	if data == "" {
		return nil, &ValidationError{Field: "data", Message: "must be a non-empty base64-encoded string"}
	}
	if _, err := base64.StdEncoding.DecodeString(data); err != nil {
		return nil, &ValidationError{Field: "data", Message: "must be valid base64-encoded image data"}
	}
	if !mimeType.IsValid() {
		return nil, &ValidationError{
			Field:   "mimeType",
			Message: fmt.Sprintf("unsupported value %q", string(mimeType)),
			Allowed: stringSlice(SupportedMimeTypes),
		}
	}
	if opts.EmbModel != "" && !opts.EmbModel.IsValid() {
		return nil, &ValidationError{
			Field:   "embeddingModel",
			Message: fmt.Sprintf("unsupported value %q", string(opts.EmbModel)),
			Allowed: stringSlice(SupportedEmbModels),
		}
	}
	if opts.VisionModel != "" && !opts.VisionModel.IsValid() {
		return nil, &ValidationError{
			Field:   "visionModel",
			Message: fmt.Sprintf("unsupported value %q", string(opts.VisionModel)),
			Allowed: stringSlice(SupportedVisionModels),
		}
	}
	if err := validateChunking(opts.MaxChunkSize, opts.ChunkOverlap); err != nil {
		return nil, err
	}

	return &EmbImage{
		data:             data,
		mimeType:         mimeType,
		embModel:         opts.EmbModel,
		visionModel:      opts.VisionModel,
		maxChunkSize:     copyPtr(opts.MaxChunkSize),
		chunkOverlap:     copyPtr(opts.ChunkOverlap),
		isSeparatorRegex: copyPtr(opts.IsSeparatorRegex),
		separators:       copyStrings(opts.Separators),
		keepSeparator:    copyPtr(opts.KeepSeparator),
	}, nil
}

// Data returns the base64-encoded image payload.
func (m *EmbImage) Data() string { return m.data }

// Decode returns the raw image bytes.
func (m *EmbImage) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(m.data)
}

// MimeType returns the image MIME type.
func (m *EmbImage) MimeType() MimeType { return m.mimeType }

// EmbModel returns the selected embedding model, or "" when unset.
func (m *EmbImage) EmbModel() EmbModel { return m.embModel }

// VisionModel returns the selected vision model, or "" when unset.
func (m *EmbImage) VisionModel() VisionModel { return m.visionModel }

// MaxChunkSize returns the chunk size cap, or nil when unset.
func (m *EmbImage) MaxChunkSize() *int { return copyPtr(m.maxChunkSize) }

// ChunkOverlap returns the chunk overlap, or nil when unset.
func (m *EmbImage) ChunkOverlap() *int { return copyPtr(m.chunkOverlap) }

// IsSeparatorRegex returns the separator-regex flag, or nil when unset.
func (m *EmbImage) IsSeparatorRegex() *bool { return copyPtr(m.isSeparatorRegex) }

// Separators returns a copy of the chunking separators.
func (m *EmbImage) Separators() []string { return copyStrings(m.separators) }

// KeepSeparator returns the keep-separator flag, or nil when unset.
func (m *EmbImage) KeepSeparator() *bool { return copyPtr(m.keepSeparator) }

// Chunks returns a copy of the server-computed chunks. It is empty
// until the value has round-tripped through the service.
func (m *EmbImage) Chunks() []string { return copyStrings(m.chunks) }

// ToWire implements [MediaObject]. The inner object always carries data
// and mimeType, carries each optional directive only when set, and
// carries chunks only when non-empty. Absent means omitted, never null.
func (m *EmbImage) ToWire() map[string]any {
	fields := map[string]any{
		"data":     m.data,
		"mimeType": string(m.mimeType),
	}
	if len(m.chunks) > 0 {
		fields["chunks"] = copyStrings(m.chunks)
	}
	if m.embModel != "" {
		fields["embeddingModel"] = string(m.embModel)
	}
	if m.visionModel != "" {
		fields["visionModel"] = string(m.visionModel)
	}
	if m.maxChunkSize != nil {
		fields["maxChunkSize"] = *m.maxChunkSize
	}
	if m.chunkOverlap != nil {
		fields["chunkOverlap"] = *m.chunkOverlap
	}
	if m.isSeparatorRegex != nil {
		fields["isSeparatorRegex"] = *m.isSeparatorRegex
	}
	if m.separators != nil {
		fields["separators"] = copyStrings(m.separators)
	}
	if m.keepSeparator != nil {
		fields["keepSeparator"] = *m.keepSeparator
	}
	return map[string]any{WireTagEmbImage: fields}
}

// EmbImageFromWire reconstructs an EmbImage from the inner wire object,
// the map stored under the "@embImage" tag. It runs the same validation
// as [NewEmbImage] and then attaches the server-computed chunks; this
// is the only path that populates chunks.
func EmbImageFromWire(fields map[string]any) (*EmbImage, error) {
	data, err := wireString(fields, "data", true)
	if err != nil {
		return nil, err
	}
	// A missing mimeType reads as "", which fails the membership check
	// below with the supported list in the error.
	mime, err := wireString(fields, "mimeType", false)
	if err != nil {
		return nil, err
	}

	opts := &EmbImageOptions{}
	model, err := wireString(fields, "embeddingModel", false)
	if err != nil {
		return nil, err
	}
	opts.EmbModel = EmbModel(model)
	vision, err := wireString(fields, "visionModel", false)
	if err != nil {
		return nil, err
	}
	opts.VisionModel = VisionModel(vision)
	if opts.MaxChunkSize, err = wireInt(fields, "maxChunkSize"); err != nil {
		return nil, err
	}
	if opts.ChunkOverlap, err = wireInt(fields, "chunkOverlap"); err != nil {
		return nil, err
	}
	if opts.IsSeparatorRegex, err = wireBool(fields, "isSeparatorRegex"); err != nil {
		return nil, err
	}
	if opts.Separators, err = wireStrings(fields, "separators"); err != nil {
		return nil, err
	}
	if opts.KeepSeparator, err = wireBool(fields, "keepSeparator"); err != nil {
		return nil, err
	}

	m, err := NewEmbImage(data, MimeType(mime), opts)
	if err != nil {
		return nil, err
	}
	if m.chunks, err = wireStrings(fields, "chunks"); err != nil {
		return nil, err
	}
	return m, nil
}

// Compile-time check that EmbImage implements MediaObject.
var _ MediaObject = (*EmbImage)(nil)
