package core

import "fmt"

// EmbText is a text value the service chunks, embeds, and indexes when
// its parent document is written. Instances are immutable after
// construction; the server-computed chunks are attached only when a
// wire object is decoded, never by the constructor.
type EmbText struct {
	data             string
	embModel         EmbModel
	maxChunkSize     *int
	chunkOverlap     *int
	isSeparatorRegex *bool
	separators       []string
	keepSeparator    *bool
	chunks           []string
}

// EmbTextOptions holds the optional embedding directives for
// [NewEmbText]. The zero value (or a nil pointer) leaves every
// directive unset, so the service applies its defaults. Unset
// directives are omitted from the wire object entirely.
type EmbTextOptions struct {
	// EmbModel selects the embedding model. Must be one of
	// SupportedEmbModels when set.
	EmbModel EmbModel
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

// NewEmbText creates a text media object.
//
//	note, err := core.NewEmbText("CapybaraDB is a database for AI.", &core.EmbTextOptions{
//	    EmbModel:     core.EmbModelTextEmbedding3Small,
//	    MaxChunkSize: core.Ptr(200),
//	})
func NewEmbText(text string, opts *EmbTextOptions) (*EmbText, error) {
	if opts == nil {
		opts = &EmbTextOptions{}
	}
	if text == "" {
		return nil, &ValidationError{Field: "data", Message: "must be a non-empty string"}
	}
	if opts.EmbModel != "" && !opts.EmbModel.IsValid() {
		return nil, &ValidationError{
			Field:   "embeddingModel",
			Message: fmt.Sprintf("unsupported value %q", string(opts.EmbModel)),
			Allowed: stringSlice(SupportedEmbModels),
		}
	}
	if err := validateChunking(opts.MaxChunkSize, opts.ChunkOverlap); err != nil {
		return nil, err
	}

	return &EmbText{
		data:             text,
		embModel:         opts.EmbModel,
		maxChunkSize:     copyPtr(opts.MaxChunkSize),
		chunkOverlap:     copyPtr(opts.ChunkOverlap),
		isSeparatorRegex: copyPtr(opts.IsSeparatorRegex),
		separators:       copyStrings(opts.Separators),
		keepSeparator:    copyPtr(opts.KeepSeparator),
	}, nil
}

// Data returns the text payload.
func (t *EmbText) Data() string { return t.data }

// EmbModel returns the selected embedding model, or "" when unset.
func (t *EmbText) EmbModel() EmbModel { return t.embModel }

// MaxChunkSize returns the chunk size cap, or nil when unset.
func (t *EmbText) MaxChunkSize() *int { return copyPtr(t.maxChunkSize) }

// ChunkOverlap returns the chunk overlap, or nil when unset.
func (t *EmbText) ChunkOverlap() *int { return copyPtr(t.chunkOverlap) }

// IsSeparatorRegex returns the separator-regex flag, or nil when unset.
func (t *EmbText) IsSeparatorRegex() *bool { return copyPtr(t.isSeparatorRegex) }

// Separators returns a copy of the chunking separators.
func (t *EmbText) Separators() []string { return copyStrings(t.separators) }

// KeepSeparator returns the keep-separator flag, or nil when unset.
func (t *EmbText) KeepSeparator() *bool { return copyPtr(t.keepSeparator) }

// Chunks returns a copy of the server-computed chunks. It is empty
// until the value has round-tripped through the service.
func (t *EmbText) Chunks() []string { return copyStrings(t.chunks) }

// ToWire implements [MediaObject]. The inner object always carries
// data, carries each optional directive only when set, and carries
// chunks only when non-empty. Absent means omitted, never null.
func (t *EmbText) ToWire() map[string]any {
	fields := map[string]any{"data": t.data}
	if len(t.chunks) > 0 {
		fields["chunks"] = copyStrings(t.chunks)
	}
	if t.embModel != "" {
		fields["embeddingModel"] = string(t.embModel)
	}
	if t.maxChunkSize != nil {
		fields["maxChunkSize"] = *t.maxChunkSize
	}
	if t.chunkOverlap != nil {
		fields["chunkOverlap"] = *t.chunkOverlap
	}
	if t.isSeparatorRegex != nil {
		fields["isSeparatorRegex"] = *t.isSeparatorRegex
	}
	if t.separators != nil {
		fields["separators"] = copyStrings(t.separators)
	}
	if t.keepSeparator != nil {
		fields["keepSeparator"] = *t.keepSeparator
	}
	return map[string]any{WireTagEmbText: fields}
}

// EmbTextFromWire reconstructs an EmbText from the inner wire object,
// the map stored under the "@embText" tag. It runs the same validation
// as [NewEmbText] and then attaches the server-computed chunks; this is
// the only path that populates chunks.
func EmbTextFromWire(fields map[string]any) (*EmbText, error) {
	data, err := wireString(fields, "data", true)
	if err != nil {
		return nil, err
	}

	opts := &EmbTextOptions{}
	model, err := wireString(fields, "embeddingModel", false)
	if err != nil {
		return nil, err
	}
	opts.EmbModel = EmbModel(model)
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

	t, err := NewEmbText(data, opts)
	if err != nil {
		return nil, err
	}
	if t.chunks, err = wireStrings(fields, "chunks"); err != nil {
		return nil, err
	}
	return t, nil
}

// Compile-time check that EmbText implements MediaObject.
var _ MediaObject = (*EmbText)(nil)
