package core

// EmbModel identifies the embedding model the service runs over a media
// object's content. The service rejects unknown models, so membership
// is checked client-side at construction.
type EmbModel string

// Supported embedding models.
const (
	EmbModelTextEmbedding3Small EmbModel = "text-embedding-3-small"
	EmbModelTextEmbedding3Large EmbModel = "text-embedding-3-large"
	EmbModelTextEmbeddingAda002 EmbModel = "text-embedding-ada-002"
)

// SupportedEmbModels is the fixed set of embedding models the service
// accepts.
var SupportedEmbModels = []EmbModel{
	EmbModelTextEmbedding3Small,
	EmbModelTextEmbedding3Large,
	EmbModelTextEmbeddingAda002,
}

// IsValid reports whether the embedding model is supported.
func (m EmbModel) IsValid() bool {
	for _, v := range SupportedEmbModels {
		if m == v {
			return true
		}
	}
	return false
}

// VisionModel identifies the vision model the service uses to describe
// an image before embedding it.
type VisionModel string

// Supported vision models.
const (
	VisionModelGPT4oMini  VisionModel = "gpt-4o-mini"
	VisionModelGPT4o      VisionModel = "gpt-4o"
	VisionModelGPT4oTurbo VisionModel = "gpt-4o-turbo"
	VisionModelO1         VisionModel = "o1"
)

// SupportedVisionModels is the fixed set of vision models the service
// accepts.
var SupportedVisionModels = []VisionModel{
	VisionModelGPT4oMini,
	VisionModelGPT4o,
	VisionModelGPT4oTurbo,
	VisionModelO1,
}

// IsValid reports whether the vision model is supported.
func (m VisionModel) IsValid() bool {
	for _, v := range SupportedVisionModels {
		if m == v {
			return true
		}
	}
	return false
}

// MimeType identifies an image format accepted by the service.
type MimeType string

// Supported image MIME types.
const (
	MimeTypeJPEG MimeType = "image/jpeg"
	MimeTypeJPG  MimeType = "image/jpg"
	MimeTypePNG  MimeType = "image/png"
	MimeTypeGIF  MimeType = "image/gif"
	MimeTypeWebP MimeType = "image/webp"
)

// SupportedMimeTypes is the fixed set of image MIME types the service
// accepts.
var SupportedMimeTypes = []MimeType{
	MimeTypeJPEG,
	MimeTypeJPG,
	MimeTypePNG,
	MimeTypeGIF,
	MimeTypeWebP,
}

// IsValid reports whether the MIME type is supported.
func (m MimeType) IsValid() bool {
	for _, v := range SupportedMimeTypes {
		if m == v {
			return true
		}
	}
	return false
}
