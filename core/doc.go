// Package core provides the CapybaraDB document model: media objects,
// document transformation, and response classification.
//
// CapybaraDB stores JSON-like documents and embeds the rich media
// inside them server-side. This package is the portable half of the
// SDK: it knows the wire formats and the service's error envelope but
// performs no I/O. The capybara package is its transport consumer.
//
// # Media Objects
//
// [EmbText] and [EmbImage] wrap values the service should chunk,
// embed, and index. Both validate at construction and are immutable
// afterwards:
//
//	note, err := core.NewEmbText("CapybaraDB is a database for AI.", &core.EmbTextOptions{
//	    EmbModel:     core.EmbModelTextEmbedding3Small,
//	    MaxChunkSize: core.Ptr(200),
//	    ChunkOverlap: core.Ptr(20),
//	})
//
// On the wire a media object is a single-key tagged object:
//
//	{"@embText": {"data": "...", "embeddingModel": "text-embedding-3-small", ...}}
//
// Unset directives are omitted entirely, never sent as null. The
// server-computed chunks appear only in documents read back from the
// service; [EmbTextFromWire], [EmbImageFromWire], and [DecodeMedia]
// are the only paths that populate them.
//
// # Document Transformation
//
// [Transform] walks a [Document] and replaces every reachable media
// object with its wire form:
//
//	doc := core.Document{
//	    "title": "getting started",
//	    "body":  note,
//	}
//	payload := core.Transform(doc)
//
// The walk recurses through nested mappings, including mappings inside
// sequences. Media objects placed directly inside a sequence are not
// serialized; wrap them in a mapping instead. See [Transform] for the
// full walking contract.
//
// # Response Classification
//
// [Classify] turns a transport status and raw body into a decoded
// payload or a typed error:
//
//	payload, err := core.Classify(resp.StatusCode, body)
//	if errors.Is(err, core.ErrAuthentication) {
//	    // bad or missing API key
//	}
//
// Errors carry the service's application code and message as an
// [APIError] wrapping one of the sentinels: [ErrAuthentication],
// [ErrClientRequest], [ErrServer], [ErrDecode], or [ErrNetwork].
// Construction failures are reported as [ValidationError].
package core
