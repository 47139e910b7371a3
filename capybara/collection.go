package capybara

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/capybaradb/capybaradb-go/core"
)

// Collection is a handle on a named collection of documents.
// Collection is safe for concurrent use.
type Collection struct {
	client   *Client
	database string
	name     string
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

// documentURL returns the document endpoint for this collection.
// Databases are addressed as {projectID}_{database}.
func (c *Collection) documentURL() string {
	return fmt.Sprintf("%s/db/%s_%s/collection/%s/document",
		c.client.config.BaseURL, c.client.config.ProjectID, c.database, c.name)
}

// Insert writes documents to the collection. Every document is passed
// through [core.Transform] first, so media objects are serialized to
// their wire form. The service response describes the written
// documents (including their IDs).
func (c *Collection) Insert(ctx context.Context, documents []core.Document) (core.Document, error) {
	if len(documents) == 0 {
		return nil, ErrNoDocuments
	}

	transformed := make([]core.Document, len(documents))
	for i, doc := range documents {
		transformed[i] = core.Transform(doc)
	}

	payload, status, err := c.do(ctx, "insert", http.MethodPost, c.documentURL(), map[string]any{
		"documents": transformed,
	})
	if err != nil {
		return nil, err
	}
	return asDocument(payload, status)
}

// Update modifies documents matching filter. Only the update document
// is transformed; filters never carry media objects. When upsert is
// true a matching failure inserts the update instead.
func (c *Collection) Update(ctx context.Context, filter, update core.Document, upsert bool) (core.Document, error) {
	payload, status, err := c.do(ctx, "update", http.MethodPut, c.documentURL(), map[string]any{
		"filter": orEmpty(filter),
		"update": orEmpty(core.Transform(update)),
		"upsert": upsert,
	})
	if err != nil {
		return nil, err
	}
	return asDocument(payload, status)
}

// Delete removes documents matching filter.
func (c *Collection) Delete(ctx context.Context, filter core.Document) (core.Document, error) {
	payload, status, err := c.do(ctx, "delete", http.MethodDelete, c.documentURL(), map[string]any{
		"filter": orEmpty(filter),
	})
	if err != nil {
		return nil, err
	}
	return asDocument(payload, status)
}

// Find starts a filter-based read. Configure the returned builder and
// call Run:
//
//	docs, err := col.Find(core.Document{"author": "capybara"}).
//	    Sort(core.Document{"title": 1}).
//	    Limit(10).
//	    Run(ctx)
func (c *Collection) Find(filter core.Document) *FindBuilder {
	return &FindBuilder{collection: c, filter: filter}
}

// Query starts a semantic search over the collection's embedded media.
// Configure the returned builder and call Run:
//
//	matches, err := col.Query("how do capybaras sleep?").
//	    TopK(5).
//	    Run(ctx)
func (c *Collection) Query(query string) *QueryBuilder {
	return &QueryBuilder{collection: c, query: query}
}

// FindBuilder accumulates options for a find request.
// FindBuilder is NOT thread-safe and should not be shared across goroutines.
type FindBuilder struct {
	collection *Collection
	filter     core.Document
	projection core.Document
	sort       core.Document
	limit      *int
	skip       *int
}

// Projection restricts the fields returned for each document.
func (b *FindBuilder) Projection(p core.Document) *FindBuilder {
	b.projection = p
	return b
}

// Sort orders the results, MongoDB style: {"field": 1} ascending,
// {"field": -1} descending.
func (b *FindBuilder) Sort(s core.Document) *FindBuilder {
	b.sort = s
	return b
}

// Limit caps the number of returned documents.
func (b *FindBuilder) Limit(n int) *FindBuilder {
	b.limit = &n
	return b
}

// Skip skips the first n matching documents.
func (b *FindBuilder) Skip(n int) *FindBuilder {
	b.skip = &n
	return b
}

// Run executes the find request. Unset options are omitted from the
// request body.
func (b *FindBuilder) Run(ctx context.Context) ([]core.Document, error) {
	body := map[string]any{"filter": orEmpty(b.filter)}
	if b.projection != nil {
		body["projection"] = b.projection
	}
	if b.sort != nil {
		body["sort"] = b.sort
	}
	if b.limit != nil {
		body["limit"] = *b.limit
	}
	if b.skip != nil {
		body["skip"] = *b.skip
	}

	c := b.collection
	payload, status, err := c.do(ctx, "find", http.MethodPost, c.documentURL()+"/find", body)
	if err != nil {
		return nil, err
	}
	return documentList(payload, status)
}

// QueryBuilder accumulates options for a semantic query request.
// QueryBuilder is NOT thread-safe and should not be shared across goroutines.
type QueryBuilder struct {
	collection    *Collection
	query         string
	embModel      core.EmbModel
	topK          *int
	includeValues *bool
	projection    core.Document
}

// EmbModel selects the embedding model the query text is embedded with.
// It should match the model the stored media was embedded with.
func (b *QueryBuilder) EmbModel(m core.EmbModel) *QueryBuilder {
	b.embModel = m
	return b
}

// TopK caps the number of returned matches.
func (b *QueryBuilder) TopK(n int) *QueryBuilder {
	b.topK = &n
	return b
}

// IncludeValues includes the matched chunk vectors in the response.
func (b *QueryBuilder) IncludeValues(v bool) *QueryBuilder {
	b.includeValues = &v
	return b
}

// Projection restricts the fields returned for each match.
func (b *QueryBuilder) Projection(p core.Document) *QueryBuilder {
	b.projection = p
	return b
}

// Run executes the query request. Unset options are omitted from the
// request body.
func (b *QueryBuilder) Run(ctx context.Context) ([]core.Document, error) {
	if b.query == "" {
		return nil, ErrEmptyQuery
	}

	body := map[string]any{"query": b.query}
	if b.embModel != "" {
		body["emb_model"] = string(b.embModel)
	}
	if b.topK != nil {
		body["top_k"] = *b.topK
	}
	if b.includeValues != nil {
		body["include_values"] = *b.includeValues
	}
	if b.projection != nil {
		body["projection"] = b.projection
	}

	c := b.collection
	payload, status, err := c.do(ctx, "query", http.MethodPost, c.documentURL()+"/query", body)
	if err != nil {
		return nil, err
	}
	return documentList(payload, status)
}

// do marshals body, sends the request with telemetry and optional
// retries, and returns the classified payload plus the HTTP status of
// the final attempt.
func (c *Collection) do(ctx context.Context, op, method, url string, body map[string]any) (any, int, error) {
	cfg := c.client.config

	reqBody, err := json.Marshal(body)
	if err != nil {
		return nil, 0, &core.APIError{Message: err.Error(), Err: core.ErrDecode}
	}

	start := time.Now()
	cfg.Telemetry.OnRequestStart(RequestStartEvent{
		Operation:  op,
		Database:   c.database,
		Collection: c.name,
		Start:      start,
	})

	var payload any
	var status int

retryLoop:
	for attempt := 0; ; attempt++ {
		payload, status, err = c.send(ctx, method, url, reqBody)
		if err == nil {
			break
		}

		if cfg.Retry == nil {
			break
		}
		delay, shouldRetry := cfg.Retry.NextDelay(attempt, err)
		if !shouldRetry {
			break
		}

		// Wait before retry, respecting context cancellation
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break retryLoop
		case <-time.After(delay):
			continue
		}
	}

	cfg.Telemetry.OnRequestEnd(RequestEndEvent{
		Operation:  op,
		Database:   c.database,
		Collection: c.name,
		Start:      start,
		End:        time.Now(),
		Status:     status,
		Err:        err,
	})

	return payload, status, err
}

// send performs a single HTTP round-trip and classifies the response.
func (c *Collection) send(ctx context.Context, method, url string, body []byte) (any, int, error) {
	cfg := c.client.config

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, newNetworkError(err)
	}

	for key, values := range c.client.buildHeaders() {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, newNetworkError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, newNetworkError(err)
	}

	payload, err := core.Classify(resp.StatusCode, respBody)
	return payload, resp.StatusCode, err
}

// newNetworkError wraps a transport failure as an APIError.
func newNetworkError(err error) error {
	return &core.APIError{Message: err.Error(), Err: core.ErrNetwork}
}

// orEmpty substitutes an empty document for nil so request bodies
// carry {} rather than null.
func orEmpty(doc core.Document) core.Document {
	if doc == nil {
		return core.Document{}
	}
	return doc
}

// asDocument coerces a classified success payload into a Document.
func asDocument(payload any, status int) (core.Document, error) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, &core.APIError{
			StatusCode: status,
			Message:    fmt.Sprintf("unexpected response shape %T, want object", payload),
			Err:        core.ErrDecode,
		}
	}
	return core.Document(obj), nil
}

// documentList coerces a classified success payload into a document
// list. The service returns either a bare array or an object carrying
// the list under "docs" (find) or "matches" (query).
func documentList(payload any, status int) ([]core.Document, error) {
	switch v := payload.(type) {
	case []any:
		return coerceDocuments(v, status)
	case map[string]any:
		if docs, ok := v["docs"].([]any); ok {
			return coerceDocuments(docs, status)
		}
		if matches, ok := v["matches"].([]any); ok {
			return coerceDocuments(matches, status)
		}
	}
	return nil, &core.APIError{
		StatusCode: status,
		Message:    fmt.Sprintf("unexpected response shape %T, want document list", payload),
		Err:        core.ErrDecode,
	}
}

// coerceDocuments converts decoded JSON array elements to Documents.
func coerceDocuments(items []any, status int) ([]core.Document, error) {
	docs := make([]core.Document, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, &core.APIError{
				StatusCode: status,
				Message:    fmt.Sprintf("unexpected element shape %T at index %d, want object", item, i),
				Err:        core.ErrDecode,
			}
		}
		docs[i] = core.Document(obj)
	}
	return docs, nil
}
