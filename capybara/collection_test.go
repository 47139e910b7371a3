package capybara

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/capybaradb/capybaradb-go/core"
)

// newTestCollection returns a collection pointed at the test server.
func newTestCollection(t *testing.T, serverURL string, opts ...Option) *Collection {
	t.Helper()

	opts = append([]Option{WithBaseURL(serverURL)}, opts...)
	client, err := New("test-key", "proj", opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client.Database("testdb").Collection("articles")
}

// decodeBody decodes the request body into a map.
func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		t.Fatalf("reading request body: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("request body is not JSON: %v\n%s", err, raw)
	}
	return body
}

func TestInsert(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %q, want POST", r.Method)
		}
		if r.URL.Path != "/db/proj_testdb/collection/articles/document" {
			t.Errorf("Path = %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Error("Authorization header incorrect")
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Error("Content-Type header incorrect")
		}

		body := decodeBody(t, r)
		docs, ok := body["documents"].([]any)
		if !ok || len(docs) != 1 {
			t.Fatalf("documents = %v, want one document", body["documents"])
		}

		// The media object must arrive in wire form.
		doc := docs[0].(map[string]any)
		wire, ok := doc["body"].(map[string]any)
		if !ok {
			t.Fatalf("body field = %v, want wire object", doc["body"])
		}
		if _, ok := wire["@embText"]; !ok {
			t.Errorf("body field not transformed: %v", wire)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"inserted_ids": []string{"a1"},
		})
	}))
	defer server.Close()

	note, err := core.NewEmbText("capybaras are semi-aquatic", nil)
	if err != nil {
		t.Fatalf("NewEmbText() error = %v", err)
	}

	col := newTestCollection(t, server.URL)
	result, err := col.Insert(context.Background(), []core.Document{
		{"title": "capybara facts", "body": note},
	})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	ids, ok := result["inserted_ids"].([]any)
	if !ok || len(ids) != 1 || ids[0] != "a1" {
		t.Errorf("Insert() result = %v, want inserted_ids [a1]", result)
	}
}

func TestInsertNoDocuments(t *testing.T) {
	col := newTestCollection(t, "http://unused")

	_, err := col.Insert(context.Background(), nil)
	if !errors.Is(err, ErrNoDocuments) {
		t.Errorf("Insert(nil) error = %v, want ErrNoDocuments", err)
	}
}

func TestInsertDoesNotMutateInput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer server.Close()

	note, err := core.NewEmbText("hello", nil)
	if err != nil {
		t.Fatalf("NewEmbText() error = %v", err)
	}
	doc := core.Document{"body": note}

	col := newTestCollection(t, server.URL)
	if _, err := col.Insert(context.Background(), []core.Document{doc}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if _, ok := doc["body"].(*core.EmbText); !ok {
		t.Errorf("Insert() mutated the caller's document: body = %T", doc["body"])
	}
}

func TestUpdate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("Method = %q, want PUT", r.Method)
		}

		body := decodeBody(t, r)
		if _, ok := body["filter"].(map[string]any); !ok {
			t.Errorf("filter = %v, want object", body["filter"])
		}
		if upsert, ok := body["upsert"].(bool); !ok || !upsert {
			t.Errorf("upsert = %v, want true", body["upsert"])
		}

		update, ok := body["update"].(map[string]any)
		if !ok {
			t.Fatalf("update = %v, want object", body["update"])
		}
		wire, ok := update["body"].(map[string]any)
		if !ok {
			t.Fatalf("update.body = %v, want wire object", update["body"])
		}
		if _, ok := wire["@embText"]; !ok {
			t.Errorf("update document not transformed: %v", wire)
		}

		json.NewEncoder(w).Encode(map[string]any{"modified_count": float64(1)})
	}))
	defer server.Close()

	note, err := core.NewEmbText("updated text", nil)
	if err != nil {
		t.Fatalf("NewEmbText() error = %v", err)
	}

	col := newTestCollection(t, server.URL)
	result, err := col.Update(context.Background(),
		core.Document{"title": "capybara facts"},
		core.Document{"body": note},
		true)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if result["modified_count"] != float64(1) {
		t.Errorf("Update() result = %v", result)
	}
}

func TestDeleteSendsEmptyObjectForNilFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("Method = %q, want DELETE", r.Method)
		}

		body := decodeBody(t, r)
		filter, ok := body["filter"].(map[string]any)
		if !ok {
			t.Fatalf("filter = %v (%T), want {} not null", body["filter"], body["filter"])
		}
		if len(filter) != 0 {
			t.Errorf("filter = %v, want empty object", filter)
		}

		json.NewEncoder(w).Encode(map[string]any{"deleted_count": float64(0)})
	}))
	defer server.Close()

	col := newTestCollection(t, server.URL)
	if _, err := col.Delete(context.Background(), nil); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

func TestFind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/db/proj_testdb/collection/articles/document/find" {
			t.Errorf("Path = %q", r.URL.Path)
		}

		body := decodeBody(t, r)
		if body["limit"] != float64(10) {
			t.Errorf("limit = %v, want 10", body["limit"])
		}
		if body["skip"] != float64(5) {
			t.Errorf("skip = %v, want 5", body["skip"])
		}
		if _, ok := body["sort"]; !ok {
			t.Error("sort missing from request body")
		}
		// Unset options must be omitted, not sent as null.
		if _, ok := body["projection"]; ok {
			t.Error("projection should be omitted when unset")
		}

		json.NewEncoder(w).Encode(map[string]any{
			"docs": []any{
				map[string]any{"_id": "a1", "title": "one"},
				map[string]any{"_id": "a2", "title": "two"},
			},
		})
	}))
	defer server.Close()

	col := newTestCollection(t, server.URL)
	docs, err := col.Find(core.Document{"author": "capybara"}).
		Sort(core.Document{"title": 1}).
		Limit(10).
		Skip(5).
		Run(context.Background())
	if err != nil {
		t.Fatalf("Find().Run() error = %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("Find() returned %d documents, want 2", len(docs))
	}
	if docs[0]["_id"] != "a1" || docs[1]["_id"] != "a2" {
		t.Errorf("Find() docs = %v", docs)
	}
}

func TestFindBareArrayResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		json.NewEncoder(w).Encode([]any{
			map[string]any{"_id": "a1"},
		})
	}))
	defer server.Close()

	col := newTestCollection(t, server.URL)
	docs, err := col.Find(nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Find().Run() error = %v", err)
	}
	if len(docs) != 1 || docs[0]["_id"] != "a1" {
		t.Errorf("Find() docs = %v", docs)
	}
}

func TestQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/db/proj_testdb/collection/articles/document/query" {
			t.Errorf("Path = %q", r.URL.Path)
		}

		body := decodeBody(t, r)
		if body["query"] != "how do capybaras sleep?" {
			t.Errorf("query = %v", body["query"])
		}
		if body["emb_model"] != "text-embedding-3-small" {
			t.Errorf("emb_model = %v", body["emb_model"])
		}
		if body["top_k"] != float64(3) {
			t.Errorf("top_k = %v, want 3", body["top_k"])
		}
		if _, ok := body["include_values"]; ok {
			t.Error("include_values should be omitted when unset")
		}

		json.NewEncoder(w).Encode(map[string]any{
			"matches": []any{
				map[string]any{"chunk": "capybaras sleep in water", "score": 0.92},
			},
		})
	}))
	defer server.Close()

	col := newTestCollection(t, server.URL)
	matches, err := col.Query("how do capybaras sleep?").
		EmbModel(core.EmbModelTextEmbedding3Small).
		TopK(3).
		Run(context.Background())
	if err != nil {
		t.Fatalf("Query().Run() error = %v", err)
	}

	if len(matches) != 1 {
		t.Fatalf("Query() returned %d matches, want 1", len(matches))
	}
	if matches[0]["chunk"] != "capybaras sleep in water" {
		t.Errorf("Query() matches = %v", matches)
	}
}

func TestQueryEmpty(t *testing.T) {
	col := newTestCollection(t, "http://unused")

	_, err := col.Query("").Run(context.Background())
	if !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("Query(\"\").Run() error = %v, want ErrEmptyQuery", err)
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantSentinel error
		wantCode     int
		wantMessage  string
	}{
		{
			name:         "authentication",
			status:       401,
			body:         `{"code": 401, "message": "bad key"}`,
			wantSentinel: core.ErrAuthentication,
			wantCode:     401,
			wantMessage:  "bad key",
		},
		{
			name:         "client request",
			status:       404,
			body:         `{"code": 404, "message": "not found"}`,
			wantSentinel: core.ErrClientRequest,
			wantCode:     404,
			wantMessage:  "not found",
		},
		{
			name:         "server",
			status:       500,
			body:         `{"code": 500, "message": "boom"}`,
			wantSentinel: core.ErrServer,
			wantCode:     500,
			wantMessage:  "boom",
		},
		{
			name:         "non-JSON body",
			status:       502,
			body:         "upstream down",
			wantSentinel: core.ErrDecode,
			wantCode:     502,
			wantMessage:  "upstream down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.Copy(io.Discard, r.Body)
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer server.Close()

			col := newTestCollection(t, server.URL)
			_, err := col.Find(nil).Run(context.Background())
			if err == nil {
				t.Fatal("Find().Run() error = nil, want classified error")
			}

			if !errors.Is(err, tt.wantSentinel) {
				t.Errorf("error = %v, want sentinel %v", err, tt.wantSentinel)
			}

			var apiErr *core.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error %T, want *core.APIError", err)
			}
			if apiErr.StatusCode != tt.wantCode {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.wantCode)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMessage)
			}
		})
	}
}

func TestNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	col := newTestCollection(t, server.URL)
	_, err := col.Find(nil).Run(context.Background())
	if !errors.Is(err, core.ErrNetwork) {
		t.Errorf("Find().Run() error = %v, want ErrNetwork", err)
	}
}

func TestNoRetriesByDefault(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"code": 500, "message": "boom"}`)
	}))
	defer server.Close()

	col := newTestCollection(t, server.URL)
	_, err := col.Find(nil).Run(context.Background())
	if !errors.Is(err, core.ErrServer) {
		t.Fatalf("error = %v, want ErrServer", err)
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("server called %d times, want 1 (no retries by default)", got)
	}
}

func TestRetryPolicyRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `{"code": 500, "message": "boom"}`)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"docs": []any{}})
	}))
	defer server.Close()

	policy := NewRetryPolicy(RetryConfig{
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
		MaxDelay:   10 * time.Millisecond,
		Jitter:     0,
	})

	col := newTestCollection(t, server.URL, WithRetryPolicy(policy))
	docs, err := col.Find(nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Find().Run() error = %v, want success after retries", err)
	}
	if len(docs) != 0 {
		t.Errorf("docs = %v, want empty", docs)
	}

	if got := calls.Load(); got != 3 {
		t.Errorf("server called %d times, want 3", got)
	}
}

func TestRetryPolicyDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"code": 404, "message": "not found"}`)
	}))
	defer server.Close()

	col := newTestCollection(t, server.URL, WithRetryPolicy(DefaultRetryPolicy()))
	_, err := col.Find(nil).Run(context.Background())
	if !errors.Is(err, core.ErrClientRequest) {
		t.Fatalf("error = %v, want ErrClientRequest", err)
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("server called %d times, want 1", got)
	}
}

// recordingHook captures telemetry events for inspection.
type recordingHook struct {
	starts []RequestStartEvent
	ends   []RequestEndEvent
}

func (h *recordingHook) OnRequestStart(e RequestStartEvent) { h.starts = append(h.starts, e) }
func (h *recordingHook) OnRequestEnd(e RequestEndEvent)     { h.ends = append(h.ends, e) }

func TestTelemetryEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		json.NewEncoder(w).Encode(map[string]any{"docs": []any{}})
	}))
	defer server.Close()

	hook := &recordingHook{}
	col := newTestCollection(t, server.URL, WithTelemetry(hook))
	if _, err := col.Find(nil).Run(context.Background()); err != nil {
		t.Fatalf("Find().Run() error = %v", err)
	}

	if len(hook.starts) != 1 || len(hook.ends) != 1 {
		t.Fatalf("starts = %d, ends = %d, want 1 each", len(hook.starts), len(hook.ends))
	}

	start := hook.starts[0]
	if start.Operation != "find" || start.Database != "testdb" || start.Collection != "articles" {
		t.Errorf("start event = %+v", start)
	}

	end := hook.ends[0]
	if end.Status != http.StatusOK {
		t.Errorf("end.Status = %d, want 200", end.Status)
	}
	if end.Err != nil {
		t.Errorf("end.Err = %v, want nil", end.Err)
	}
	if end.Duration() < 0 {
		t.Errorf("end.Duration() = %v, want >= 0", end.Duration())
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]any{"docs": []any{}})
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	col := newTestCollection(t, server.URL)
	_, err := col.Find(nil).Run(ctx)
	if err == nil {
		t.Fatal("Find().Run() error = nil, want context error")
	}
	if !errors.Is(err, core.ErrNetwork) {
		t.Errorf("error = %v, want ErrNetwork wrapping the context failure", err)
	}
}
