package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scrollplot/pkg/dataset"
	"github.com/matzehuels/scrollplot/pkg/pipeline"
	"github.com/matzehuels/scrollplot/pkg/story"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := dataset.New(1990, map[string]dataset.Series{
		"Engineering": {{A: 10, B: 5}, {A: 12, B: 6}, {A: 15, B: 20}},
	})
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}
	s := &story.Story{
		Title:           "Women in <science>",
		StartYear:       1990,
		EndYear:         1992,
		DefaultCategory: "Engineering",
		Steps: []story.Step{
			{Text: "First", Category: "Engineering", MaxYear: 1990},
			{Text: "Second", Category: "Engineering", MaxYear: 1992, ShowLine: true},
		},
	}
	s.SetDefaults()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	return New(&story.Bundle{Story: s, Store: store}, runner, WithSize(400))
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := get(t, newTestServer(t).Handler(), "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	if body["steps"] != float64(2) {
		t.Errorf("steps = %v, want 2", body["steps"])
	}
}

func TestIndex(t *testing.T) {
	w := get(t, newTestServer(t).Handler(), "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Women in &lt;science&gt;", "First", "Second", `src="/frames/-1.svg"`} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}
}

func TestStoryAndData(t *testing.T) {
	h := newTestServer(t).Handler()

	w := get(t, h, "/story.json")
	var s story.Story
	if err := json.Unmarshal(w.Body.Bytes(), &s); err != nil {
		t.Fatalf("story.json: %v", err)
	}
	if s.Len() != 2 || s.DefaultCategory != "Engineering" {
		t.Errorf("story = %+v", s)
	}

	w = get(t, h, "/data.json")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Engineering") {
		t.Errorf("data.json status = %d body = %s", w.Code, w.Body.String())
	}
}

func TestFrames(t *testing.T) {
	h := newTestServer(t).Handler()

	tests := []struct {
		path       string
		wantStatus int
		wantType   string
	}{
		{"/frames/-1.svg", http.StatusOK, "image/svg+xml"},
		{"/frames/0.svg", http.StatusOK, "image/svg+xml"},
		{"/frames/1.json", http.StatusOK, "application/json"},
		{"/frames/1.json?at=100", http.StatusOK, "application/json"},
		{"/frames/2.svg", http.StatusNotFound, "application/json"},
		{"/frames/-2.svg", http.StatusNotFound, "application/json"},
		{"/frames/x.svg", http.StatusBadRequest, "application/json"},
		{"/frames/0.pdf", http.StatusBadRequest, "application/json"},
		{"/frames/0.svg?at=-5", http.StatusBadRequest, "application/json"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(t, h, tt.path)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, tt.wantType) {
				t.Errorf("content type = %q, want %q", ct, tt.wantType)
			}
		})
	}
}

func TestFrameSVGCacheHeader(t *testing.T) {
	h := newTestServer(t).Handler()
	body := get(t, h, "/frames/1.svg").Body.String()
	if !strings.HasPrefix(body, "<svg") {
		t.Fatalf("not an svg: %.60s", body)
	}
	if w := get(t, h, "/frames/1.svg"); w.Header().Get("X-Cache") != "MISS" {
		t.Errorf("X-Cache = %q, want MISS with caching disabled", w.Header().Get("X-Cache"))
	}
}

func TestRequestIDHeader(t *testing.T) {
	h := newTestServer(t).Handler()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "abc")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	srv := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
