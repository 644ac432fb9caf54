package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bugu00/chorogrid/pkg/cache"
	"github.com/bugu00/chorogrid/pkg/grid"
)

func testServer(t *testing.T) *renderServer {
	t.Helper()
	table, err := grid.Read(strings.NewReader("abbrev,square_x,square_y\nAA,0,0\nBB,1,0\nCC,0,1\n"))
	if err != nil {
		t.Fatal(err)
	}
	return &renderServer{
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		table:    table,
		gridHash: "testgrid",
		idColumn: "abbrev",
		cache:    cache.NewNullCache(),
		ttl:      time.Minute,
	}
}

func postRender(t *testing.T, srv *renderServer, chart string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/render/"+chart, bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)
	return rec
}

func TestServeHealthz(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestServePalettes(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/palettes", nil)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var names []string
	if err := json.Unmarshal(rec.Body.Bytes(), &names); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(names) == 0 {
		t.Error("palette list is empty")
	}
}

func TestServeRender(t *testing.T) {
	srv := testServer(t)
	rec := postRender(t, srv, "squares", renderRequest{
		Values:  map[string]float64{"AA": 1, "BB": 5, "CC": 10},
		Palette: "Greys",
		Bins:    3,
		Title:   "Test",
		Legend:  true,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get("X-Cache") != "miss" {
		t.Errorf("X-Cache = %q, want miss", rec.Header().Get("X-Cache"))
	}
	body := rec.Body.String()
	for _, want := range []string{"<svg", `rect id="rectAA"`, "Test", "legendbox0"} {
		if !strings.Contains(body, want) {
			t.Errorf("response missing %q", want)
		}
	}
}

func TestServeRenderCacheHit(t *testing.T) {
	srv := testServer(t)
	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	srv.cache = backend

	body := renderRequest{Values: map[string]float64{"AA": 1, "BB": 2}}
	if rec := postRender(t, srv, "squares", body); rec.Header().Get("X-Cache") != "miss" {
		t.Fatalf("first request X-Cache = %q, want miss", rec.Header().Get("X-Cache"))
	}
	if rec := postRender(t, srv, "squares", body); rec.Header().Get("X-Cache") != "hit" {
		t.Errorf("second request X-Cache = %q, want hit", rec.Header().Get("X-Cache"))
	}
}

func TestServeRenderErrors(t *testing.T) {
	srv := testServer(t)

	if rec := postRender(t, srv, "pie", renderRequest{Values: map[string]float64{"AA": 1}}); rec.Code != http.StatusNotFound {
		t.Errorf("unknown chart: status = %d, want 404", rec.Code)
	}
	if rec := postRender(t, srv, "squares", renderRequest{}); rec.Code != http.StatusBadRequest {
		t.Errorf("empty values: status = %d, want 400", rec.Code)
	}
	if rec := postRender(t, srv, "squares", renderRequest{
		Values:  map[string]float64{"AA": 1},
		Palette: "NotAPalette",
	}); rec.Code != http.StatusNotFound {
		t.Errorf("unknown palette: status = %d, want 404", rec.Code)
	}
}
