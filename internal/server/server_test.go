package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/canopy/pkg/cache"
	"github.com/matzehuels/canopy/pkg/graph"
)

const simpleGraphJSON = `{
	"directed": true,
	"nodes": [{"label": "A"}, {"label": "B"}],
	"edges": [{"from": 0, "to": 1}]
}`

const simpleGraphDiagram = "flowchart TD\n" +
	"    0[\"A\"]\n" +
	"    1[\"B\"]\n" +
	"    0 --> 1\n"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := New(NewMemoryStore(), cache.NewNullCache(), 0, nil, nil)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/api/render", "application/json", strings.NewReader(simpleGraphJSON))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != simpleGraphDiagram {
		t.Errorf("diagram = %q, want %q", body, simpleGraphDiagram)
	}
}

func TestRenderWithFlags(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/api/render?flag=node-index-label", "application/json", strings.NewReader(simpleGraphJSON))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `0["0"]`) {
		t.Errorf("diagram = %q, want index labels", body)
	}
}

func TestRenderUnknownFlag(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/api/render?flag=bogus", "application/json", strings.NewReader(simpleGraphJSON))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRenderInvalidBody(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/api/render", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGraphLifecycle(t *testing.T) {
	ts := newTestServer(t)
	client := ts.Client()

	put, err := http.NewRequest(http.MethodPut, ts.URL+"/api/graphs/demo", strings.NewReader(simpleGraphJSON))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := client.Do(put)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("PUT status = %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/api/graphs/demo")
	if err != nil {
		t.Fatal(err)
	}
	var doc graph.Doc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if len(doc.Nodes) != 2 || len(doc.Edges) != 1 || !doc.Directed {
		t.Errorf("stored doc = %+v", doc)
	}

	resp, err = http.Get(ts.URL + "/api/graphs")
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	if err := json.NewDecoder(resp.Body).Decode(&names); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if len(names) != 1 || names[0] != "demo" {
		t.Errorf("names = %v", names)
	}

	resp, err = http.Get(ts.URL + "/api/graphs/demo/diagram")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != simpleGraphDiagram {
		t.Errorf("diagram = %q", body)
	}

	del, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/graphs/demo", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err = client.Do(del)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("DELETE status = %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/api/graphs/demo")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET after delete status = %d", resp.StatusCode)
	}
}

func TestPutRejectsDanglingEdges(t *testing.T) {
	ts := newTestServer(t)
	bad := `{"directed": true, "nodes": [{"label": "A"}], "edges": [{"from": 0, "to": 5}]}`
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/graphs/bad", strings.NewReader(bad))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGetDiagramNotFound(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/graphs/absent/diagram")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestDiagramCacheReuse(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	s := New(NewMemoryStore(), fc, time.Hour, nil, nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	for i := 0; i < 2; i++ {
		resp, err := http.Post(ts.URL+"/api/render", "application/json", strings.NewReader(simpleGraphJSON))
		if err != nil {
			t.Fatal(err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if string(body) != simpleGraphDiagram {
			t.Fatalf("pass %d diagram = %q", i, body)
		}
	}

	// The second request should have been served from the cache entry
	// written by the first.
	var doc graph.Doc
	if err := json.Unmarshal([]byte(simpleGraphJSON), &doc); err != nil {
		t.Fatal(err)
	}
	key, ok := s.cacheKey(doc, nil)
	if !ok {
		t.Fatal("cacheKey failed")
	}
	data, hit, err := fc.Get(context.Background(), key)
	if err != nil || !hit {
		t.Fatalf("cache entry missing: hit=%v err=%v", hit, err)
	}
	if string(data) != simpleGraphDiagram {
		t.Errorf("cached diagram = %q", data)
	}
}

func TestErrorResponseCarriesCode(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/api/render?flag=bogus", "application/json", strings.NewReader(simpleGraphJSON))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["code"] != "INVALID_FLAG" {
		t.Errorf("code = %q, want INVALID_FLAG", body["code"])
	}
	if body["error"] == "" {
		t.Error("error message missing")
	}
}

func TestNotFoundResponseCode(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/graphs/absent")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["code"] != "GRAPH_NOT_FOUND" {
		t.Errorf("code = %q, want GRAPH_NOT_FOUND", body["code"])
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "x"); err != ErrNotFound {
		t.Errorf("Get on empty store = %v, want ErrNotFound", err)
	}

	doc := graph.Doc{Directed: true, Nodes: []graph.NodeDoc{{Label: "A"}}}
	if err := s.Put(ctx, "x", doc); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, "x")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Nodes) != 1 || got.Nodes[0].Label != "A" {
		t.Errorf("got = %+v", got)
	}

	if err := s.Delete(ctx, "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, "x"); err != ErrNotFound {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}

	// Deleting an absent name is fine.
	if err := s.Delete(ctx, "x"); err != nil {
		t.Errorf("repeated Delete = %v", err)
	}
}
