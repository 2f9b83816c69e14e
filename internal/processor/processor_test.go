package processor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/woozymasta/geojson/internal/config"
	"github.com/woozymasta/geojson/pkg/geojson"
	"github.com/woozymasta/geojson/pkg/jsontree"
)

const (
	validCollection = `{"type":"FeatureCollection","features":[
		{"type":"Feature","id":1,"geometry":{"type":"Point","coordinates":[30.5,50.4]},"properties":{"name":"Kyiv"}},
		{"type":"Feature","geometry":null,"properties":null,"ignored":true}
	]}`

	yamlPolygon = `
type: Polygon
coordinates:
  - [[0, 0], [1, 0], [1, 1], [0, 0]]
`

	brokenPolygon = `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1]],[[0,0],[1,1],[0,0]]]}`
)

func newSource(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/valid.geojson", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write([]byte(validCollection))
	})
	mux.HandleFunc("/polygon", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write([]byte(yamlPolygon))
	})
	mux.HandleFunc("/broken.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(brokenPolygon))
	})
	mux.HandleFunc("/garbage.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"type":`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	t.Parallel()

	srv := newSource(t)
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "local.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"type":"Point","coordinates":[1,2]}`), 0o644))
	yamlPath := filepath.Join(dir, "local.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlPolygon), 0o644))

	inline := jsontree.Object(jsontree.Member{Key: "type", Value: jsontree.String("Point")})

	tests := []struct {
		name     string
		doc      config.Document
		wantType string
		wantErr  bool
	}{
		{"url json", config.Document{Name: "a", URL: srv.URL + "/valid.geojson"}, "FeatureCollection", false},
		{"url yaml by content type", config.Document{Name: "b", URL: srv.URL + "/polygon"}, "Polygon", false},
		{"url not found", config.Document{Name: "c", URL: srv.URL + "/missing.json"}, "", true},
		{"url syntax error", config.Document{Name: "d", URL: srv.URL + "/garbage.json"}, "", true},
		{"path json", config.Document{Name: "e", Path: jsonPath}, "Point", false},
		{"path yaml", config.Document{Name: "f", Path: yamlPath}, "Polygon", false},
		{"path missing", config.Document{Name: "g", Path: filepath.Join(dir, "nope.json")}, "", true},
		{"inline", config.Document{Name: "h", Inline: &inline}, "Point", false},
		{"no source", config.Document{Name: "i"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := Fetch(context.Background(), srv.Client(), tt.doc)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			typ, ok := v.Get("type")
			require.True(t, ok)
			s, _ := typ.AsString()
			require.Equal(t, tt.wantType, s)
		})
	}
}

func TestProcessDocument(t *testing.T) {
	t.Parallel()

	srv := newSource(t)
	out := t.TempDir()
	ctx := context.Background()

	doc := config.Document{Name: "cities", URL: srv.URL + "/valid.geojson"}

	res, err := ProcessDocument(ctx, srv.Client(), doc, out, false)
	require.NoError(t, err)
	require.Equal(t, StatusWritten, res.Status)
	require.Equal(t, "FeatureCollection", res.Type)
	require.Equal(t, 2, res.Features)

	data, err := os.ReadFile(filepath.Join(out, "cities.geojson"))
	require.NoError(t, err)
	require.NotContains(t, string(data), "ignored")

	obj, err := geojson.Unmarshal(data)
	require.NoError(t, err)
	fc := obj.(*geojson.FeatureCollection)
	require.Len(t, fc.Features, 2)
	require.Equal(t, "1", fc.Features[0].ID.String())

	res, err = ProcessDocument(ctx, srv.Client(), doc, out, false)
	require.NoError(t, err)
	require.Equal(t, StatusSkipped, res.Status)

	res, err = ProcessDocument(ctx, srv.Client(), doc, out, true)
	require.NoError(t, err)
	require.Equal(t, StatusWritten, res.Status)
}

func TestProcessDocumentInvalid(t *testing.T) {
	t.Parallel()

	srv := newSource(t)
	out := t.TempDir()

	res, err := ProcessDocument(context.Background(), srv.Client(), config.Document{Name: "broken", URL: srv.URL + "/broken.json"}, out, false)
	require.ErrorIs(t, err, ErrInvalidDocument)
	require.ErrorIs(t, err, geojson.ErrRingNotClosed)
	require.ErrorIs(t, err, geojson.ErrRingTooShort)
	require.Equal(t, StatusInvalid, res.Status)
	require.Len(t, res.Violations, 2)
	require.Equal(t, "/coordinates/0", res.Violations[0].Path)
	require.Equal(t, "/coordinates/1", res.Violations[1].Path)

	_, statErr := os.Stat(filepath.Join(out, "broken.geojson"))
	require.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestProcessAll(t *testing.T) {
	t.Parallel()

	srv := newSource(t)
	out := t.TempDir()

	docs := []config.Document{
		{Name: "cities", URL: srv.URL + "/valid.geojson"},
		{Name: "broken", URL: srv.URL + "/broken.json"},
		{Name: "polygon", URL: srv.URL + "/polygon"},
		{Name: "missing", URL: srv.URL + "/missing.json"},
	}

	results := ProcessAll(context.Background(), srv.Client(), docs, out, 2, false)
	require.Len(t, results, len(docs))

	want := []Status{StatusWritten, StatusInvalid, StatusWritten, StatusFailed}
	for i, res := range results {
		require.Equal(t, docs[i].Name, res.Name)
		require.Equal(t, want[i], res.Status, res.Name)
	}
}

func TestProcessAllCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inline := jsontree.Object()
	results := ProcessAll(ctx, http.DefaultClient, []config.Document{{Name: "x", Inline: &inline}}, t.TempDir(), 0, false)
	require.Len(t, results, 1)
	require.Equal(t, StatusFailed, results[0].Status)
	require.ErrorIs(t, results[0].Err, context.Canceled)
}
