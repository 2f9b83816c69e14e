package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/require"
	"github.com/woozymasta/geojson/internal/config"
)

const storedDocument = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {
        "type": "Point",
        "coordinates": [1, 2]
      },
      "properties": {}
    }
  ]
}
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cities.geojson"), []byte(storedDocument), 0o644))

	cfg := &config.Config{
		OutDir: dir,
		Documents: []config.Document{
			{Name: "roads", URL: "http://example.invalid/roads.json"},
			{Name: "cities", Aliases: []string{"towns"}, Path: "cities.json"},
		},
	}

	srv := httptest.NewServer(RequestLogger(NewServerContext(cfg).Routes()))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string, header http.Header) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHandleDocumentsList(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/api/documents", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, mediaJSON, resp.Header.Get("Content-Type"))

	var docs []DocumentInfo
	require.NoError(t, json.Unmarshal([]byte(body), &docs))
	require.Equal(t, []DocumentInfo{
		{Name: "cities", Aliases: []string{"towns"}, Available: true},
		{Name: "roads", Available: false},
	}, docs)
}

func TestHandleDocument(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"by name", "/documents/cities.geojson", http.StatusOK},
		{"by alias", "/documents/towns.geojson", http.StatusOK},
		{"wrong extension", "/documents/cities.json", http.StatusNotFound},
		{"unknown", "/documents/rivers.geojson", http.StatusNotFound},
		{"not loaded yet", "/documents/roads.geojson", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp, body := get(t, srv.URL+tt.path, nil)
			require.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus == http.StatusOK {
				require.Equal(t, mediaGeoJSON, resp.Header.Get("Content-Type"))
				require.NotEmpty(t, resp.Header.Get("ETag"))
				require.Equal(t, storedDocument, body)
			}
		})
	}
}

func TestHandleDocumentETag(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, _ := get(t, srv.URL+"/documents/cities.geojson", nil)
	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)

	resp, body := get(t, srv.URL+"/documents/towns.geojson", http.Header{"If-None-Match": {etag}})
	require.Equal(t, http.StatusNotModified, resp.StatusCode)
	require.Empty(t, body)

	resp, _ = get(t, srv.URL+"/documents/cities.geojson?minify=1", nil)
	require.NotEqual(t, etag, resp.Header.Get("ETag"))
}

func TestHandleDocumentMinify(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/documents/cities.geojson?minify=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, mediaGeoJSON, resp.Header.Get("Content-Type"))
	require.Equal(t,
		`{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":{}}]}`,
		strings.TrimSpace(body))
}

func TestHandleValidate(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		want        ValidationReport
	}{
		{
			name:       "valid feature",
			body:       `{"type":"Feature","geometry":null,"properties":null}`,
			wantStatus: http.StatusOK,
			want:       ValidationReport{Valid: true, Type: "Feature", Errors: []ValidationError{}},
		},
		{
			name:       "singleton line string",
			body:       `{"type":"LineString","coordinates":[[1,2]]}`,
			wantStatus: http.StatusOK,
			want: ValidationReport{Errors: []ValidationError{{
				Code:    "SingletonSequence",
				Path:    "/coordinates",
				Message: "geojson: /coordinates: line string has a single position, need at least 2",
			}}},
		},
		{
			name:        "yaml polygon",
			contentType: "application/yaml",
			body:        "type: Polygon\ncoordinates: [[[0, 0], [1, 0], [1, 1], [0, 0]]]\n",
			wantStatus:  http.StatusOK,
			want:        ValidationReport{Valid: true, Type: "Polygon", Errors: []ValidationError{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ct := tt.contentType
			if ct == "" {
				ct = mediaGeoJSON
			}
			resp, err := http.Post(srv.URL+"/api/validate", ct, strings.NewReader(tt.body))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			require.Equal(t, tt.wantStatus, resp.StatusCode)

			var report ValidationReport
			require.NoError(t, json.UnmarshalRead(resp.Body, &report))
			require.Equal(t, tt.want, report)
		})
	}
}

func TestHandleValidateSyntaxError(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/validate", mediaJSON, strings.NewReader(`{"type":`))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var report ValidationReport
	require.NoError(t, json.UnmarshalRead(resp.Body, &report))
	require.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	require.Equal(t, codeSyntax, report.Errors[0].Code)
}

func TestHandleValidateMethod(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, _ := get(t, srv.URL+"/api/validate", nil)
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
