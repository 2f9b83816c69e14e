package processor

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/woozymasta/geojson/internal/config"
	"github.com/woozymasta/geojson/pkg/jsontree"

	"github.com/rs/zerolog/log"
)

// maxDocumentSize limits remote and local sources.
const maxDocumentSize = 64 << 20

// Fetch returns the raw JSON tree of a document from its inline value,
// URL or local path. YAML sources are recognized by extension or by the
// Content-Type of the response.
func Fetch(ctx context.Context, client *http.Client, d config.Document) (jsontree.Value, error) {
	switch {
	case d.Inline != nil:
		return *d.Inline, nil
	case d.URL != "":
		return fetchURL(ctx, client, d.URL)
	case d.Path != "":
		return readFile(d.Path)
	default:
		return jsontree.Value{}, config.ErrNoSource
	}
}

func fetchURL(ctx context.Context, client *http.Client, url string) (jsontree.Value, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return jsontree.Value{}, err
	}
	req.Header.Set("Accept", "application/geo+json, application/json;q=0.9, application/yaml;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return jsontree.Value{}, err
	}
	// Explicitly ignore close error as it's a read-only operation
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return jsontree.Value{}, fmt.Errorf("download failed: status %d", resp.StatusCode)
	}

	log.Debug().
		Str("url", url).
		Str("content_type", resp.Header.Get("Content-Type")).
		Msg("Document downloaded")

	body := io.LimitReader(resp.Body, maxDocumentSize)
	if isYAMLMedia(resp.Header.Get("Content-Type")) || isYAMLName(path.Base(req.URL.Path)) {
		data, err := io.ReadAll(body)
		if err != nil {
			return jsontree.Value{}, err
		}
		return jsontree.ParseYAML(data)
	}

	return jsontree.Read(body)
}

func readFile(name string) (jsontree.Value, error) {
	f, err := os.Open(name)
	if err != nil {
		return jsontree.Value{}, err
	}
	defer func() { _ = f.Close() }()

	body := io.LimitReader(f, maxDocumentSize)
	if isYAMLName(name) {
		data, err := io.ReadAll(body)
		if err != nil {
			return jsontree.Value{}, err
		}
		return jsontree.ParseYAML(data)
	}

	return jsontree.Read(body)
}

func isYAMLName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func isYAMLMedia(contentType string) bool {
	media, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasSuffix(media, "/yaml") || strings.HasSuffix(media, "+yaml") || media == "application/x-yaml"
}
