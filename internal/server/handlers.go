// Package server handles HTTP requests and middleware.
package server

import (
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/rs/zerolog/log"
)

const etagCap = 64

// Routes registers every handler on a new mux.
func (s *ServerContext) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/documents", s.HandleDocumentsList)
	mux.HandleFunc("GET /documents/{file}", s.HandleDocument)
	mux.HandleFunc("POST /api/validate", s.HandleValidate)
	return mux
}

// HandleDocumentsList serves the configured documents and their availability.
func (s *ServerContext) HandleDocumentsList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", mediaJSON)
	// Ignoring error as we cannot handle client disconnects
	_ = json.MarshalWrite(w, s.Documents)
}

// HandleDocument serves /documents/{name}.geojson, resolving aliases.
// With ?minify=1 the indented file is minified on the fly.
func (s *ServerContext) HandleDocument(w http.ResponseWriter, r *http.Request) {
	requested, ok := strings.CutSuffix(r.PathValue("file"), ".geojson")
	if !ok {
		http.NotFound(w, r)
		return
	}

	name, ok := s.NameResolver[requested]
	if !ok {
		http.NotFound(w, r)
		return
	}

	path := s.documentFile(name)
	if minified, _ := strconv.ParseBool(r.URL.Query().Get("minify")); minified {
		s.serveMinified(w, r, path)
		return
	}

	if !s.serveFile(w, r, path, mediaGeoJSON) {
		http.NotFound(w, r)
	}
}

func (s *ServerContext) documentFile(name string) string {
	for _, d := range s.Config.Documents {
		if d.Name == name {
			return d.OutputFile(s.Config.OutDir)
		}
	}
	return ""
}

// fileETag builds a weak validator from size and modification time.
func fileETag(info os.FileInfo, suffix string) string {
	buf := make([]byte, 0, etagCap)
	buf = append(buf, '"')
	buf = strconv.AppendInt(buf, info.Size(), 16)
	buf = append(buf, '-')
	buf = strconv.AppendInt(buf, info.ModTime().UnixNano(), 16)
	buf = append(buf, suffix...)
	buf = append(buf, '"')
	return string(buf)
}

// serveFile tries to serve a file from disk with ETag generation.
// It returns true if the file was found and served (or 304).
func (s *ServerContext) serveFile(w http.ResponseWriter, r *http.Request, path string, contentType string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	etag := fileETag(info, "")

	// check If-None-Match (client sent ETag)
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	http.ServeFile(w, r, path)
	return true
}

func (s *ServerContext) serveMinified(w http.ResponseWriter, r *http.Request, path string) {
	f, err := os.Open(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	etag := fileETag(info, "-min")
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	w.Header().Set("Content-Type", mediaGeoJSON)

	if err := s.Minifier.Minify(mediaGeoJSON, w, f); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to minify document")
	}
}
