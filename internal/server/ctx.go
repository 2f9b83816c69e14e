package server

import (
	"os"
	"slices"
	"strings"

	"github.com/woozymasta/geojson/internal/config"

	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/json"
)

// Media types served and accepted by the handlers.
const (
	mediaGeoJSON = "application/geo+json"
	mediaJSON    = "application/json"
)

// DocumentInfo is an entry of the documents listing.
type DocumentInfo struct {
	Name      string   `json:"name"`
	Aliases   []string `json:"aliases,omitempty"`
	Available bool     `json:"available"`
}

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config       *config.Config
	NameResolver map[string]string
	Minifier     *minify.M
	Documents    []DocumentInfo
	// MaxBodySize limits POST /api/validate request bodies.
	MaxBodySize int64
}

// NewServerContext initializes the context from the configuration and
// reports which documents already have a normalized file in OutDir.
func NewServerContext(cfg *config.Config) *ServerContext {
	log.Info().Int("config_documents_count", len(cfg.Documents)).Msg("Initializing server context")

	docs := make([]DocumentInfo, 0, len(cfg.Documents))
	available := 0

	for _, d := range cfg.Documents {
		info := DocumentInfo{Name: d.Name, Aliases: d.Aliases}

		path := d.OutputFile(cfg.OutDir)
		if st, err := os.Stat(path); err != nil || st.IsDir() {
			log.Warn().
				Str("document", d.Name).
				Str("path", path).
				Msg("Document file not found, run the loader first")
		} else {
			info.Available = true
			available++
			log.Trace().
				Str("document", d.Name).
				Str("path", path).
				Msg("Document file found")
		}

		docs = append(docs, info)
	}

	slices.SortFunc(docs, func(a, b DocumentInfo) int {
		return strings.Compare(a.Name, b.Name)
	})

	m := minify.New()
	m.AddFunc(mediaJSON, json.Minify)
	m.AddFunc(mediaGeoJSON, json.Minify)

	log.Info().
		Int("available_documents_count", available).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config:       cfg,
		NameResolver: cfg.Resolver(),
		Minifier:     m,
		Documents:    docs,
		MaxBodySize:  16 << 20,
	}
}
