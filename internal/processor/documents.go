// Package processor fetches configured documents, validates them and writes
// their normalized encoding to disk.
package processor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/woozymasta/geojson/internal/config"
	"github.com/woozymasta/geojson/pkg/geojson"

	"github.com/rs/zerolog/log"
)

// ErrInvalidDocument marks documents that failed structural validation.
var ErrInvalidDocument = errors.New("invalid GeoJSON document")

// Status is the outcome of processing one document.
type Status int

// Processing outcomes.
const (
	StatusWritten Status = iota
	StatusSkipped
	StatusInvalid
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusWritten:
		return "written"
	case StatusSkipped:
		return "skipped"
	case StatusInvalid:
		return "invalid"
	default:
		return "failed"
	}
}

// Result describes a processed document.
type Result struct {
	Err        error
	Name       string
	Type       string
	File       string
	Violations []*geojson.Error
	Features   int
	Status     Status
}

// ProcessDocument fetches, validates and saves a single document under
// outDir. Existing files are kept unless force is set. Structural violations
// are logged one by one and the returned error wraps ErrInvalidDocument.
func ProcessDocument(ctx context.Context, client *http.Client, d config.Document, outDir string, force bool) (Result, error) {
	res := Result{Name: d.Name, File: d.OutputFile(outDir)}

	// Check if file exists
	if _, err := os.Stat(res.File); err == nil {
		if !force {
			log.Debug().Str("document", d.Name).Msg("Document file exists, skipping")
			res.Status = StatusSkipped
			return res, nil
		}
	}

	log.Info().
		Str("document", d.Name).
		Str("source", d.Source()).
		Msg("Processing document")

	raw, err := Fetch(ctx, client, d)
	if err != nil {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("fetch %s: %w", d.Name, err)
		return res, res.Err
	}

	obj, err := geojson.Decode(raw)
	if err != nil {
		res.Status = StatusInvalid
		res.Violations = geojson.Violations(err)
		for _, v := range res.Violations {
			log.Warn().
				Str("document", d.Name).
				Str("path", v.Path).
				Stringer("code", v.Code).
				Msg(v.Error())
		}
		res.Err = fmt.Errorf("%s: %w: %w", d.Name, ErrInvalidDocument, err)
		return res, res.Err
	}

	res.Type = obj.Type()
	res.Features = countFeatures(obj)

	if err := saveDocument(res.File, obj); err != nil {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("save %s: %w", d.Name, err)
		return res, res.Err
	}

	log.Info().
		Str("document", d.Name).
		Str("type", res.Type).
		Int("features", res.Features).
		Str("file", res.File).
		Msg("Document saved")

	res.Status = StatusWritten
	return res, nil
}

func countFeatures(obj geojson.Object) int {
	switch o := obj.(type) {
	case *geojson.FeatureCollection:
		return len(o.Features)
	case *geojson.Feature:
		return 1
	default:
		return 0
	}
}

// saveDocument writes the indented encoding of obj to disk.
func saveDocument(path string, obj geojson.Object) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := geojson.MarshalIndent(obj, "  ")
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	// We care about write errors on close
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	if _, err := f.Write(data); err != nil {
		return err
	}
	_, err = f.Write([]byte{'\n'})
	return err
}
