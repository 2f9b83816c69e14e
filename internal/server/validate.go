package server

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/woozymasta/geojson/pkg/geojson"
	"github.com/woozymasta/geojson/pkg/jsontree"

	"github.com/go-json-experiment/json"
)

// codeSyntax is reported for bodies that are not well-formed JSON or YAML.
const codeSyntax = "SyntaxError"

// ValidationError is a single entry of a validation report.
type ValidationError struct {
	Code    string `json:"code"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationReport is the response body of POST /api/validate.
type ValidationReport struct {
	Type   string            `json:"type,omitempty"`
	Errors []ValidationError `json:"errors"`
	Valid  bool              `json:"valid"`
}

// HandleValidate decodes the request body as a GeoJSON document and reports
// every structural violation. Well-formed documents are answered with 200
// whether valid or not; unparseable bodies get 400.
func (s *ServerContext) HandleValidate(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.MaxBodySize)

	raw, err := readBody(body, r.Header.Get("Content-Type"))
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeReport(w, status, ValidationReport{
			Errors: []ValidationError{{Code: codeSyntax, Message: err.Error()}},
		})
		return
	}

	writeReport(w, http.StatusOK, Validate(raw))
}

// Validate builds the report for an already parsed document.
func Validate(raw jsontree.Value) ValidationReport {
	obj, err := geojson.Decode(raw)
	if err != nil {
		report := ValidationReport{Errors: make([]ValidationError, 0)}
		for _, v := range geojson.Violations(err) {
			report.Errors = append(report.Errors, ValidationError{
				Code:    v.Code.String(),
				Path:    v.Path,
				Message: v.Error(),
			})
		}
		return report
	}

	return ValidationReport{Valid: true, Type: obj.Type(), Errors: make([]ValidationError, 0)}
}

func readBody(r io.Reader, contentType string) (jsontree.Value, error) {
	media, _, _ := mime.ParseMediaType(contentType)
	if strings.HasSuffix(media, "yaml") {
		data, err := io.ReadAll(r)
		if err != nil {
			return jsontree.Value{}, err
		}
		return jsontree.ParseYAML(data)
	}
	return jsontree.Read(r)
}

func writeReport(w http.ResponseWriter, status int, report ValidationReport) {
	w.Header().Set("Content-Type", mediaJSON)
	w.WriteHeader(status)
	_ = json.MarshalWrite(w, report)
}
