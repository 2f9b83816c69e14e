package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/woozymasta/geojson/internal/logger"
	"github.com/woozymasta/geojson/pkg/geojson"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/json"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input       string `short:"i" long:"in"           description:"Input file path (GeoJSON as JSON or YAML). Reads from stdin if empty"`
	Output      string `short:"o" long:"out"          description:"Output file path. Writes to stdout if empty"`
	Format      string `short:"f" long:"format"       description:"Output format" choice:"json" choice:"yaml" default:"json"`
	InputFormat string `short:"I" long:"input-format" description:"Input format, auto detects by file extension" choice:"auto" choice:"json" choice:"yaml" default:"auto"`
	Indent      string `long:"indent"                 description:"Indent for JSON output" default:"  "`
	Precision   int    `short:"p" long:"precision"    description:"Significant digits kept by --minify, 0 keeps all"`
	Minify      bool   `short:"m" long:"minify"       description:"Write compact JSON"`
	Check       bool   `short:"c" long:"check"        description:"Only validate the input"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	// Read Input
	var inputData []byte
	var err error

	if opts.Input != "" {
		inputData, err = os.ReadFile(opts.Input)
	} else {
		inputData, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		log.Fatal().Err(err).Str("input", opts.Input).Msg("Failed to read input")
	}

	outputData, obj, err := convert(opts, inputData)
	if err != nil {
		for _, v := range geojson.Violations(err) {
			log.Error().
				Str("path", v.Path).
				Stringer("code", v.Code).
				Msg(v.Error())
		}
		log.Fatal().Err(err).Str("input", opts.Input).Msg("Conversion failed")
	}

	if opts.Check {
		log.Info().Str("input", opts.Input).Str("type", obj.Type()).Msg("Document is valid")
		return
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, outputData, 0644); err != nil {
			log.Fatal().Err(err).Str("output", opts.Output).Msg("Failed to write output")
		}
		log.Info().
			Str("type", obj.Type()).
			Str("output", opts.Output).
			Str("format", opts.Format).
			Msg("Document converted")
	} else {
		_, _ = os.Stdout.Write(outputData)
	}
}

// convert decodes data and returns its normalized encoding in the requested
// format. Structural violations are listed by geojson.Violations.
func convert(opts Options, data []byte) ([]byte, geojson.Object, error) {
	var obj geojson.Object
	var err error
	if inputIsYAML(opts) {
		obj, err = geojson.UnmarshalYAML(data)
	} else {
		obj, err = geojson.Unmarshal(data)
	}
	if err != nil {
		return nil, nil, err
	}

	if opts.Check {
		return nil, obj, nil
	}

	var out []byte
	switch {
	case opts.Format == "yaml":
		out, err = geojson.MarshalYAML(obj)
	case opts.Minify:
		out, err = minifyJSON(obj, opts.Precision)
	default:
		out, err = geojson.MarshalIndent(obj, opts.Indent)
	}
	if err != nil {
		return nil, nil, err
	}

	if !strings.HasSuffix(string(out), "\n") {
		out = append(out, '\n')
	}
	return out, obj, nil
}

func minifyJSON(obj geojson.Object, precision int) ([]byte, error) {
	data, err := geojson.Marshal(obj)
	if err != nil {
		return nil, err
	}

	m := minify.New()
	m.Add("application/json", &json.Minifier{Precision: precision})
	return m.Bytes("application/json", data)
}

func inputIsYAML(opts Options) bool {
	switch opts.InputFormat {
	case "yaml":
		return true
	case "json":
		return false
	}

	switch strings.ToLower(filepath.Ext(opts.Input)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
