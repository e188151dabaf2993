package persist

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/sources.schema.json
var schemaBytes []byte

// ErrInvalidFormat is wrapped by every error caused by a malformed sources
// document, as opposed to an I/O failure.
var ErrInvalidFormat = errors.New("invalid sources format")

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// Issue is a single schema violation.
type Issue struct {
	Path    string // instance location, e.g. "/2/enabled"
	Message string
}

// FormatError reports every schema violation found in a sources document.
type FormatError struct {
	Issues []Issue
}

func (e *FormatError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if is.Path == "" {
			parts = append(parts, is.Message)
			continue
		}
		parts = append(parts, is.Path+": "+is.Message)
	}
	return ErrInvalidFormat.Error() + ": " + strings.Join(parts, "; ")
}

func (e *FormatError) Unwrap() error { return ErrInvalidFormat }

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("sources.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("sources.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// validate checks a raw JSON document against the sources schema.
func validate(data []byte) error {
	schema, err := getSchema()
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return &FormatError{Issues: []Issue{{Message: err.Error()}}}
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("validating sources: %w", err)
	}
	return &FormatError{Issues: collectIssues(ve)}
}

// collectIssues flattens the validation error tree into its leaves.
func collectIssues(ve *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, c := range e.Causes {
				walk(c)
			}
			return
		}
		path := ""
		if len(e.InstanceLocation) > 0 {
			path = "/" + strings.Join(e.InstanceLocation, "/")
		}
		msg := e.Error()
		if e.ErrorKind != nil {
			msg = e.ErrorKind.LocalizedString(printer)
		}
		issues = append(issues, Issue{Path: path, Message: msg})
	}
	walk(ve)
	return issues
}
