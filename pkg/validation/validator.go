// Package validation checks stubbed request bodies against a JSON Schema.
//
// A stub may declare a body schema; matched requests whose parsed body fails
// it get a 400 error response instead of the configured one. Schemas are
// compiled once, on first use.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Error describes a body that failed schema validation.
type Error struct {
	// Causes lists the leaf validation failures as "location: message".
	Causes []string
}

func (e *Error) Error() string {
	if len(e.Causes) == 0 {
		return "body failed schema validation"
	}
	return "body failed schema validation: " + strings.Join(e.Causes, "; ")
}

// Validator validates request bodies against one schema source.
type Validator struct {
	source string

	once       sync.Once
	schema     *jsonschema.Schema
	compileErr error
}

// New creates a Validator for the given JSON Schema source.
// The schema is not compiled until the first Validate call.
func New(source string) *Validator {
	return &Validator{source: source}
}

// Validate checks a parsed body against the schema. It returns a *Error when
// the body is invalid, or a plain error when the schema itself cannot be
// compiled.
func (v *Validator) Validate(body any) error {
	v.once.Do(v.compile)
	if v.compileErr != nil {
		return fmt.Errorf("validation: compile schema: %w", v.compileErr)
	}

	err := v.schema.Validate(body)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		return &Error{Causes: flatten(ve)}
	}
	return fmt.Errorf("validation: %w", err)
}

func (v *Validator) compile() {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", strings.NewReader(v.source)); err != nil {
		v.compileErr = err
		return
	}
	v.schema, v.compileErr = compiler.Compile("schema.json")
}

// flatten collects leaf causes from a validation error tree.
func flatten(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return []string{fmt.Sprintf("%s: %s", loc, ve.Message)}
	}

	var out []string
	for _, cause := range ve.Causes {
		out = append(out, flatten(cause)...)
	}
	return out
}
