// Package form evaluates declarative field rules for the editors.
package form

import (
	"errors"

	"github.com/hay-kot/criterio"
)

// Field describes one form input. Required holds the message reported
// for a blank value; an empty message makes the field optional.
type Field struct {
	Name        string
	Label       string
	Section     string
	Placeholder string
	Options     []string
	Required    string
	Rules       []Rule
}

// IsRequired returns true when a blank value is rejected.
func (f Field) IsRequired() bool {
	return f.Required != ""
}

func (f Field) check(v string) error {
	rules := f.Rules
	if f.IsRequired() {
		rules = append([]Rule{Required(f.Required)}, rules...)
	}
	return chain(rules)(v)
}

// Schema is an ordered set of fields.
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema returns a schema over the given fields, in display order.
func NewSchema(ff ...Field) *Schema {
	s := Schema{fields: ff, index: make(map[string]int, len(ff))}
	for i, f := range ff {
		s.index[f.Name] = i
	}
	return &s
}

// Fields returns the fields in display order.
func (s *Schema) Fields() []Field {
	return s.fields
}

// Field returns the named field.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// ValidateField checks a single value. Unknown fields always pass.
func (s *Schema) ValidateField(name, value string) error {
	f, ok := s.Field(name)
	if !ok {
		return nil
	}
	return criterio.Run(name, value, f.check)
}

// Validate checks every field and reports all failures as
// criterio.FieldErrors in schema order.
func (s *Schema) Validate(values map[string]string) error {
	var errs criterio.FieldErrorsBuilder
	for _, f := range s.fields {
		if err := f.check(values[f.Name]); err != nil {
			errs = errs.Append(f.Name, err)
		}
	}
	return errs.ToError()
}

// Messages flattens a validation error into field -> message.
func Messages(err error) map[string]string {
	out := make(map[string]string)
	if err == nil {
		return out
	}
	var fe criterio.FieldErrors
	if !errors.As(err, &fe) {
		out[""] = err.Error()
		return out
	}
	for _, e := range fe {
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Err.Error()
		}
	}
	return out
}
