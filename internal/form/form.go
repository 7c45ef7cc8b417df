package form

import "maps"

// Form tracks values, touched fields and errors for one editing session.
// Errors are only reported for touched fields, so a pristine form shows
// none until the user leaves a field or submits.
type Form struct {
	schema  *Schema
	initial map[string]string
	values  map[string]string
	touched map[string]bool
	errors  map[string]string
}

// New returns a form over schema seeded with initial values.
func New(schema *Schema, initial map[string]string) *Form {
	f := Form{
		schema:  schema,
		initial: maps.Clone(initial),
		values:  maps.Clone(initial),
		touched: make(map[string]bool),
		errors:  make(map[string]string),
	}
	if f.values == nil {
		f.values = make(map[string]string)
	}
	return &f
}

// Schema returns the form schema.
func (f *Form) Schema() *Schema {
	return f.schema
}

// Value returns the current value of a field.
func (f *Form) Value(name string) string {
	return f.values[name]
}

// Values returns a copy of all values.
func (f *Form) Values() map[string]string {
	return maps.Clone(f.values)
}

// Set changes a value. Touched fields are revalidated right away.
func (f *Form) Set(name, value string) {
	f.values[name] = value
	if f.touched[name] {
		f.validate(name)
	}
}

// Blur marks a field as touched, validates it and returns its error
// message, if any.
func (f *Form) Blur(name string) string {
	f.touched[name] = true
	return f.validate(name)
}

// Error returns the message to show for a field.
func (f *Form) Error(name string) string {
	if !f.touched[name] {
		return ""
	}
	return f.errors[name]
}

// Errors returns messages for all touched fields in error.
func (f *Form) Errors() map[string]string {
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		if f.touched[k] {
			out[k] = v
		}
	}
	return out
}

// Valid returns true when every field passes, touched or not.
func (f *Form) Valid() bool {
	return f.schema.Validate(f.values) == nil
}

// Dirty returns true if any value differs from the initial one.
func (f *Form) Dirty() bool {
	for k, v := range f.values {
		if f.initial[k] != v {
			return true
		}
	}
	for k, v := range f.initial {
		if _, ok := f.values[k]; !ok && v != "" {
			return true
		}
	}
	return false
}

// Submit touches every field and validates the whole form. On failure
// the returned error is a criterio.FieldErrors and submission must not
// proceed.
func (f *Form) Submit() (map[string]string, error) {
	for _, fd := range f.schema.Fields() {
		f.touched[fd.Name] = true
	}
	err := f.schema.Validate(f.values)
	f.errors = Messages(err)
	delete(f.errors, "")
	if err != nil {
		return nil, err
	}
	return f.Values(), nil
}

// Reset restores the initial values and clears touched state.
func (f *Form) Reset() {
	f.values = maps.Clone(f.initial)
	if f.values == nil {
		f.values = make(map[string]string)
	}
	f.touched = make(map[string]bool)
	f.errors = make(map[string]string)
}

func (f *Form) validate(name string) string {
	delete(f.errors, name)
	fd, ok := f.schema.Field(name)
	if !ok {
		return ""
	}
	if err := fd.check(f.values[name]); err != nil {
		f.errors[name] = err.Error()
	}
	return f.errors[name]
}
