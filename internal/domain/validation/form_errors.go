// Package validation holds field-level form errors shared by use cases and handlers.
package validation

import (
	"sort"
	"strings"
)

// NonFieldKey collects errors that belong to the form as a whole.
const NonFieldKey = "__all__"

// FormErrors maps a form field name to its error messages.
type FormErrors map[string][]string

// Add appends a message to the field.
func (fe FormErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Merge copies every message of other into fe.
func (fe FormErrors) Merge(other FormErrors) {
	for field, messages := range other {
		fe[field] = append(fe[field], messages...)
	}
}

// HasErrors reports whether any field has a message.
func (fe FormErrors) HasErrors() bool {
	for _, messages := range fe {
		if len(messages) > 0 {
			return true
		}
	}

	return false
}

// Get returns the messages of a field. Used by templates.
func (fe FormErrors) Get(field string) []string {
	return fe[field]
}

// First returns the first message of a field or "".
func (fe FormErrors) First(field string) string {
	if len(fe[field]) == 0 {
		return ""
	}

	return fe[field][0]
}

// Error renders the errors as "field: message" pairs sorted by field.
func (fe FormErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		for _, message := range fe[field] {
			parts = append(parts, field+": "+message)
		}
	}

	return strings.Join(parts, "; ")
}
