// Package forms validates submitted HTML/JSON form data and collects
// field-level error messages for re-rendering.
package forms

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// NonFieldErrors is the Errors key for messages not tied to a single field.
const NonFieldErrors = "__all__"

const msgRequired = "This field is required."

// Errors maps a field name to its validation messages.
type Errors map[string][]string

// Add appends a message to a field's error list.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Get returns the messages for a field.
func (e Errors) Get(field string) []string {
	return e[field]
}

// Has reports whether a field has at least one error.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Any reports whether any field has an error.
func (e Errors) Any() bool {
	for _, msgs := range e {
		if len(msgs) > 0 {
			return true
		}
	}
	return false
}

// postValue reads a trimmed value from a parsed request body.
func postValue(r *http.Request, field string) string {
	return strings.TrimSpace(r.PostFormValue(field))
}

func maxLengthMessage(limit int, value string) string {
	return fmt.Sprintf("Ensure this value has at most %d characters (it has %d).", limit, utf8.RuneCountInString(value))
}

func tooLong(value string, limit int) bool {
	return utf8.RuneCountInString(value) > limit
}
