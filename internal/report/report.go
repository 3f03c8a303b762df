// Package report formats check outcomes for people, CI runners and tools.
package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"convexenv"
)

// Problem describes one rejected variable.
type Problem struct {
	Key    string `json:"key,omitempty"`
	Reason string `json:"reason"`
}

// Result is the outcome of checking an environment against a schema.
type Result struct {
	Valid      bool      `json:"valid"`
	Errors     []Problem `json:"errors"`
	SchemaPath string    `json:"schemaPath"`
	Variables  int       `json:"variables"`
}

// New builds a Result from the error returned by convexenv.Verify.
// A nil err yields a valid result.
func New(schemaPath string, variables int, err error) Result {
	r := Result{
		Valid:      err == nil,
		Errors:     []Problem{},
		SchemaPath: schemaPath,
		Variables:  variables,
	}
	if err != nil {
		key, _ := convexenv.KeyOf(err)
		r.Errors = append(r.Errors, Problem{Key: key, Reason: convexenv.Reason(err)})
	}
	return r
}

// FormatError renders a problem the way the library reports it.
func FormatError(p Problem) string {
	if p.Key == "" {
		return p.Reason
	}
	return fmt.Sprintf("%s: %s", p.Key, p.Reason)
}

// FormatCIAnnotation renders a problem as a GitHub Actions error annotation.
func FormatCIAnnotation(p Problem, schemaPath string) string {
	return fmt.Sprintf("::error file=%s::%s", filepath.Base(schemaPath), FormatError(p))
}

// FormatCLI renders every problem on its own line, or a one-line summary
// when the environment is valid.
func FormatCLI(r Result) string {
	if r.Valid {
		return fmt.Sprintf("✓ Environment valid (%d variables)\n", r.Variables)
	}
	out := ""
	for _, p := range r.Errors {
		out += FormatError(p) + "\n"
	}
	return out
}

// FormatCI renders every problem as an annotation followed by a summary.
func FormatCI(r Result) string {
	if r.Valid {
		return FormatCLI(r)
	}
	out := ""
	for _, p := range r.Errors {
		out += FormatCIAnnotation(p, r.SchemaPath) + "\n"
	}
	out += fmt.Sprintf("\n❌ Validation failed: %d error(s)\n", len(r.Errors))
	return out
}

// FormatJSON renders the result as a single JSON document.
func FormatJSON(r Result) (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
