// Package injector hands a resolved artifact to a child process.
package injector

import (
	"errors"
	"strings"

	"convexenv/internal/artifact"
)

// ErrInvalidVarName is returned for names that cannot be used as an environment variable.
var ErrInvalidVarName = errors.New("invalid environment variable name")

// InjectEnv returns a copy of environ with varName set to the artifact's
// canonical JSON. Any existing entry for varName is replaced; every other
// entry is kept in order.
func InjectEnv(art artifact.ConfigArtifact, environ []string, varName string) ([]string, error) {
	if varName == "" || strings.ContainsAny(varName, "=\x00") {
		return nil, ErrInvalidVarName
	}

	data, err := art.ToCanonicalJSON()
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(environ)+1)
	prefix := varName + "="
	for _, entry := range environ {
		if !strings.HasPrefix(entry, prefix) {
			result = append(result, entry)
		}
	}
	return append(result, prefix+string(data)), nil
}
