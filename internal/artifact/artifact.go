// Package artifact produces a hashed, serializable record of a resolved environment.
package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"convexenv"
)

// ConfigArtifact represents the immutable config artifact
type ConfigArtifact struct {
	ConfigVersion string         `json:"configVersion"` // sha256:hex
	Values        map[string]any `json:"values"`
}

// GenerateArtifact creates a config artifact from a resolved environment.
// Only variables that hold a value are included; platform fields are not.
func GenerateArtifact(env *convexenv.Env) (ConfigArtifact, error) {
	values := make(map[string]any)
	for _, key := range env.Keys() {
		if v, _ := env.Get(key); v != nil {
			values[key] = v
		}
	}
	return FromValues(values)
}

// FromValues builds an artifact over already typed values. It fails when a
// value has no JSON form, such as NaN or a channel.
func FromValues(values map[string]any) (ConfigArtifact, error) {
	version, err := ComputeConfigVersion(values)
	if err != nil {
		return ConfigArtifact{}, err
	}
	return ConfigArtifact{
		ConfigVersion: version,
		Values:        values,
	}, nil
}

// ComputeConfigVersion computes the SHA-256 hash of the values in canonical form.
// Returns the hash prefixed with "sha256:".
func ComputeConfigVersion(values map[string]any) (string, error) {
	data, err := canonicalValuesJSON(values)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(hash[:]), nil
}

// ToCanonicalJSON serializes the artifact with sorted keys and no whitespace.
// This is used for deterministic hashing.
func (a ConfigArtifact) ToCanonicalJSON() ([]byte, error) {
	values, err := canonicalValuesJSON(a.Values)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		ConfigVersion string          `json:"configVersion"`
		Values        json.RawMessage `json:"values"`
	}{a.ConfigVersion, values})
}

// ToJSON serializes the artifact to pretty-printed JSON for human readability.
func (a ConfigArtifact) ToJSON() ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}

// canonicalValuesJSON produces canonical JSON for the values map.
// encoding/json sorts map keys.
func canonicalValuesJSON(values map[string]any) ([]byte, error) {
	if len(values) == 0 {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("encode artifact values: %w", err)
	}
	return data, nil
}
