package artifact

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"convexenv"
	"convexenv/schema"
	"convexenv/source"
)

// sha256HashPattern matches a valid sha256: prefixed hex string
var sha256HashPattern = regexp.MustCompile(`^sha256:[a-f0-9]{64}$`)

// genValues generates typed value maps like the ones an Env holds
func genValues() gopter.Gen {
	genValue := gen.OneGenOf(
		gen.AlphaString().Map(func(s string) any { return s }),
		gen.Float64Range(-1e9, 1e9).Map(func(f float64) any { return f }),
		gen.Bool().Map(func(b bool) any { return b }),
	)
	return gen.MapOf(gen.Identifier(), genValue)
}

func mustVersion(t *testing.T, values map[string]any) string {
	t.Helper()
	version, err := ComputeConfigVersion(values)
	require.NoError(t, err)
	return version
}

func TestArtifactStructureValidity_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("artifact has valid configVersion format", prop.ForAll(
		func(values map[string]any) bool {
			art, err := FromValues(values)
			return err == nil && sha256HashPattern.MatchString(art.ConfigVersion)
		},
		genValues(),
	))

	properties.Property("config hash is deterministic", prop.ForAll(
		func(values map[string]any) bool {
			copied := make(map[string]any, len(values))
			for k, v := range values {
				copied[k] = v
			}
			return mustVersion(t, values) == mustVersion(t, copied)
		},
		genValues(),
	))

	properties.Property("changing a value changes the hash", prop.ForAll(
		func(values map[string]any, key string) bool {
			changed := make(map[string]any, len(values)+1)
			for k, v := range values {
				changed[k] = v
			}
			changed[key] = "__changed__" + key
			if v, ok := values[key]; ok && v == changed[key] {
				return true
			}
			return mustVersion(t, values) != mustVersion(t, changed)
		},
		genValues(),
		gen.Identifier(),
	))

	properties.TestingRun(t)
}

func TestGenerateArtifact_FromEnv(t *testing.T) {
	env, err := convexenv.Create(schema.New(
		schema.Field("PORT", schema.Number()),
		schema.Field("DEBUG", schema.Boolean()),
		schema.Field("NAME", schema.Optional(schema.String())),
	), convexenv.Options{
		Source:  source.Map{"PORT": "8080", "DEBUG": "false"},
		Ambient: source.Map{convexenv.SiteURLKey: "https://site"},
	})
	require.NoError(t, err)

	art, err := GenerateArtifact(env)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"PORT": 8080.0, "DEBUG": false}, art.Values)
	assert.Regexp(t, sha256HashPattern, art.ConfigVersion)

	canonical, err := art.ToCanonicalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"configVersion":"`+art.ConfigVersion+`","values":{"DEBUG":false,"PORT":8080}}`, string(canonical))
}

func TestEmptyArtifact(t *testing.T) {
	art, err := FromValues(map[string]any{})
	require.NoError(t, err)
	canonical, err := art.ToCanonicalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(canonical), `"values":{}`)
}

func TestWriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "artifact.json")
	art, err := FromValues(map[string]any{"FOO": "bar"})
	require.NoError(t, err)

	require.NoError(t, art.WriteToFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded ConfigArtifact
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, art.ConfigVersion, decoded.ConfigVersion)
	assert.Equal(t, "bar", decoded.Values["FOO"])
}

func TestFromValues_RejectsValuesWithoutJSONForm(t *testing.T) {
	empty, err := ComputeConfigVersion(map[string]any{})
	require.NoError(t, err)

	cases := map[string]any{
		"NaN":     math.NaN(),
		"Inf":     math.Inf(1),
		"channel": make(chan int),
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			art, err := FromValues(map[string]any{"BAD": value})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "encode artifact values")
			assert.NotEqual(t, empty, art.ConfigVersion)
			assert.Empty(t, art.ConfigVersion)

			_, err = ConfigArtifact{Values: map[string]any{"BAD": value}}.ToCanonicalJSON()
			assert.Error(t, err)
		})
	}
}
