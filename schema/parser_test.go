package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// genValidator produces validators of every kind, optional or not.
func genValidator() gopter.Gen {
	genLiteralValue := gen.Identifier()
	genKind := gen.OneConstOf(KindString, KindNumber, KindBoolean, KindLiteral, KindUnion)

	return gopter.CombineGens(
		genKind,
		gen.Bool(),
		genLiteralValue,
		gen.SliceOfN(3, gen.Identifier()),
	).Map(func(vals []interface{}) Validator {
		kind := vals[0].(Kind)
		optional := vals[1].(bool)
		literal := vals[2].(string)
		members := vals[3].([]string)

		var v Validator
		switch kind {
		case KindString:
			v = String()
		case KindNumber:
			v = Number()
		case KindBoolean:
			v = Boolean()
		case KindLiteral:
			v = Literal(literal)
		case KindUnion:
			// members must be unique for the file format
			v = Union(members[0]+"a", members[1]+"b", members[2]+"c")
		}
		if optional {
			v = Optional(v)
		}
		return v
	})
}

// For any schema, serializing to YAML and parsing back yields the same
// declarations in the same order.
func TestSchemaRoundTrip_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	genName := gen.RegexMatch(`[A-Z][A-Z0-9_]{0,12}`)

	genSchema := gen.SliceOfN(4, gopter.CombineGens(genName, genValidator())).
		Map(func(pairs [][]interface{}) Schema {
			var s Schema
			for _, p := range pairs {
				s = s.With(p[0].(string), p[1].(Validator))
			}
			return s
		})

	properties.Property("round-trip preserves schema", prop.ForAll(
		func(original Schema) bool {
			yamlBytes, err := File{Config: original}.ToYAML()
			if err != nil {
				t.Logf("ToYAML failed: %v", err)
				return false
			}

			parsed, err := ParseSchema(yamlBytes)
			if err != nil {
				t.Logf("ParseSchema failed: %v\n%s", err, yamlBytes)
				return false
			}

			return original.Equal(parsed.Config)
		},
		genSchema,
	))

	properties.TestingRun(t)
}

// For any byte sequence that is not valid YAML, the parser returns an error
// or an empty schema.
func TestInvalidYAMLProducesParseError_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	genInvalidYAML := gen.OneGenOf(
		gen.Const([]byte("config: {unclosed")),
		gen.Const([]byte("config: [unclosed")),
		gen.Const([]byte("config:\n  KEY1: bogus\n KEY2: bogus")),
		gen.Const([]byte("config:\n\t\tKEY: bogus")),
		gen.Const([]byte("config: @invalid")),
		gen.SliceOfN(50, gen.UInt8Range(128, 255)).Map(func(b []uint8) []byte {
			result := make([]byte, len(b))
			for i, v := range b {
				result[i] = byte(v)
			}
			return result
		}),
	)

	properties.Property("invalid YAML produces error or empty schema", prop.ForAll(
		func(content []byte) bool {
			file, err := ParseSchema(content)
			if err != nil {
				return true
			}
			return file.Config.Len() == 0
		},
		genInvalidYAML,
	))

	properties.TestingRun(t)
}

func TestParseSchema_PreservesDeclarationOrder(t *testing.T) {
	content := `config:
  ZETA: string
  ALPHA:
    type: number
  MIDDLE:
    type: boolean
    optional: true
`
	file, err := ParseSchema([]byte(content))
	require.NoError(t, err)
	assert.Equal(t, []string{"ZETA", "ALPHA", "MIDDLE"}, file.Config.Keys())

	middle, ok := file.Config.Get("MIDDLE")
	require.True(t, ok)
	assert.Equal(t, KindBoolean, middle.Kind())
	assert.True(t, middle.IsOptional())
}

func TestParseSchema_AllKinds(t *testing.T) {
	content := `presets: [betterAuth]
config:
  STR: {type: string}
  NUM: {type: number}
  BOOL: {type: boolean}
  MODE: {type: literal, value: edge}
  ENVIRONMENT:
    type: union
    values: [development, preview, production]
`
	file, err := ParseSchema([]byte(content))
	require.NoError(t, err)

	assert.Equal(t, []string{"betterAuth"}, file.Presets)

	mode, _ := file.Config.Get("MODE")
	assert.Equal(t, KindLiteral, mode.Kind())
	assert.Equal(t, []string{"edge"}, mode.Values())

	env, _ := file.Config.Get("ENVIRONMENT")
	assert.Equal(t, KindUnion, env.Kind())
	assert.Equal(t, []string{"development", "preview", "production"}, env.Values())
	assert.False(t, env.IsOptional())
}

func TestParseSchema_Errors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown type", "config:\n  FOO: {type: enum}\n", "failed rule 'oneof'"},
		{"missing type", "config:\n  FOO: {optional: true}\n", "failed rule 'required'"},
		{"union with one value", "config:\n  FOO: {type: union, values: [a]}\n", "failed rule 'min'"},
		{"union without values", "config:\n  FOO: {type: union}\n", "at least two"},
		{"union duplicate values", "config:\n  FOO: {type: union, values: [a, a]}\n", "failed rule 'unique'"},
		{"literal without value", "config:\n  FOO: {type: literal}\n", "requires 'value'"},
		{"bad name", "config:\n  1FOO: string\n", "invalid variable name"},
		{"duplicate name", "config:\n  FOO: string\n  FOO: number\n", "duplicate variable 'FOO'"},
		{"config not a mapping", "config: [FOO]\n", "must be a mapping"},
		{"literal with values", "config:\n  FOO: {type: literal, value: a, values: [a, b]}\n", "type 'literal' does not take 'values'"},
		{"union with value", "config:\n  FOO: {type: union, value: a, values: [a, b]}\n", "type 'union' does not take 'value'"},
		{"string with value", "config:\n  FOO: {type: string, value: a}\n", "type 'string' does not take 'value'"},
		{"number with values", "config:\n  FOO: {type: number, values: [1, 2]}\n", "type 'number' does not take 'values'"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSchema([]byte(tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestFileResolve(t *testing.T) {
	auth := New(Field("AUTH_SECRET", String()), Field("SHARED", String()))
	lookup := func(name string) (Schema, bool) {
		if name == "auth" {
			return auth, true
		}
		return Schema{}, false
	}

	t.Run("presets come first and file entries override", func(t *testing.T) {
		file := File{
			Presets: []string{"auth"},
			Config:  New(Field("PORT", Number()), Field("SHARED", Optional(String()))),
		}
		s, err := file.Resolve(lookup)
		require.NoError(t, err)
		assert.Equal(t, []string{"AUTH_SECRET", "SHARED", "PORT"}, s.Keys())

		shared, _ := s.Get("SHARED")
		assert.True(t, shared.IsOptional())
	})

	t.Run("unknown preset", func(t *testing.T) {
		_, err := File{Presets: []string{"nope"}}.Resolve(lookup)
		assert.ErrorIs(t, err, ErrUnknownPreset)
		assert.Contains(t, err.Error(), "'nope'")
	})
}

func TestLoadSchemaFromPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, DefaultFileName)
		require.NoError(t, os.WriteFile(path, []byte("config:\n  FOO: string\n"), 0644))

		file, err := LoadSchema(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"FOO"}, file.Config.Keys())
	})

	t.Run("jsonc with comments", func(t *testing.T) {
		path := filepath.Join(dir, "schema.jsonc")
		content := `{
  // deploy-time settings
  "config": {
    "B_VAR": {"type": "number"},
    "A_VAR": {"type": "union", "values": ["x", "y"],},
  },
}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		file, err := LoadSchemaFromPath(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"B_VAR", "A_VAR"}, file.Config.Keys())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSchemaFromPath(filepath.Join(dir, "absent.yaml"))
		require.Error(t, err)
		assert.True(t, os.IsNotExist(err), fmt.Sprintf("unexpected error: %v", err))
	})
}
