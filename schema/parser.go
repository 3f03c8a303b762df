package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the schema file looked up when no path is given
const DefaultFileName = "convexenv.yaml"

// schemaFile represents the on-disk structure. Config is kept as a node so
// declaration order survives decoding.
type schemaFile struct {
	Presets []string  `yaml:"presets,omitempty"`
	Config  yaml.Node `yaml:"config"`
}

// configEntry represents a single variable declaration in the file
type configEntry struct {
	Type     string   `yaml:"type" validate:"required,oneof=string number boolean literal union"`
	Optional bool     `yaml:"optional,omitempty"`
	Value    string   `yaml:"value,omitempty"`
	Values   []string `yaml:"values,omitempty" validate:"omitempty,min=2,unique,dive,required"`
}

// File is a parsed schema file: preset names to merge first, then the file's own declarations.
type File struct {
	Presets []string
	Config  Schema
}

// PresetLookup resolves a preset name to its declarations.
type PresetLookup func(name string) (Schema, bool)

// ErrUnknownPreset is returned by File.Resolve for a preset name the lookup does not know.
var ErrUnknownPreset = errors.New("unknown preset")

// nameRegex matches environment variable names
var nameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var validate = newEntryValidator()

func newEntryValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseSchema parses YAML (or JSON) content into a File
func ParseSchema(content []byte) (File, error) {
	var sf schemaFile
	if err := yaml.Unmarshal(content, &sf); err != nil {
		return File{}, fmt.Errorf("invalid YAML: %w", err)
	}

	file := File{Presets: sf.Presets}

	if sf.Config.Kind == 0 {
		return file, nil
	}
	if sf.Config.Kind != yaml.MappingNode {
		return File{}, fmt.Errorf("'config' must be a mapping of variable names (line %d)", sf.Config.Line)
	}

	seen := make(map[string]bool)
	for i := 0; i+1 < len(sf.Config.Content); i += 2 {
		keyNode, valueNode := sf.Config.Content[i], sf.Config.Content[i+1]
		name := keyNode.Value

		if !nameRegex.MatchString(name) {
			return File{}, fmt.Errorf("invalid variable name '%s' (line %d)", name, keyNode.Line)
		}
		if seen[name] {
			return File{}, fmt.Errorf("duplicate variable '%s' (line %d)", name, keyNode.Line)
		}
		seen[name] = true

		var entry configEntry
		if valueNode.Kind == yaml.ScalarNode {
			// shorthand: NAME: string
			entry.Type = valueNode.Value
		} else if err := valueNode.Decode(&entry); err != nil {
			return File{}, fmt.Errorf("variable '%s': %w", name, err)
		}

		v, err := entry.toValidator()
		if err != nil {
			return File{}, fmt.Errorf("variable '%s': %w", name, err)
		}
		file.Config = file.Config.With(name, v)
	}

	return file, nil
}

// checkConstants rejects 'value' or 'values' on a type that does not take it.
func (e configEntry) checkConstants() error {
	kind := Kind(e.Type)
	if e.Value != "" && kind != KindLiteral {
		return fmt.Errorf("type '%s' does not take 'value'", e.Type)
	}
	if len(e.Values) > 0 && kind != KindUnion {
		return fmt.Errorf("type '%s' does not take 'values'", e.Type)
	}
	return nil
}

func (e configEntry) toValidator() (Validator, error) {
	if err := validate.Struct(e); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("field '%s' failed rule '%s'", fe.Field(), fe.Tag()))
			}
			return Validator{}, errors.New(strings.Join(msgs, "; "))
		}
		return Validator{}, err
	}

	if err := e.checkConstants(); err != nil {
		return Validator{}, err
	}

	var v Validator
	switch Kind(e.Type) {
	case KindString:
		v = String()
	case KindNumber:
		v = Number()
	case KindBoolean:
		v = Boolean()
	case KindLiteral:
		if e.Value == "" {
			return Validator{}, errors.New("literal type requires 'value'")
		}
		v = Literal(e.Value)
	case KindUnion:
		if len(e.Values) < 2 {
			return Validator{}, errors.New("union type requires at least two 'values'")
		}
		v = Union(e.Values[0], e.Values[1], e.Values[2:]...)
	default:
		return Validator{}, fmt.Errorf("unknown type '%s'", e.Type)
	}

	if e.Optional {
		v = Optional(v)
	}
	return v, nil
}

// Resolve merges the file's presets, in order, followed by its own declarations.
func (f File) Resolve(lookup PresetLookup) (Schema, error) {
	var merged Schema
	for _, name := range f.Presets {
		p, ok := lookup(name)
		if !ok {
			return Schema{}, fmt.Errorf("%w: '%s'", ErrUnknownPreset, name)
		}
		merged = merged.Merge(p)
	}
	return merged.Merge(f.Config), nil
}

// ToYAML serializes a File back to YAML bytes
func (f File) ToYAML() ([]byte, error) {
	sf := schemaFile{
		Presets: f.Presets,
		Config:  yaml.Node{Kind: yaml.MappingNode},
	}

	for _, e := range f.Config.entries {
		entry := configEntry{
			Type:     e.Validator.Kind().String(),
			Optional: e.Validator.IsOptional(),
		}
		switch e.Validator.Kind() {
		case KindLiteral:
			entry.Value = e.Validator.values[0]
		case KindUnion:
			entry.Values = e.Validator.Values()
		}

		var valueNode yaml.Node
		if err := valueNode.Encode(entry); err != nil {
			return nil, fmt.Errorf("encode variable '%s': %w", e.Name, err)
		}
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Name}
		sf.Config.Content = append(sf.Config.Content, keyNode, &valueNode)
	}

	return yaml.Marshal(&sf)
}

// LoadSchema reads and parses convexenv.yaml from the given directory
func LoadSchema(dir string) (File, error) {
	return LoadSchemaFromPath(filepath.Join(dir, DefaultFileName))
}

// LoadSchemaFromPath reads and parses a schema from the given file path.
// Files ending in .json or .jsonc may carry comments and trailing commas.
func LoadSchemaFromPath(path string) (File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, err
		}
		return File{}, fmt.Errorf("failed to read schema: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		content = jsonc.ToJSON(content)
	}

	return ParseSchema(content)
}
