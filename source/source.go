// Package source provides the read-only lookups environment values are resolved from.
package source

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Source looks up the raw value of a variable. The boolean reports presence:
// a variable set to the empty string is present.
type Source interface {
	Lookup(key string) (string, bool)
}

// Map is an explicit set of values. A key missing from the map is absent.
type Map map[string]string

// Lookup implements Source.
func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

type osSource struct{}

func (osSource) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// OS returns the process environment as a Source.
func OS() Source {
	return osSource{}
}

// Environ converts an environ slice (["KEY=VALUE", ...]) into a Map.
// It splits on the first "=" only, keeps empty values ("KEY="), and skips
// entries with no "=" at all. Later duplicates win, as with execve.
func Environ(environ []string) Map {
	result := make(Map, len(environ))
	for _, entry := range environ {
		idx := strings.Index(entry, "=")
		if idx == -1 {
			continue
		}
		result[entry[:idx]] = entry[idx+1:]
	}
	return result
}

// Chain consults each source in order and returns the first hit.
type Chain []Source

// Lookup implements Source.
func (c Chain) Lookup(key string) (string, bool) {
	for _, s := range c {
		if s == nil {
			continue
		}
		if v, ok := s.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// ErrNoDotenvPath is returned when Dotenv is called without a path.
var ErrNoDotenvPath = errors.New("no dotenv file given")

// Dotenv reads one or more .env files into a Map. When a key appears in
// several files the last file wins.
func Dotenv(paths ...string) (Map, error) {
	if len(paths) == 0 {
		return nil, ErrNoDotenvPath
	}
	values, err := godotenv.Read(paths...)
	if err != nil {
		return nil, fmt.Errorf("read env file: %w", err)
	}
	return Map(values), nil
}
