package convexenv

import (
	"github.com/rs/zerolog"

	"convexenv/schema"
	"convexenv/source"
)

// Reserved output fields supplied by the hosting platform. A schema may not declare them.
const (
	SiteURLKey  = "CONVEX_SITE_URL"
	CloudURLKey = "CONVEX_CLOUD_URL"
)

// Options controls Create.
type Options struct {
	// Source supplies raw values. nil means the process environment.
	Source source.Source
	// Ambient supplies the reserved platform fields. nil means the process environment.
	Ambient source.Source
	// SkipValidation suppresses missing-required and failed-validation errors.
	// Present but malformed values (empty, not a number, not a boolean) still fail.
	SkipValidation bool
	// Logger receives one debug event per variable. Values are never logged.
	Logger *zerolog.Logger
}

// Create resolves every variable of s, in declaration order, into a typed Env.
// The first offending variable aborts the call with a *VariableError.
func Create(s schema.Schema, opts Options) (*Env, error) {
	values := orOS(opts.Source)
	ambient := orOS(opts.Ambient)
	log := opts.logger()

	env := newEnv(s.Len())
	env.SiteURL, _ = ambient.Lookup(SiteURLKey)
	env.CloudURL, _ = ambient.Lookup(CloudURLKey)

	for _, e := range s.Fields() {
		if isReserved(e.Name) {
			log.Debug().Str("key", e.Name).Msg("reserved name declared")
			return nil, &VariableError{Op: OpCreate, Key: e.Name, Err: ErrReservedKey}
		}

		value, err := resolve(e, values, opts.SkipValidation)
		if err != nil {
			log.Debug().Str("key", e.Name).Str("kind", e.Validator.Kind().String()).Err(err).Msg("variable rejected")
			return nil, &VariableError{Op: OpCreate, Key: e.Name, Err: err}
		}

		env.set(e.Name, value)
		log.Debug().Str("key", e.Name).Str("kind", e.Validator.Kind().String()).Bool("set", value != nil).Msg("variable resolved")
	}

	return env, nil
}

// Verify checks every variable of s against src without building a result.
// It has no skip switch: missing and invalid values always fail.
func Verify(s schema.Schema, src source.Source) error {
	values := orOS(src)
	for _, e := range s.Fields() {
		if _, err := resolve(e, values, false); err != nil {
			return &VariableError{Op: OpVerify, Key: e.Name, Err: err}
		}
	}
	return nil
}

// MustCreate is like Create but panics on error. It suits package-level
// initialisation where a bad environment should stop the program.
func MustCreate(s schema.Schema, opts Options) *Env {
	env, err := Create(s, opts)
	if err != nil {
		panic(err)
	}
	return env
}

// MustVerify is like Verify but panics on error.
func MustVerify(s schema.Schema, src source.Source) {
	if err := Verify(s, src); err != nil {
		panic(err)
	}
}

// resolve runs the per-variable pipeline: presence, transform, validate.
func resolve(e schema.Entry, values source.Source, skip bool) (any, error) {
	raw, present := values.Lookup(e.Name)

	if !e.Validator.IsOptional() && !present && !skip {
		return nil, ErrRequired
	}

	value, err := Transform(raw, present, e.Validator)
	if err != nil {
		return nil, err
	}

	if !Validate(e.Validator, value) && !skip {
		return nil, validationError(e.Validator)
	}

	return value, nil
}

func isReserved(name string) bool {
	return name == SiteURLKey || name == CloudURLKey
}

func orOS(s source.Source) source.Source {
	if s == nil {
		return source.OS()
	}
	return s
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return o.Logger
}
