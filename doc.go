// Package convexenv validates and converts string environment variables
// against a small declared schema.
//
// A schema maps variable names to validators built with the schema package:
// string, number, boolean, a literal constant, a union of literal constants,
// and an Optional wrapper around any of them. Two entry points share one
// pipeline:
//
//   - Create resolves every variable into a typed *Env, or fails on the first
//     variable that is missing, malformed or outside its declared shape.
//   - Verify performs the same checks and discards the values. It is meant for
//     deploy or startup checks that run apart from the code reading the values,
//     typically paired with Create(..., Options{SkipValidation: true}).
//
// Values come from a source.Source: the process environment by default, or an
// explicit source.Map. The result always carries the platform fields
// CONVEX_SITE_URL and CONVEX_CLOUD_URL, which a schema may not redeclare.
//
// Example:
//
//	env, err := convexenv.Create(schema.New(
//		schema.Field("OPENAI_API_KEY", schema.String()),
//		schema.Field("FREE_REQUESTS_PER_USER", schema.Number()),
//		schema.Field("DEBUG_MODE", schema.Optional(schema.Boolean())),
//	), convexenv.Options{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	limit, _ := env.GetNumber("FREE_REQUESTS_PER_USER")
package convexenv
