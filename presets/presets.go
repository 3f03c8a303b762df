// Package presets holds schemas for well-known third-party integrations.
// They are plain data: merge them into an application schema with schema.Merge.
package presets

import (
	"sort"

	"convexenv/schema"
)

// Environment declares the deployment stage.
var Environment = schema.New(
	schema.Field("ENVIRONMENT", schema.Union("development", "preview", "production")),
)

// BetterAuth: https://labs.convex.dev/better-auth
var BetterAuth = schema.New(
	schema.Field("BETTER_AUTH_SECRET", schema.String()),
)

// Auth0: https://docs.convex.dev/auth/auth0
var Auth0 = schema.New(
	schema.Field("AUTH0_CLIENT_ID", schema.String()),
	schema.Field("AUTH0_DOMAIN", schema.String()),
)

// WorkOS AuthKit variants: https://docs.convex.dev/auth/authkit/
var WorkOS = struct {
	Base, Vite, Next schema.Schema
}{
	Base: required("WORKOS_CLIENT_ID", "WORKOS_CLIENT_SECRET"),
	Vite: required("VITE_WORKOS_CLIENT_ID", "VITE_WORKOS_CLIENT_SECRET"),
	Next: required("WORKOS_CLIENT_ID", "WORKOS_CLIENT_SECRET", "WORKOS_COOKIE_PASSWORD"),
}

// Clerk: https://docs.convex.dev/auth/clerk
var Clerk = required("CLERK_JWT_ISSUER_DOMAIN")

// Resend: https://www.convex.dev/components/resend
var Resend = required("RESEND_API_KEY", "RESEND_WEBHOOK_SECRET")

// R2: https://www.convex.dev/components/cloudflare-r2
var R2 = required("R2_TOKEN", "R2_ACCESS_KEY_ID", "R2_SECRET_ACCESS_KEY", "R2_ENDPOINT", "R2_BUCKET")

// Stripe: https://www.convex.dev/components/stripe
var Stripe = required("STRIPE_SECRET_KEY", "STRIPE_WEBHOOK_SECRET")

// Autumn: https://www.convex.dev/components/autumn
var Autumn = required("AUTUMN_SECRET_KEY")

// Dodo Payments: https://www.convex.dev/components/dodopayments
var Dodo = required("DODO_PAYMENTS_API_KEY", "DODO_PAYMENTS_WEBHOOK_SECRET").
	With("DODO_PAYMENTS_ENVIRONMENT", schema.Union("test_mode", "live_mode"))

// Polar: https://www.convex.dev/components/polar
var Polar = required("POLAR_ORGANIZATION_TOKEN", "POLAR_SERVER", "POLAR_WEBHOOK_SECRET")

// Uploadthing: https://docs.uploadthing.com/
var Uploadthing = required("UPLOADTHING_TOKEN", "UPLOADTHING_APP_ID")

// Upstash Redis: https://upstash.com/docs/redis
var Upstash = required("UPSTASH_REDIS_REST_URL", "UPSTASH_REDIS_REST_TOKEN")

// OAuth holds the social providers supported by better-auth, keyed by provider name.
// See https://www.better-auth.com/docs/authentication/<provider>.
var OAuth = map[string]schema.Schema{
	"apple":       client("APPLE").Merge(required("APPLE_APP_BUNDLE_IDENTIFIER")),
	"atlassian":   client("ATLASSIAN"),
	"cognito":     client("COGNITO").Merge(required("COGNITO_DOMAIN", "COGNITO_REGION", "COGNITO_USERPOOL_ID")),
	"discord":     client("DISCORD"),
	"dropbox":     client("DROPBOX"),
	"facebook":    client("FACEBOOK"),
	"figma":       client("FIGMA").Merge(required("FIGMA_CLIENT_KEY")),
	"github":      client("GITHUB"),
	"gitlab":      client("GITLAB").Merge(required("GITLAB_ISSUER")),
	"google":      client("GOOGLE"),
	"huggingFace": client("HUGGINGFACE"),
	"kakao":       client("KAKAO"),
	"kick":        client("KICK"),
	"line":        client("LINE"),
	"linear":      client("LINEAR"),
	"linkedin":    client("LINKEDIN"),
	"microsoft":   client("MICROSOFT"),
	"naver":       client("NAVER"),
	"notion":      client("NOTION"),
	"paybin":      client("PAYBIN"),
	"paypal":      client("PAYPAL").With("PAYPAL_ENVIRONMENT", schema.Union("sandbox", "live")),
	"polar":       client("POLAR"),
	"reddit":      client("REDDIT"),
	"roblox":      client("ROBLOX"),
	"salesforce":  client("SALESFORCE").With("SALESFORCE_ENVIRONMENT", schema.Union("sandbox", "production")),
	"slack":       client("SLACK"),
	"spotify":     client("SPOTIFY"),
	"tiktok":      required("TIKTOK_CLIENT_KEY", "TIKTOK_CLIENT_SECRET"),
	"twitch":      client("TWITCH"),
	"twitter":     client("TWITTER"),
	"vercel":      client("VERCEL"),
	"vk":          client("VK"),
	"zoom":        client("ZOOM"),
}

// registry maps the names used in schema files and on the command line.
var registry = buildRegistry()

func buildRegistry() map[string]schema.Schema {
	r := map[string]schema.Schema{
		"environment": Environment,
		"betterAuth":  BetterAuth,
		"auth0":       Auth0,
		"workOS.base": WorkOS.Base,
		"workOS.vite": WorkOS.Vite,
		"workOS.next": WorkOS.Next,
		"clerk":       Clerk,
		"resend":      Resend,
		"r2":          R2,
		"stripe":      Stripe,
		"autumn":      Autumn,
		"dodo":        Dodo,
		"polar":       Polar,
		"uploadthing": Uploadthing,
		"upstash":     Upstash,
	}
	for provider, s := range OAuth {
		r["oAuth."+provider] = s
	}
	return r
}

// Lookup returns the preset registered under name, e.g. "r2" or "oAuth.google".
func Lookup(name string) (schema.Schema, bool) {
	s, ok := registry[name]
	return s, ok
}

// Names lists every registered preset name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// required declares each name as a required string.
func required(names ...string) schema.Schema {
	var s schema.Schema
	for _, n := range names {
		s = s.With(n, schema.String())
	}
	return s
}

// client declares the <PREFIX>_CLIENT_ID / <PREFIX>_CLIENT_SECRET pair.
func client(prefix string) schema.Schema {
	return required(prefix+"_CLIENT_ID", prefix+"_CLIENT_SECRET")
}

