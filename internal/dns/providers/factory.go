package providers

import (
	"github.com/go-logr/logr"

	"nathanbeddoewebdev/subdns/internal/config"
	"nathanbeddoewebdev/subdns/internal/services/auth"
)

// FromConfig resolves the Cloudflare token and builds the provider.
//
// CF_API_TOKEN wins; when it is empty the keychain entry is used. A
// keychain that cannot be read is logged and treated as empty, so a
// headless host still starts and reports the missing token per request.
// The returned config is a copy of cfg carrying the resolved token.
func FromConfig(cfg *config.Config, store auth.Store, log logr.Logger) (*CloudflareProvider, *config.Config) {
	token, source, err := auth.Resolve(store, CloudflareTokenStore, cfg.APIToken)
	if err != nil {
		log.V(1).Info("keychain unavailable, continuing without stored token", "error", err.Error())
	}
	log.V(1).Info("resolved Cloudflare token", "source", source)

	resolved := cfg.WithToken(token)
	p := NewCloudflareProvider(resolved.APIToken,
		WithBaseURL(resolved.APIBaseURL),
		WithLogger(log.WithName("cloudflare")),
	)
	return p, resolved
}
