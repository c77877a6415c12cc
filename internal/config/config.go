package config

type Config interface {
	EnvConfig
	BackendConfig
	SessionConfig
	IntegrationsConfig
	SSOConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
}

// BackendConfig describes how to reach the remote styleDecor REST API.
type BackendConfig interface {
	GetBackendBaseURL() string
}

// SessionConfig covers the browser-facing token cookie.
type SessionConfig interface {
	GetTokenCookieName() string
	GetSecureCookies() bool
}

// IntegrationsConfig carries keys for external services rendered into pages.
// The payment processor and map provider own their behavior; only the keys
// pass through here.
type IntegrationsConfig interface {
	GetPaymentPublishableKey() string
	GetMapTileURL() string
}

// SSOConfig configures the optional OIDC identity-provider login.
type SSOConfig interface {
	GetOIDCIssuer() string
	GetOIDCClientID() string
	GetOIDCClientSecret() string
	GetOIDCRedirectURL() string
	SSOEnabled() bool
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}
