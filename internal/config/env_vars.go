package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar       = "PORT"
	appNameVar       = "APP_NAME"
	backendURLVar    = "BACKEND_BASE_URL"
	cookieNameVar    = "TOKEN_COOKIE_NAME"
	paymentKeyVar    = "PAYMENT_PUBLISHABLE_KEY"
	mapTileURLVar    = "MAP_TILE_URL"
	oidcIssuerVar    = "OIDC_ISSUER"
	oidcClientIDVar  = "OIDC_CLIENT_ID"
	oidcSecretVar    = "OIDC_CLIENT_SECRET"
	oidcRedirectVar  = "OIDC_REDIRECT_URL"
	devBackendOrigin = "http://localhost:5000"
)

type EnvVars struct{}

var _ Config = mainConfig{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "styleDecor")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

// GetBackendBaseURL returns the origin of the remote styleDecor REST API.
// Defaults to the local development origin; deployments override it.
func (EnvVars) GetBackendBaseURL() string {
	return GetEnv(backendURLVar, devBackendOrigin)
}

func (EnvVars) GetTokenCookieName() string {
	return GetEnv(cookieNameVar, "styledecor_token")
}

func (e EnvVars) GetSecureCookies() bool {
	return e.GetEnv() != "DEV"
}

func (EnvVars) GetPaymentPublishableKey() string {
	return GetEnv(paymentKeyVar, "")
}

func (EnvVars) GetMapTileURL() string {
	return GetEnv(mapTileURLVar, "https://tile.openstreetmap.org/{z}/{x}/{y}.png")
}

func (EnvVars) GetOIDCIssuer() string {
	return GetEnv(oidcIssuerVar, "")
}

func (EnvVars) GetOIDCClientID() string {
	return GetEnv(oidcClientIDVar, "")
}

func (EnvVars) GetOIDCClientSecret() string {
	return GetEnv(oidcSecretVar, "")
}

func (EnvVars) GetOIDCRedirectURL() string {
	return GetEnv(oidcRedirectVar, "")
}

func (e EnvVars) SSOEnabled() bool {
	return e.GetOIDCIssuer() != "" && e.GetOIDCClientID() != ""
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
