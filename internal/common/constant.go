// Package common contains shared constants and sentinel errors used across
// bidscurator components.
package common

// AuthorizationHeaderName is the HTTP header carrying the platform API key
// on outbound requests.
const AuthorizationHeaderName = "Authorization"

// AuthorizationScheme prefixes the API key in the Authorization header.
const AuthorizationScheme = "scitran-user"

// AppName is used for the config directory and the environment prefix.
const AppName = "bidscurator"
