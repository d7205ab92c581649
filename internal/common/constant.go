// Package common contains shared constants, helpers and the error taxonomy
// used across SimpleFileHost components.
package common

// AuthorizationHeaderName is the HTTP header carrying the access token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is accepted (and stripped) in front of the access token.
const BearerPrefix = "Bearer "
