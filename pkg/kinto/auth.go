package kinto

import "encoding/base64"

// AuthHeaderName is the header carrying the formatted credential value.
const AuthHeaderName = "Authorization"

// Auth is a closed union of the supported credential kinds. Each variant
// is a pure input to header formatting; no lifecycle is attached.
type Auth interface {
	headerValue() string
}

// NoAuth sends an empty Authorization value.
type NoAuth struct{}

func (NoAuth) headerValue() string {
	return ""
}

// BasicAuth formats as "Basic base64(username:password)".
type BasicAuth struct {
	Username string
	Password string
}

func (a BasicAuth) headerValue() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(a.Username+":"+a.Password))
}

// TokenAuth formats as "Bearer token".
type TokenAuth struct {
	Token string
}

func (a TokenAuth) headerValue() string {
	return "Bearer " + a.Token
}

// CustomAuth formats as "realm token" for servers using a non-standard
// authorization scheme.
type CustomAuth struct {
	Realm string
	Token string
}

func (a CustomAuth) headerValue() string {
	return a.Realm + " " + a.Token
}

// AuthHeader returns the Authorization header for the given credentials.
func AuthHeader(auth Auth) Header {
	if auth == nil {
		auth = NoAuth{}
	}

	return Header{Name: AuthHeaderName, Value: auth.headerValue()}
}
