package kinto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/kinto-client/pkg/kinto"
)

func TestAuthHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		auth     kinto.Auth
		expected string
	}{
		{
			name:     "no auth sends empty value",
			auth:     kinto.NoAuth{},
			expected: "",
		},
		{
			name:     "nil auth behaves like no auth",
			auth:     nil,
			expected: "",
		},
		{
			name:     "basic auth",
			auth:     kinto.BasicAuth{Username: "demo", Password: "s3cr3t"},
			expected: "Basic ZGVtbzpzM2NyM3Q=",
		},
		{
			name:     "basic auth with empty password",
			auth:     kinto.BasicAuth{Username: "demo"},
			expected: "Basic ZGVtbzo=",
		},
		{
			name:     "token auth",
			auth:     kinto.TokenAuth{Token: "abc123"},
			expected: "Bearer abc123",
		},
		{
			name:     "custom auth",
			auth:     kinto.CustomAuth{Realm: "Portier", Token: "xyz"},
			expected: "Portier xyz",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			header := kinto.AuthHeader(tt.auth)
			assert.Equal(t, "Authorization", header.Name)
			assert.Equal(t, tt.expected, header.Value)
		})
	}
}

func TestNewClientCarriesAuthHeader(t *testing.T) {
	t.Parallel()

	client := kinto.NewClient("https://kinto.example.com/v1", kinto.TokenAuth{Token: "tok"})

	headers := client.Headers
	assert.Len(t, headers, 1)
	assert.Equal(t, kinto.Header{Name: "Authorization", Value: "Bearer tok"}, headers[0])
}
