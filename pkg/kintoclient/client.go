// Package kintoclient provides the main entry point for creating Kinto API clients
package kintoclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/kinto-client/internal/client"
	"github.com/fivetwenty-io/kinto-client/internal/constants"
	kintohttp "github.com/fivetwenty-io/kinto-client/internal/http"
	"github.com/fivetwenty-io/kinto-client/pkg/kinto"
)

// New creates a new Kinto API client from the given configuration.
func New(ctx context.Context, config *kinto.Config) (kinto.API, error) {
	if config == nil {
		return nil, kinto.ErrConfigRequired
	}

	if config.ServerURL == "" {
		return nil, kinto.ErrBaseURLRequired
	}

	// Normalize the server URL
	serverURL := strings.TrimSuffix(config.ServerURL, "/")
	if !strings.HasPrefix(serverURL, "http://") && !strings.HasPrefix(serverURL, "https://") {
		serverURL = "https://" + serverURL
	}

	core := kinto.NewClient(serverURL, resolveAuth(config))
	httpClient := kintohttp.NewClient(transportOptions(config)...)

	return client.New(core, httpClient, config.Logger), nil
}

// resolveAuth picks credentials in precedence order: explicit Auth,
// then AccessToken, then Username/Password, then unauthenticated.
func resolveAuth(config *kinto.Config) kinto.Auth {
	if config.Auth != nil {
		return config.Auth
	}

	if config.AccessToken != "" {
		return kinto.TokenAuth{Token: config.AccessToken}
	}

	if config.Username != "" {
		return kinto.BasicAuth{Username: config.Username, Password: config.Password}
	}

	return kinto.NoAuth{}
}

// transportOptions builds HTTP client options from config.
func transportOptions(config *kinto.Config) []kintohttp.Option {
	var opts []kintohttp.Option

	if config.Logger != nil {
		opts = append(opts, kintohttp.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, kintohttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, kintohttp.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, kintohttp.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := config.RetryWaitMin
		retryWaitMax := config.RetryWaitMax

		if retryWaitMin <= 0 {
			retryWaitMin = constants.DefaultRetryWaitMin
		}

		if retryWaitMax <= 0 {
			retryWaitMax = constants.DefaultRetryWaitMax
		}

		opts = append(opts, kintohttp.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.Cache != nil {
		opts = append(opts, kintohttp.WithCache(config.Cache, 0))
	}

	return opts
}

// NewWithEndpoint creates a new client with just a server URL (no auth).
func NewWithEndpoint(ctx context.Context, serverURL string) (kinto.API, error) {
	return New(ctx, &kinto.Config{
		ServerURL: serverURL,
	})
}

// NewWithToken creates a new client with a server URL and bearer token.
func NewWithToken(ctx context.Context, serverURL, token string) (kinto.API, error) {
	return New(ctx, &kinto.Config{
		ServerURL:   serverURL,
		AccessToken: token,
	})
}

// NewWithBasicAuth creates a new client using username/password authentication.
func NewWithBasicAuth(ctx context.Context, serverURL, username, password string) (kinto.API, error) {
	return New(ctx, &kinto.Config{
		ServerURL: serverURL,
		Username:  username,
		Password:  password,
	})
}

// Verify verifies connectivity by fetching the server root document.
func Verify(ctx context.Context, api kinto.API) (*kinto.ServerInfo, error) {
	info, err := api.ServerInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("verifying server connectivity: %w", err)
	}

	return info, nil
}
