package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/kinto-client/pkg/kinto"
	"github.com/fivetwenty-io/kinto-client/pkg/kintoclient"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Common static errors used throughout the commands package.
var (
	ErrServerRequired     = errors.New("server URL is required (use --server, KINTO_SERVER or the config file)")
	ErrBucketRequired     = errors.New("bucket is required (use --bucket)")
	ErrCollectionRequired = errors.New("collection is required (use --collection)")
	ErrInvalidFilter      = errors.New("invalid filter format, expected field=value")
	ErrInvalidData        = errors.New("data must be a JSON object")
)

// createClient builds a kinto.API from the effective CLI configuration.
func createClient(ctx context.Context) (kinto.API, error) {
	serverURL := viper.GetString("server")
	if serverURL == "" {
		return nil, ErrServerRequired
	}

	config := &kinto.Config{
		ServerURL:   serverURL,
		AccessToken: viper.GetString("token"),
		Username:    viper.GetString("username"),
		Password:    viper.GetString("password"),
	}

	client, err := kintoclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// parseFilters maps "field=value" CLI arguments to equality filters.
// Prefixed operators (min_, max_, lt_, gt_, not_, like_, in_) pass
// through as the server understands them.
func parseFilters(raw []string) ([]kinto.Filter, error) {
	filters := make([]kinto.Filter, 0, len(raw))

	for _, pair := range raw {
		field, value, found := strings.Cut(pair, "=")
		if !found || field == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFilter, pair)
		}

		filters = append(filters, kinto.Equal{Field: field, Value: value})
	}

	return filters, nil
}

// parseData parses an inline JSON object or reads one from a file when
// the argument starts with "@".
func parseData(raw string) (map[string]interface{}, error) {
	content := []byte(raw)

	if strings.HasPrefix(raw, "@") {
		fileContent, err := os.ReadFile(strings.TrimPrefix(raw, "@"))
		if err != nil {
			return nil, fmt.Errorf("reading data file: %w", err)
		}

		content = fileContent
	}

	var data map[string]interface{}

	err := json.Unmarshal(content, &data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	return data, nil
}

// renderJSON writes indented JSON to stdout.
func renderJSON(value interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(value)
}

// renderYAML writes YAML to stdout.
func renderYAML(value interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)

	return encoder.Encode(value)
}

// renderObjectTable prints objects as an ID/Last Modified table.
func renderObjectTable[T any](objects []T, id func(T) string, lastModified func(T) int64) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Last Modified")

	for _, object := range objects {
		_ = table.Append(id(object), strconv.FormatInt(lastModified(object), 10))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderRecordTable prints records with their fields flattened into a
// Field: value column, keys sorted for a stable layout.
func renderRecordTable(records []kinto.Record) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Last Modified", "Fields")

	for _, record := range records {
		keys := make([]string, 0, len(record))

		for key := range record {
			if key == "id" || key == "last_modified" {
				continue
			}

			keys = append(keys, key)
		}

		sort.Strings(keys)

		fields := make([]string, 0, len(keys))
		for _, key := range keys {
			fields = append(fields, fmt.Sprintf("%s: %v", key, record[key]))
		}

		_ = table.Append(record.ID(), strconv.FormatInt(record.LastModified(), 10), strings.Join(fields, "\n"))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// listOptionsFromFlags assembles the shared --filter/--sort/--limit
// options of list commands.
func listOptionsFromFlags(filterArgs []string, sortKeys []string, limit int) (*kinto.ListOptions, error) {
	filters, err := parseFilters(filterArgs)
	if err != nil {
		return nil, err
	}

	return &kinto.ListOptions{
		Filters: filters,
		Sort:    sortKeys,
		Limit:   limit,
	}, nil
}
