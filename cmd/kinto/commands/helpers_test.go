package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/kinto-client/pkg/kinto"
)

func TestParseFilters(t *testing.T) {
	filters, err := parseFilters([]string{"status=done", "min_age=21"})
	require.NoError(t, err)
	require.Len(t, filters, 2)
	assert.Equal(t, kinto.Equal{Field: "status", Value: "done"}, filters[0])
	assert.Equal(t, kinto.Equal{Field: "min_age", Value: "21"}, filters[1])
}

func TestParseFilters_Invalid(t *testing.T) {
	_, err := parseFilters([]string{"nodelimiter"})
	require.ErrorIs(t, err, ErrInvalidFilter)

	_, err = parseFilters([]string{"=value"})
	require.ErrorIs(t, err, ErrInvalidFilter)
}

func TestParseData_Inline(t *testing.T) {
	data, err := parseData(`{"title": "hello", "done": false}`)
	require.NoError(t, err)
	assert.Equal(t, "hello", data["title"])
	assert.Equal(t, false, data["done"])
}

func TestParseData_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"title": "from file"}`), 0600))

	data, err := parseData("@" + path)
	require.NoError(t, err)
	assert.Equal(t, "from file", data["title"])
}

func TestParseData_Invalid(t *testing.T) {
	_, err := parseData(`[1, 2, 3]`)
	require.ErrorIs(t, err, ErrInvalidData)
}

func TestWriteOptions(t *testing.T) {
	assert.Nil(t, writeOptions(0))
	assert.Equal(t, &kinto.WriteOptions{IfMatch: 42}, writeOptions(42))
}
