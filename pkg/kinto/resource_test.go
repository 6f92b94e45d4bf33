package kinto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/kinto-client/pkg/kinto"
)

func TestResourceDecodeItem(t *testing.T) {
	t.Parallel()

	resource := kinto.BucketResource(kinto.DecodeJSON[kinto.Bucket]())

	t.Run("unwraps the data envelope", func(t *testing.T) {
		t.Parallel()

		bucket, err := resource.DecodeItem([]byte(`{"data": {"id": "blog", "last_modified": 42}}`))
		require.NoError(t, err)
		assert.Equal(t, "blog", bucket.ID)
		assert.Equal(t, int64(42), bucket.LastModified)
	})

	t.Run("missing data field", func(t *testing.T) {
		t.Parallel()

		_, err := resource.DecodeItem([]byte(`{"permissions": {}}`))
		require.ErrorIs(t, err, kinto.ErrMissingDataField)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		_, err := resource.DecodeItem([]byte(`not json`))
		require.Error(t, err)
	})
}

func TestResourceDecodeList(t *testing.T) {
	t.Parallel()

	resource := kinto.RecordResource("blog", "posts", kinto.DecodeJSON[kinto.Record]())

	t.Run("decodes objects in order", func(t *testing.T) {
		t.Parallel()

		records, err := resource.DecodeList([]byte(`{"data": [
			{"id": "r1", "last_modified": 2, "title": "first"},
			{"id": "r2", "last_modified": 1, "title": "second"}
		]}`))
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "r1", records[0].ID())
		assert.Equal(t, "second", records[1]["title"])
	})

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()

		records, err := resource.DecodeList([]byte(`{"data": []}`))
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("data must be an array", func(t *testing.T) {
		t.Parallel()

		_, err := resource.DecodeList([]byte(`{"data": {"id": "r1"}}`))
		require.Error(t, err)
	})
}

func TestResourceCustomType(t *testing.T) {
	t.Parallel()

	type post struct {
		kinto.Object
		Title string `json:"title"`
		Done  bool   `json:"done"`
	}

	resource := kinto.RecordResource("blog", "posts", kinto.DecodeJSON[post]())

	decoded, err := resource.DecodeItem([]byte(`{"data": {"id": "r1", "last_modified": 7, "title": "hi", "done": true}}`))
	require.NoError(t, err)
	assert.Equal(t, "r1", decoded.ID)
	assert.Equal(t, "hi", decoded.Title)
	assert.True(t, decoded.Done)
}

func TestRecordAccessors(t *testing.T) {
	t.Parallel()

	t.Run("decoded timestamps arrive as float64", func(t *testing.T) {
		t.Parallel()

		record := kinto.Record{"id": "r1", "last_modified": float64(1712345678901)}
		assert.Equal(t, "r1", record.ID())
		assert.Equal(t, int64(1712345678901), record.LastModified())
	})

	t.Run("missing fields fall back to zero values", func(t *testing.T) {
		t.Parallel()

		record := kinto.Record{"title": "no id yet"}
		assert.Empty(t, record.ID())
		assert.Zero(t, record.LastModified())
	})
}
