package kinto

import (
	"encoding/json"
	"fmt"
)

// DecodeFunc decodes one domain object from its raw JSON value (the
// content of the data envelope, not the envelope itself).
type DecodeFunc[T any] func([]byte) (T, error)

// dataEnvelope is the wrapping convention shared by read and write
// payloads: {"data": <object or array>}.
type dataEnvelope struct {
	Data interface{} `json:"data"`
}

type rawEnvelope struct {
	Data *json.RawMessage `json:"data"`
}

// Resource binds an item/list endpoint pair to envelope-aware decoders
// for one domain type. Construct it once per type and treat it as
// immutable.
type Resource[T any] struct {
	// ItemEndpoint addresses one object by id.
	ItemEndpoint func(id string) Endpoint
	// ListEndpoint addresses all objects under the parent.
	ListEndpoint Endpoint
	// DecodeItem unwraps the data envelope and decodes one object.
	DecodeItem func([]byte) (T, error)
	// DecodeList unwraps the data envelope and decodes an object array.
	DecodeList func([]byte) ([]T, error)
}

// DecodeJSON returns a DecodeFunc backed by encoding/json for T.
func DecodeJSON[T any]() DecodeFunc[T] {
	return func(data []byte) (T, error) {
		var value T

		err := json.Unmarshal(data, &value)
		if err != nil {
			return value, fmt.Errorf("decoding object: %w", err)
		}

		return value, nil
	}
}

func unwrapData(body []byte) (json.RawMessage, error) {
	var envelope rawEnvelope

	err := json.Unmarshal(body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}

	if envelope.Data == nil {
		return nil, ErrMissingDataField
	}

	return *envelope.Data, nil
}

func envelopeDecoders[T any](decode DecodeFunc[T]) (func([]byte) (T, error), func([]byte) ([]T, error)) {
	item := func(body []byte) (T, error) {
		var zero T

		raw, err := unwrapData(body)
		if err != nil {
			return zero, err
		}

		return decode(raw)
	}

	list := func(body []byte) ([]T, error) {
		raw, err := unwrapData(body)
		if err != nil {
			return nil, err
		}

		var items []json.RawMessage

		err = json.Unmarshal(raw, &items)
		if err != nil {
			return nil, fmt.Errorf("decoding object array: %w", err)
		}

		objects := make([]T, 0, len(items))

		for _, item := range items {
			object, err := decode(item)
			if err != nil {
				return nil, err
			}

			objects = append(objects, object)
		}

		return objects, nil
	}

	return item, list
}

// BucketResource describes the bucket level of the hierarchy.
func BucketResource[T any](decode DecodeFunc[T]) Resource[T] {
	item, list := envelopeDecoders(decode)

	return Resource[T]{
		ItemEndpoint: func(id string) Endpoint { return BucketEndpoint{Bucket: id} },
		ListEndpoint: BucketListEndpoint{},
		DecodeItem:   item,
		DecodeList:   list,
	}
}

// CollectionResource describes the collections of one bucket.
func CollectionResource[T any](bucket string, decode DecodeFunc[T]) Resource[T] {
	item, list := envelopeDecoders(decode)

	return Resource[T]{
		ItemEndpoint: func(id string) Endpoint {
			return CollectionEndpoint{Bucket: bucket, Collection: id}
		},
		ListEndpoint: CollectionListEndpoint{Bucket: bucket},
		DecodeItem:   item,
		DecodeList:   list,
	}
}

// RecordResource describes the records of one collection.
func RecordResource[T any](bucket, collection string, decode DecodeFunc[T]) Resource[T] {
	item, list := envelopeDecoders(decode)

	return Resource[T]{
		ItemEndpoint: func(id string) Endpoint {
			return RecordEndpoint{Bucket: bucket, Collection: collection, Record: id}
		},
		ListEndpoint: RecordListEndpoint{Bucket: bucket, Collection: collection},
		DecodeItem:   item,
		DecodeList:   list,
	}
}
