package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/custodia-labs/gifex/internal/core/domain"
)

// maxDepth matches the nesting limit of encoding/json.
const maxDepth = 10000

var errTooDeep = errors.New("exceeded max depth")

// decodeValue parses data into an order-preserving Value.
// data must already be known to be a single valid JSON value.
func decodeValue(data []byte) (domain.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return domain.Value{}, err
	}
	v, err := decodeToken(dec, tok, 1)
	if err != nil {
		return domain.Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.Value{}, fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
	}
	return v, nil
}

func decodeToken(dec *json.Decoder, tok json.Token, depth int) (domain.Value, error) {
	switch t := tok.(type) {
	case nil:
		return domain.Null(), nil
	case bool:
		return domain.Bool(t), nil
	case json.Number:
		return domain.Number(t.String()), nil
	case string:
		return domain.String(t), nil
	case json.Delim:
		if depth > maxDepth {
			return domain.Value{}, errTooDeep
		}
		switch t {
		case '[':
			return decodeArray(dec, depth)
		case '{':
			return decodeObject(dec, depth)
		}
	}
	return domain.Value{}, fmt.Errorf("unexpected token %v at offset %d", tok, dec.InputOffset())
}

func decodeArray(dec *json.Decoder, depth int) (domain.Value, error) {
	items := make([]domain.Value, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return domain.Value{}, err
		}
		item, err := decodeToken(dec, tok, depth+1)
		if err != nil {
			return domain.Value{}, err
		}
		items = append(items, item)
	}
	// closing ]
	if _, err := dec.Token(); err != nil {
		return domain.Value{}, err
	}
	return domain.Array(items...), nil
}

func decodeObject(dec *json.Decoder, depth int) (domain.Value, error) {
	obj := domain.NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return domain.Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return domain.Value{}, fmt.Errorf("object key is %T, not string", keyTok)
		}
		tok, err := dec.Token()
		if err != nil {
			return domain.Value{}, err
		}
		val, err := decodeToken(dec, tok, depth+1)
		if err != nil {
			return domain.Value{}, err
		}
		obj.Set(key, val)
	}
	// closing }
	if _, err := dec.Token(); err != nil {
		return domain.Value{}, err
	}
	return domain.ObjectValue(obj), nil
}
