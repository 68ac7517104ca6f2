package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

var errUnsupportedScan = errors.New("unsupported jsonb scan source")

// JSONList maps a JSONB array column. A nil list is stored as [].
type JSONList[T any] []T

func (l JSONList[T]) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}

	raw, err := json.Marshal([]T(l))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal jsonb: %w", err)
	}

	return raw, nil
}

func (l *JSONList[T]) Scan(src any) error {
	var raw []byte

	switch value := src.(type) {
	case nil:
		*l = nil

		return nil
	case []byte:
		raw = value
	case string:
		raw = []byte(value)
	default:
		return fmt.Errorf("%w: %T", errUnsupportedScan, src)
	}

	if err := json.Unmarshal(raw, (*[]T)(l)); err != nil {
		return fmt.Errorf("failed to unmarshal jsonb: %w", err)
	}

	return nil
}
