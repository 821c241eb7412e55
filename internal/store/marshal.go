package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/buildergen/internal/ir"
)

// marshalRecords stores record names as canonical JSON.
func marshalRecords(records []string) (string, error) {
	if records == nil {
		records = []string{}
	}
	data, err := ir.MarshalCanonical(records)
	if err != nil {
		return "", fmt.Errorf("marshal records: %w", err)
	}
	return string(data), nil
}

func unmarshalRecords(data string) ([]string, error) {
	records := []string{}
	if data == "" {
		return records, nil
	}
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("unmarshal records: %w", err)
	}
	return records, nil
}
