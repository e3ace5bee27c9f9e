package source

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/wallact/wallact/pkg/models"
)

// Source produces the normalized subscription list for one import run. The
// importer does not care whether records came from a file or from a live
// Wallos instance.
type Source interface {
	Subscriptions() ([]models.Subscription, error)
}

// decodeRecords shape-checks an export payload. A bare JSON array is always
// accepted; otherwise the payload must be an object carrying the record array
// under one of the given keys. Anything else is an invalid export format.
func decodeRecords(data []byte, keys ...string) ([]models.RawSubscription, error) {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var raws []models.RawSubscription
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, fmt.Errorf("invalid export format: %w", err)
		}
		return raws, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("invalid export format: %w", err)
	}

	for _, key := range keys {
		field, ok := envelope[key]
		if !ok || string(bytes.TrimSpace(field)) == "null" {
			// a null field value is no more an array than a missing key
			continue
		}
		var raws []models.RawSubscription
		if err := json.Unmarshal(field, &raws); err != nil {
			return nil, fmt.Errorf("invalid export format: %q is not an array of subscriptions: %w", key, err)
		}
		return raws, nil
	}

	return nil, fmt.Errorf("invalid export format: expected an array or an object with one of %v", keys)
}
