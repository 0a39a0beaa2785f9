package store

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// LoadJSON decodes the record under key into v. A missing record leaves v
// untouched. A read error or malformed content is logged and reported as
// false so callers can fall back to an empty collection.
func LoadJSON(kv KV, key string, v any, log *zap.Logger) bool {
	raw, ok, err := kv.Get(key)
	if err != nil {
		log.Warn("reading record", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		log.Warn("discarding corrupt record", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// SaveJSON encodes v and writes it under key.
func SaveJSON(kv KV, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := kv.Put(key, raw); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
