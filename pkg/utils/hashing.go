package utils

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// HashKey derives a short deterministic cache key from any JSON-encodable
// value, such as a trip spec.
func HashKey(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum)[:16]
}
