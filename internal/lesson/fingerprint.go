package lesson

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Fingerprint derives a deterministic content id for a task: the value is
// round-tripped through JSON into a generic structure so that map key order
// can never leak in (encoding/json emits object keys sorted), then hashed.
// Identical task content always collapses to one id regardless of when or in
// what field order it was generated. Never fails: unmarshalable values fall
// back to their fmt representation.
func Fingerprint(v any) string {
	canonical := canonicalJSON(v)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:16])
}

func canonicalJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	var generic any
	if err := json.Unmarshal(b, &generic); err != nil {
		return string(b)
	}
	out, err := json.Marshal(generic)
	if err != nil {
		return string(b)
	}
	return string(out)
}
