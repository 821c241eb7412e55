package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix leaves room for changing the algorithm.
const (
	DomainFingerprint = "buildergen/fingerprint/v1"
	DomainContent     = "buildergen/content/v1"
	DomainConfig      = "buildergen/config/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint identifies everything a generated file depends on: the package
// name, the record declarations in order, and the generator settings hash.
// Positions are excluded, so moving a declaration does not change it.
func Fingerprint(pkg string, records []*Record, settingsHash string) (string, error) {
	recs := make([]any, len(records))
	for i, r := range records {
		recs[i] = recordDocument(r)
	}
	doc := map[string]any{
		"ir_version": IRVersion,
		"package":    pkg,
		"records":    recs,
		"settings":   settingsHash,
	}
	canonical, err := MarshalCanonical(doc)
	if err != nil {
		return "", fmt.Errorf("Fingerprint: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainFingerprint, canonical), nil
}

// SettingsHash hashes a canonical settings document.
func SettingsHash(settings map[string]any) (string, error) {
	canonical, err := MarshalCanonical(settings)
	if err != nil {
		return "", fmt.Errorf("SettingsHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainConfig, canonical), nil
}

// ContentHash hashes rendered output bytes.
func ContentHash(data []byte) string {
	return hashWithDomain(DomainContent, data)
}

func recordDocument(r *Record) map[string]any {
	params := make([]any, len(r.TypeParams))
	for i, tp := range r.TypeParams {
		params[i] = map[string]any{
			"name":       tp.Name,
			"constraint": TypeString(tp.Constraint),
		}
	}
	fields := make([]any, len(r.Fields))
	for i, f := range r.Fields {
		fields[i] = map[string]any{
			"name": f.Name,
			"type": TypeString(f.Type),
		}
	}
	return map[string]any{
		"name":        r.Name,
		"type_params": params,
		"fields":      fields,
	}
}
