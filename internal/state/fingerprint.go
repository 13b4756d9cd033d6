package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"
	"strings"
)

// schemaVersion changes whenever the stored diagnostic format or the
// fingerprint inputs change.
const schemaVersion = "1"

// ContentHash returns the hex SHA-256 of text.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Fingerprint identifies one analysis: the rule catalog, the effective
// settings and every document with its content hash. Diagnostics of one
// document may depend on the others through binding, so the whole set is
// part of the key. hashes maps path to content hash.
func Fingerprint(rules []string, settings any, hashes map[string]string) (string, error) {
	h := sha256.New()
	h.Write([]byte("sharplint-cache/" + schemaVersion + "\n"))
	h.Write([]byte(strings.Join(rules, ",") + "\n"))

	raw, err := json.Marshal(settings)
	if err != nil {
		return "", err
	}
	h.Write(raw)
	h.Write([]byte{'\n'})

	paths := make([]string, 0, len(hashes))
	for p := range hashes {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	for _, p := range paths {
		h.Write([]byte(p + "\x00" + hashes[p] + "\n"))
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
