// Package sid computes stable hashes used by the project manager's
// incremental discipline: a per-function body hash and a
// per-declaration signature hash, both based on textual source spans so
// they survive formatting-preserving edits.
package sid

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Hash is a stable, short, hex-encoded content hash.
type Hash string

// OfText hashes a textual span (e.g. a function body's source slice).
// The input is first normalized to Unicode NFC so two byte-distinct but
// canonically-equivalent encodings of the same source hash identically.
func OfText(text string) Hash {
	normalized := norm.NFC.String(text)
	sum := sha256.Sum256([]byte(normalized))
	return Hash(hex.EncodeToString(sum[:])[:16])
}

// OfSignature hashes a declaration's public signature: its name,
// parameter types, and return type. Building the signature
// string is the caller's job; OfSignature only hashes the canonical
// form.
func OfSignature(name string, paramTypes []string, returnType string) Hash {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	b.WriteString(strings.Join(paramTypes, ","))
	b.WriteString(")->")
	b.WriteString(returnType)
	return OfText(b.String())
}
