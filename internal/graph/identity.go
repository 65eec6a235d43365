package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// NodeID computes the stable, content-addressed identifier for a symbol:
// hex(SHA-256("<file_path>|<kind_lowercase>|<qualified_name>|<start_line>")).
// This is the one identity surface that must stay bit-exact across
// implementations and across runs over identical file bytes.
func NodeID(filePath string, kind NodeKind, qualifiedName string, startLine int64) string {
	payload := fmt.Sprintf("%s|%s|%s|%d", filePath, strings.ToLower(string(kind)), qualifiedName, startLine)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// ContentHash computes the change-detection digest for a file's raw bytes:
// hex(SHA-256(bytes)). Modification timestamps are advisory only; this hash
// is the sole signal the indexer trusts for "has this file changed".
func ContentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
