// Package reader abstracts the RFID card reader at the station. The reader
// yields opaque hexadecimal card tokens; everything else about the card
// protocol stays on the other side of this boundary.
package reader

import (
	"fmt"
	"strings"
)

// Reader is a non-blocking source of card tokens. Poll returns ok=false
// when no card has been presented since the last call.
type Reader interface {
	Poll() (token string, ok bool)
	Close() error
}

// Card UIDs are 4, 7 or 10 bytes, so a valid token is 8 to 20 hex digits.
const (
	minTokenLen = 8
	maxTokenLen = 20
)

// ParseToken validates and canonicalizes a raw token read from the wire.
// Malformed frames (line noise, partial reads) are rejected here so they
// never reach a session.
func ParseToken(raw string) (string, error) {
	token := strings.ToUpper(strings.TrimSpace(raw))
	if len(token) < minTokenLen || len(token) > maxTokenLen || len(token)%2 != 0 {
		return "", fmt.Errorf("bad token length %d", len(token))
	}
	for _, r := range token {
		if (r < '0' || r > '9') && (r < 'A' || r > 'F') {
			return "", fmt.Errorf("non-hex character %q in token", r)
		}
	}
	return token, nil
}
