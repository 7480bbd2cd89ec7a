// Package pagination implements Relay-style connection pagination backed by
// offset/limit queries. Cursors are opaque base64 tokens embedding a random
// salt and a decimal offset; only the decoded offset is part of the contract,
// token byte-equality is not (the salt varies between encodings).
package pagination

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidCursor marks a cursor token that cannot be decoded. Callers can
// match it with errors.Is to turn bad client input into a 4xx response.
var ErrInvalidCursor = errors.New("invalid cursor")

const (
	saltAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	saltLength   = 8

	// cursorSentinel separates salt from offset. It must never occur in the
	// salt alphabet.
	cursorSentinel = "*"
)

// EncodeCursor encodes a non-negative offset into an opaque cursor token.
func EncodeCursor(offset int) string {
	raw := randomSalt() + cursorSentinel + strconv.Itoa(offset)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor decodes a cursor token back to its offset. A malformed token
// is a user input error, not a crash: callers should map the returned error
// to an invalid-cursor response.
func DecodeCursor(cursor string) (int, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("%w: undecodable encoding: %v", ErrInvalidCursor, err)
	}

	_, rest, found := strings.Cut(string(raw), cursorSentinel)
	if !found {
		return 0, fmt.Errorf("%w: missing sentinel", ErrInvalidCursor)
	}

	offset, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("%w: non-numeric offset", ErrInvalidCursor)
	}
	if offset < 0 {
		return 0, fmt.Errorf("%w: negative offset", ErrInvalidCursor)
	}

	return offset, nil
}

func randomSalt() string {
	buf := make([]byte, saltLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; a fixed salt still
		// yields valid cursors.
		return strings.Repeat("0", saltLength)
	}
	for i, b := range buf {
		buf[i] = saltAlphabet[int(b)%len(saltAlphabet)]
	}
	return string(buf)
}
