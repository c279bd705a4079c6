package membership

import (
	"crypto/rand"
	"io"
	"strings"
)

// MemberIDPrefix starts every generated member id
const MemberIDPrefix = "GYM"

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	idLen      = 7
	// largest multiple of 36 that fits in a byte; bytes above it are redrawn
	idCutoff = 252
)

// NewMemberID returns GYM followed by 7 random characters from A-Z0-9.
// Uniqueness is enforced by the database; callers retry on collision
func NewMemberID() (string, error) {
	var b strings.Builder
	b.Grow(len(MemberIDPrefix) + idLen)
	b.WriteString(MemberIDPrefix)

	buf := make([]byte, 16)
	for n := 0; n < idLen; {
		if _, err := io.ReadFull(rand.Reader, buf); err != nil {
			return "", err
		}
		for _, c := range buf {
			if c >= idCutoff {
				continue
			}
			b.WriteByte(idAlphabet[int(c)%len(idAlphabet)])
			n++
			if n == idLen {
				break
			}
		}
	}
	return b.String(), nil
}

// IsMemberID reports whether s has the generated member id shape
func IsMemberID(s string) bool {
	if len(s) != len(MemberIDPrefix)+idLen || !strings.HasPrefix(s, MemberIDPrefix) {
		return false
	}
	for _, c := range s[len(MemberIDPrefix):] {
		if !strings.ContainsRune(idAlphabet, c) {
			return false
		}
	}
	return true
}
