package uniuri

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// StdLen is the default length, about 95 bits of entropy with StdChars.
const StdLen = 16

// StdChars is the default alphabet.
var StdChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789") //nolint:gochecknoglobals

// ErrCharset is returned for an alphabet with fewer than 2 or more than 256 characters.
var ErrCharset = errors.New("uniuri: charset must hold between 2 and 256 characters")

// New returns a random string of StdLen characters from StdChars.
func New() (string, error) {
	return NewLenChars(StdLen, StdChars)
}

// NewLenChars returns a random string of length characters drawn uniformly from chars.
func NewLenChars(length int, chars []byte) (string, error) {
	clen := len(chars)
	if clen < 2 || clen > 256 {
		return "", ErrCharset
	}

	if length <= 0 {
		return "", nil
	}

	// bytes above limit are dropped so every character is equally likely
	limit := 255 - (256 % clen)
	out := make([]byte, 0, length)
	buf := make([]byte, length+length/2+1)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("uniuri: reading random bytes: %w", err)
		}

		for _, b := range buf {
			if int(b) > limit {
				continue
			}

			out = append(out, chars[int(b)%clen])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}
