// Package uniuri generates random strings from crypto/rand, used for
// bootstrap passwords.
package uniuri
