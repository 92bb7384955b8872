// Package crypt seals journal bytes with a password.
//
// A sealed blob is self describing:
//
//	"JRNL" | version (1) | argon2 time (4) | argon2 memory KiB (4) | threads (1) | salt (16) | nonce (24) | ciphertext+tag
//
// Everything before the nonce is authenticated as additional data.
package crypt

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthentication is returned for a wrong password or a damaged blob.
	ErrAuthentication = errors.New("crypt: wrong password or corrupted journal")
	// ErrUnsupportedVersion is returned for blobs written by a newer format.
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported format version", ErrAuthentication)
	// ErrUnavailable is returned when the binary was built without crypto.
	ErrUnavailable = errors.New("crypt: encryption support is not available in this build")
	// ErrEmptyPassword is returned when sealing with an empty password.
	ErrEmptyPassword = errors.New("crypt: password must not be empty")
)

const (
	magic = "JRNL"
	// Version is the format written by Encrypt.
	Version byte = 1

	SaltLength  = 16
	NonceLength = 24
	KeyLength   = 32

	headerLength = len(magic) + 1 + 4 + 4 + 1 + SaltLength
)

// Params are the key derivation parameters stored in every blob.
type Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// DefaultParams follow the argon2id recommendation for interactive use.
var DefaultParams = Params{Time: 1, Memory: 64 * 1024, Threads: 4}

// MaxParams bound the cost read from a blob header, which is not
// authenticated until the key has been derived.
var MaxParams = Params{Time: 16, Memory: 1 << 21, Threads: 64}

func (p Params) valid() bool {
	return p.Time > 0 && p.Memory > 0 && p.Threads > 0 &&
		p.Time <= MaxParams.Time && p.Memory <= MaxParams.Memory && p.Threads <= MaxParams.Threads
}

// Mode is the at-rest state of a journal.
type Mode int

const (
	Plaintext Mode = iota
	Encrypted
)

func (m Mode) String() string {
	if m == Encrypted {
		return "encrypted"
	}
	return "plaintext"
}

// IsSealed reports whether data starts like a sealed blob.
func IsSealed(data []byte) bool {
	return len(data) >= len(magic) && string(data[:len(magic)]) == magic
}
