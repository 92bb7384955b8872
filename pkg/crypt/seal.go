//go:build !nocrypto

package crypt

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Available reports whether Encrypt and Decrypt can be used.
const Available = true

// Encrypt seals plain with a key derived from password using DefaultParams.
func Encrypt(plain []byte, password string) ([]byte, error) {
	return EncryptWithParams(plain, password, DefaultParams)
}

// EncryptWithParams seals plain using the given key derivation parameters.
func EncryptWithParams(plain []byte, password string, p Params) ([]byte, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}
	if !p.valid() {
		return nil, fmt.Errorf("crypt: invalid key derivation parameters %+v", p)
	}

	header := make([]byte, headerLength, headerLength+NonceLength+len(plain)+chacha20poly1305.Overhead)
	copy(header, magic)
	header[4] = Version
	binary.BigEndian.PutUint32(header[5:9], p.Time)
	binary.BigEndian.PutUint32(header[9:13], p.Memory)
	header[13] = p.Threads
	salt := header[14:headerLength]
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("crypt: generate salt: %w", err)
	}

	aead, err := chacha20poly1305.NewX(deriveKey(password, salt, p))
	if err != nil {
		return nil, fmt.Errorf("crypt: init cipher: %w", err)
	}

	nonce := make([]byte, NonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("crypt: generate nonce: %w", err)
	}

	out := append(header, nonce...)
	return aead.Seal(out, nonce, plain, header), nil
}

// Decrypt opens a blob produced by Encrypt.
func Decrypt(blob []byte, password string) ([]byte, error) {
	if len(blob) < headerLength+NonceLength+chacha20poly1305.Overhead || !IsSealed(blob) {
		return nil, ErrAuthentication
	}
	if v := blob[4]; v != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}

	header := blob[:headerLength]
	p := Params{
		Time:    binary.BigEndian.Uint32(header[5:9]),
		Memory:  binary.BigEndian.Uint32(header[9:13]),
		Threads: header[13],
	}
	if !p.valid() {
		return nil, ErrAuthentication
	}
	salt := header[14:]
	nonce := blob[headerLength : headerLength+NonceLength]

	aead, err := chacha20poly1305.NewX(deriveKey(password, salt, p))
	if err != nil {
		return nil, fmt.Errorf("crypt: init cipher: %w", err)
	}
	plain, err := aead.Open(nil, nonce, blob[headerLength+NonceLength:], header)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plain, nil
}

func deriveKey(password string, salt []byte, p Params) []byte {
	return argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, KeyLength)
}
