//go:build nocrypto

package crypt

// Available reports whether Encrypt and Decrypt can be used.
const Available = false

func Encrypt([]byte, string) ([]byte, error) {
	return nil, ErrUnavailable
}

func EncryptWithParams([]byte, string, Params) ([]byte, error) {
	return nil, ErrUnavailable
}

func Decrypt([]byte, string) ([]byte, error) {
	return nil, ErrUnavailable
}
