// Package secrets protects user credentials at rest: password hashes and encrypted premium secrets.
package secrets

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
)

var ErrInvalidCiphertext = errors.New("invalid encrypted message")

type Encrypter interface {
	Encrypt(ctx context.Context, message, passphrase string) (string, error)
	Decrypt(ctx context.Context, encryptedMessage, passphrase string) (string, error)
}

// DefaultEncrypter seals messages with AES-256-GCM keyed on the SHA-256 of the passphrase. The random
// nonce is prepended to the ciphertext and the result is base64 encoded.
type DefaultEncrypter struct{}

var _ Encrypter = (*DefaultEncrypter)(nil)

func newGCM(passphrase string) (cipher.AEAD, error) {
	key := sha256.Sum256([]byte(passphrase))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	gcmCipher, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}
	return gcmCipher, nil
}

func (e *DefaultEncrypter) Encrypt(ctx context.Context, message, passphrase string) (string, error) {
	gcmCipher, err := newGCM(passphrase)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcmCipher.NonceSize())
	lenRead, err := rand.Read(nonce)
	if err != nil {
		return "", fmt.Errorf("error while generating random nonce: %w", err)
	}
	if lenRead != gcmCipher.NonceSize() {
		return "", fmt.Errorf("length of generated nonce %d different from expected length %d", lenRead, gcmCipher.NonceSize())
	}

	cipheredText := gcmCipher.Seal(nonce, nonce, []byte(message), nil)
	return base64.StdEncoding.EncodeToString(cipheredText), nil
}

func (e *DefaultEncrypter) Decrypt(ctx context.Context, encryptedMessage, passphrase string) (string, error) {
	gcmCipher, err := newGCM(passphrase)
	if err != nil {
		return "", err
	}

	decodedMsg, err := base64.StdEncoding.DecodeString(encryptedMessage)
	if err != nil {
		return "", fmt.Errorf("decoding encrypted message: %w", err)
	}

	nonceSize := gcmCipher.NonceSize()
	if len(decodedMsg) < nonceSize {
		return "", ErrInvalidCiphertext
	}
	nonce, cipheredText := decodedMsg[:nonceSize], decodedMsg[nonceSize:]

	plainText, err := gcmCipher.Open(nil, nonce, cipheredText, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidCiphertext, err)
	}

	return string(plainText), nil
}
