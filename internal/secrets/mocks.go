package secrets

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EncrypterMock struct {
	mock.Mock
}

var _ Encrypter = (*EncrypterMock)(nil)

func (e *EncrypterMock) Encrypt(ctx context.Context, message, passphrase string) (string, error) {
	args := e.Called(ctx, message, passphrase)
	return args.String(0), args.Error(1)
}

func (e *EncrypterMock) Decrypt(ctx context.Context, encryptedMessage, passphrase string) (string, error) {
	args := e.Called(ctx, encryptedMessage, passphrase)
	return args.String(0), args.Error(1)
}
