package auth

import (
	"errors"

	"nathanbeddoewebdev/donorlens/internal/util"
)

const ServiceName = "donorlens"

// APIAccount is the keychain account holding the analytics API token.
const APIAccount = "api"

var ErrTokenNotFound = errors.New("auth token not found")

type Store interface {
	SetToken(account string, token string) error
	GetToken(account string) (string, error)
	DeleteToken(account string) error
}

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeAccount normalizes an account name for consistent key lookup.
func NormalizeAccount(account string) string {
	return util.NormalizeKey(account)
}
