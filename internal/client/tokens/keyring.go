package tokens

import (
	"errors"
	"fmt"

	"github.com/mnedelko/geniable/internal/common"
	"github.com/zalando/go-keyring"
)

// Fixed addressing of the keyring entry. Every invocation of the CLI reads
// and writes the same slot; there is one session per user account.
const (
	KeyringService = "geniable"
	KeyringAccount = "tokens"
)

// KeyringBackend stores the bundle in the platform credential manager
// (macOS Keychain, Windows Credential Store, Secret Service on Linux).
type KeyringBackend struct {
	Service string
	Account string
}

// NewKeyringBackend returns a backend addressing the fixed service/account
// entry.
func NewKeyringBackend() *KeyringBackend {
	return &KeyringBackend{Service: KeyringService, Account: KeyringAccount}
}

func (k *KeyringBackend) Get() (string, error) {
	v, err := keyring.Get(k.Service, k.Account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", common.ErrNotFound
		}
		return "", fmt.Errorf("keyring get: %w", err)
	}
	return v, nil
}

func (k *KeyringBackend) Set(value string) error {
	if err := keyring.Set(k.Service, k.Account, value); err != nil {
		return fmt.Errorf("keyring set: %w", err)
	}
	return nil
}

func (k *KeyringBackend) Delete() error {
	err := keyring.Delete(k.Service, k.Account)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring delete: %w", err)
	}
	return nil
}
