// Package keystore provides encrypted storage for agent access tokens.
package keystore

import (
	"crypto/sha256"
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// PassphraseEnv names the environment variable holding the keystore passphrase.
const PassphraseEnv = "DIALOG_KEYSTORE_PASSPHRASE"

// Keystore defines the interface for secure key storage.
type Keystore interface {
	// Set stores a key-value pair.
	Set(name, value string) error
	// Get retrieves a value by name. Returns error if not found.
	Get(name string) (string, error)
	// Delete removes a key by name.
	Delete(name string) error
	// List returns all stored key names.
	List() ([]string, error)
}

// ErrKeyNotFound is returned when a requested key does not exist.
type ErrKeyNotFound struct {
	Name string
}

func (e *ErrKeyNotFound) Error() string {
	return "key not found: " + e.Name
}

// MasterKeySource supplies the secret every file key is derived from.
type MasterKeySource interface {
	GetMasterKey() ([]byte, error)
}

// PassphraseSource derives the master key from a user passphrase.
type PassphraseSource string

// GetMasterKey implements MasterKeySource.
func (p PassphraseSource) GetMasterKey() ([]byte, error) {
	if p == "" {
		return nil, errors.New("keystore passphrase is empty")
	}
	return []byte(p), nil
}

// MachineSource derives the master key from the host and user names.
// It keeps tokens out of plain sight but does not protect against a local
// attacker; set DIALOG_KEYSTORE_PASSPHRASE for that.
type MachineSource struct{}

// GetMasterKey implements MasterKeySource.
func (MachineSource) GetMasterKey() ([]byte, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	username := os.Getenv("USER")
	if username == "" {
		username = os.Getenv("USERNAME")
	}

	sum := sha256.Sum256([]byte(hostname + ":" + username + ":dialog-keystore"))
	return sum[:], nil
}

// DefaultKeystorePath returns the default keystore file path.
// - macOS/Linux: ~/.dialog/keys.enc
// - Windows: %USERPROFILE%\.dialog\keys.enc
func DefaultKeystorePath() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		return "keys.enc"
	}

	return filepath.Join(homeDir, ".dialog", "keys.enc")
}

// DefaultSource returns the passphrase source when DIALOG_KEYSTORE_PASSPHRASE
// is set and the machine source otherwise.
func DefaultSource() MasterKeySource {
	if p := os.Getenv(PassphraseEnv); p != "" {
		return PassphraseSource(p)
	}
	return MachineSource{}
}

// NewKeystore opens the keystore at the default path with the default source.
func NewKeystore() (Keystore, error) {
	return NewFileKeystoreWithSource(DefaultKeystorePath(), DefaultSource())
}
