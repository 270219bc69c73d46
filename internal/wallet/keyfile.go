package wallet

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

const keyFileVersion = 1

// ErrKeyFileExists is returned when writing over an existing key file.
var ErrKeyFileExists = errors.New("key file already exists")

// ErrPasswordRequired is returned when reading an encrypted key file without
// a password.
var ErrPasswordRequired = errors.New("key file is encrypted; password required")

// keyFile is the on-disk JSON format of an encrypted key file.
type keyFile struct {
	Version          int       `json:"version"`
	CreatedAt        time.Time `json:"created_at"`
	EncryptedEntropy []byte    `json:"encrypted_entropy"`
}

// KeyFileOptions controls how WriteKeyFile stores entropy.
type KeyFileOptions struct {
	// Password enables the encrypted envelope. Empty writes a plain hex line.
	Password []byte
	Params   EncryptionParams
}

// WriteKeyFile stores entropy at path with mode 0600. It never overwrites an
// existing file.
func WriteKeyFile(path string, entropy []byte, opts KeyFileOptions) error {
	if !ValidEntropyLength(len(entropy)) {
		return fmt.Errorf("%w: entropy is %d bytes", ErrInvalidLength, len(entropy))
	}

	var data []byte
	if len(opts.Password) == 0 {
		data = []byte(hex.EncodeToString(entropy) + "\n")
	} else {
		sealed, err := Encrypt(entropy, opts.Password, opts.Params)
		if err != nil {
			return fmt.Errorf("encrypt entropy: %w", err)
		}
		kf := keyFile{
			Version:          keyFileVersion,
			CreatedAt:        time.Now().UTC(),
			EncryptedEntropy: sealed,
		}
		data, err = json.MarshalIndent(&kf, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal key file: %w", err)
		}
	}

	// O_EXCL makes the existence check and the create a single step.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrKeyFileExists, path)
		}
		return fmt.Errorf("create key file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write key file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close key file: %w", err)
	}
	return nil
}

// ReadKeyFile loads entropy from path. Plain hex files ignore password;
// encrypted files require it.
func ReadKeyFile(path string, password []byte) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	data = bytes.TrimSpace(data)

	var entropy []byte
	if IsEncryptedKeyFile(data) {
		if len(password) == 0 {
			return nil, ErrPasswordRequired
		}
		var kf keyFile
		if err := json.Unmarshal(data, &kf); err != nil {
			return nil, fmt.Errorf("%w: parse key file: %v", ErrDataError, err)
		}
		if kf.Version != keyFileVersion {
			return nil, fmt.Errorf("%w: unsupported key file version %d", ErrDataError, kf.Version)
		}
		entropy, err = Decrypt(kf.EncryptedEntropy, password)
		if err != nil {
			return nil, fmt.Errorf("decrypt key file: %w", err)
		}
	} else {
		entropy, err = hex.DecodeString(string(data))
		if err != nil {
			return nil, fmt.Errorf("%w: key file is not hex: %v", ErrDataError, err)
		}
	}

	if !ValidEntropyLength(len(entropy)) {
		return nil, fmt.Errorf("%w: key file holds %d bytes of entropy", ErrInvalidLength, len(entropy))
	}
	return entropy, nil
}

// IsEncryptedKeyFile reports whether key file contents hold the JSON envelope.
func IsEncryptedKeyFile(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}
