package wallet

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testEntropy() []byte {
	return bytes.Repeat([]byte{0x3c}, ChainEntropySize)
}

func TestKeyFile_PlainRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.key")
	entropy := testEntropy()

	if err := WriteKeyFile(path, entropy, KeyFileOptions{}); err != nil {
		t.Fatalf("WriteKeyFile() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), strings.Repeat("3c", 32)+"\n"; got != want {
		t.Errorf("file contents = %q, want %q", got, want)
	}
	if IsEncryptedKeyFile(data) {
		t.Error("plain key file reported as encrypted")
	}

	// Password is ignored for plain files.
	loaded, err := ReadKeyFile(path, []byte("ignored"))
	if err != nil {
		t.Fatalf("ReadKeyFile() error: %v", err)
	}
	if !bytes.Equal(loaded, entropy) {
		t.Errorf("ReadKeyFile() = %x, want %x", loaded, entropy)
	}
}

func TestKeyFile_EncryptedRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.key")
	entropy := testEntropy()
	opts := KeyFileOptions{Password: []byte("hunter2"), Params: fastParams()}

	if err := WriteKeyFile(path, entropy, opts); err != nil {
		t.Fatalf("WriteKeyFile() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !IsEncryptedKeyFile(data) {
		t.Fatal("encrypted key file not detected")
	}
	var kf keyFile
	if err := json.Unmarshal(data, &kf); err != nil {
		t.Fatalf("envelope is not JSON: %v", err)
	}
	if kf.Version != keyFileVersion || kf.CreatedAt.IsZero() {
		t.Errorf("envelope = %+v", kf)
	}
	if bytes.Contains(data, []byte(strings.Repeat("3c", 32))) {
		t.Error("envelope should not contain plaintext entropy")
	}

	loaded, err := ReadKeyFile(path, opts.Password)
	if err != nil {
		t.Fatalf("ReadKeyFile() error: %v", err)
	}
	if !bytes.Equal(loaded, entropy) {
		t.Errorf("ReadKeyFile() = %x, want %x", loaded, entropy)
	}

	if _, err := ReadKeyFile(path, []byte("wrong")); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("ReadKeyFile(wrong password): got %v, want ErrWrongPassword", err)
	}
	if _, err := ReadKeyFile(path, nil); !errors.Is(err, ErrPasswordRequired) {
		t.Errorf("ReadKeyFile(no password): got %v, want ErrPasswordRequired", err)
	}
}

func TestKeyFile_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.key")

	if err := WriteKeyFile(path, testEntropy(), KeyFileOptions{}); err != nil {
		t.Fatalf("first WriteKeyFile() error: %v", err)
	}

	other := bytes.Repeat([]byte{0x11}, 32)
	if err := WriteKeyFile(path, other, KeyFileOptions{}); !errors.Is(err, ErrKeyFileExists) {
		t.Fatalf("second WriteKeyFile(): got %v, want ErrKeyFileExists", err)
	}

	loaded, err := ReadKeyFile(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(loaded, testEntropy()) {
		t.Error("existing key file was modified")
	}
}

func TestKeyFile_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.key")
	if err := WriteKeyFile(path, testEntropy(), KeyFileOptions{}); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm&0077 != 0 {
		t.Errorf("key file mode = %o, want no group/other access", perm)
	}
}

func TestWriteKeyFile_InvalidEntropy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.key")

	if err := WriteKeyFile(path, make([]byte, 10), KeyFileOptions{}); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("WriteKeyFile(10 bytes): got %v, want ErrInvalidLength", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be created for invalid entropy")
	}
}

func TestReadKeyFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"not hex", "zz not hex", ErrDataError},
		{"short entropy", "00112233", ErrInvalidLength},
		{"bad json", "{not json", ErrDataError},
		{"bad version", `{"version": 9, "encrypted_entropy": "AAAA"}`, ErrDataError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_"))
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			_, err := ReadKeyFile(path, []byte("pass"))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ReadKeyFile(): got %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := ReadKeyFile(filepath.Join(dir, "missing"), nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadKeyFile(missing): got %v, want os.ErrNotExist", err)
	}
}

func TestReadKeyFile_TrailingWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.key")
	content := "  " + strings.Repeat("ab", 16) + "\r\n\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	entropy, err := ReadKeyFile(path, nil)
	if err != nil {
		t.Fatalf("ReadKeyFile() error: %v", err)
	}
	if !bytes.Equal(entropy, bytes.Repeat([]byte{0xab}, 16)) {
		t.Errorf("ReadKeyFile() = %x", entropy)
	}
}
