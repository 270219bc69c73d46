package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func scalarOne() []byte {
	b := make([]byte, PrivateKeySize)
	b[PrivateKeySize-1] = 1
	return b
}

func TestPrivateKeyFromBytes_Generator(t *testing.T) {
	key, err := PrivateKeyFromBytes(scalarOne())
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes() error: %v", err)
	}

	// 1*G is the secp256k1 generator point.
	want := "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	if got := hex.EncodeToString(key.PublicKey()); got != want {
		t.Errorf("PublicKey() = %s, want %s", got, want)
	}

	if !bytes.Equal(key.Serialize(), scalarOne()) {
		t.Errorf("Serialize() = %x, want %x", key.Serialize(), scalarOne())
	}

	if key.Fingerprint() != Fingerprint(key.PublicKey()) {
		t.Error("key fingerprint should match public key fingerprint")
	}
}

func TestPrivateKeyFromBytes_InvalidLength(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"too short", make([]byte, 16)},
		{"too long", make([]byte, 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := PrivateKeyFromBytes(tt.data); err == nil {
				t.Error("expected error for invalid key length")
			}
		})
	}
}

func TestPrivateKeyFromBytes_Zero(t *testing.T) {
	if _, err := PrivateKeyFromBytes(make([]byte, PrivateKeySize)); err == nil {
		t.Error("expected error for zero scalar")
	}
}

func TestPrivateKey_Zero(t *testing.T) {
	key, err := PrivateKeyFromBytes(scalarOne())
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes() error: %v", err)
	}
	key.Zero()
	if !bytes.Equal(key.Serialize(), make([]byte, PrivateKeySize)) {
		t.Error("Zero() should clear the scalar")
	}
}
