package security

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParsePrivateKey_InlinePEM(t *testing.T) {
	signer, err := ParsePrivateKey(testPrivateKeyPEM)
	if err != nil {
		t.Fatalf("ParsePrivateKey: %v", err)
	}
	if signer == nil {
		t.Fatal("ParsePrivateKey returned nil signer")
	}
}

func TestParsePublicKey_InlinePEM(t *testing.T) {
	pub, err := ParsePublicKey(testPublicKeyPEM)
	if err != nil {
		t.Fatalf("ParsePublicKey: %v", err)
	}
	if pub == nil {
		t.Fatal("ParsePublicKey returned nil key")
	}
}

func TestParsePrivateKey_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.pem")
	if err := os.WriteFile(path, []byte(testPrivateKeyPEM), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	signer, err := ParsePrivateKey(path)
	if err != nil {
		t.Fatalf("ParsePrivateKey from file: %v", err)
	}
	if signer == nil {
		t.Fatal("ParsePrivateKey returned nil signer")
	}
}

func TestParseKeys_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"not pem", "-----BEGIN GIBBERISH-----\nabc\n-----END GIBBERISH-----"},
		{"missing file", "/nonexistent/key.pem"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParsePrivateKey(tc.in); err == nil {
				t.Error("ParsePrivateKey should return error")
			}
			if _, err := ParsePublicKey(tc.in); err == nil {
				t.Error("ParsePublicKey should return error")
			}
		})
	}
}
