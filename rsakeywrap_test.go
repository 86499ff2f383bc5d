package enigmatrix

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateRSAKeypairWritesReadableFiles(t *testing.T) {
	dir := t.TempDir()
	if err := GenerateRSAKeypair("test", dir); err != nil {
		t.Fatal(err)
	}

	priv, err := LoadRSAPrivateKey(filepath.Join(dir, "test_private.pem"))
	if err != nil {
		t.Fatal(err)
	}
	pub, err := LoadRSAPublicKey(filepath.Join(dir, "test_public.pem"))
	if err != nil {
		t.Fatal(err)
	}
	if priv.N.Cmp(pub.N) != 0 {
		t.Fatal("public and private key moduli should match")
	}
}

func TestDetectRSAKey(t *testing.T) {
	dir := t.TempDir()
	if err := GenerateRSAKeypair("test", dir); err != nil {
		t.Fatal(err)
	}

	kind, err := DetectRSAKey(filepath.Join(dir, "test_private.pem"))
	if err != nil {
		t.Fatal(err)
	}
	if kind != KeyKindPrivate {
		t.Fatalf("DetectRSAKey(private) = %v, want %v", kind, KeyKindPrivate)
	}

	kind, err = DetectRSAKey(filepath.Join(dir, "test_public.pem"))
	if err != nil {
		t.Fatal(err)
	}
	if kind != KeyKindPublic {
		t.Fatalf("DetectRSAKey(public) = %v, want %v", kind, KeyKindPublic)
	}
}

func TestRSAEncryptDecryptKeyRoundTrip(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, RSAKeySize)
	if err != nil {
		t.Fatal(err)
	}
	passphrase := []byte("a passphrase to wrap")

	wrapped, err := RSAEncryptKey(passphrase, &key.PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(wrapped, passphrase) {
		t.Fatal("wrapped key should not equal the plaintext passphrase")
	}

	unwrapped, err := RSADecryptKey(wrapped, key)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(unwrapped, passphrase) {
		t.Fatal("RSADecryptKey(RSAEncryptKey(x)) != x")
	}
}

func TestRSADecryptKeyWithWrongKeyFails(t *testing.T) {
	key1, _ := rsa.GenerateKey(rand.Reader, RSAKeySize)
	key2, _ := rsa.GenerateKey(rand.Reader, RSAKeySize)

	wrapped, err := RSAEncryptKey([]byte("secret"), &key1.PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := RSADecryptKey(wrapped, key2); err == nil {
		t.Fatal("expected decrypting with the wrong private key to fail")
	}
}

func TestLoadRSAPrivateKeyRejectsPublicKeyFile(t *testing.T) {
	dir := t.TempDir()
	if err := GenerateRSAKeypair("test", dir); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRSAPrivateKey(filepath.Join(dir, "test_public.pem")); err == nil {
		t.Fatal("expected an error loading a public key file as a private key")
	}
}

func TestDetectRSAKeyUnrecognizedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not_a_key.pem")
	if err := os.WriteFile(path, []byte("not a pem file at all"), 0o600); err != nil {
		t.Fatal(err)
	}
	kind, err := DetectRSAKey(path)
	if err != nil {
		t.Fatal(err)
	}
	if kind != KeyKindUnknown {
		t.Fatalf("DetectRSAKey(garbage) = %v, want %v", kind, KeyKindUnknown)
	}
}
