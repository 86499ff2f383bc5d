package enigmatrix

import (
	"bufio"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GenerateRSAKeypair generates an RSA-RSAKeySize keypair and writes it as
// two PEM files, "<name>_private.pem" and "<name>_public.pem", under dir.
// Grounded on key_utils.generate_rsa_keypair, using Go's standard
// crypto/rsa + crypto/x509 + encoding/pem rather than a third-party
// library: no library in the example pack offers RSA key generation or
// PKCS#1/PKIX PEM encoding, so the standard library — already
// well-reviewed and the obvious choice the teacher itself favors for
// primitives absfs doesn't need to reimplement — is used directly.
func GenerateRSAKeypair(name, dir string) error {
	if err := ValidateFilePath(dir); err != nil {
		return err
	}

	key, err := rsa.GenerateKey(rand.Reader, RSAKeySize)
	if err != nil {
		return fmt.Errorf("generate rsa key: %w", err)
	}

	privPath := filepath.Join(dir, name+"_private.pem")
	pubPath := filepath.Join(dir, name+"_public.pem")

	privBlock := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}
	if err := writePEMFile(privPath, privBlock); err != nil {
		return NewIOError("write", privPath, err)
	}

	pubBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return fmt.Errorf("marshal public key: %w", err)
	}
	pubBlock := &pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes}
	if err := writePEMFile(pubPath, pubBlock); err != nil {
		return NewIOError("write", pubPath, err)
	}

	return nil
}

func writePEMFile(path string, block *pem.Block) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return pem.Encode(f, block)
}

// DetectRSAKey reports whether the PEM file at path holds a private or
// public RSA key, by sniffing its first non-empty line — matching
// key_utils.detect_rsa_key's "PRIVATE KEY"/"PUBLIC KEY" substring check
// rather than a full PEM parse, so a key file that fails to fully decode
// can still be classified for a diagnostic error message.
func DetectRSAKey(path string) (KeyKind, error) {
	f, err := os.Open(path)
	if err != nil {
		return KeyKindUnknown, NewIOError("open", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.Contains(line, "PRIVATE KEY") {
			return KeyKindPrivate, nil
		}
		if strings.Contains(line, "PUBLIC KEY") {
			return KeyKindPublic, nil
		}
		return KeyKindUnknown, nil
	}
	return KeyKindUnknown, nil
}

// LoadRSAPrivateKey reads a PKCS#1-encoded RSA private key from a PEM file.
func LoadRSAPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewIOError("read", path, err)
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, NewWrongKeyTypeError(path, KeyKindPrivate, KeyKindUnknown)
	}
	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, NewWrongKeyTypeError(path, KeyKindPrivate, KeyKindPublic)
	}
	return key, nil
}

// LoadRSAPublicKey reads a PKIX-encoded RSA public key from a PEM file.
func LoadRSAPublicKey(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewIOError("read", path, err)
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, NewWrongKeyTypeError(path, KeyKindPublic, KeyKindUnknown)
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, NewWrongKeyTypeError(path, KeyKindPublic, KeyKindPrivate)
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, NewWrongKeyTypeError(path, KeyKindPublic, KeyKindPrivate)
	}
	return rsaPub, nil
}

// RSAEncryptKey wraps passphrase under pub using RSA-OAEP with
// SHA-1/MGF1-SHA-1, matching PyCryptodome's PKCS1_OAEP.new(key) defaults
// (key_utils.rsa_encrypt_key) so containers produced by either
// implementation wrap to ciphertexts the other can unwrap given the same
// key pair.
func RSAEncryptKey(passphrase []byte, pub *rsa.PublicKey) ([]byte, error) {
	return rsa.EncryptOAEP(sha1.New(), rand.Reader, pub, passphrase, nil)
}

// RSADecryptKey unwraps a passphrase previously wrapped by RSAEncryptKey.
func RSADecryptKey(wrapped []byte, priv *rsa.PrivateKey) ([]byte, error) {
	plain, err := rsa.DecryptOAEP(sha1.New(), rand.Reader, priv, wrapped, nil)
	if err != nil {
		return nil, NewInvalidKeyError("rsa_wrapped_key", nil, "incorrect RSA key provided")
	}
	return plain, nil
}
