package enigmatrix

import (
	"crypto/rand"
	"crypto/sha512"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2Params configures StrengthenPassphrase's PBKDF2 mode.
type PBKDF2Params struct {
	Iterations int
	SaltSize   int
	KeySize    int
}

// Argon2idParams configures StrengthenPassphrase's Argon2id mode.
type Argon2idParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltSize    int
	KeySize     int
}

func (p Argon2idParams) withDefaults() Argon2idParams {
	if p.Memory == 0 {
		p.Memory = 64 * 1024
	}
	if p.Iterations == 0 {
		p.Iterations = 3
	}
	if p.Parallelism == 0 {
		p.Parallelism = 4
	}
	if p.SaltSize == 0 {
		p.SaltSize = 32
	}
	if p.KeySize == 0 {
		p.KeySize = 32
	}
	return p
}

func (p PBKDF2Params) withDefaults() PBKDF2Params {
	if p.Iterations == 0 {
		p.Iterations = 100000
	}
	if p.SaltSize == 0 {
		p.SaltSize = 32
	}
	if p.KeySize == 0 {
		p.KeySize = 32
	}
	return p
}

// StrengthenPassphrase is an optional pre-step that callers may run on a
// human-chosen passphrase before handing it to EncryptFile/EncryptPath.
// It draws a fresh random salt on every call and returns it alongside the
// strengthened output. It takes no salt argument, so a second call with the
// same passphrase returns a different output; it does not re-derive an
// earlier result from a stored salt.
//
// Nothing downstream of this function is aware it ran: DeriveSubkey's
// contract is a pure function of whatever byte string it is given, so
// strengthening is purely the caller's choice and never changes the wire
// format. It is not present in the reference tool at all (which hashes
// the raw passphrase directly) — it is included here because the
// reference pipeline's only real weakness is accepting low-entropy
// passphrases straight into SHA-512, and golang.org/x/crypto already
// supplies both standard remedies.
func StrengthenPassphrase(passphrase []byte, useArgon2id bool, pbkdf2Params PBKDF2Params, argon2Params Argon2idParams) (strengthened, salt []byte, err error) {
	if err := ValidatePassphrase(passphrase); err != nil {
		return nil, nil, err
	}

	if useArgon2id {
		argon2Params = argon2Params.withDefaults()
		salt = make([]byte, argon2Params.SaltSize)
		if _, err := rand.Read(salt); err != nil {
			return nil, nil, fmt.Errorf("generate salt: %w", err)
		}
		key := argon2.IDKey(passphrase, salt, argon2Params.Iterations, argon2Params.Memory, argon2Params.Parallelism, uint32(argon2Params.KeySize))
		return key, salt, nil
	}

	pbkdf2Params = pbkdf2Params.withDefaults()
	salt = make([]byte, pbkdf2Params.SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("generate salt: %w", err)
	}
	key := pbkdf2.Key(passphrase, salt, pbkdf2Params.Iterations, pbkdf2Params.KeySize, sha512.New)
	return key, salt, nil
}
