// Package enigmatrix implements a deterministic, block-based symmetric
// file cipher: files are split into 1 MiB blocks, each block is loaded as
// a 1024x1024 byte matrix, and a sequence of XOR, modular add/sub, and
// row/column permutation kernels is applied to it using a per-block
// subkey and a schedule derived once per file from the passphrase.
//
// # Overview
//
// Unlike an AEAD cipher, there is no authentication tag: decrypting with
// the wrong passphrase produces wrong plaintext rather than a detectable
// error, except where the container header itself fails to parse.
//
// # Basic Usage
//
//	err := enigmatrix.EncryptPath("report.pdf", "report.pdf.enc",
//	    []byte("a sufficiently long passphrase"), nil, 0)
//	if err != nil {
//	    panic(err)
//	}
//
//	err = enigmatrix.DecryptPath("report.pdf.enc", "report.pdf",
//	    []byte("a sufficiently long passphrase"), nil, 0)
//
// Passing 0 for cores uses runtime.NumCPU(). Passing a non-nil *rsa.PublicKey
// to EncryptPath wraps the passphrase into the container header so that
// DecryptPath only needs the matching *rsa.PrivateKey:
//
//	pub, _ := enigmatrix.LoadRSAPublicKey("id_rsa_public.pem")
//	enigmatrix.EncryptPath("report.pdf", "report.pdf.enc", passphrase, pub, 0)
//
//	priv, _ := enigmatrix.LoadRSAPrivateKey("id_rsa_private.pem")
//	enigmatrix.DecryptPath("report.pdf.enc", "report.pdf", nil, priv, 0)
//
// # Key Derivation
//
// A file's primary_hash is SHA-512(passphrase). Two PRNG seeds are
// extracted from it by XORing opposite quarters of the digest, and feed a
// Python-compatible Mersenne Twister that determines, once per file: the
// order in which the three transform kernels run, SwapCount row and
// column transposition pairs, and the order of the two modular
// sub-operations and the two permutation axes. Each block's subkey is an
// independent SHA-512-seeded expansion keyed by the block's index, so
// blocks can be processed in any order or in parallel.
//
// # Container Format
//
// Encrypted files begin with:
//   - RSA flag (1 byte): 0 or 1
//   - wrapped key size (4 bytes, little-endian) + wrapped passphrase,
//     present only if the RSA flag is 1
//   - last block size (8 bytes, little-endian): the true byte length of
//     the final block before zero-padding, or 0 if the plaintext was an
//     exact multiple of the block size (in which case the final block is
//     emitted in full on decrypt, not truncated to zero)
//   - a 16-byte operation id, for log correlation only
//
// followed by the ciphertext blocks themselves, each exactly 1 MiB (a short
// final plaintext block is zero-padded before it is encrypted).
//
// # Security Considerations
//
// Protected Against:
//   - Casual inspection of file contents at rest
//   - Reconstruction of plaintext without the passphrase (or, with RSA
//     wrapping, the private key)
//
// Not Protected Against:
//   - Tampering: there is no authentication tag: a corrupted or truncated
//     ciphertext block decrypts to garbage rather than failing loudly
//   - Side-channel attacks (timing, cache)
//   - Weak, low-entropy passphrases fed directly into PrimaryHash — see
//     StrengthenPassphrase for an optional Argon2id/PBKDF2 pre-step
//
// # Performance
//
// Blocks are processed with bounded parallelism (PipelineConfig.Cores
// concurrent blocks at a time) and written strictly in order, so memory
// use stays proportional to the number of cores rather than file size.
package enigmatrix
