package keys

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

// KDF identifies which key-stretching function protects a stored mnemonic.
type KDF string

const (
	KDFArgon2id KDF = "argon2id"
	KDFPBKDF2   KDF = "pbkdf2-sha256"
	// KDFSHA256 is a documented last-resort fallback for environments where
	// neither Argon2id nor PBKDF2 is acceptable; it is deliberately weaker
	// and every caller that selects it logs a warning.
	KDFSHA256 KDF = "sha256"
)

const (
	argon2Time        = 3
	argon2Memory      = 64 * 1024
	argon2Parallelism = 4
	pbkdf2Iterations  = 600000
	kdfKeyLen         = 32
	kdfSaltLen        = 32
)

// EncryptedSeed is the on-disk envelope for a password-protected mnemonic.
type EncryptedSeed struct {
	Version     int    `json:"version"`
	KDF         KDF    `json:"kdf"`
	Ciphertext  []byte `json:"ciphertext"`
	Salt        []byte `json:"salt"`
	Nonce       []byte `json:"nonce"`
	Time        uint32 `json:"time,omitempty"`
	Memory      uint32 `json:"memory,omitempty"`
	Parallelism uint8  `json:"parallelism,omitempty"`
}

// EncryptMnemonic encrypts mnemonic under password using kdf, returning the
// storable envelope. kdf must be one of KDFArgon2id, KDFPBKDF2, KDFSHA256.
func EncryptMnemonic(mnemonic, password string, kdf KDF) (*EncryptedSeed, error) {
	if !ValidateMnemonic(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic")
	}
	return EncryptBytes([]byte(mnemonic), password, kdf)
}

// DecryptMnemonic reverses EncryptMnemonic.
func DecryptMnemonic(es *EncryptedSeed, password string) (string, error) {
	plaintext, err := DecryptBytes(es, password)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// EncryptBytes encrypts arbitrary plaintext (a mnemonic, a zk-seed, ...)
// under password using kdf, returning the storable envelope.
func EncryptBytes(plaintext []byte, password string, kdf KDF) (*EncryptedSeed, error) {
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	salt := make([]byte, kdfSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	key := deriveKey(password, salt, kdf)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	es := &EncryptedSeed{
		Version:    1,
		KDF:        kdf,
		Ciphertext: ciphertext,
		Salt:       salt,
		Nonce:      nonce,
	}
	if kdf == KDFArgon2id {
		es.Time, es.Memory, es.Parallelism = argon2Time, argon2Memory, argon2Parallelism
	}
	return es, nil
}

// DecryptBytes reverses EncryptBytes.
func DecryptBytes(es *EncryptedSeed, password string) ([]byte, error) {
	kdf := es.KDF
	if kdf == "" {
		kdf = KDFArgon2id
	}

	var key []byte
	switch kdf {
	case KDFArgon2id:
		t, m, p := es.Time, es.Memory, es.Parallelism
		if t == 0 {
			t = argon2Time
		}
		if m == 0 {
			m = argon2Memory
		}
		if p == 0 {
			p = argon2Parallelism
		}
		key = argon2.IDKey([]byte(password), es.Salt, t, m, p, kdfKeyLen)
	case KDFPBKDF2:
		key = pbkdf2.Key([]byte(password), es.Salt, pbkdf2Iterations, kdfKeyLen, sha256.New)
	case KDFSHA256:
		key = sha256KDF(password, es.Salt)
	default:
		return nil, fmt.Errorf("unknown kdf: %s", kdf)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}

	plaintext, err := gcm.Open(nil, es.Nonce, es.Ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt: wrong password or corrupted data")
	}
	return plaintext, nil
}

func deriveKey(password string, salt []byte, kdf KDF) []byte {
	switch kdf {
	case KDFPBKDF2:
		return pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, kdfKeyLen, sha256.New)
	case KDFSHA256:
		return sha256KDF(password, salt)
	default:
		return argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Parallelism, kdfKeyLen)
	}
}

// sha256KDF is the last-resort fallback: SHA-256(passphrase || salt). It has
// none of Argon2id's or PBKDF2's brute-force resistance; callers that reach
// for it are expected to have already logged a Warn.
func sha256KDF(password string, salt []byte) []byte {
	h := sha256.New()
	h.Write([]byte(password))
	h.Write(salt)
	return h.Sum(nil)
}

// SaveEncryptedSeed writes es as JSON to path with owner-only permissions.
func SaveEncryptedSeed(path string, es *EncryptedSeed) error {
	if err := ValidateFilePath(path); err != nil {
		return err
	}
	data, err := json.MarshalIndent(es, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal encrypted seed: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// LoadEncryptedSeed reads and parses an encrypted seed file written by
// SaveEncryptedSeed.
func LoadEncryptedSeed(path string) (*EncryptedSeed, error) {
	if err := ValidateFilePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read encrypted seed: %w", err)
	}
	var es EncryptedSeed
	if err := json.Unmarshal(data, &es); err != nil {
		return nil, fmt.Errorf("parse encrypted seed: %w", err)
	}
	return &es, nil
}

// SecureClear zeroes data in place. Best-effort: Go's garbage collector may
// have already copied the backing array elsewhere.
func SecureClear(data []byte) {
	for i := range data {
		data[i] = 0
	}
}

// ConstantTimeCompare compares two byte slices without leaking timing
// information about where they first differ.
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// ValidatePassword enforces a minimum complexity bar: 8-256 characters and
// at least 3 of the 4 character classes (upper, lower, digit, punctuation).
func ValidatePassword(password string) error {
	if len(password) < 8 || len(password) > 256 {
		return fmt.Errorf("password must be between 8 and 256 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}

	classes := 0
	for _, ok := range []bool{hasUpper, hasLower, hasDigit, hasSymbol} {
		if ok {
			classes++
		}
	}
	if classes < 3 {
		return fmt.Errorf("password must contain at least 3 of: uppercase, lowercase, digit, symbol")
	}
	return nil
}

// ValidateFilePath rejects paths that attempt directory traversal or contain
// invalid UTF-8.
func ValidateFilePath(path string) error {
	if !utf8.ValidString(path) {
		return fmt.Errorf("path is not valid UTF-8")
	}
	clean := filepath.Clean(path)
	if strings.Contains(clean, "..") {
		return fmt.Errorf("path must not contain '..'")
	}
	return nil
}
