package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

// PasswordHasher verifies a plaintext secret against a stored digest. Digests
// are scheme-tagged so verification can dispatch and old credentials can be
// re-hashed lazily on the next successful login.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
	// NeedsRehash reports whether the digest uses an outdated scheme and
	// should be replaced after a successful verification.
	NeedsRehash(digest string) bool
}

const (
	pbkdf2Prefix     = "pbkdf2$"
	pbkdf2Iterations = 260000
	pbkdf2SaltBytes  = 16
	pbkdf2KeyLen     = 32
)

type schemeHasher struct {
	cost int
}

// NewHasher returns the default hasher: bcrypt for new digests, with
// verification support for legacy pbkdf2$iters$salt$hex digests.
func NewHasher() PasswordHasher {
	return &schemeHasher{cost: bcrypt.DefaultCost}
}

func (h *schemeHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

func (h *schemeHasher) Verify(plaintext, digest string) bool {
	if strings.HasPrefix(digest, pbkdf2Prefix) {
		return verifyPBKDF2(plaintext, digest)
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

func (h *schemeHasher) NeedsRehash(digest string) bool {
	if strings.HasPrefix(digest, pbkdf2Prefix) {
		return true
	}
	cost, err := bcrypt.Cost([]byte(digest))
	return err != nil || cost < h.cost
}

// HashPBKDF2 produces a legacy-scheme digest. Kept for fixtures and for
// migrating data sets that still carry the old scheme.
func HashPBKDF2(plaintext string) (string, error) {
	salt := make([]byte, pbkdf2SaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(plaintext), salt, pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	return fmt.Sprintf("%s%d$%s$%s", pbkdf2Prefix, pbkdf2Iterations,
		hex.EncodeToString(salt), hex.EncodeToString(key)), nil
}

func verifyPBKDF2(plaintext, digest string) bool {
	parts := strings.Split(strings.TrimPrefix(digest, pbkdf2Prefix), "$")
	if len(parts) != 3 {
		return false
	}

	iterations, err := strconv.Atoi(parts[0])
	if err != nil || iterations <= 0 {
		return false
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(parts[2])
	if err != nil {
		return false
	}

	got := pbkdf2.Key([]byte(plaintext), salt, iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
