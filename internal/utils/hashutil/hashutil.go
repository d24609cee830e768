package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"passwordSimBackend/internal/core/domain"
	"passwordSimBackend/internal/utils/random"
)

// DigestLength is the hex length of the single digest algorithm in use.
const DigestLength = 64

// suspiciousPrefixes marks digest formats belonging to real-world credential
// schemes. Anything matching is refused, never attacked.
var suspiciousPrefixes = []string{
	"$2a$", "$2b$", "$2y$", // bcrypt
	"$1$",       // MD5 crypt
	"$5$", "$6$", // SHA crypt
	"$argon2",
	"{SSHA}",
}

// commonPasswords seeds the synthetic sample set.
var commonPasswords = []string{
	"password", "123456", "qwerty", "admin", "letmein",
	"welcome", "monkey", "dragon", "master", "freedom",
	"hello", "world", "test", "demo", "guest",
}

// Hash computes the SHA-256 hex digest of a plaintext.
func Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", domain.ErrEmptyPlaintext
	}
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:]), nil
}

// Verify reports whether plaintext hashes to digest. It never errors on a
// mismatched digest; malformed plaintext is the only failure.
func Verify(plaintext, digest string) (bool, error) {
	computed, err := Hash(plaintext)
	if err != nil {
		return false, err
	}
	return computed == strings.ToLower(digest), nil
}

// IsValidFormat reports whether digest looks like output of the expected
// algorithm: exactly 64 hex characters.
func IsValidFormat(digest string) bool {
	return len(digest) == DigestLength && isHex(digest)
}

// IsSuspicious reports whether digest resembles an unrelated real-world
// credential format.
func IsSuspicious(digest string) bool {
	for _, prefix := range suspiciousPrefixes {
		if strings.HasPrefix(digest, prefix) {
			return true
		}
	}
	return false
}

// Info classifies a digest string for the validation surface.
func Info(digest string) domain.DigestInfo {
	info := domain.DigestInfo{
		Length:       len(digest),
		IsValid:      IsValidFormat(digest),
		IsSuspicious: IsSuspicious(digest),
		Algorithm:    "unknown",
	}
	if info.IsSuspicious {
		info.Warning = "digest resembles a real-world credential format and will not be processed"
		return info
	}
	if isHex(digest) {
		switch len(digest) {
		case 32:
			info.Algorithm = "MD5"
		case 40:
			info.Algorithm = "SHA-1"
		case 64:
			info.Algorithm = "SHA-256"
		}
	}
	if !info.IsValid && info.Warning == "" {
		info.Warning = "only 64-character SHA-256 hex digests are accepted"
	}
	return info
}

// GenerateSynthetic hashes the given plaintext, or a random 8-char alphanumeric
// one when empty.
func GenerateSynthetic(plaintext string) (string, error) {
	if plaintext == "" {
		plaintext = random.String(domain.CharsetLower+domain.CharsetUpper+domain.CharsetDigits, 8)
	}
	return Hash(plaintext)
}

// SampleData builds the precomputed demo target set: the common weak passwords
// first, then random lowercase+digit fillers up to count.
func SampleData(count int) []domain.SampleDigest {
	samples := make([]domain.SampleDigest, 0, count)
	for i, password := range commonPasswords {
		if i >= count {
			break
		}
		digest, _ := Hash(password)
		samples = append(samples, domain.SampleDigest{
			Digest:      digest,
			Description: "Common password",
			Length:      len(password),
			Difficulty:  "easy",
		})
	}
	for len(samples) < count {
		password := random.String(domain.CharsetLower+domain.CharsetDigits, 6)
		digest, _ := Hash(password)
		samples = append(samples, domain.SampleDigest{
			Digest:      digest,
			Description: "Random password",
			Length:      len(password),
			Difficulty:  "medium",
		})
	}
	return samples
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
