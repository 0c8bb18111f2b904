package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12
)

// PrefixSubscription prefixes external subscription identifiers (Stripe-style).
const PrefixSubscription = "msub"

// Generate creates a random short ID with the specified length using Base62 encoding.
// The generated ID is cryptographically random and URL-safe.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// GenerateWithPrefix creates a prefixed ID in the format "prefix_randomstring".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	id, err := Generate(length)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, id), nil
}

// ParsePrefixedID extracts the prefix and short ID from a prefixed ID string.
// Example: ParsePrefixedID("msub_xK9mP2vL3nQa") returns ("msub", "xK9mP2vL3nQa", nil)
func ParsePrefixedID(prefixedID string) (prefix, shortID string, err error) {
	parts := strings.SplitN(prefixedID, "_", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid prefixed ID format: %s", prefixedID)
	}
	return parts[0], parts[1], nil
}

// ValidatePrefix checks if the prefixed ID has the expected prefix and a
// base62 body.
func ValidatePrefix(prefixedID, expectedPrefix string) error {
	prefix, shortID, err := ParsePrefixedID(prefixedID)
	if err != nil {
		return err
	}
	if prefix != expectedPrefix {
		return fmt.Errorf("invalid prefix: expected %s, got %s", expectedPrefix, prefix)
	}
	for i := 0; i < len(shortID); i++ {
		if !strings.ContainsRune(alphabet, rune(shortID[i])) {
			return fmt.Errorf("invalid character %q in ID %s", shortID[i], prefixedID)
		}
	}
	return nil
}

// NewSubscriptionID generates a new external subscription ID.
func NewSubscriptionID() (string, error) {
	return GenerateWithPrefix(PrefixSubscription, DefaultLength)
}

// ValidateSubscriptionID checks that s looks like a subscription ID.
func ValidateSubscriptionID(s string) error {
	return ValidatePrefix(s, PrefixSubscription)
}
