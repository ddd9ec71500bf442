package services

import (
	"crypto/rand"
	"fmt"
)

// OrderRefAlphabet leaves out I, O, 0 and 1 so references read unambiguously.
const OrderRefAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const orderRefCodeLength = 6

// GenerateOrderRef returns prefix + "-" + six random alphabet characters,
// e.g. "BT-K7M2QX".
func GenerateOrderRef(prefix string) (string, error) {
	b := make([]byte, orderRefCodeLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate order reference: %w", err)
	}
	// len(OrderRefAlphabet) divides 256, so the modulo is unbiased.
	for i := range b {
		b[i] = OrderRefAlphabet[int(b[i])%len(OrderRefAlphabet)]
	}
	return prefix + "-" + string(b), nil
}
