package dispatch

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewJobID returns a fresh 40-character hex job id (160 random bits). The
// id doubles as the worker's working-folder name and as the battle
// submission document id.
func NewJobID() (string, error) {
	var buf [20]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("failed to generate job id: %w", err)
	}
	return hex.EncodeToString(buf[:]), nil
}
