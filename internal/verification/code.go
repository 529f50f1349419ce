package verification

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// codeSpace is the size of the code value range: 000000 through 999999.
const codeSpace = 1_000_000

var maxCode = big.NewInt(codeSpace)

// generateCode draws a code uniformly over the full six-digit space and
// renders it zero-padded, so a draw of 42 becomes "000042". Codes compare
// by exact string equality to preserve leading zeros.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, maxCode)
	if err != nil {
		return "", fmt.Errorf("draw verification code: %w", err)
	}
	return formatCode(n.Int64()), nil
}

func formatCode(n int64) string {
	return fmt.Sprintf("%06d", n)
}
