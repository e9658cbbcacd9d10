package srpx

import (
	"encoding/hex"
	"fmt"
	"math/big"
)

// PadHex normalizes a hex string for use as a big-endian byte string in hash
// inputs. An odd-length string gains a single leading zero nibble; an
// even-length string whose first byte has the high bit set gains a full "00"
// byte, so the decoded value is never interpreted as negative.
func PadHex(hexStr string) string {
	if len(hexStr)%2 == 1 {
		return "0" + hexStr
	}
	if len(hexStr) >= 2 {
		if b, err := hex.DecodeString(hexStr[:2]); err == nil && b[0] >= 0x80 {
			return "00" + hexStr
		}
	}
	return hexStr
}

// bigToHex renders n as a minimal lowercase hex string (no leading zeros).
func bigToHex(n *big.Int) string {
	return n.Text(16)
}

// hexToBig parses a hex string into a big.Int. Returns an error for
// malformed input.
func hexToBig(hexStr string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(hexStr, 16)
	if !ok {
		return nil, fmt.Errorf("invalid hex string %q", hexStr)
	}
	return n, nil
}

// padBytes hex-decodes PadHex(hexStr). All hash inputs derived from big
// integers go through this so the byte layout matches the server's.
func padBytes(hexStr string) ([]byte, error) {
	b, err := hex.DecodeString(PadHex(hexStr))
	if err != nil {
		return nil, fmt.Errorf("invalid hex string: %w", err)
	}
	return b, nil
}

// bigToPaddedBytes converts n to the padded big-endian byte string used in
// hash inputs.
func bigToPaddedBytes(n *big.Int) []byte {
	// bigToHex output is always valid hex
	b, _ := padBytes(bigToHex(n))
	return b
}
