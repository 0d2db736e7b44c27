package crypto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/minio/sha256-simd"
)

const (
	// Charset is the bech32 alphabet. Vanity strings may only use these symbols.
	Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

	// Separator sits between the human-readable part and the data part.
	Separator = "1"

	// IdentifierLen is the number of sha256 bytes kept from the public key hash.
	IdentifierLen = 20

	// maxAddressLen is the bech32 limit on a whole address string.
	maxAddressLen = 90

	// maxHRPLen leaves room for the separator, the 32 data symbols of an
	// identifier and the 6 checksum symbols within maxAddressLen.
	maxHRPLen = maxAddressLen - len(Separator) - (IdentifierLen*8+4)/5 - 6
)

var (
	ErrInvalidCharset = errors.New("invalid bech32 character")
	ErrInvalidHRP     = errors.New("invalid human-readable part")
	ErrInvalidPayload = errors.New("invalid address payload")
)

// DeriveIdentifier returns the first 20 bytes of sha256(pub).
// pub is the serialized (compressed) public key.
func DeriveIdentifier(pub []byte) [IdentifierLen]byte {
	sum := sha256.Sum256(pub)
	var id [IdentifierLen]byte
	copy(id[:], sum[:IdentifierLen])
	return id
}

// EncodeAddress bech32-encodes a 20-byte identifier under hrp.
func EncodeAddress(hrp string, id [IdentifierLen]byte) (string, error) {
	data, err := bech32.ConvertBits(id[:], 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("convert identifier bits: %w", err)
	}
	return bech32.Encode(hrp, data)
}

// DecodeAddress is the inverse of EncodeAddress. It verifies the checksum
// and that the payload is exactly one identifier long.
func DecodeAddress(addr string) (string, [IdentifierLen]byte, error) {
	var id [IdentifierLen]byte

	hrp, data, err := bech32.Decode(addr)
	if err != nil {
		return "", id, err
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", id, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if len(raw) != IdentifierLen {
		return "", id, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPayload, len(raw), IdentifierLen)
	}
	copy(id[:], raw)
	return hrp, id, nil
}

// AddressPrefix returns the literal every matching address starts with.
func AddressPrefix(hrp, vanity string) string {
	return hrp + Separator + vanity
}

// ValidateVanity checks that every character of s is in Charset.
func ValidateVanity(s string) error {
	for _, c := range s {
		if !strings.ContainsRune(Charset, c) {
			return fmt.Errorf("%w `%c`, only bech32 characters are allowed %s",
				ErrInvalidCharset, c, charsetList())
		}
	}
	return nil
}

// ValidateHRP checks hrp against the bech32 rules: printable ASCII, a single
// case, and short enough that an address for it stays within 90 characters.
func ValidateHRP(hrp string) error {
	if len(hrp) == 0 || len(hrp) > maxHRPLen {
		return fmt.Errorf("%w: length %d not in [1, %d]", ErrInvalidHRP, len(hrp), maxHRPLen)
	}
	for i := 0; i < len(hrp); i++ {
		if hrp[i] < 33 || hrp[i] > 126 {
			return fmt.Errorf("%w: character %q out of range", ErrInvalidHRP, hrp[i])
		}
	}
	if strings.ToLower(hrp) != hrp && strings.ToUpper(hrp) != hrp {
		return fmt.Errorf("%w: mixed case %q", ErrInvalidHRP, hrp)
	}
	return nil
}

// charsetList renders Charset as ['q', 'p', ...].
func charsetList() string {
	var out strings.Builder
	out.Grow(len(Charset)*5 + 2)
	out.WriteByte('[')
	for i, c := range Charset {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteByte('\'')
		out.WriteRune(c)
		out.WriteByte('\'')
	}
	out.WriteByte(']')
	return out.String()
}
