package crypto

import (
	"errors"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	// ExtendedKeyHRP distinguishes extended private keys from addresses.
	ExtendedKeyHRP = "xprv"

	// Record layout: depth (1) + chain code (32) + 0x00 (1) + private key (32) = 66
	ChainCodeLen      = 32
	ExtendedKeyLen    = 1 + ChainCodeLen + 1 + PrivateKeyLen
	chainCodeOffset   = 1
	privateKeyOffset  = chainCodeOffset + ChainCodeLen + 1
	masterKeyDepth    = 0
	privateKeyPadding = 0x00
)

var ErrInvalidExtendedKey = errors.New("invalid extended key")

// ExtendedKey is a decoded master extended private key record.
type ExtendedKey struct {
	Depth      uint8
	ChainCode  [ChainCodeLen]byte
	PrivateKey [PrivateKeyLen]byte
}

// EncodeExtendedKey builds a master key record around priv with a chain
// code drawn from rand and bech32-encodes it under ExtendedKeyHRP.
func EncodeExtendedKey(rand io.Reader, priv []byte) (string, error) {
	if len(priv) != PrivateKeyLen {
		return "", fmt.Errorf("%w: private key must be %d bytes, got %d",
			ErrInvalidExtendedKey, PrivateKeyLen, len(priv))
	}

	var chainCode [ChainCodeLen]byte
	if _, err := io.ReadFull(rand, chainCode[:]); err != nil {
		return "", fmt.Errorf("read chain code: %w", err)
	}

	record := ExtendedKeyRecord(chainCode, priv)
	data, err := bech32.ConvertBits(record[:], 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("convert record bits: %w", err)
	}
	return bech32.Encode(ExtendedKeyHRP, data)
}

// ExtendedKeyRecord lays out the 66 raw bytes of a master key record.
func ExtendedKeyRecord(chainCode [ChainCodeLen]byte, priv []byte) [ExtendedKeyLen]byte {
	var record [ExtendedKeyLen]byte
	record[0] = masterKeyDepth
	copy(record[chainCodeOffset:], chainCode[:])
	record[privateKeyOffset-1] = privateKeyPadding
	copy(record[privateKeyOffset:], priv)
	return record
}

// DecodeExtendedKey parses a string produced by EncodeExtendedKey.
// The record is longer than the 90 character bech32 address limit, so the
// unbounded decoder is used.
func DecodeExtendedKey(s string) (*ExtendedKey, error) {
	hrp, data, err := bech32.DecodeNoLimit(s)
	if err != nil {
		return nil, err
	}
	if hrp != ExtendedKeyHRP {
		return nil, fmt.Errorf("%w: hrp %q, want %q", ErrInvalidExtendedKey, hrp, ExtendedKeyHRP)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExtendedKey, err)
	}
	if len(raw) != ExtendedKeyLen {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidExtendedKey, len(raw), ExtendedKeyLen)
	}
	if raw[privateKeyOffset-1] != privateKeyPadding {
		return nil, fmt.Errorf("%w: missing key padding byte", ErrInvalidExtendedKey)
	}

	key := &ExtendedKey{Depth: raw[0]}
	copy(key.ChainCode[:], raw[chainCodeOffset:chainCodeOffset+ChainCodeLen])
	copy(key.PrivateKey[:], raw[privateKeyOffset:])
	return key, nil
}
