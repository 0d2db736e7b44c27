package crypto

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// PrivateKeyLen is the size of a serialized secp256k1 scalar.
const PrivateKeyLen = 32

// randBufferSize batches CSPRNG reads so a worker does not hit the kernel
// once per candidate.
const randBufferSize = 4096

// KeyGenerator draws secp256k1 key pairs from its own random source.
// A KeyGenerator is not safe for concurrent use; give every worker one.
type KeyGenerator struct {
	rand    io.Reader
	scratch [PrivateKeyLen]byte
}

// NewKeyGenerator returns a generator backed by a private buffered view of
// crypto/rand.
func NewKeyGenerator() *KeyGenerator {
	return NewKeyGeneratorFromRand(bufio.NewReaderSize(rand.Reader, randBufferSize))
}

// NewKeyGeneratorFromRand returns a generator reading scalars from r.
func NewKeyGeneratorFromRand(r io.Reader) *KeyGenerator {
	return &KeyGenerator{rand: r}
}

// GenerateCandidate returns a fresh private key. Scalars that are zero or
// not below the group order are discarded and redrawn.
func (g *KeyGenerator) GenerateCandidate() (*secp256k1.PrivateKey, error) {
	var k secp256k1.ModNScalar
	for {
		if _, err := io.ReadFull(g.rand, g.scratch[:]); err != nil {
			return nil, fmt.Errorf("read random scalar: %w", err)
		}
		overflow := k.SetByteSlice(g.scratch[:])
		clear(g.scratch[:])
		if overflow || k.IsZero() {
			continue
		}
		return secp256k1.NewPrivateKey(&k), nil
	}
}

// CandidateAddress derives the address of key under hrp.
func CandidateAddress(hrp string, key *secp256k1.PrivateKey) (string, error) {
	id := DeriveIdentifier(key.PubKey().SerializeCompressed())
	return EncodeAddress(hrp, id)
}
