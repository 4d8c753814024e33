package keys

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"

	"filippo.io/edwards25519"
)

// DeriveChildScalar derives the curve scalar for zk-account index i from the
// master zk-seed via keyed-hash child derivation: HMAC-SHA512(seed,
// "zkaccount" || little-endian index), reduced onto the edwards25519 scalar
// field. This mirrors KeyManager::derive_child_key in the original wallet,
// substituting a standard HKDF-style construction for its internal KDF.
func DeriveChildScalar(seed []byte, index uint64) (*edwards25519.Scalar, error) {
	mac := hmac.New(sha512.New, seed)
	var idxBuf [8]byte
	binary.LittleEndian.PutUint64(idxBuf[:], index)
	mac.Write([]byte("zkaccount"))
	mac.Write(idxBuf[:])

	var wide [64]byte
	copy(wide[:], mac.Sum(nil))

	sc, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		return nil, fmt.Errorf("reduce child scalar: %w", err)
	}
	return sc, nil
}
