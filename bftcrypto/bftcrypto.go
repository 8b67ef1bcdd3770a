// Package bftcrypto wraps github.com/supranational/blst/bindings/go (BLS12-381)
// the way the teacher's internal crypto/blst package wraps it for
// core/types.Committee / AggregateSignature (core/types/bft_test.go):
// one secret key per committee member, one public "ConsensusKey", and
// signatures/cosignatures verified against it. THE CORE never imports blst
// directly outside this package.
package bftcrypto

import (
	"errors"
	"fmt"

	blst "github.com/supranational/blst/bindings/go"
)

// domainSeparationTag binds signatures produced by this module to its own
// namespace so they can never be replayed against another BLS application.
var domainSeparationTag = []byte("FASTFINALITY_CONSENSUS_BLS_SIG_V1")

// PublicKey identifies a committee member (proposer or cosigner) the way
// spec.md's PublicKey type does.
type PublicKey struct {
	p *blst.P1Affine
}

// Signature is a single BLS signature over a message, used both for vote
// message signatures and for block-header cosignatures (spec.md §3 "Vote").
type Signature struct {
	s *blst.P2Affine
}

// SecretKey is a locally held signing key, analogous to spec.md's
// PerRoundData.block_proposer: Option<&KeyPair>.
type SecretKey struct {
	sk *blst.SecretKey
}

// GenerateSecretKey derives a SecretKey from 32+ bytes of key material.
// Real key management (where ikm comes from) is out of scope (spec.md §1);
// callers in production wire this to an external key store.
func GenerateSecretKey(ikm []byte) (SecretKey, error) {
	if len(ikm) < 32 {
		return SecretKey{}, errors.New("bftcrypto: ikm must be at least 32 bytes")
	}
	sk := blst.KeyGen(ikm)
	if sk == nil {
		return SecretKey{}, errors.New("bftcrypto: key generation failed")
	}
	return SecretKey{sk: sk}, nil
}

// PublicKey returns the public key corresponding to sk.
func (sk SecretKey) PublicKey() PublicKey {
	return PublicKey{p: new(blst.P1Affine).From(sk.sk)}
}

// Sign produces a Signature over msg under domainSeparationTag.
func (sk SecretKey) Sign(msg []byte) Signature {
	return Signature{s: new(blst.P2Affine).Sign(sk.sk, msg, domainSeparationTag)}
}

// Verify checks sig is a valid signature by pk over msg.
func (pk PublicKey) Verify(msg []byte, sig Signature) bool {
	if pk.p == nil || sig.s == nil {
		return false
	}
	return sig.s.Verify(true, pk.p, false, msg, domainSeparationTag)
}

// Bytes returns the compressed serialization of pk, used as the map key for
// committee membership (spec.md's Set<PublicKey>/Map<PublicKey, Signature>).
func (pk PublicKey) Bytes() [48]byte {
	var out [48]byte
	copy(out[:], pk.p.Compress())
	return out
}

// KeyID is the comparable identity of a PublicKey: PublicKey itself embeds a
// pointer and must never be used as a map/set key directly (two parses of
// the same bytes yield distinct pointers), so every committee/vote map in
// this module keys on KeyID instead.
type KeyID [48]byte

// ID returns pk's comparable identity.
func (pk PublicKey) ID() KeyID { return KeyID(pk.Bytes()) }

func (id KeyID) String() string { return fmt.Sprintf("%x", id[:8]) }

func (pk PublicKey) String() string {
	b := pk.Bytes()
	return fmt.Sprintf("%x", b[:8])
}

// PublicKeyFromBytes parses a compressed public key.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	p := new(blst.P1Affine).Uncompress(b)
	if p == nil {
		return PublicKey{}, errors.New("bftcrypto: invalid compressed public key")
	}
	return PublicKey{p: p}, nil
}

// Bytes returns the compressed serialization of sig, for wire
// framing (spec.md §6 CommitteeMessage.sig/cosignature.sig fields).
func (sig Signature) Bytes() [96]byte {
	var out [96]byte
	copy(out[:], sig.s.Compress())
	return out
}

// SignatureFromBytes parses a compressed signature.
func SignatureFromBytes(b []byte) (Signature, error) {
	s := new(blst.P2Affine).Uncompress(b)
	if s == nil {
		return Signature{}, errors.New("bftcrypto: invalid compressed signature")
	}
	return Signature{s: s}, nil
}

// Aggregate combines signatures produced over the same message by distinct
// signers into a single quorum-certificate signature (spec.md §4.9 design
// rationale: cosignatures are independently verifiable but can be shipped
// aggregated once a quorum is reached).
func Aggregate(sigs []Signature) (Signature, error) {
	if len(sigs) == 0 {
		return Signature{}, errors.New("bftcrypto: cannot aggregate zero signatures")
	}
	agg := new(blst.P2Aggregate)
	for _, s := range sigs {
		if !agg.Add(s.s, false) {
			return Signature{}, errors.New("bftcrypto: invalid signature in aggregate set")
		}
	}
	return Signature{s: agg.ToAffine()}, nil
}
