// Package committee models C2, the external Committee Selector collaborator
// (spec.md §4/§6 item 6). THE CORE never computes committee membership
// itself; it only consumes committee.Manager's result, the way the teacher's
// core.go consumes c.valSet/c.backend.Validators(h).
package committee

import (
	mapset "github.com/deckarep/golang-set"

	"github.com/finalitychain/fastfinality/bftcrypto"
	"github.com/finalitychain/fastfinality/chainref"
	"github.com/finalitychain/fastfinality/config"
	"github.com/finalitychain/fastfinality/weight"
)

// Committee is the (block_proposer, cosigners, round) triple spec.md §3
// defines, produced by C2 for a single round.
//
// Membership is keyed on bftcrypto.KeyID rather than bftcrypto.PublicKey
// directly: PublicKey wraps a pointer, so two independently-parsed copies of
// the same key are distinct Go values and unusable as map/set keys.
type Committee struct {
	BlockProposer   bftcrypto.PublicKey
	proposerID      bftcrypto.KeyID
	Cosigners       mapset.Set // of bftcrypto.KeyID
	cosignerByID    map[bftcrypto.KeyID]bftcrypto.PublicKey
	Round           chainref.Round
}

// NewCommittee builds a Committee from a proposer and a cosigner slice.
func NewCommittee(proposer bftcrypto.PublicKey, cosigners []bftcrypto.PublicKey, round chainref.Round) Committee {
	set := mapset.NewThreadUnsafeSet()
	byID := make(map[bftcrypto.KeyID]bftcrypto.PublicKey, len(cosigners))
	for _, c := range cosigners {
		id := c.ID()
		set.Add(id)
		byID[id] = c
	}
	return Committee{
		BlockProposer: proposer,
		proposerID:    proposer.ID(),
		Cosigners:     set,
		cosignerByID:  byID,
		Round:         round,
	}
}

// Contains reports whether key is the proposer or a cosigner of c.
func (c Committee) Contains(key bftcrypto.PublicKey) bool {
	id := key.ID()
	return id == c.proposerID || c.Cosigners.Contains(id)
}

// IsCosigner reports whether key is a cosigner (not the proposer) of c.
func (c Committee) IsCosigner(key bftcrypto.PublicKey) bool {
	return c.Cosigners.Contains(key.ID())
}

// CosignerByID resolves a cosigner's PublicKey from its KeyID, the inverse
// of the Cosigners set's elements.
func (c Committee) CosignerByID(id bftcrypto.KeyID) (bftcrypto.PublicKey, bool) {
	pk, ok := c.cosignerByID[id]
	return pk, ok
}

// CosignerCount returns |cosigners|, used by ValidateBlockCosignatures'
// padding guard (spec.md §4.10 rule 4).
func (c Committee) CosignerCount() int { return c.Cosigners.Cardinality() }

// Manager is the external collaborator contract spec.md §6 item 6 names:
// reset, selectCommittee(config) (idempotent within a round), committee(),
// weight(key, config), and the weight algebra. A production node backs this
// with on-chain stake/importance data; this module ships only the
// interface plus a deterministic in-memory implementation for tests
// (see manager_static.go).
type Manager interface {
	// Reset clears any accumulated selection state (called by
	// action.DownloadBlocks before replaying selectCommittee across a
	// pulled block range, spec.md §4.5).
	Reset()
	// SelectCommittee selects the committee for the manager's current
	// round; idempotent if called again for the same round without an
	// intervening Advance (spec.md §4.1 "call selector.select(config)
	// exactly once" per round advanced).
	SelectCommittee(cfg config.Config) error
	// Advance moves the manager's current round forward by one, the
	// single-writer operation the FSM strand performs in lock-step with
	// roundclock.Clock (spec.md §5 "Committee manager advancement...
	// monotonic per height").
	Advance() error
	// Committee returns the committee selected for the manager's current
	// round.
	Committee() Committee
	// Weight returns the opaque weight of key under cfg.
	Weight(key bftcrypto.PublicKey, cfg config.Config) weight.Weight
	// SeekRound fast-forwards the manager to target, or returns an error if
	// target is behind the manager's current round (spec.md §4.6
	// "Fast-forward the committee selector to the current round if
	// lagging; reject if it is ahead").
	SeekRound(target chainref.Round) error
}

// VerifyBlockHeaderCosignatureFunc is the §6/§4.10 cross-node contract: does
// sig bind signer to the header of the block identified by blockHash?
// Implementations live alongside whatever block/header type the host chain
// uses; THE CORE only calls through this function value.
type VerifyBlockHeaderCosignatureFunc func(blockHash chainref.Hash256, signer bftcrypto.PublicKey, sig bftcrypto.Signature) bool
