// Package vote implements C3, the Vote Store: a per-round thread-safe
// collection of prevotes and precommits keyed by signer, with a
// weighted-sum quorum test (spec.md §4.2).
//
// Grounded on the teacher's core/msg_store.go (MsgStore.Save/Get, mutex
// pattern) and consensus/tendermint/core/core.go's acceptVote/Prevotes/
// Precommits handling, generalized from Tendermint's per-hash vote sets to
// the spec's flatter (kind, signer) -> signature map.
package vote

import (
	"sync"

	"github.com/finalitychain/fastfinality/bftcrypto"
	"github.com/finalitychain/fastfinality/chainref"
	"github.com/finalitychain/fastfinality/committee"
	"github.com/finalitychain/fastfinality/config"
	"github.com/finalitychain/fastfinality/weight"
)

// Kind distinguishes a prevote from a precommit; spec.md §3: "a prevote and
// precommit are distinguished only by message type."
type Kind uint8

const (
	Prevote Kind = iota
	Precommit
)

// Vote binds a signer to the proposed block hash (spec.md §3).
type Vote struct {
	Signer    bftcrypto.PublicKey
	Signature bftcrypto.Signature
}

// AddResult is the outcome of an AddPrevote/AddPrecommit call (spec.md §4.2
// contract).
type AddResult uint8

const (
	Added AddResult = iota
	Duplicate
	QuorumReached
	Rejected
)

// Store is the per-round vote collection. Zero value is not usable; use New.
type Store struct {
	mu sync.Mutex

	prevotes   map[bftcrypto.KeyID]Vote
	precommits map[bftcrypto.KeyID]Vote

	// stagedSelfPrecommits holds this node's own precommit(s) until they
	// are echoed back through the broadcast layer (spec.md §9 Open
	// Question, "default to staged"; config.StageSelfPrecommit).
	stagedSelfPrecommits map[bftcrypto.KeyID]Vote

	prevoteQuorumReached   bool
	precommitQuorumReached bool

	onPrevoteQuorum   func()
	onPrecommitQuorum func()

	// weightOf resolves a committee member's weight, normally
	// committee.Manager.Weight bound to a fixed config (spec.md §3
	// "weight function w(key, config) -> weight").
	weightOf func(bftcrypto.PublicKey) weight.Weight
}

// New builds an empty Store for one round. onPrevoteQuorum/onPrecommitQuorum
// are invoked at most once each, outside the Store's lock, the first time
// quorum is reached (spec.md §4.2 concurrency: "signals on the one-shot
// channels are emitted from whichever thread satisfies the quorum, never
// from inside the lock"). weightOf resolves a signer's weight; pass
// mgr.Weight bound to the round's config, e.g.:
//
//	vote.New(onPV, onPC, func(k bftcrypto.PublicKey) weight.Weight { return mgr.Weight(k, cfg) })
func New(onPrevoteQuorum, onPrecommitQuorum func(), weightOf func(bftcrypto.PublicKey) weight.Weight) *Store {
	return &Store{
		prevotes:             make(map[bftcrypto.KeyID]Vote),
		precommits:           make(map[bftcrypto.KeyID]Vote),
		stagedSelfPrecommits: make(map[bftcrypto.KeyID]Vote),
		onPrevoteQuorum:      onPrevoteQuorum,
		onPrecommitQuorum:    onPrecommitQuorum,
		weightOf:             weightOf,
	}
}

// add is the shared body of AddPrevote/AddPrecommit. The committee-membership
// and cosignature checks happen before the lock is taken (it's pure and needs no mutual
// exclusion); the verify callback is supplied by the caller so this package
// never depends on a concrete block/header type (spec.md §4.2 failure
// policy: reject signers outside the committee or failing cosignature
// verification).
func (s *Store) add(
	kind Kind,
	signer bftcrypto.PublicKey,
	sig bftcrypto.Signature,
	blockHash chainref.Hash256,
	cm committee.Committee,
	cfg config.Config,
	verify committee.VerifyBlockHeaderCosignatureFunc,
) AddResult {
	if !cm.Contains(signer) {
		return Rejected
	}
	if verify != nil && !verify(blockHash, signer, sig) {
		return Rejected
	}

	s.mu.Lock()
	id := signer.ID()
	var target map[bftcrypto.KeyID]Vote
	if kind == Prevote {
		target = s.prevotes
	} else {
		target = s.precommits
	}
	if _, exists := target[id]; exists {
		s.mu.Unlock()
		return Duplicate
	}
	target[id] = Vote{Signer: signer, Signature: sig}

	// I4: precommits collected before prevote quorum are staged/held; a
	// precommit quorum can only fire once prevote quorum has already been
	// observed on the same set. Reaching prevote quorum re-checks the held
	// precommits, which may already suffice on their own.
	var fireQuorum, fireHeld func()
	reached := false
	if kind == Prevote {
		if !s.prevoteQuorumReached && s.sumWeightLocked(Prevote, cm, cfg).GE(threshold(s.totalWeightLocked(cm, cfg), cfg.CommitteeApproval)) {
			s.prevoteQuorumReached = true
			reached = true
			fireQuorum = s.onPrevoteQuorum
			if !s.precommitQuorumReached && len(s.precommits) > 0 && s.sumWeightLocked(Precommit, cm, cfg).GE(threshold(s.totalWeightLocked(cm, cfg), cfg.CommitteeApproval)) {
				s.precommitQuorumReached = true
				fireHeld = s.onPrecommitQuorum
			}
		}
	} else {
		if s.prevoteQuorumReached && !s.precommitQuorumReached && s.sumWeightLocked(Precommit, cm, cfg).GE(threshold(s.totalWeightLocked(cm, cfg), cfg.CommitteeApproval)) {
			s.precommitQuorumReached = true
			reached = true
			fireQuorum = s.onPrecommitQuorum
		}
	}
	s.mu.Unlock()

	if reached {
		if fireQuorum != nil {
			fireQuorum()
		}
		if fireHeld != nil {
			fireHeld()
		}
		return QuorumReached
	}
	return Added
}

// AddPrevote inserts a prevote, verifying committee membership and the
// accompanying cosignature first (spec.md §4.2).
func (s *Store) AddPrevote(signer bftcrypto.PublicKey, sig bftcrypto.Signature, blockHash chainref.Hash256, cm committee.Committee, cfg config.Config, verify committee.VerifyBlockHeaderCosignatureFunc) AddResult {
	return s.add(Prevote, signer, sig, blockHash, cm, cfg, verify)
}

// AddPrecommit inserts a precommit, with the same validity checks as
// AddPrevote (spec.md §4.2).
func (s *Store) AddPrecommit(signer bftcrypto.PublicKey, sig bftcrypto.Signature, blockHash chainref.Hash256, cm committee.Committee, cfg config.Config, verify committee.VerifyBlockHeaderCosignatureFunc) AddResult {
	return s.add(Precommit, signer, sig, blockHash, cm, cfg, verify)
}

// StageSelfPrecommit records this node's own precommit without counting it
// toward quorum until PromoteSelfPrecommit confirms delivery (spec.md §4.9
// "staged in precommits_to_broadcast until it is echoed back").
func (s *Store) StageSelfPrecommit(signer bftcrypto.PublicKey, sig bftcrypto.Signature) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stagedSelfPrecommits[signer.ID()] = Vote{Signer: signer, Signature: sig}
}

// PromoteSelfPrecommit moves a staged self-precommit into the counted
// precommit set once the broadcast layer has echoed it back to this node.
func (s *Store) PromoteSelfPrecommit(signer bftcrypto.PublicKey, blockHash chainref.Hash256, cm committee.Committee, cfg config.Config, verify committee.VerifyBlockHeaderCosignatureFunc) AddResult {
	s.mu.Lock()
	id := signer.ID()
	v, ok := s.stagedSelfPrecommits[id]
	if !ok {
		s.mu.Unlock()
		return Rejected
	}
	delete(s.stagedSelfPrecommits, id)
	s.mu.Unlock()
	return s.AddPrecommit(v.Signer, v.Signature, blockHash, cm, cfg, verify)
}

// HasVote reports whether signer already has a recorded vote of kind
// (spec.md §4.2 "has_vote(signer, kind) -> bool").
func (s *Store) HasVote(signer bftcrypto.PublicKey, kind Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var target map[bftcrypto.KeyID]Vote
	if kind == Prevote {
		target = s.prevotes
	} else {
		target = s.precommits
	}
	_, ok := target[signer.ID()]
	return ok
}

// SumWeight returns the weighted sum of signers who have voted kind
// (spec.md §4.2 "sum_weight(kind, committee, config) -> Weight").
func (s *Store) SumWeight(kind Kind, cm committee.Committee, cfg config.Config) weight.Weight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sumWeightLocked(kind, cm, cfg)
}

func (s *Store) sumWeightLocked(kind Kind, cm committee.Committee, cfg config.Config) weight.Weight {
	var target map[bftcrypto.KeyID]Vote
	if kind == Prevote {
		target = s.prevotes
	} else {
		target = s.precommits
	}
	sum := weight.Zero()
	for id := range target {
		sum = sum.Add(s.weightOfID(id, cm))
	}
	return sum
}

func (s *Store) totalWeightLocked(cm committee.Committee, _ config.Config) weight.Weight {
	total := s.weightOf(cm.BlockProposer)
	for _, idAny := range cm.Cosigners.ToSlice() {
		id := idAny.(bftcrypto.KeyID)
		if pk, ok := cm.CosignerByID(id); ok {
			total = total.Add(s.weightOf(pk))
		}
	}
	return total
}

func (s *Store) weightOfID(id bftcrypto.KeyID, cm committee.Committee) weight.Weight {
	if id == cm.BlockProposer.ID() {
		return s.weightOf(cm.BlockProposer)
	}
	if pk, ok := cm.CosignerByID(id); ok {
		return s.weightOf(pk)
	}
	return weight.Zero()
}

// threshold computes approval * total, per spec.md I3.
func threshold(total weight.Weight, approval float64) weight.Weight {
	num, den := weight.ApprovalRatio(approval)
	return total.Mul(num, den)
}

// QuorumReachedFor reports whether kind currently has quorum, per spec.md
// §4.2 "quorum_reached(kind, total, approval_ratio)".
func (s *Store) QuorumReachedFor(kind Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if kind == Prevote {
		return s.prevoteQuorumReached
	}
	return s.precommitQuorumReached
}

// Voters returns the signers who have voted kind, for cosignature
// aggregation on commit.
func (s *Store) Voters(kind Kind) []Vote {
	s.mu.Lock()
	defer s.mu.Unlock()
	var target map[bftcrypto.KeyID]Vote
	if kind == Prevote {
		target = s.prevotes
	} else {
		target = s.precommits
	}
	out := make([]Vote, 0, len(target))
	for _, v := range target {
		out = append(out, v)
	}
	return out
}
