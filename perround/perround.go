// Package perround implements C4, the lifecycle-bound PerRoundData record
// spec.md §3 defines: exactly one instance per (height, round), created on
// entry to RoundDetection, reset on IncrementRound (keep height), replaced
// on ResetRound (advance height, zero round).
//
// Grounded on the teacher's core struct fields in
// consensus/tendermint/core/core.go (currentRoundState, lockedValue,
// sentPrevote/sentPrecommit, pendingUnminedBlockCh) reshaped into the
// spec's named fields. The fields message handlers write (the proposal,
// unexpected_block_height, the broadcast gate) are guarded by an internal
// RWMutex, which concurrent readers also take through Snapshot.
package perround

import (
	"sync"

	"github.com/finalitychain/fastfinality/bftcrypto"
	"github.com/finalitychain/fastfinality/chainref"
	"github.com/finalitychain/fastfinality/committee"
	"github.com/finalitychain/fastfinality/config"
	"github.com/finalitychain/fastfinality/roundclock"
	"github.com/finalitychain/fastfinality/vote"
	"github.com/finalitychain/fastfinality/weight"
)

// Once is a one-shot completion signal: closing Done() more than once is a
// no-op (unlike a bare close(chan)), matching the "completion futures"
// spec.md §3 lists (prevotes-quorum, precommits-quorum, confirmed-block,
// block-received).
type Once struct {
	once sync.Once
	ch   chan struct{}
}

// NewOnce returns a ready, unfired Once.
func NewOnce() *Once { return &Once{ch: make(chan struct{})} }

// Fire signals completion; safe to call multiple times or concurrently.
func (o *Once) Fire() { o.once.Do(func() { close(o.ch) }) }

// Done returns the channel that closes when Fire is called, suitable for a
// select statement with a timeout (spec.md §4.8's "wait up to round_start +
// round_time ... on the proposed_block one-shot signal").
func (o *Once) Done() <-chan struct{} { return o.ch }

// Snapshot is an immutable, point-in-time copy of the fields external
// readers (message handlers running on arbitrary goroutines) are allowed to
// see without touching the FSM strand (I5's "shared lock" reader path).
type Snapshot struct {
	ID                     chainref.ID
	ProposedBlockHash      chainref.Hash256
	HasProposedBlock       bool
	ProposalMultiple       bool
	UnexpectedBlockHeight  bool
	IsBlockBroadcastEnabled bool
	SumPrevotesSufficient  bool
	SumPrecommitsSufficient bool
}

// Data is the per-(height,round) lifecycle record. SetBlockProposerKey and
// SetLocalCommittee take no lock and are called by the round's actions;
// the other mutating methods and Snapshot take d.mu and are safe from any
// goroutine.
type Data struct {
	mu sync.RWMutex

	id chainref.ID

	round roundclock.FastFinalityRound

	// blockProposer is this node's own key, set only if this node is the
	// selected proposer for the round (spec.md §3
	// "block_proposer: Option<&KeyPair>").
	blockProposer     *bftcrypto.SecretKey
	blockProposerKnow bool

	// localCommittee is the subset of this node's locally held keys that
	// belong to this round's cosigners (spec.md §3 "local_committee").
	localCommittee []bftcrypto.SecretKey

	totalVoteWeight weight.Weight

	proposedBlockHash chainref.Hash256
	proposedBlock     []byte
	hasProposedBlock  bool
	proposalMultiple  bool

	unexpectedBlockHeight   bool
	isBlockBroadcastEnabled bool

	Prevotes   *vote.Store
	Precommits *vote.Store

	sumPrevotesSufficient   bool
	sumPrecommitsSufficient bool

	PrevoteQuorum     *Once
	PrecommitQuorum   *Once
	ConfirmedBlock    *Once
	BlockReceived     *Once
}

// New creates a PerRoundData for id, wiring the embedded vote.Store's
// quorum callbacks to this record's one-shot signals and sum_*_sufficient
// flags (spec.md I3).
func New(id chainref.ID, round roundclock.FastFinalityRound, cm committee.Committee, mgr committee.Manager, cfg config.Config) *Data {
	d := &Data{
		id:                      id,
		round:                   round,
		isBlockBroadcastEnabled: true,
		PrevoteQuorum:           NewOnce(),
		PrecommitQuorum:         NewOnce(),
		ConfirmedBlock:          NewOnce(),
		BlockReceived:           NewOnce(),
	}

	weightOf := func(k bftcrypto.PublicKey) weight.Weight { return mgr.Weight(k, cfg) }

	d.Prevotes = vote.New(func() {
		d.mu.Lock()
		d.sumPrevotesSufficient = true
		d.mu.Unlock()
		d.PrevoteQuorum.Fire()
	}, func() {
		d.mu.Lock()
		d.sumPrecommitsSufficient = true
		d.mu.Unlock()
		d.PrecommitQuorum.Fire()
	}, weightOf)
	// One Store holds both kinds, so its I4 gate sees the prevote quorum
	// that a precommit quorum depends on.
	d.Precommits = d.Prevotes

	d.totalVoteWeight = weightOf(cm.BlockProposer)
	for _, idAny := range cm.Cosigners.ToSlice() {
		cid := idAny.(bftcrypto.KeyID)
		if pk, ok := cm.CosignerByID(cid); ok {
			d.totalVoteWeight = d.totalVoteWeight.Add(weightOf(pk))
		}
	}

	return d
}

// ID returns the (height, round) identity of this record.
func (d *Data) ID() chainref.ID { return d.id }

// Round returns the round metadata this record was created with.
func (d *Data) Round() roundclock.FastFinalityRound { return d.round }

// SetBlockProposerKey records that this node holds the proposer's key for
// this round (FSM-strand only).
func (d *Data) SetBlockProposerKey(sk bftcrypto.SecretKey) {
	d.blockProposer = &sk
	d.blockProposerKnow = true
}

// BlockProposerKey returns this node's proposer key, if held.
func (d *Data) BlockProposerKey() (bftcrypto.SecretKey, bool) {
	if !d.blockProposerKnow {
		return bftcrypto.SecretKey{}, false
	}
	return *d.blockProposer, true
}

// SetLocalCommittee records which local keys are cosigners this round
// (FSM-strand only).
func (d *Data) SetLocalCommittee(keys []bftcrypto.SecretKey) {
	d.localCommittee = keys
}

// LocalCommittee returns the locally held cosigner keys for this round.
func (d *Data) LocalCommittee() []bftcrypto.SecretKey { return d.localCommittee }

// TotalVoteWeight returns the sum of weights of proposer + cosigners.
func (d *Data) TotalVoteWeight() weight.Weight { return d.totalVoteWeight }

// SetProposedBlock records an inbound proposal, retaining the block's full
// body (spec.md §3 "proposed_block: Option<Arc<Block>>") so CommitBlock has
// something to hand the external range consumer (spec.md §4.11). Per I1:
// the first call wins; a second, distinct hash sets ProposalMultiple and
// does not overwrite (spec.md §3 I1, §8 P7 idempotence, §8 scenario 3
// "Equivocating proposer"). Once DisableBlockBroadcast has been called, the
// call is ignored. Takes d.mu, so message handlers
// (handler.PushBlock/PushConfirmedBlock) call it directly from any goroutine.
func (d *Data) SetProposedBlock(hash chainref.Hash256, block []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.isBlockBroadcastEnabled {
		return
	}
	if !d.hasProposedBlock {
		d.hasProposedBlock = true
		d.proposedBlockHash = hash
		d.proposedBlock = block
		return
	}
	if d.proposedBlockHash != hash {
		d.proposalMultiple = true
	}
	// Idempotent: a duplicate, identical proposal changes nothing (P7).
}

// ProposedBlock returns the full body of the recorded proposal, if any
// (spec.md §3 "proposed_block"). Safe from any goroutine.
func (d *Data) ProposedBlock() ([]byte, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.proposedBlock, d.hasProposedBlock
}

// SetUnexpectedBlockHeight marks that an inbound block targeted a height
// other than this record's (spec.md §3 "unexpected_block_height").
func (d *Data) SetUnexpectedBlockHeight() {
	d.mu.Lock()
	d.unexpectedBlockHeight = true
	d.mu.Unlock()
}

// DisableBlockBroadcast gates further acceptance of inbound proposals
// (spec.md §3 "is_block_broadcast_enabled").
func (d *Data) DisableBlockBroadcast() {
	d.mu.Lock()
	d.isBlockBroadcastEnabled = false
	d.mu.Unlock()
}

// Snapshot returns an immutable copy safe for concurrent readers (I5).
func (d *Data) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Snapshot{
		ID:                      d.id,
		ProposedBlockHash:       d.proposedBlockHash,
		HasProposedBlock:        d.hasProposedBlock,
		ProposalMultiple:        d.proposalMultiple,
		UnexpectedBlockHeight:   d.unexpectedBlockHeight,
		IsBlockBroadcastEnabled: d.isBlockBroadcastEnabled,
		SumPrevotesSufficient:   d.sumPrevotesSufficient,
		SumPrecommitsSufficient: d.sumPrecommitsSufficient,
	}
}
