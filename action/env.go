// Package action implements C6, one file per named action of spec.md
// §4.4-§4.11, each wired as an fsm.Action (on-entry hook) by the host. Every
// action reads/writes through Env's collaborator interfaces only — none of
// them know about a concrete block, transport, or storage implementation
// (spec.md §1 Non-goals).
//
// Grounded on the teacher's core.go action methods (startRound,
// sendPrevote/sendPrecommit, handleCommit) translated from Tendermint's
// always-vote pipeline into the spec's explicit action-per-state model.
package action

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/finalitychain/fastfinality/bftcrypto"
	"github.com/finalitychain/fastfinality/chainref"
	"github.com/finalitychain/fastfinality/collaborator"
	"github.com/finalitychain/fastfinality/committee"
	"github.com/finalitychain/fastfinality/config"
	"github.com/finalitychain/fastfinality/node"
	"github.com/finalitychain/fastfinality/perround"
	"github.com/finalitychain/fastfinality/roundclock"
)

// sleep blocks for d or until ctx is cancelled, whichever comes first —
// used for the retry/backoff delays spec.md §4.4/§4.5 name (e.g.
// "schedule retry after CommitteeChainHeightRequestInterval"). Actions run
// off the FSM strand in a worker-pool goroutine (spec.md §5), so blocking
// here does not stall strand-serialized transitions.
func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// ChainSyncData is the transient LocalChainCheck -> BlocksDownloading
// payload of spec.md §3: "(network_height, local_height,
// node_identity_keys: ordered by decreasing importance-weight)".
type ChainSyncData struct {
	NetworkHeight   chainref.Height
	LocalHeight     chainref.Height
	NodeIdentityKeys []bftcrypto.PublicKey
}

// Env bundles every external collaborator and the mutable chain-level
// state (outside PerRoundData) the actions of §4.4-§4.11 read and write.
// It is the single thing host.New receives and passes into every action
// it builds.
type Env struct {
	mu sync.Mutex

	Config config.Config
	Logger log.Logger

	Identity node.Identity

	CommitteeMgr committee.Manager
	Clock        *roundclock.Clock
	Verify       committee.VerifyBlockHeaderCosignatureFunc

	RemoteState   collaborator.RemoteNodeStateRetriever
	LocalTip      collaborator.BlockElementSupplier
	Generator     collaborator.BlockGenerator
	RangeConsumer collaborator.BlockRangeConsumer
	Broadcast     collaborator.Broadcast
	Importance    collaborator.ImportanceGetter
	ViewFetcher   collaborator.ViewFetcher
	Sender        collaborator.MessageSender
	Fetcher       collaborator.BlockRangeFetcher
	Codec         collaborator.BlockCodec
	Difficulty    collaborator.DifficultyCache

	// MaxTxsPerBlock bounds GenerateBlock's max_txs argument (spec.md §6
	// item 3).
	MaxTxsPerBlock uint64

	// MaxChainHeight, if non-zero, is the ceiling DownloadBlocks/CommitBlock
	// check against to emit Hold (spec.md §4.5 step 3, §4.11 "or Hold if
	// >= maxChainHeight"). Zero means unbounded.
	MaxChainHeight chainref.Height

	// commitMu is the one FSM-level mutex spec.md §5 names, serializing
	// calls into RangeConsumer (not safe for concurrent commits).
	commitMu sync.Mutex

	// localHeight/lastCommittedHash track local chain state across
	// rounds; not part of PerRoundData because they outlive a single
	// round (spec.md §3's "height is monotonic").
	localHeight     chainref.Height
	lastCommittedHash chainref.Hash256

	// lastCommittedTimestamp/lastCommittedPhaseTimeMs are the just-committed
	// block's ParentBlock fields (spec.md §4.1), consulted by ResetRound to
	// seed the next height's round 0 the same way DetectRound does.
	lastCommittedTimestamp   time.Time
	lastCommittedPhaseTimeMs uint64

	// SyncData is the most recent ChainSyncData produced by
	// CheckLocalChain, consumed by DownloadBlocks.
	SyncData ChainSyncData

	// Current is the active round's lifecycle record, created by
	// DetectRound on entry to RoundDetection (spec.md §3 "created on
	// entry to RoundDetection").
	Current *perround.Data
}

// LocalHeight returns the last known local chain height.
func (e *Env) LocalHeight() chainref.Height {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.localHeight
}

// SetLocalHeight updates the local chain height, e.g. after a successful
// commit or bulk download.
func (e *Env) SetLocalHeight(h chainref.Height) {
	e.mu.Lock()
	e.localHeight = h
	e.mu.Unlock()
}

// LastCommittedHash returns the hash of the most recently committed block.
func (e *Env) LastCommittedHash() chainref.Hash256 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastCommittedHash
}

// SetLastCommittedHash records the hash of the most recently committed
// block, consulted by CheckLocalChain's approval rating.
func (e *Env) SetLastCommittedHash(h chainref.Hash256) {
	e.mu.Lock()
	e.lastCommittedHash = h
	e.mu.Unlock()
}

// SetLastCommittedParent records the just-committed block's timestamp and
// phase_time_ms, the ParentBlock fields ResetRound needs to seed the next
// height's round 0 (spec.md §4.1).
func (e *Env) SetLastCommittedParent(ts time.Time, phaseTimeMs uint64) {
	e.mu.Lock()
	e.lastCommittedTimestamp = ts
	e.lastCommittedPhaseTimeMs = phaseTimeMs
	e.mu.Unlock()
}

// LastCommittedParent returns the most recently recorded parent fields.
func (e *Env) LastCommittedParent() (time.Time, uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastCommittedTimestamp, e.lastCommittedPhaseTimeMs
}

// CommitLock serializes calls into RangeConsumer across CommitBlock and
// DownloadBlocks (spec.md §5 "One FSM-level mutex serializes block-commit
// calls into the external range consumer").
func (e *Env) CommitLock()   { e.commitMu.Lock() }
func (e *Env) CommitUnlock() { e.commitMu.Unlock() }
