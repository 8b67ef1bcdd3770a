// Package collaborator declares the external contracts spec.md §6 names.
// THE CORE (fsm/action/handler) depends only on these interfaces; every
// concrete implementation (block storage, DBRB transport, key management,
// node discovery, CLI, config loading) is explicitly out of scope (spec.md
// §1) and lives outside this module.
//
// Grounded on the teacher's consensus/tendermint/core/backend.go interface
// (the Backend collaborator core.go calls through) and mocked the way
// backend_mock.go mocks Backend.
package collaborator

import (
	"context"
	"math/big"
	"time"

	"github.com/finalitychain/fastfinality/bftcrypto"
	"github.com/finalitychain/fastfinality/chainref"
	"github.com/finalitychain/fastfinality/committee"
	"github.com/finalitychain/fastfinality/wire"
)

// RemoteNodeState is a peer's self-reported sync position, per spec.md §6
// item 1: "(height, block_hash, node_work_state, node_key, harvester_keys)".
type RemoteNodeState struct {
	Height        chainref.Height
	BlockHash     chainref.Hash256
	NodeWorkState chainref.WorkState
	NodeKey       bftcrypto.PublicKey
	HarvesterKeys []bftcrypto.PublicKey
}

// RemoteNodeStateRetriever polls connected peers for their sync position
// (spec.md §6 item 1); may return an empty slice.
type RemoteNodeStateRetriever interface {
	RemoteNodeStates(ctx context.Context) ([]RemoteNodeState, error)
}

// BlockElement is an opaque local-chain-tip block plus its content hash
// (spec.md §6 item 2). The concrete block type is out of scope; THE CORE
// only ever threads it through to BlockRangeConsumer/BlockGenerator.
type BlockElement struct {
	Block      []byte
	EntityHash chainref.Hash256
}

// BlockElementSupplier returns the local chain tip (spec.md §6 item 2).
type BlockElementSupplier interface {
	LocalTip(ctx context.Context) (BlockElement, error)
}

// BlockHeader is the minimal opaque header BlockGenerator fills in and the
// proposer action signs (spec.md §4.7 "signs the header with the proposer
// key").
type BlockHeader struct {
	Height    chainref.Height
	Round     chainref.Round
	ParentRef chainref.Hash256
	Timestamp time.Time
	Raw       []byte
}

// BlockGenerator produces a new block honoring stop_fn for cooperative
// termination (spec.md §6 item 3: "(header, max_txs, stop_fn) →
// Option<Block>"). stop_fn fires at round_time/3 per spec.md §4.7.
type BlockGenerator interface {
	GenerateBlock(ctx context.Context, header BlockHeader, maxTxs uint64, stop <-chan struct{}) (block []byte, ok bool, err error)
}

// DifficultyCache computes the difficulty value GenerateBlock stamps into a
// new header, mirroring go-ethereum's consensus.Engine.CalcDifficulty
// (spec.md §4.7 "computes difficulty via an external difficulty cache...
// if difficulty compute fails -> BlockGenerationFailed"). The concrete
// caching/memoization strategy is out of scope; THE CORE only calls
// through this function value.
type DifficultyCache interface {
	CalcDifficulty(ctx context.Context, parent BlockHeader) (*big.Int, error)
}

// DecodedBlockCosignature is one cosigner's signature over a block header,
// as recovered from an opaque block's bytes.
type DecodedBlockCosignature struct {
	Signer bftcrypto.PublicKey
	Sig    bftcrypto.Signature
}

// DecodedBlockHeader is the subset of an opaque block's header §4.10's
// ValidateBlockCosignatures needs. The concrete block/header type is out
// of scope (spec.md §1); BlockCodec is the one narrow seam THE CORE uses
// to pull these fields out of the host chain's real block format.
type DecodedBlockHeader struct {
	Height       chainref.Height
	Round        chainref.Round
	BlockHash    chainref.Hash256
	Timestamp    time.Time
	PhaseTimeMs  uint64
	Proposer     bftcrypto.PublicKey
	ProposerSig  bftcrypto.Signature
	Cosignatures []DecodedBlockCosignature
}

// BlockCodec recovers DownloadBlocks' and the message handlers' view of an
// opaque block's header fields (spec.md §4.5 step 2, §4.10). A production
// node backs this with its real block/header decoder; this module only
// calls through the interface.
type BlockCodec interface {
	DecodeHeader(raw []byte) (DecodedBlockHeader, error)
}

// CompletionStatus is the BlockRangeConsumer's completion-callback status
// (spec.md §6 item 4).
type CompletionStatus uint8

const (
	CompletionSucceeded CompletionStatus = iota
	CompletionAborted
)

// CompletionResult reports a BlockRangeConsumer call's outcome.
type CompletionResult struct {
	Status CompletionStatus
	Code   int
}

// BlockRangeConsumer commits a contiguous range of blocks, reporting
// completion asynchronously (spec.md §6 item 4: "Aborted ⇒ commit
// failure"). THE CORE serializes calls into this collaborator behind one
// FSM-level mutex (spec.md §5 "Shared resources & locks") because it is
// not safe for concurrent commits.
type BlockRangeConsumer interface {
	ConsumeBlockRange(ctx context.Context, blocks [][]byte, onComplete func(CompletionResult)) error
}

// ValidationOutcome is the Broadcast validation callback's result (spec.md
// §6 item 5).
type ValidationOutcome uint8

const (
	Valid ValidationOutcome = iota
	Invalid
	Paused
	Stopped
)

// View is the current BRB membership set a packet is broadcast to.
type View struct {
	Members []bftcrypto.PublicKey
}

// Broadcast is the Byzantine-reliable-broadcast transport contract
// (spec.md §6 item 5). validate is invoked before delivery; deliver is
// invoked on local delivery (eventual delivery to every non-faulty
// process in view is the BRB contract's job, not this interface's).
type Broadcast interface {
	BroadcastPacket(ctx context.Context, header wire.Header, payload []byte, view View) error
	SetValidationCallback(validate func(header wire.Header, payloadHash chainref.Hash256) ValidationOutcome)
	SetDeliverCallback(deliver func(header wire.Header, payload []byte))
}

// CommitteeManager re-exports committee.Manager under the §6 external-
// interface name; THE CORE's action/fsm packages depend on this alias so
// the collaborator surface is enumerable from one package.
type CommitteeManager = committee.Manager

// ImportanceGetter resolves a key's on-chain importance score (spec.md §6
// item 7), the input to action.approvalRating's
// log10(importance + CommitteeBaseTotalImportance) formula.
type ImportanceGetter interface {
	Importance(ctx context.Context, key bftcrypto.PublicKey) (uint64, error)
}

// ViewFetcher resolves how long a misbehaving process stays banned from
// the view (spec.md §6 item 8).
type ViewFetcher interface {
	GetBanPeriod(ctx context.Context, processID bftcrypto.PublicKey) (time.Duration, error)
}

// MessageSender unicasts or enqueues a typed packet to a set of node
// identities (spec.md §1: "the core assumes a message-sender primitive
// that can unicast/enqueue a typed packet to a set of node identities").
// DownloadBlocks removes a peer from this collaborator on timeout/malformed
// response and retries the next one (spec.md §5 backpressure, §7
// PeerMalformed).
type MessageSender interface {
	Send(ctx context.Context, to bftcrypto.PublicKey, header wire.Header, payload []byte) error
	RemovePeer(peer bftcrypto.PublicKey)
}

// BlockRangeFetcher performs one Pull_Blocks_Request/Pull_Blocks_Response
// round-trip against a peer (spec.md §6 items 7-8 of the wire table), bounded
// by the caller's context deadline (spec.md §4.5 step 1, §5 "awaits each
// peer response with a 60 s wall timeout"). Like RemoteNodeStateRetriever,
// this interface hides the wire request/response pairing so THE CORE never
// manages transport-level correlation IDs itself.
type BlockRangeFetcher interface {
	PullBlocks(ctx context.Context, peer bftcrypto.PublicKey, start chainref.Height, numBlocks uint32, maxBytes uint32) ([][]byte, error)
}
