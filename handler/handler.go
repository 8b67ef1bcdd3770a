// Package handler implements C7, the message handlers of spec.md §4.12:
// Push_Block / Push_Proposed_Block / Push_Confirmed_Block, Push_Prevote /
// Push_Precommit, and Pull_Remote_Node_State. Handlers are idempotent and
// never block on FSM state — they deposit directly into vote.Store and
// perround.Data, both of which carry their own internal lock (I5's "shared
// lock" reader/writer path), instead of posting through the FSM strand.
//
// Grounded on the teacher's handler.go (consensus/tendermint/core/
// handler.go) dispatch-by-message-code style and msg_store.go's dedupe
// cache, reshaped around the spec's explicit per-message rules instead of
// Tendermint's always-vote pipeline.
package handler

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/finalitychain/fastfinality/action"
	"github.com/finalitychain/fastfinality/bftcrypto"
	"github.com/finalitychain/fastfinality/chainref"
	"github.com/finalitychain/fastfinality/collaborator"
	"github.com/finalitychain/fastfinality/committee"
	"github.com/finalitychain/fastfinality/config"
	"github.com/finalitychain/fastfinality/perround"
	"github.com/finalitychain/fastfinality/wire"
)

// dedupeCacheSize bounds the inbound block-hash dedupe cache (spec.md §6
// Domain Stack note: a peer retransmitting the same proposal/vote batch
// should cost a cache hit, not a second decode+verify pass).
const dedupeCacheSize = 4096

// Handler binds spec.md §4.12's message handlers to the live round state.
// The host builds one Handler whose Current and Committee funcs read
// env.Current and the committee manager fresh on each call, so it follows
// DetectRound/IncrementRound/ResetRound without being rebuilt, the same way
// action.Env's other per-round consumers read env.Current fresh each call.
type Handler struct {
	Current   func() *perround.Data
	Committee func() committee.Committee
	Manager   committee.Manager
	Config    config.Config
	Verify    committee.VerifyBlockHeaderCosignatureFunc
	Codec     collaborator.BlockCodec

	LocalHeight       func() chainref.Height
	LastCommittedHash func() chainref.Hash256
	NodeWorkState     func() chainref.WorkState
	NodeKey           bftcrypto.PublicKey
	HarvesterKeys     []bftcrypto.PublicKey

	seen *lru.Cache[chainref.Hash256, struct{}]
}

// New builds a Handler with a fresh dedupe cache.
func New(
	current func() *perround.Data,
	cm func() committee.Committee,
	mgr committee.Manager,
	cfg config.Config,
	verify committee.VerifyBlockHeaderCosignatureFunc,
	codec collaborator.BlockCodec,
	localHeight func() chainref.Height,
	lastCommittedHash func() chainref.Hash256,
	nodeWorkState func() chainref.WorkState,
	nodeKey bftcrypto.PublicKey,
	harvesterKeys []bftcrypto.PublicKey,
) *Handler {
	cache, _ := lru.New[chainref.Hash256, struct{}](dedupeCacheSize)
	return &Handler{
		Current:           current,
		Committee:         cm,
		Manager:           mgr,
		Config:            cfg,
		Verify:            verify,
		Codec:             codec,
		LocalHeight:       localHeight,
		LastCommittedHash: lastCommittedHash,
		NodeWorkState:     nodeWorkState,
		NodeKey:           nodeKey,
		HarvesterKeys:     harvesterKeys,
		seen:              cache,
	}
}

// validateBlockCosignatures delegates to action.ValidateBlockCosignatures
// (spec.md §4.10), shared between DownloadBlocks and this package's
// Push_Confirmed_Block handler.
func validateBlockCosignatures(header collaborator.DecodedBlockHeader, cm committee.Committee, verify committee.VerifyBlockHeaderCosignatureFunc, cfg config.Config, mgr committee.Manager) bool {
	return action.ValidateBlockCosignatures(header, cm, verify, mgr, cfg)
}


// verifyCommitteeMessage checks a CommitteeMessage's message-signature and
// cosignature against signer, re-deriving the unsigned body the same way
// action.AddVote signs it.
func verifyCommitteeMessage(m wire.CommitteeMessage, signer bftcrypto.PublicKey) bool {
	unsigned := make([]byte, 0, 1+32+48+96)
	unsigned = append(unsigned, m.Type)
	unsigned = append(unsigned, m.BlockHash[:]...)
	unsigned = append(unsigned, m.Cosignature.Signer[:]...)
	unsigned = append(unsigned, m.Cosignature.Sig[:]...)
	msgSig, err := bftcrypto.SignatureFromBytes(m.MsgSig[:])
	if err != nil {
		return false
	}
	return signer.Verify(unsigned, msgSig)
}

func cosignatureOf(m wire.CommitteeMessage) (bftcrypto.Signature, error) {
	return bftcrypto.SignatureFromBytes(m.Cosignature.Sig[:])
}
