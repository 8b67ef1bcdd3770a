// Package host provides the assembly around a caller-built action.Env: it
// builds the fsm.Action table and
// IncrementRound/ResetRound callbacks fsm.New needs (spec.md §4.4-§4.11),
// binds a handler.Handler to the same Env so inbound wire packets and FSM
// actions read/write the same perround.Data, and routes the Broadcast
// collaborator's delivery callback to the Handler.
//
// Grounded on the teacher's core.New/core.Start wiring in
// consensus/tendermint/core/handler.go, which likewise builds one
// event-loop object bound to its backend collaborator and registers it as
// the protocol manager's message handler.
package host

import (
	"bytes"
	"context"

	"github.com/ethereum/go-ethereum/log"

	"github.com/finalitychain/fastfinality/action"
	"github.com/finalitychain/fastfinality/bftcrypto"
	"github.com/finalitychain/fastfinality/chainref"
	"github.com/finalitychain/fastfinality/collaborator"
	"github.com/finalitychain/fastfinality/fsm"
	"github.com/finalitychain/fastfinality/handler"
	"github.com/finalitychain/fastfinality/perround"
	"github.com/finalitychain/fastfinality/roundclock"
	"github.com/finalitychain/fastfinality/vote"
	"github.com/finalitychain/fastfinality/wire"
)

// Host binds the action/fsm/handler packages into one runnable unit: the
// FSM's strand drives actions; actions mutate Env.Current/Env state;
// inbound packets delivered by the Broadcast collaborator are routed to
// the same Handler reading the same Env, so a round can actually drive
// proposal -> vote -> commit end-to-end (spec.md C5).
type Host struct {
	Env     *action.Env
	FSM     *fsm.FSM
	Handler *handler.Handler
	Clock   *roundclock.Clock

	policy      *action.RoundPolicy
	firstRound  bool
	firstParent roundclock.ParentBlock
}

// New builds the actions map, round-policy callbacks, FSM and Handler, all
// bound to env, and registers the Handler against env.Broadcast's delivery
// callback. parent seeds DetectRound's first call (spec.md §4.1); every
// subsequent call reads Env.LastCommittedParent instead, set by
// action.CommitBlock as rounds commit.
func New(env *action.Env, clock *roundclock.Clock, filledRounds func(chainref.Round) bool, parent roundclock.ParentBlock, logger log.Logger) *Host {
	if logger == nil {
		logger = log.New("module", "host")
	}
	env.Clock = clock
	env.Logger = logger

	h := &Host{Env: env, Clock: clock, firstRound: true, firstParent: parent}
	h.policy = &action.RoundPolicy{Env: env, Clock: clock, FilledRounds: filledRounds}

	broadcast := func(ctx context.Context, header wire.Header, payload []byte) {
		h.broadcastToCommittee(ctx, header, payload)
	}

	actions := map[fsm.State]fsm.Action{
		fsm.LocalChainCheck:        (&action.CheckLocalChain{Env: env}).Run,
		fsm.BlocksDownloading:      (&action.DownloadBlocks{Env: env}).Run,
		fsm.RoundDetection:         h.detectRound,
		fsm.ConnectionChecking:     (&action.CheckConnections{Env: env}).Run,
		fsm.BlockProducerSelection: (&action.SelectBlockProducer{Env: env}).Run,
		fsm.BlockGeneration:        (&action.GenerateBlock{Env: env, Broadcast: broadcast}).Run,
		fsm.BlockWaiting:           (&action.WaitForBlock{Env: env}).Run,
		fsm.Prevote:                (&action.AddVote{Env: env, Kind: vote.Prevote, Broadcast: broadcast}).Run,
		fsm.Precommit:              (&action.AddVote{Env: env, Kind: vote.Precommit, Broadcast: broadcast}).Run,
		fsm.Commit:                 (&action.CommitBlock{Env: env}).Run,
	}

	h.FSM = fsm.New(env.Config.VotingProfile, actions, h.policy.IncrementRound, h.policy.ResetRound, logger)

	h.Handler = handler.New(
		func() *perround.Data { return env.Current },
		env.CommitteeMgr.Committee,
		env.CommitteeMgr,
		env.Config,
		env.Verify,
		env.Codec,
		env.LocalHeight,
		env.LastCommittedHash,
		func() chainref.WorkState { return chainref.WorkStateRunning },
		env.Identity.BootKey.PublicKey(),
		publicKeysOf(env.Identity.HarvesterKeys),
	)

	if env.Broadcast != nil {
		env.Broadcast.SetDeliverCallback(h.deliver)
	}

	return h
}

// Start begins the FSM's strand (spec.md §5).
func (h *Host) Start(ctx context.Context) { h.FSM.Start(ctx) }

// Shutdown implements the §5 shutdown sequence.
func (h *Host) Shutdown(ctx context.Context) { h.FSM.Shutdown(ctx) }

// detectRound seeds DetectRound's parent fields from the block New was
// constructed with on the first call, and from Env.LastCommittedParent (set
// by CommitBlock as rounds commit) thereafter.
func (h *Host) detectRound(ctx context.Context) fsm.Event {
	ts, phaseTimeMs := h.firstParent.Timestamp, h.firstParent.PhaseTimeMs
	if !h.firstRound {
		if t, p := h.Env.LastCommittedParent(); !t.IsZero() {
			ts, phaseTimeMs = t, p
		}
	}
	h.firstRound = false

	a := &action.DetectRound{
		Env:               h.Env,
		ParentTimestamp:   ts,
		ParentPhaseTimeMs: phaseTimeMs,
		FilledRounds:      h.policy.FilledRounds,
	}
	return a.Run(ctx)
}

// broadcastToCommittee sends payload to the current round's proposer plus
// cosigners, the view spec.md §4.7/§4.9 broadcast proposals and vote
// batches to.
func (h *Host) broadcastToCommittee(ctx context.Context, header wire.Header, payload []byte) {
	env := h.Env
	if env.Broadcast == nil {
		return
	}
	cm := env.CommitteeMgr.Committee()
	members := []bftcrypto.PublicKey{cm.BlockProposer}
	for _, idAny := range cm.Cosigners.ToSlice() {
		id := idAny.(bftcrypto.KeyID)
		if pk, ok := cm.CosignerByID(id); ok {
			members = append(members, pk)
		}
	}
	if err := env.Broadcast.BroadcastPacket(ctx, header, payload, collaborator.View{Members: members}); err != nil {
		env.Logger.Warn("host: broadcast failed", "type", header.Type, "err", err)
	}
}

// deliver routes an inbound packet to the Handler method spec.md §4.12
// names for its wire.PacketType, registered as the Broadcast collaborator's
// delivery callback (spec.md §6 item 5).
func (h *Host) deliver(header wire.Header, payload []byte) {
	switch header.Type {
	case wire.PushBlock, wire.PushProposedBlock:
		block, err := unwrapBlockPacket(payload, header.Size)
		if err != nil {
			h.Env.Logger.Warn("host: malformed block packet", "err", err)
			return
		}
		if err := h.Handler.PushBlock(block); err != nil {
			h.Env.Logger.Warn("host: PushBlock failed", "err", err)
		}
	case wire.PushConfirmedBlock:
		block, err := unwrapBlockPacket(payload, header.Size)
		if err != nil {
			h.Env.Logger.Warn("host: malformed confirmed-block packet", "err", err)
			return
		}
		if err := h.Handler.PushConfirmedBlock(block); err != nil {
			h.Env.Logger.Warn("host: PushConfirmedBlock failed", "err", err)
		}
	case wire.PushPrevoteMessages:
		if err := h.Handler.PushPrevoteMessages(payload); err != nil {
			h.Env.Logger.Warn("host: PushPrevoteMessages failed", "err", err)
		}
	case wire.PushPrecommitMessages:
		if err := h.Handler.PushPrecommitMessages(payload); err != nil {
			h.Env.Logger.Warn("host: PushPrecommitMessages failed", "err", err)
		}
	case wire.PullRemoteNodeStateRequest:
		if _, err := h.Handler.PullRemoteNodeState(payload); err != nil {
			h.Env.Logger.Warn("host: PullRemoteNodeState failed", "err", err)
		}
	default:
		h.Env.Logger.Debug("host: no handler registered for packet type", "type", header.Type)
	}
}

// unwrapBlockPacket strips the proposer-signature envelope GenerateBlock
// wraps a block in before broadcast (spec.md §4.7/§6 BlockPacket), leaving
// the opaque block body the Handler/Codec expect.
func unwrapBlockPacket(payload []byte, size uint32) ([]byte, error) {
	packet, err := wire.DecodeBlockPacket(bytes.NewReader(payload), size)
	if err != nil {
		return nil, err
	}
	return packet.Block, nil
}

func publicKeysOf(keys []bftcrypto.SecretKey) []bftcrypto.PublicKey {
	out := make([]bftcrypto.PublicKey, len(keys))
	for i, k := range keys {
		out[i] = k.PublicKey()
	}
	return out
}
