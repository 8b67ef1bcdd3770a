package action

import (
	"bytes"
	"context"
	"time"

	"github.com/finalitychain/fastfinality/fsm"
	"github.com/finalitychain/fastfinality/vote"
	"github.com/finalitychain/fastfinality/wire"
)

// AddVote implements spec.md §4.9 (AddPrevote/AddPrecommit, the two-phase
// variant's Prevote/Precommit entry actions): for each local committee key,
// cosign the proposed block and sign the vote message, then broadcast the
// batched packet. The precommit-for-self is staged until echoed back
// (spec.md §4.9 "precommit-for-self is staged... until it is echoed back
// ... before counting toward quorum").
type AddVote struct {
	Env  *Env
	Kind vote.Kind

	// Broadcast sends the encoded vote batch to the current view.
	Broadcast func(ctx context.Context, header wire.Header, payload []byte)
}

// Run executes AddVote's on_entry action.
func (a *AddVote) Run(ctx context.Context) fsm.Event {
	env := a.Env
	cur := env.Current
	round := cur.Round()
	snap := cur.Snapshot()

	quorumEvent, timeoutEvent, phaseEnd, wireType := fsm.PrevoteQuorumReached, fsm.PhaseTimeout, 2, wire.PushPrevoteMessages
	store, quorumOnce := cur.Prevotes, cur.PrevoteQuorum
	if a.Kind == vote.Precommit {
		quorumEvent, phaseEnd, wireType = fsm.PrecommitQuorumReached, 3, wire.PushPrecommitMessages
		store, quorumOnce = cur.Precommits, cur.PrecommitQuorum
	}

	if snap.HasProposedBlock {
		blockHash := snap.ProposedBlockHash
		var batch []wire.CommitteeMessage
		for _, sk := range cur.LocalCommittee() {
			cosig := sk.Sign(blockHash[:])
			msg := wire.CommitteeMessage{
				Type:      uint8(a.Kind),
				BlockHash: blockHash,
				Cosignature: wire.Cosignature{
					Signer: sk.PublicKey().ID(),
					Sig:    cosig.Bytes(),
				},
			}
			var unsigned bytes.Buffer
			unsigned.WriteByte(msg.Type)
			unsigned.Write(msg.BlockHash[:])
			unsigned.Write(msg.Cosignature.Signer[:])
			unsigned.Write(msg.Cosignature.Sig[:])
			msgSig := sk.Sign(unsigned.Bytes())
			msg.MsgSig = msgSig.Bytes()
			batch = append(batch, msg)

			if a.Kind == vote.Precommit && env.Config.StageSelfPrecommit {
				store.StageSelfPrecommit(sk.PublicKey(), cosig)
			} else if a.Kind == vote.Precommit {
				store.AddPrecommit(sk.PublicKey(), cosig, blockHash, env.CommitteeMgr.Committee(), env.Config, env.Verify)
			} else {
				store.AddPrevote(sk.PublicKey(), cosig, blockHash, env.CommitteeMgr.Committee(), env.Config, env.Verify)
			}
		}

		if a.Broadcast != nil && len(batch) > 0 {
			var buf bytes.Buffer
			if err := wire.EncodeVoteBatch(&buf, batch); err == nil {
				payload := buf.Bytes()
				a.Broadcast(ctx, wire.Header{Type: wireType, Size: uint32(len(payload))}, payload)
			}
		}
	}

	deadline := round.RoundStart.Add(time.Duration(phaseEnd) * time.Duration(round.PhaseTimeMs()) * time.Millisecond)
	wait := time.Until(deadline)
	if wait < 0 {
		wait = 0
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-quorumOnce.Done():
		return quorumEvent
	case <-timer.C:
	case <-ctx.Done():
	}
	return timeoutEvent
}
