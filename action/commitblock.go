package action

import (
	"context"
	"time"

	"github.com/finalitychain/fastfinality/collaborator"
	"github.com/finalitychain/fastfinality/fsm"
)

// CommitBlock implements spec.md §4.11, the Commit state's entry action.
type CommitBlock struct {
	Env *Env
}

// Run executes CommitBlock's on_entry action.
func (a *CommitBlock) Run(ctx context.Context) fsm.Event {
	env := a.Env
	cur := env.Current
	round := cur.Round()

	raw, ok := cur.ProposedBlock()
	if !ok {
		env.Logger.Error("commitblock: no proposed block recorded for this round")
		return fsm.CommitBlockFailed
	}

	var completionErr error
	done := make(chan struct{})
	env.CommitLock()
	err := env.RangeConsumer.ConsumeBlockRange(ctx, [][]byte{raw}, func(res collaborator.CompletionResult) {
		if res.Status == collaborator.CompletionAborted {
			completionErr = errBlockCommitRejected
		}
		close(done)
	})
	env.CommitUnlock()
	if err != nil {
		env.Logger.Warn("commitblock: consumer call failed", "err", err)
		return fsm.CommitBlockFailed
	}
	<-done
	if completionErr != nil {
		env.Logger.Warn("commitblock: consumer aborted", "err", completionErr)
		return fsm.CommitBlockFailed
	}

	env.SetLocalHeight(cur.ID().Height)
	if header, err := env.Codec.DecodeHeader(raw); err == nil {
		env.SetLastCommittedHash(header.BlockHash)
		env.SetLastCommittedParent(header.Timestamp, header.PhaseTimeMs)
	} else {
		env.Logger.Warn("commitblock: header decode failed, round clock continuity may be degraded", "err", err)
	}

	height := cur.ID().Height
	if env.MaxChainHeight != 0 && height >= env.MaxChainHeight {
		return fsm.Hold
	}

	roundTime := time.Duration(round.RoundTimeMs) * time.Millisecond
	sleep(ctx, roundTime)
	return fsm.CommitBlockSucceeded
}
