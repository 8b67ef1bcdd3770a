package action

import (
	"context"
	"time"

	"github.com/finalitychain/fastfinality/fsm"
)

// WaitForBlock implements spec.md §4.8, the BlockWaiting (ProposalWaiting in
// the two-phase variant) state's entry action.
type WaitForBlock struct {
	Env *Env
}

// Run executes WaitForBlock's on_entry action.
func (a *WaitForBlock) Run(ctx context.Context) fsm.Event {
	env := a.Env
	cur := env.Current
	round := cur.Round()

	deadline := round.RoundStart.Add(time.Duration(round.RoundTimeMs) * time.Millisecond)
	wait := time.Until(deadline)
	if wait < 0 {
		wait = 0
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-cur.BlockReceived.Done():
		return fsm.BlockReceived
	case <-timer.C:
	case <-ctx.Done():
		return fsm.BlockNotReceivedSyncFalse
	}

	snap := cur.Snapshot()
	if snap.UnexpectedBlockHeight {
		return fsm.UnexpectedBlockHeight
	}

	syncWithNetwork := snap.HasProposedBlock || uint64(cur.ID().Round)%env.Config.CheckNetworkHeightInterval == 0
	if syncWithNetwork {
		cur.DisableBlockBroadcast()
		return fsm.BlockNotReceivedSyncTrue
	}
	return fsm.BlockNotReceivedSyncFalse
}
