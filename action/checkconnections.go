package action

import (
	"context"

	"github.com/finalitychain/fastfinality/fsm"
)

// CheckConnections implements the ConnectionChecking state's entry action,
// named but not elaborated by spec.md §4.3 ("ConnectionChecking / entry:
// CheckConnections"). This module resolves the open question of what
// "connection number sufficient" means by counting reachable peers via
// RemoteNodeStateRetriever and requiring at least enough to reach quorum
// over the current committee (CommitteeApproval fraction of cosigners +
// the proposer) — the same population CheckLocalChain/DownloadBlocks
// already poll, so no new collaborator is introduced for this (documented
// in DESIGN.md's Open Question decisions).
type CheckConnections struct {
	Env *Env
}

// Run executes CheckConnections' on_entry action.
func (a *CheckConnections) Run(ctx context.Context) fsm.Event {
	env := a.Env
	states, err := env.RemoteState.RemoteNodeStates(ctx)
	if err != nil {
		env.Logger.Debug("checkconnections: remote state query failed", "err", err)
		return fsm.ConnectionNumberInsufficient
	}

	cm := env.CommitteeMgr.Committee()
	required := int(float64(cm.CosignerCount()+1) * env.Config.CommitteeApproval)
	if required < 1 {
		required = 1
	}

	if len(states) >= required {
		return fsm.ConnectionNumberSufficient
	}
	env.Logger.Debug("checkconnections: insufficient peers", "have", len(states), "need", required)
	return fsm.ConnectionNumberInsufficient
}
