package action

import (
	"context"
	"time"

	"github.com/finalitychain/fastfinality/bftcrypto"
	"github.com/finalitychain/fastfinality/fsm"
)

// SelectBlockProducer implements spec.md §4.6's second half, the
// BlockProducerSelection state's entry action.
type SelectBlockProducer struct {
	Env *Env

	// PeerDiscoveryRefresh is invoked from the scheduled timer at
	// round_time/PhaseCount (spec.md §4.6 "so the broadcast layer has
	// enough connections by vote-collection time"). Optional.
	PeerDiscoveryRefresh func()
}

// Run executes SelectBlockProducer's on_entry action.
func (a *SelectBlockProducer) Run(ctx context.Context) fsm.Event {
	env := a.Env
	cur := env.Current
	round := cur.Round()

	banned, err := env.ViewFetcher.GetBanPeriod(ctx, env.Identity.BootKey.PublicKey())
	if err != nil {
		env.Logger.Warn("selectproducer: ban check failed", "err", err)
		return fsm.NotRegisteredInBroadcastSystem
	}
	if banned > 0 {
		return fsm.DbrbProcessBanned
	}

	if err := env.CommitteeMgr.SeekRound(round.Round); err != nil {
		env.Logger.Warn("selectproducer: committee manager cannot seek round", "err", err)
		return fsm.NotRegisteredInBroadcastSystem
	}
	if err := env.CommitteeMgr.SelectCommittee(env.Config); err != nil {
		env.Logger.Warn("selectproducer: committee selection failed", "err", err)
		return fsm.NotRegisteredInBroadcastSystem
	}
	cm := env.CommitteeMgr.Committee()

	phaseTime := time.Duration(round.PhaseTimeMs()) * time.Millisecond
	if a.PeerDiscoveryRefresh != nil {
		t := time.AfterFunc(phaseTime, a.PeerDiscoveryRefresh)
		go func() {
			<-ctx.Done()
			t.Stop()
		}()
	}

	var localCommittee []bftcrypto.SecretKey
	for _, sk := range env.Identity.Keys() {
		if cm.IsCosigner(sk.PublicKey()) {
			localCommittee = append(localCommittee, sk)
		}
	}
	cur.SetLocalCommittee(localCommittee)

	sk, isProducer := env.Identity.Holds(cm.BlockProposer)
	if isProducer {
		cur.SetBlockProposerKey(sk)
	}

	sinceStart := time.Since(round.RoundStart)
	if isProducer && sinceStart <= phaseTime {
		return fsm.GenerateBlockEvent
	}
	return fsm.WaitForBlockEvent
}
