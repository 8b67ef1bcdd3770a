package action

import (
	"github.com/finalitychain/fastfinality/chainref"
	"github.com/finalitychain/fastfinality/perround"
	"github.com/finalitychain/fastfinality/roundclock"
)

// RoundPolicy implements spec.md §4.3's "Round number policy": the
// fsm.FSM.onIncrementRound/onResetRound callbacks, run on the FSM strand by
// dispatch itself (never a separate goroutine), so mutating Env.Current
// here needs no extra synchronization beyond I5's single-writer rule.
//
// Neither transition re-enters RoundDetection (both land on
// ConnectionChecking directly per the §4.3 table), so this is the only
// place a new round's PerRoundData gets constructed outside DetectRound.
type RoundPolicy struct {
	Env   *Env
	Clock *roundclock.Clock

	// FilledRounds reports, for a round number at the *current* height,
	// whether it resulted in a committed block (roundclock's phase-time
	// strategy input). IncrementRound always passes false (it only runs on
	// a failure path); ResetRound seeds round 0 of the next height, so it
	// always passes a function appropriate to the new height's rounds.
	FilledRounds func(chainref.Round) bool
}

// IncrementRound advances PerRoundData's round within the same height
// (spec.md §4.3 "advances round by 1... next phase_time adjusted per the
// configured strategy"), preserving anything the new round still needs from
// the old one (committee advance, local committee must be recomputed by the
// next SelectBlockProducer pass).
func (p *RoundPolicy) IncrementRound() {
	env := p.Env
	cur := env.Current
	if cur == nil {
		return
	}

	next := p.Clock.NextRound(cur.Round(), false)
	if err := env.CommitteeMgr.Advance(); err != nil {
		env.Logger.Error("incrementround: committee advance failed", "err", err)
	}
	cm := env.CommitteeMgr.Committee()

	id := chainref.ID{Height: cur.ID().Height, Round: next.Round}
	env.Current = perround.New(id, next, cm, env.CommitteeMgr, env.Config)
	env.Logger.Debug("incrementround", "id", id)
}
