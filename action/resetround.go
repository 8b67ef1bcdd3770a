package action

import (
	"time"

	"github.com/finalitychain/fastfinality/chainref"
	"github.com/finalitychain/fastfinality/perround"
	"github.com/finalitychain/fastfinality/roundclock"
)

// ResetRound advances height by 1 and zeroes round (spec.md §4.3 "advances
// height by 1 and zeroes round, preparing for the next block"), reseeding
// the round clock from the block just committed exactly as DetectRound
// would on a fresh RoundDetection entry.
func (p *RoundPolicy) ResetRound() {
	env := p.Env
	cur := env.Current
	var oldHeight chainref.Height
	if cur != nil {
		oldHeight = cur.ID().Height
	} else {
		oldHeight = env.LocalHeight()
	}
	newHeight := oldHeight + 1

	ts, phaseTimeMs := env.LastCommittedParent()
	if ts.IsZero() {
		ts = time.Now()
	}
	parent := roundclock.ParentBlock{Timestamp: ts, Height: oldHeight, PhaseTimeMs: phaseTimeMs}

	round, err := p.Clock.Advance(parent, time.Now(), p.FilledRounds)
	if err != nil {
		env.Logger.Error("resetround: round clock failed", "err", err)
		return
	}

	env.CommitteeMgr.Reset()
	if err := env.CommitteeMgr.SelectCommittee(env.Config); err != nil {
		env.Logger.Error("resetround: committee selection failed", "err", err)
		return
	}
	for env.CommitteeMgr.Committee().Round < round.Round {
		if err := env.CommitteeMgr.Advance(); err != nil {
			env.Logger.Error("resetround: committee advance failed", "err", err)
			return
		}
	}

	id := chainref.ID{Height: newHeight, Round: round.Round}
	env.Current = perround.New(id, round, env.CommitteeMgr.Committee(), env.CommitteeMgr, env.Config)
	env.Logger.Debug("resetround", "id", id)
}
