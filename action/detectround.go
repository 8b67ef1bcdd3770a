package action

import (
	"context"
	"time"

	"github.com/finalitychain/fastfinality/chainref"
	"github.com/finalitychain/fastfinality/fsm"
	"github.com/finalitychain/fastfinality/perround"
	"github.com/finalitychain/fastfinality/roundclock"
)

// DetectRound implements spec.md §4.6's first half: use the Round Clock to
// set the current round for height = last_committed + 1, stand up the
// expected committee, and create a fresh perround.Data (spec.md §3
// "PerRoundData is created on entry to RoundDetection").
type DetectRound struct {
	Env *Env

	// ParentTimestamp/ParentPhaseTimeMs/FilledRounds feed roundclock.Clock;
	// the host supplies them from whatever block storage backs
	// BlockElementSupplier (spec.md §4.1's ParentBlock contract).
	ParentTimestamp   time.Time
	ParentPhaseTimeMs uint64
	FilledRounds      func(chainref.Round) bool
}

// Run executes DetectRound's on_entry action.
func (a *DetectRound) Run(ctx context.Context) fsm.Event {
	env := a.Env
	height := env.LocalHeight() + 1

	parent := roundclock.ParentBlock{
		Timestamp:   a.ParentTimestamp,
		Height:      height - 1,
		PhaseTimeMs: a.ParentPhaseTimeMs,
	}

	round, err := env.Clock.Advance(parent, time.Now(), a.FilledRounds)
	if err != nil {
		env.Logger.Error("detectround: round clock failed", "err", err)
		return fsm.NetworkHeightDetectionFailure
	}

	env.CommitteeMgr.Reset()
	if err := env.CommitteeMgr.SelectCommittee(env.Config); err != nil {
		env.Logger.Error("detectround: committee selection failed", "err", err)
		return fsm.NetworkHeightDetectionFailure
	}
	for env.CommitteeMgr.Committee().Round < round.Round {
		if err := env.CommitteeMgr.Advance(); err != nil {
			env.Logger.Error("detectround: committee advance failed", "err", err)
			return fsm.NetworkHeightDetectionFailure
		}
	}

	id := chainref.ID{Height: height, Round: round.Round}
	env.Current = perround.New(id, round, env.CommitteeMgr.Committee(), env.CommitteeMgr, env.Config)

	env.Logger.Debug("detectround: round detected", "id", id)
	return fsm.RoundDetectionCompleted
}
