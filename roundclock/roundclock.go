// Package roundclock implements C1, the deterministic round/phase scheduler
// of spec.md §4.1. Given the parent block's timestamp and phase time, the
// committee's phase count, and the configured block-time update strategy, it
// computes which round is current, when it started, and (phase-detection
// variant) which phase within the round.
//
// Grounded on the teacher's startRound/setCore round arithmetic in
// consensus/tendermint/core/core.go, made into a pure, independently
// testable function the way
// original_source/extensions/fastfinality/src/utils/FastFinalityUtils.cpp
// does in the C++ original.
package roundclock

import (
	"errors"
	"fmt"
	"time"

	"github.com/finalitychain/fastfinality/chainref"
	"github.com/finalitychain/fastfinality/config"
)

// InvalidTimeError is returned when the parent block's timestamp is in the
// future relative to t_now (spec.md §4.1 "Fails with InvalidTimeError when
// t_p > t_now").
type InvalidTimeError struct {
	ParentTime time.Time
	Now        time.Time
}

func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("roundclock: parent block timestamp %s is after current time %s", e.ParentTime, e.Now)
}

// ErrRoundNumberRegressed is an InvariantViolation (spec.md §7): a computed
// round went backwards for a fixed parent block, violating P2.
var ErrRoundNumberRegressed = errors.New("roundclock: round number went backwards")

// ParentBlock is the minimal parent-block data the clock needs: its
// timestamp, its height, and the phase_time_ms that was in force when it was
// produced (spec.md §4.1).
type ParentBlock struct {
	Timestamp   time.Time
	Height      chainref.Height
	PhaseTimeMs uint64
}

// FastFinalityRound is the round-centric variant spec.md §3 defines:
// round_time_ms = 4 * phase_time_ms (the four-phase model).
type FastFinalityRound struct {
	Round       chainref.Round
	RoundStart  time.Time
	RoundTimeMs uint64
}

// PhaseTimeMs returns the per-phase duration implied by RoundTimeMs.
func (r FastFinalityRound) PhaseTimeMs() uint64 {
	return r.RoundTimeMs / config.CommitteePhaseCount
}

// CommitteeStage is the phase-detection variant spec.md §3 defines:
// (round, phase, round_start, phase_time_ms), totally ordered by
// (round, phase).
type CommitteeStage struct {
	Round       chainref.Round
	Phase       chainref.Phase
	RoundStart  time.Time
	PhaseTimeMs uint64
}

// Less totally orders stages by (round, phase), per spec.md §3.
func (s CommitteeStage) Less(other CommitteeStage) bool {
	if s.Round != other.Round {
		return s.Round < other.Round
	}
	return s.Phase < other.Phase
}

// Clock computes the current round/phase from a parent block, wall clock,
// and config — spec.md §4.1's contract in full.
type Clock struct {
	cfg config.Config
}

// New builds a Clock for cfg.
func New(cfg config.Config) *Clock {
	return &Clock{cfg: cfg}
}

// phaseTimeOf returns the parent's phase time, substituting the configured
// default when the parent recorded 0 (spec.md §4.1 edge case: "the clock
// treats phase_time_ms = 0 in a parent block as the configured default").
func (c *Clock) phaseTimeOf(parent ParentBlock) uint64 {
	if parent.PhaseTimeMs == 0 {
		return uint64(c.cfg.MinCommitteePhaseTime / time.Millisecond)
	}
	return parent.PhaseTimeMs
}

// round0Start computes round_start for round 0 of height parent.Height+1:
// t_p + CommitteePhaseCount * ptp_p (spec.md §4.1).
func (c *Clock) round0Start(parent ParentBlock) time.Time {
	ptp := c.phaseTimeOf(parent)
	return parent.Timestamp.Add(time.Duration(config.CommitteePhaseCount*ptp) * time.Millisecond)
}

// nextPhaseTime applies the configured BlockTimeUpdateStrategy to compute
// the phase_time_ms of the round after current, given whether current
// committed (filled) or not (spec.md §4.1 per-strategy rules).
func (c *Clock) nextPhaseTime(current uint64, isFirstRound bool, filled bool) uint64 {
	minMs := uint64(c.cfg.MinCommitteePhaseTime / time.Millisecond)
	switch c.cfg.BlockTimeUpdateStrategy {
	case config.StrategyNone:
		// spec.md §9 Open Question decision: "source carries the current
		// round_time_ms forward unchanged."
		return current
	case config.StrategyIncreaseCoefficient:
		if isFirstRound {
			return minMs
		}
		if filled {
			return current
		}
		return increment(current)
	case config.StrategyIncreaseDecreaseCoefficient:
		if isFirstRound {
			return decrement(current, minMs)
		}
		if filled {
			return current
		}
		return increment(current)
	default:
		return current
	}
}

// increment/decrement implement the "one decrement/increment step"
// adjustment spec.md §4.1 leaves to the config author's discretion; a simple
// proportional step (12.5%) is used here, bounded so increment never
// overflows (spec.md: "Overflow on phase_time update is the config author's
// responsibility" — we only guard against the step itself overflowing
// uint64, not against pathological config values).
func increment(current uint64) uint64 {
	step := current/8 + 1
	if current+step < current { // overflow
		return current
	}
	return current + step
}

func decrement(current, floor uint64) uint64 {
	step := current/8 + 1
	if current <= floor+step {
		return floor
	}
	return current - step
}

// NextRound computes the round that follows current within the same height,
// per spec.md §4.3's "Round number policy": round+1, round_start =
// current.round_start + current.round_time_ms, with phase_time adjusted per
// the configured BlockTimeUpdateStrategy. filled reports whether current
// resulted in a committed block. Used by the IncrementRound action, which
// (per the §4.3 transition table) moves straight to ConnectionChecking
// without re-entering RoundDetection.
func (c *Clock) NextRound(current FastFinalityRound, filled bool) FastFinalityRound {
	nextPhaseTime := c.nextPhaseTime(current.PhaseTimeMs(), current.Round == 0, filled)
	return FastFinalityRound{
		Round:       current.Round + 1,
		RoundStart:  current.RoundStart.Add(time.Duration(current.RoundTimeMs) * time.Millisecond),
		RoundTimeMs: config.CommitteePhaseCount * nextPhaseTime,
	}
}

// Advance computes the sequence of rounds from round 0 up to the last one
// whose start has passed, for the four-phase (FastFinalityRound) variant:
// "Advance rounds while next_round_start <= t_now" (spec.md §4.1).
//
// filledRounds reports, for a given round number, whether that round
// resulted in a committed block (so its phase time should not be bumped by
// the Increase strategies) — callers pass a function because this clock has
// no notion of chain state itself.
func (c *Clock) Advance(parent ParentBlock, now time.Time, filledRounds func(chainref.Round) bool) (FastFinalityRound, error) {
	if parent.Timestamp.After(now) {
		return FastFinalityRound{}, &InvalidTimeError{ParentTime: parent.Timestamp, Now: now}
	}

	round := FastFinalityRound{
		Round:       0,
		RoundStart:  c.round0Start(parent),
		RoundTimeMs: config.CommitteePhaseCount * c.phaseTimeOf(parent),
	}

	for {
		nextStart := round.RoundStart.Add(time.Duration(round.RoundTimeMs) * time.Millisecond)
		if nextStart.After(now) {
			return round, nil
		}
		filled := filledRounds != nil && filledRounds(round.Round)
		nextPhaseTime := c.nextPhaseTime(round.PhaseTimeMs(), round.Round == 0, filled)
		round = FastFinalityRound{
			Round:       round.Round + 1,
			RoundStart:  nextStart,
			RoundTimeMs: config.CommitteePhaseCount * nextPhaseTime,
		}
	}
}

// AdvanceStage computes the phase-detection variant: advance while
// next_round_start <= t_now + CommitteeSilenceInterval, additionally
// returning the phase within the round as
// floor((t_now - round_start) / phase_time) + 1, clamped to Propose if
// negative (spec.md §4.1).
func (c *Clock) AdvanceStage(parent ParentBlock, now time.Time, filledRounds func(chainref.Round) bool) (CommitteeStage, error) {
	fr, err := c.advanceWithSilence(parent, now, filledRounds)
	if err != nil {
		return CommitteeStage{}, err
	}

	elapsed := now.Sub(fr.RoundStart)
	phaseTimeMs := fr.PhaseTimeMs()
	var phaseIndex int64
	if elapsed < 0 {
		phaseIndex = 0
	} else {
		phaseIndex = int64(elapsed/time.Millisecond)/int64(phaseTimeMs) + 1
	}
	phase := chainref.Phase(phaseIndex)
	if phaseIndex < int64(chainref.PhasePropose) {
		phase = chainref.PhasePropose
	}
	if phaseIndex > int64(chainref.PhaseCommit) {
		phase = chainref.PhaseCommit
	}

	return CommitteeStage{
		Round:       fr.Round,
		Phase:       phase,
		RoundStart:  fr.RoundStart,
		PhaseTimeMs: phaseTimeMs,
	}, nil
}

func (c *Clock) advanceWithSilence(parent ParentBlock, now time.Time, filledRounds func(chainref.Round) bool) (FastFinalityRound, error) {
	if parent.Timestamp.After(now) {
		return FastFinalityRound{}, &InvalidTimeError{ParentTime: parent.Timestamp, Now: now}
	}
	silence := c.cfg.CommitteeSilenceInterval

	round := FastFinalityRound{
		Round:       0,
		RoundStart:  c.round0Start(parent),
		RoundTimeMs: config.CommitteePhaseCount * c.phaseTimeOf(parent),
	}

	for {
		nextStart := round.RoundStart.Add(time.Duration(round.RoundTimeMs) * time.Millisecond)
		if nextStart.After(now.Add(silence)) {
			return round, nil
		}
		filled := filledRounds != nil && filledRounds(round.Round)
		nextPhaseTime := c.nextPhaseTime(round.PhaseTimeMs(), round.Round == 0, filled)
		round = FastFinalityRound{
			Round:       round.Round + 1,
			RoundStart:  nextStart,
			RoundTimeMs: config.CommitteePhaseCount * nextPhaseTime,
		}
	}
}
