// Package config holds the flat configuration surface THE CORE reads.
//
// Loading these values from disk, environment or CLI flags is explicitly out
// of scope (spec.md §1); callers construct a Config and pass it in.
package config

import "time"

// BlockTimeUpdateStrategy selects how the round clock adjusts phase_time_ms
// across rounds that fail to commit (spec.md §4.1).
type BlockTimeUpdateStrategy uint8

const (
	// StrategyNone holds phase_time_ms constant across rounds.
	StrategyNone BlockTimeUpdateStrategy = iota
	// StrategyIncreaseCoefficient resets the first round to MinCommitteePhaseTime
	// and increases unfilled subsequent rounds.
	StrategyIncreaseCoefficient
	// StrategyIncreaseDecreaseCoefficient decreases the first round by one
	// decrement step and increases subsequent unfilled rounds.
	StrategyIncreaseDecreaseCoefficient
)

// VotingProfile selects between the single-block-per-round transition table
// and the two-phase (prevote/precommit) one (spec.md §9 redesign note: "one
// core FSM parameterized by a VotingProfile").
type VotingProfile uint8

const (
	// SingleBlockProfile commits directly on block receipt (§4.3 simpler
	// pipeline transition table).
	SingleBlockProfile VotingProfile = iota
	// TwoPhaseProfile runs Prevote then Precommit before Commit (§4.9).
	TwoPhaseProfile
)

// CommitteePhaseCount is fixed by spec.md §6 and never configurable.
const CommitteePhaseCount = 4

// Config is the flat set of named values spec.md §6 lists under
// "Configuration".
type Config struct {
	MinCommitteePhaseTime               time.Duration
	CommitteeChainHeightRequestInterval time.Duration
	CommitteeSilenceInterval            time.Duration
	CommitteeEndSyncApproval            float64
	CommitteeBaseTotalImportance        float64
	CommitteeNotRunningContribution     float64
	CommitteeApproval                   float64
	CheckNetworkHeightInterval          uint64
	BlockTimeUpdateStrategy             BlockTimeUpdateStrategy
	MaxBlocksPerSyncAttempt             uint64
	MaxChainBytesPerSyncAttempt         uint64
	EnableDbrbFastFinality              bool

	// VotingProfile picks the single-block or two-phase transition table
	// (§9 redesign note).
	VotingProfile VotingProfile

	// StageSelfPrecommit defaults to true per spec.md §9's "default to
	// staged" decision on the precommit-for-self open question.
	StageSelfPrecommit bool

	// PullBlocksResponseTimeout bounds DownloadBlocks' per-peer wait
	// (spec.md §4.5 "await response for bounded time (≥ 60 s)").
	PullBlocksResponseTimeout time.Duration
}

// Default returns a Config with the values the spec's worked examples use
// (spec.md §8 scenario 1: phase_time=1000ms, CommitteeApproval=0.67).
func Default() Config {
	return Config{
		MinCommitteePhaseTime:               1000 * time.Millisecond,
		CommitteeChainHeightRequestInterval: 5 * time.Second,
		CommitteeSilenceInterval:            200 * time.Millisecond,
		CommitteeEndSyncApproval:            0.67,
		CommitteeBaseTotalImportance:        1,
		CommitteeNotRunningContribution:     0.5,
		CommitteeApproval:                   0.67,
		CheckNetworkHeightInterval:          10,
		BlockTimeUpdateStrategy:             StrategyNone,
		MaxBlocksPerSyncAttempt:             400,
		MaxChainBytesPerSyncAttempt:         100 * 1024 * 1024,
		EnableDbrbFastFinality:              true,
		VotingProfile:                       TwoPhaseProfile,
		StageSelfPrecommit:                  true,
		PullBlocksResponseTimeout:           60 * time.Second,
	}
}
