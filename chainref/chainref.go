// Package chainref holds the small shared identity types spec.md §3 names
// ("Round Identity", Hash256) so every other package agrees on their shape
// without importing each other in a cycle.
package chainref

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Hash256 is the block/proposal hash type, reusing the teacher's own
// common.Hash (github.com/autonity/autonity/common, itself a go-ethereum
// fork) via the real upstream module.
type Hash256 = common.Hash

// Height is the monotonic block height (spec.md §3 "height is monotonic").
type Height uint64

// Round is the per-height round number, resetting to 0 per height and
// incrementing on failure to commit.
type Round int64

// ID is the Round Identity (height, round_number) spec.md §3 defines.
type ID struct {
	Height Height
	Round  Round
}

// Less totally orders round identities by (height, round).
func (id ID) Less(other ID) bool {
	if id.Height != other.Height {
		return id.Height < other.Height
	}
	return id.Round < other.Round
}

func (id ID) String() string {
	return fmt.Sprintf("(height=%d, round=%d)", id.Height, id.Round)
}

// Phase is the CommitteePhase enum spec.md §3 defines, totally ordered
// None < Propose < Prevote < Precommit < Commit.
type Phase uint8

const (
	PhaseNone Phase = iota
	PhasePropose
	PhasePrevote
	PhasePrecommit
	PhaseCommit
)

func (p Phase) String() string {
	switch p {
	case PhaseNone:
		return "None"
	case PhasePropose:
		return "Propose"
	case PhasePrevote:
		return "Prevote"
	case PhasePrecommit:
		return "Precommit"
	case PhaseCommit:
		return "Commit"
	default:
		return "Unknown"
	}
}

// WorkState is the per-node work state reported by peers (GLOSSARY,
// spec.md §4.4 approval rating).
type WorkState uint8

const (
	WorkStateNone WorkState = iota
	WorkStateSynchronizing
	WorkStateRunning
)
