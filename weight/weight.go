// Package weight implements the opaque committee-weight algebra spec.md §3
// requires: zero, add, mul(scalar), ge, and str — nothing more. THE CORE
// never assumes weight is numeric; it only uses this interface.
package weight

import "github.com/holiman/uint256"

// Weight is the opaque per-signer / per-committee weight type spec.md §3
// names. Implementations must be safe to share (treated as immutable
// values; Add/Mul return new Weights).
type Weight interface {
	// Add returns the sum of w and other.
	Add(other Weight) Weight
	// Mul returns w scaled by numerator/denominator (spec.md §4.10 sums
	// weights of N cosigners, which is repeated Add, but ratio comparisons
	// need a scalar multiply against CommitteeApproval).
	Mul(numerator, denominator uint64) Weight
	// GE reports whether w >= other.
	GE(other Weight) bool
	// IsZero reports whether w is the zero weight.
	IsZero() bool
	String() string
}

// Zero is the canonical zero weight, grounded on the teacher's
// VotingPower *big.Int fields (core/types/bft_test.go) generalized to a
// fixed-width unsigned integer (github.com/holiman/uint256, teacher go.mod).
func Zero() Weight { return Uint256Weight{v: new(uint256.Int)} }

// FromUint64 builds a Weight from a plain integer, the common case for a
// single signer's voting power.
func FromUint64(v uint64) Weight { return Uint256Weight{v: new(uint256.Int).SetUint64(v)} }

// Uint256Weight is the concrete numeric Weight implementation used
// throughout this module; callers needing an opaque weight type (e.g. a
// reputation score instead of a stake count) can substitute another Weight
// implementation without touching vote.Store or the ValidateBlockCosignatures
// predicate.
type Uint256Weight struct {
	v *uint256.Int
}

func (w Uint256Weight) Add(other Weight) Weight {
	o, ok := other.(Uint256Weight)
	if !ok {
		panic("weight: Add across mismatched Weight implementations")
	}
	return Uint256Weight{v: new(uint256.Int).Add(w.v, o.v)}
}

// Mul scales w by numerator/denominator, rounding the product down — used to
// compute CommitteeApproval * total_vote_weight where CommitteeApproval is a
// ratio expressed as (numerator, denominator) to avoid floating point on the
// weight type itself (spec.md I3's "approval_ratio × total").
func (w Uint256Weight) Mul(numerator, denominator uint64) Weight {
	if denominator == 0 {
		panic("weight: Mul by zero denominator")
	}
	product := new(uint256.Int).Mul(w.v, uint256.NewInt(numerator))
	return Uint256Weight{v: product.Div(product, uint256.NewInt(denominator))}
}

func (w Uint256Weight) GE(other Weight) bool {
	o, ok := other.(Uint256Weight)
	if !ok {
		panic("weight: GE across mismatched Weight implementations")
	}
	return w.v.Cmp(o.v) >= 0
}

func (w Uint256Weight) IsZero() bool { return w.v.IsZero() }

func (w Uint256Weight) String() string { return w.v.Dec() }

// ApprovalRatio expresses CommitteeApproval (a float64 in config.Config) as
// an exact (numerator, denominator) pair over a fixed-precision denominator,
// so weight comparisons never touch floating point.
func ApprovalRatio(approval float64) (numerator, denominator uint64) {
	const precision = 1_000_000
	if approval < 0 {
		approval = 0
	}
	return uint64(approval * precision), precision
}

// QuorumReached reports sum >= approval * total, per spec.md I3/§4.2.
func QuorumReached(sum, total Weight, approval float64) bool {
	num, den := ApprovalRatio(approval)
	threshold := total.Mul(num, den)
	return sum.GE(threshold)
}
