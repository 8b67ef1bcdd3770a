package weight

import "testing"

func TestUint256WeightAddMul(t *testing.T) {
	a := FromUint64(10)
	b := FromUint64(5)
	sum := a.Add(b)
	if sum.String() != "15" {
		t.Fatalf("Add: got %s, want 15", sum.String())
	}

	scaled := FromUint64(100).Mul(67, 100)
	if scaled.String() != "67" {
		t.Fatalf("Mul: got %s, want 67", scaled.String())
	}
}

func TestUint256WeightGE(t *testing.T) {
	a := FromUint64(10)
	b := FromUint64(10)
	c := FromUint64(11)
	if !a.GE(b) {
		t.Fatal("equal weights should satisfy GE")
	}
	if a.GE(c) {
		t.Fatal("10 should not be >= 11")
	}
}

func TestZeroIsZero(t *testing.T) {
	if !Zero().IsZero() {
		t.Fatal("Zero() should be zero")
	}
	if FromUint64(1).IsZero() {
		t.Fatal("non-zero weight reported as zero")
	}
}

func TestApprovalRatio(t *testing.T) {
	num, den := ApprovalRatio(0.67)
	if den != 1_000_000 {
		t.Fatalf("unexpected denominator %d", den)
	}
	if num != 670_000 {
		t.Fatalf("unexpected numerator %d", num)
	}

	negNum, _ := ApprovalRatio(-1)
	if negNum != 0 {
		t.Fatalf("negative approval should clamp to 0, got %d", negNum)
	}
}

func TestQuorumReached(t *testing.T) {
	total := FromUint64(100)
	if QuorumReached(FromUint64(66), total, 0.67) {
		t.Fatal("66/100 should fall short of 0.67 quorum")
	}
	if !QuorumReached(FromUint64(67), total, 0.67) {
		t.Fatal("67/100 should satisfy 0.67 quorum")
	}
}

func TestMulPanicsOnZeroDenominator(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on zero denominator")
		}
	}()
	FromUint64(1).Mul(1, 0)
}
