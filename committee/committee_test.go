package committee

import (
	"testing"

	"github.com/finalitychain/fastfinality/bftcrypto"
	"github.com/finalitychain/fastfinality/config"
)

func testKey(t *testing.T, seed byte) bftcrypto.PublicKey {
	t.Helper()
	ikm := make([]byte, 32)
	for i := range ikm {
		ikm[i] = seed
	}
	sk, err := bftcrypto.GenerateSecretKey(ikm)
	if err != nil {
		t.Fatalf("GenerateSecretKey: %v", err)
	}
	return sk.PublicKey()
}

func TestCommitteeContainsAndIsCosigner(t *testing.T) {
	proposer := testKey(t, 1)
	cosigner := testKey(t, 2)
	outsider := testKey(t, 3)
	cm := NewCommittee(proposer, []bftcrypto.PublicKey{cosigner}, 0)

	if !cm.Contains(proposer) {
		t.Fatal("proposer should satisfy Contains")
	}
	if cm.IsCosigner(proposer) {
		t.Fatal("proposer should not satisfy IsCosigner")
	}
	if !cm.Contains(cosigner) || !cm.IsCosigner(cosigner) {
		t.Fatal("cosigner should satisfy both Contains and IsCosigner")
	}
	if cm.Contains(outsider) {
		t.Fatal("outsider should not satisfy Contains")
	}
}

func TestCosignerByIDAndCount(t *testing.T) {
	proposer := testKey(t, 1)
	c1 := testKey(t, 2)
	c2 := testKey(t, 3)
	cm := NewCommittee(proposer, []bftcrypto.PublicKey{c1, c2}, 0)

	if cm.CosignerCount() != 2 {
		t.Fatalf("expected 2 cosigners, got %d", cm.CosignerCount())
	}
	got, ok := cm.CosignerByID(c1.ID())
	if !ok || got.ID() != c1.ID() {
		t.Fatal("CosignerByID failed to resolve a known cosigner")
	}
	if _, ok := cm.CosignerByID(proposer.ID()); ok {
		t.Fatal("CosignerByID should not resolve the proposer's own ID")
	}
}

func TestStaticRoundRobinRotatesProposer(t *testing.T) {
	members := []bftcrypto.PublicKey{testKey(t, 1), testKey(t, 2), testKey(t, 3)}
	mgr := NewStaticRoundRobin(members)

	first := mgr.Committee().BlockProposer.ID()
	if err := mgr.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	second := mgr.Committee().BlockProposer.ID()
	if first == second {
		t.Fatal("proposer should rotate after Advance")
	}
	if mgr.Committee().CosignerCount() != len(members)-1 {
		t.Fatalf("expected %d cosigners, got %d", len(members)-1, mgr.Committee().CosignerCount())
	}
}

func TestStaticRoundRobinSeekRound(t *testing.T) {
	members := []bftcrypto.PublicKey{testKey(t, 1), testKey(t, 2)}
	mgr := NewStaticRoundRobin(members)

	if err := mgr.SeekRound(3); err != nil {
		t.Fatalf("SeekRound forward: %v", err)
	}
	if mgr.Committee().Round != 3 {
		t.Fatalf("expected round 3 after seeking, got %d", mgr.Committee().Round)
	}
	if err := mgr.SeekRound(1); err == nil {
		t.Fatal("SeekRound should reject a target behind the manager's current round")
	}
}

func TestStaticRoundRobinWeight(t *testing.T) {
	members := []bftcrypto.PublicKey{testKey(t, 1), testKey(t, 2)}
	outsider := testKey(t, 9)
	mgr := NewStaticRoundRobin(members)
	cfg := config.Default()

	if mgr.Weight(members[0], cfg).IsZero() {
		t.Fatal("a known member should have non-zero weight")
	}
	if !mgr.Weight(outsider, cfg).IsZero() {
		t.Fatal("an unknown key should have zero weight")
	}
}
