package vote

import (
	"testing"

	"github.com/finalitychain/fastfinality/bftcrypto"
	"github.com/finalitychain/fastfinality/chainref"
	"github.com/finalitychain/fastfinality/committee"
	"github.com/finalitychain/fastfinality/config"
	"github.com/finalitychain/fastfinality/weight"
)

func testKey(t *testing.T, seed byte) bftcrypto.SecretKey {
	t.Helper()
	ikm := make([]byte, 32)
	for i := range ikm {
		ikm[i] = seed
	}
	sk, err := bftcrypto.GenerateSecretKey(ikm)
	if err != nil {
		t.Fatalf("GenerateSecretKey: %v", err)
	}
	return sk
}

func testCommittee(t *testing.T, n int) ([]bftcrypto.SecretKey, committee.Committee) {
	t.Helper()
	keys := make([]bftcrypto.SecretKey, n)
	for i := range keys {
		keys[i] = testKey(t, byte(i+1))
	}
	proposer := keys[0].PublicKey()
	var cosigners []bftcrypto.PublicKey
	for _, k := range keys[1:] {
		cosigners = append(cosigners, k.PublicKey())
	}
	return keys, committee.NewCommittee(proposer, cosigners, 0)
}

func equalWeights(cm committee.Committee) func(bftcrypto.PublicKey) weight.Weight {
	return func(bftcrypto.PublicKey) weight.Weight { return weight.FromUint64(1) }
}

func TestAddPrevoteQuorum(t *testing.T) {
	keys, cm := testCommittee(t, 4) // proposer + 3 cosigners
	cfg := config.Default()
	cfg.CommitteeApproval = 0.67

	var fired bool
	store := New(func() { fired = true }, func() {}, equalWeights(cm))

	blockHash := chainref.Hash256{1}
	verify := func(chainref.Hash256, bftcrypto.PublicKey, bftcrypto.Signature) bool { return true }

	// total weight 4, threshold = ceil-ish 0.67*4 = 2 (integer division floors
	// to 2 via the fixed-point ratio), so 2 votes already reach quorum via GE.
	res1 := store.AddPrevote(keys[0].PublicKey(), keys[0].Sign(blockHash[:]), blockHash, cm, cfg, verify)
	if res1 != Added {
		t.Fatalf("first vote: got %v, want Added", res1)
	}
	if fired {
		t.Fatal("quorum fired too early")
	}

	res2 := store.AddPrevote(keys[1].PublicKey(), keys[1].Sign(blockHash[:]), blockHash, cm, cfg, verify)
	if res2 != QuorumReached {
		t.Fatalf("second vote: got %v, want QuorumReached", res2)
	}
	if !fired {
		t.Fatal("onPrevoteQuorum callback was not invoked")
	}
	if !store.QuorumReachedFor(Prevote) {
		t.Fatal("QuorumReachedFor(Prevote) should report true")
	}
}

func TestAddVoteRejectsNonCommitteeSigner(t *testing.T) {
	keys, cm := testCommittee(t, 2)
	outsider := testKey(t, 99)
	cfg := config.Default()
	store := New(func() {}, func() {}, equalWeights(cm))

	blockHash := chainref.Hash256{2}
	verify := func(chainref.Hash256, bftcrypto.PublicKey, bftcrypto.Signature) bool { return true }
	res := store.AddPrevote(outsider.PublicKey(), outsider.Sign(blockHash[:]), blockHash, cm, cfg, verify)
	if res != Rejected {
		t.Fatalf("got %v, want Rejected", res)
	}
	_ = keys
}

func TestAddVoteRejectsFailedCosignatureVerify(t *testing.T) {
	keys, cm := testCommittee(t, 2)
	cfg := config.Default()
	store := New(func() {}, func() {}, equalWeights(cm))

	blockHash := chainref.Hash256{3}
	verify := func(chainref.Hash256, bftcrypto.PublicKey, bftcrypto.Signature) bool { return false }
	res := store.AddPrevote(keys[0].PublicKey(), keys[0].Sign(blockHash[:]), blockHash, cm, cfg, verify)
	if res != Rejected {
		t.Fatalf("got %v, want Rejected", res)
	}
}

func TestAddVoteDuplicate(t *testing.T) {
	keys, cm := testCommittee(t, 4)
	cfg := config.Default()
	store := New(func() {}, func() {}, equalWeights(cm))

	blockHash := chainref.Hash256{4}
	verify := func(chainref.Hash256, bftcrypto.PublicKey, bftcrypto.Signature) bool { return true }

	store.AddPrevote(keys[0].PublicKey(), keys[0].Sign(blockHash[:]), blockHash, cm, cfg, verify)
	res := store.AddPrevote(keys[0].PublicKey(), keys[0].Sign(blockHash[:]), blockHash, cm, cfg, verify)
	if res != Duplicate {
		t.Fatalf("got %v, want Duplicate", res)
	}
}

func TestPrecommitQuorumRequiresPrevoteQuorumFirst(t *testing.T) {
	keys, cm := testCommittee(t, 4)
	cfg := config.Default()
	var precommitFired bool
	store := New(func() {}, func() { precommitFired = true }, equalWeights(cm))

	blockHash := chainref.Hash256{5}
	verify := func(chainref.Hash256, bftcrypto.PublicKey, bftcrypto.Signature) bool { return true }

	// Precommits from every signer, but prevote quorum never reached (I4).
	for _, k := range keys {
		store.AddPrecommit(k.PublicKey(), k.Sign(blockHash[:]), blockHash, cm, cfg, verify)
	}
	if precommitFired {
		t.Fatal("precommit quorum fired without a prior prevote quorum (violates I4)")
	}

	store.AddPrevote(keys[0].PublicKey(), keys[0].Sign(blockHash[:]), blockHash, cm, cfg, verify)
	store.AddPrevote(keys[1].PublicKey(), keys[1].Sign(blockHash[:]), blockHash, cm, cfg, verify)
	if !store.QuorumReachedFor(Prevote) {
		t.Fatal("prevote quorum should now be reached")
	}
}

func TestStageAndPromoteSelfPrecommit(t *testing.T) {
	keys, cm := testCommittee(t, 4)
	cfg := config.Default()
	store := New(func() {}, func() {}, equalWeights(cm))

	blockHash := chainref.Hash256{6}
	verify := func(chainref.Hash256, bftcrypto.PublicKey, bftcrypto.Signature) bool { return true }

	store.AddPrevote(keys[0].PublicKey(), keys[0].Sign(blockHash[:]), blockHash, cm, cfg, verify)
	store.AddPrevote(keys[1].PublicKey(), keys[1].Sign(blockHash[:]), blockHash, cm, cfg, verify)

	sig := keys[0].Sign(blockHash[:])
	store.StageSelfPrecommit(keys[0].PublicKey(), sig)
	if store.HasVote(keys[0].PublicKey(), Precommit) {
		t.Fatal("a staged precommit should not count until promoted")
	}

	res := store.PromoteSelfPrecommit(keys[0].PublicKey(), blockHash, cm, cfg, verify)
	if res != Added {
		t.Fatalf("promote: got %v, want Added", res)
	}
	if !store.HasVote(keys[0].PublicKey(), Precommit) {
		t.Fatal("promoted precommit should now be counted")
	}
}

func TestVotersReturnsRecordedVotes(t *testing.T) {
	keys, cm := testCommittee(t, 2)
	cfg := config.Default()
	store := New(func() {}, func() {}, equalWeights(cm))
	blockHash := chainref.Hash256{7}
	verify := func(chainref.Hash256, bftcrypto.PublicKey, bftcrypto.Signature) bool { return true }

	store.AddPrevote(keys[0].PublicKey(), keys[0].Sign(blockHash[:]), blockHash, cm, cfg, verify)
	voters := store.Voters(Prevote)
	if len(voters) != 1 {
		t.Fatalf("expected 1 voter, got %d", len(voters))
	}
	if voters[0].Signer.ID() != keys[0].PublicKey().ID() {
		t.Fatal("unexpected voter recorded")
	}
}
