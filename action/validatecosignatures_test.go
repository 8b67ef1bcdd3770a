package action

import (
	"testing"
	"time"

	"github.com/finalitychain/fastfinality/bftcrypto"
	"github.com/finalitychain/fastfinality/chainref"
	"github.com/finalitychain/fastfinality/collaborator"
	"github.com/finalitychain/fastfinality/committee"
	"github.com/finalitychain/fastfinality/config"
)

func TestValidateBlockCosignaturesAccepts(t *testing.T) {
	proposer := mustKeyAction(t, 1)
	c1 := mustKeyAction(t, 2)
	c2 := mustKeyAction(t, 3)
	cm := committee.NewCommittee(proposer.PublicKey(), []bftcrypto.PublicKey{c1.PublicKey(), c2.PublicKey()}, 0)
	mgr := committee.NewStaticRoundRobin([]bftcrypto.PublicKey{proposer.PublicKey(), c1.PublicKey(), c2.PublicKey()})
	cfg := config.Default()
	cfg.CommitteeApproval = 0.67

	blockHash := chainref.Hash256{1}
	verify := func(chainref.Hash256, bftcrypto.PublicKey, bftcrypto.Signature) bool { return true }

	header := collaborator.DecodedBlockHeader{
		BlockHash:   blockHash,
		Timestamp:   time.Now(),
		Proposer:    proposer.PublicKey(),
		ProposerSig: proposer.Sign(blockHash[:]),
		Cosignatures: []collaborator.DecodedBlockCosignature{
			{Signer: c1.PublicKey(), Sig: c1.Sign(blockHash[:])},
			{Signer: c2.PublicKey(), Sig: c2.Sign(blockHash[:])},
		},
	}

	if !ValidateBlockCosignatures(header, cm, verify, mgr, cfg) {
		t.Fatal("expected full-committee cosignatures to validate")
	}
}

func TestValidateBlockCosignaturesRejectsWrongProposer(t *testing.T) {
	proposer := mustKeyAction(t, 1)
	impostor := mustKeyAction(t, 9)
	c1 := mustKeyAction(t, 2)
	cm := committee.NewCommittee(proposer.PublicKey(), []bftcrypto.PublicKey{c1.PublicKey()}, 0)
	mgr := committee.NewStaticRoundRobin([]bftcrypto.PublicKey{proposer.PublicKey(), c1.PublicKey()})
	cfg := config.Default()

	blockHash := chainref.Hash256{2}
	verify := func(chainref.Hash256, bftcrypto.PublicKey, bftcrypto.Signature) bool { return true }
	header := collaborator.DecodedBlockHeader{
		BlockHash:   blockHash,
		Proposer:    impostor.PublicKey(),
		ProposerSig: impostor.Sign(blockHash[:]),
	}

	if ValidateBlockCosignatures(header, cm, verify, mgr, cfg) {
		t.Fatal("expected rejection when block.Proposer is not the committee's block_proposer")
	}
}

func TestValidateBlockCosignaturesRejectsNonCosigner(t *testing.T) {
	proposer := mustKeyAction(t, 1)
	c1 := mustKeyAction(t, 2)
	outsider := mustKeyAction(t, 9)
	cm := committee.NewCommittee(proposer.PublicKey(), []bftcrypto.PublicKey{c1.PublicKey()}, 0)
	mgr := committee.NewStaticRoundRobin([]bftcrypto.PublicKey{proposer.PublicKey(), c1.PublicKey()})
	cfg := config.Default()

	blockHash := chainref.Hash256{3}
	verify := func(chainref.Hash256, bftcrypto.PublicKey, bftcrypto.Signature) bool { return true }
	header := collaborator.DecodedBlockHeader{
		BlockHash:   blockHash,
		Proposer:    proposer.PublicKey(),
		ProposerSig: proposer.Sign(blockHash[:]),
		Cosignatures: []collaborator.DecodedBlockCosignature{
			{Signer: outsider.PublicKey(), Sig: outsider.Sign(blockHash[:])},
		},
	}

	if ValidateBlockCosignatures(header, cm, verify, mgr, cfg) {
		t.Fatal("expected rejection for a cosignature from a non-cosigner")
	}
}

func TestValidateBlockCosignaturesRejectsBelowThreshold(t *testing.T) {
	proposer := mustKeyAction(t, 1)
	c1 := mustKeyAction(t, 2)
	c2 := mustKeyAction(t, 3)
	c3 := mustKeyAction(t, 4)
	cm := committee.NewCommittee(proposer.PublicKey(), []bftcrypto.PublicKey{c1.PublicKey(), c2.PublicKey(), c3.PublicKey()}, 0)
	mgr := committee.NewStaticRoundRobin([]bftcrypto.PublicKey{proposer.PublicKey(), c1.PublicKey(), c2.PublicKey(), c3.PublicKey()})
	cfg := config.Default()
	cfg.CommitteeApproval = 0.9

	blockHash := chainref.Hash256{4}
	verify := func(chainref.Hash256, bftcrypto.PublicKey, bftcrypto.Signature) bool { return true }
	header := collaborator.DecodedBlockHeader{
		BlockHash:   blockHash,
		Proposer:    proposer.PublicKey(),
		ProposerSig: proposer.Sign(blockHash[:]),
		// Only one of three cosigners, well under a 0.9 approval ratio.
		Cosignatures: []collaborator.DecodedBlockCosignature{
			{Signer: c1.PublicKey(), Sig: c1.Sign(blockHash[:])},
		},
	}

	if ValidateBlockCosignatures(header, cm, verify, mgr, cfg) {
		t.Fatal("expected rejection when signed weight falls below CommitteeApproval")
	}
}

func mustKeyAction(t *testing.T, seed byte) bftcrypto.SecretKey {
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
