package action

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"go.uber.org/mock/gomock"

	"github.com/finalitychain/fastfinality/bftcrypto"
	"github.com/finalitychain/fastfinality/chainref"
	"github.com/finalitychain/fastfinality/collaborator"
	"github.com/finalitychain/fastfinality/committee"
	"github.com/finalitychain/fastfinality/config"
	"github.com/finalitychain/fastfinality/fsm"
	"github.com/finalitychain/fastfinality/mocks"
	"github.com/finalitychain/fastfinality/perround"
	"github.com/finalitychain/fastfinality/roundclock"
)

func TestCommitBlockFeedsProposedBodyToRangeConsumer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	proposer := mustKeyAction(t, 1)
	mgr := committee.NewStaticRoundRobin([]bftcrypto.PublicKey{proposer.PublicKey()})
	cfg := config.Default()
	cm := mgr.Committee()

	round := roundclock.FastFinalityRound{Round: 0, RoundStart: time.Now(), RoundTimeMs: 100}
	cur := perround.New(chainref.ID{Height: 1, Round: 0}, round, cm, mgr, cfg)

	blockHash := chainref.Hash256{4}
	cur.SetProposedBlock(blockHash, []byte("the-real-block-body"))

	consumer := mocks.NewMockBlockRangeConsumer(ctrl)
	var gotBlocks [][]byte
	consumer.EXPECT().ConsumeBlockRange(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, blocks [][]byte, onComplete func(collaborator.CompletionResult)) error {
			gotBlocks = blocks
			onComplete(collaborator.CompletionResult{Status: collaborator.CompletionSucceeded})
			return nil
		})

	codec := mocks.NewMockBlockCodec(ctrl)
	codec.EXPECT().DecodeHeader([]byte("the-real-block-body")).Return(collaborator.DecodedBlockHeader{
		BlockHash: blockHash,
	}, nil)

	env := &Env{
		Config:        cfg,
		Logger:        log.New("test", "action"),
		RangeConsumer: consumer,
		Codec:         codec,
		Current:       cur,
	}

	a := &CommitBlock{Env: env}
	got := a.Run(context.Background())
	if got != fsm.CommitBlockSucceeded {
		t.Fatalf("expected CommitBlockSucceeded, got %v", got)
	}
	if len(gotBlocks) != 1 || string(gotBlocks[0]) != "the-real-block-body" {
		t.Fatalf("expected the proposed block's body to reach ConsumeBlockRange, got %v", gotBlocks)
	}
	if env.LastCommittedHash() != blockHash {
		t.Fatal("expected the committed block's hash to be recorded")
	}
}

func TestCommitBlockFailsWithNoProposedBlock(t *testing.T) {
	proposer := mustKeyAction(t, 1)
	mgr := committee.NewStaticRoundRobin([]bftcrypto.PublicKey{proposer.PublicKey()})
	cfg := config.Default()
	cm := mgr.Committee()

	round := roundclock.FastFinalityRound{Round: 0, RoundStart: time.Now(), RoundTimeMs: 100}
	cur := perround.New(chainref.ID{Height: 1, Round: 0}, round, cm, mgr, cfg)

	env := &Env{
		Config:  cfg,
		Logger:  log.New("test", "action"),
		Current: cur,
	}

	a := &CommitBlock{Env: env}
	got := a.Run(context.Background())
	if got != fsm.CommitBlockFailed {
		t.Fatalf("expected CommitBlockFailed when no block was proposed, got %v", got)
	}
}
