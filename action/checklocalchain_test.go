package action

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"go.uber.org/mock/gomock"

	"github.com/finalitychain/fastfinality/chainref"
	"github.com/finalitychain/fastfinality/collaborator"
	"github.com/finalitychain/fastfinality/config"
	"github.com/finalitychain/fastfinality/fsm"
	"github.com/finalitychain/fastfinality/mocks"
)

func TestCheckLocalChainEqualHeightNotRegistered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	proposer := testKeyAction(t, 1)

	remote := mocks.NewMockRemoteNodeStateRetriever(ctrl)
	remote.EXPECT().RemoteNodeStates(gomock.Any()).Return([]collaborator.RemoteNodeState{
		{Height: 5, BlockHash: chainref.Hash256{1}},
	}, nil)

	view := mocks.NewMockViewFetcher(ctrl)
	view.EXPECT().GetBanPeriod(gomock.Any(), proposer).Return(time.Duration(0), context.DeadlineExceeded)

	env := &Env{
		Config:      config.Default(),
		Logger:      log.New("test", "action"),
		RemoteState: remote,
		ViewFetcher: view,
	}
	env.Identity.BootKey = mustKeyAction(t, 1)
	env.SetLocalHeight(5)

	a := &CheckLocalChain{Env: env}
	got := a.Run(context.Background())
	if got != fsm.NotRegisteredInBroadcastSystem {
		t.Fatalf("expected NotRegisteredInBroadcastSystem, got %v", got)
	}
}

func TestCheckLocalChainEqualHeightBanned(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	remote := mocks.NewMockRemoteNodeStateRetriever(ctrl)
	remote.EXPECT().RemoteNodeStates(gomock.Any()).Return([]collaborator.RemoteNodeState{
		{Height: 5, BlockHash: chainref.Hash256{1}},
	}, nil)

	view := mocks.NewMockViewFetcher(ctrl)
	view.EXPECT().GetBanPeriod(gomock.Any(), gomock.Any()).Return(time.Minute, nil)

	env := &Env{
		Config:      config.Default(),
		Logger:      log.New("test", "action"),
		RemoteState: remote,
		ViewFetcher: view,
	}
	env.Identity.BootKey = mustKeyAction(t, 1)
	env.SetLocalHeight(5)

	a := &CheckLocalChain{Env: env}
	got := a.Run(context.Background())
	if got != fsm.DbrbProcessBanned {
		t.Fatalf("expected DbrbProcessBanned, got %v", got)
	}
}

func TestCheckLocalChainEqualHeightApprovalRatingGate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	localHash := chainref.Hash256{7}
	remote := mocks.NewMockRemoteNodeStateRetriever(ctrl)
	remote.EXPECT().RemoteNodeStates(gomock.Any()).Return([]collaborator.RemoteNodeState{
		{Height: 5, BlockHash: chainref.Hash256{9}}, // hash mismatch -> alpha=0
	}, nil)

	view := mocks.NewMockViewFetcher(ctrl)
	view.EXPECT().GetBanPeriod(gomock.Any(), gomock.Any()).Return(time.Duration(0), nil)

	importance := mocks.NewMockImportanceGetter(ctrl)
	importance.EXPECT().Importance(gomock.Any(), gomock.Any()).Return(uint64(0), nil).AnyTimes()

	env := &Env{
		Config:      config.Default(),
		Logger:      log.New("test", "action"),
		RemoteState: remote,
		ViewFetcher: view,
		Importance:  importance,
	}
	env.Identity.BootKey = mustKeyAction(t, 1)
	env.SetLocalHeight(5)
	env.SetLastCommittedHash(localHash)

	a := &CheckLocalChain{Env: env}
	got := a.Run(context.Background())
	if got != fsm.NetworkHeightDetectionFailure {
		t.Fatalf("expected NetworkHeightDetectionFailure on a below-threshold approval rating, got %v", got)
	}
}
