package action

import (
	"context"
	"errors"

	"github.com/finalitychain/fastfinality/chainref"
	"github.com/finalitychain/fastfinality/collaborator"
	"github.com/finalitychain/fastfinality/fsm"
)

var (
	errPeerMalformed       = errors.New("action: peer sent malformed or uncosigned block")
	errBlockCommitRejected = errors.New("action: range consumer aborted block commit")
)

// DownloadBlocks implements spec.md §4.5: bulk-sync the gap between the
// local chain and the network, replaying committee selection per block and
// validating cosignatures before handing each block to the external range
// consumer.
type DownloadBlocks struct {
	Env *Env
}

// Run executes DownloadBlocks' on_entry action.
func (a *DownloadBlocks) Run(ctx context.Context) fsm.Event {
	env := a.Env
	sync := env.SyncData

	target := sync.NetworkHeight
	if maxTarget := sync.LocalHeight + chainref.Height(env.Config.MaxBlocksPerSyncAttempt); target > maxTarget {
		target = maxTarget
	}

	peers := sync.NodeIdentityKeys
	if len(peers) == 0 {
		sleep(ctx, env.Config.CommitteeChainHeightRequestInterval)
		return fsm.DownloadBlocksFailed
	}

	cursor := sync.LocalHeight
	for cursor < target {
		advanced := false
		for _, peer := range peers {
			numBlocks := uint32(target - cursor)
			pullCtx, cancel := context.WithTimeout(ctx, env.Config.PullBlocksResponseTimeout)
			blocks, err := env.Fetcher.PullBlocks(pullCtx, peer, cursor, numBlocks, uint32(env.Config.MaxChainBytesPerSyncAttempt))
			cancel()
			if err != nil {
				env.Logger.Warn("downloadblocks: peer request failed", "peer", peer, "err", err)
				env.Sender.RemovePeer(peer)
				continue
			}

			newCursor, hold, err := a.applyBlocks(ctx, blocks)
			if err != nil {
				env.Logger.Warn("downloadblocks: block application failed", "peer", peer, "err", err)
				if errors.Is(err, errPeerMalformed) {
					env.Sender.RemovePeer(peer)
				}
				continue
			}
			cursor = newCursor
			advanced = true
			if hold {
				return fsm.Hold
			}
			break
		}
		if !advanced {
			sleep(ctx, env.Config.CommitteeChainHeightRequestInterval)
			return fsm.DownloadBlocksFailed
		}
	}

	env.SetLocalHeight(cursor)
	return fsm.DownloadBlocksSucceeded
}

// applyBlocks validates and commits each block in order (spec.md §4.5 step
// 2-3): reset + replay committee selection to the block's round, run
// ValidateBlockCosignatures, then hand to the range consumer.
func (a *DownloadBlocks) applyBlocks(ctx context.Context, blocks [][]byte) (chainref.Height, bool, error) {
	env := a.Env
	height := env.LocalHeight()
	var hold bool

	for _, raw := range blocks {
		header, err := env.Codec.DecodeHeader(raw)
		if err != nil {
			return height, false, err
		}

		env.CommitteeMgr.Reset()
		if err := env.CommitteeMgr.SelectCommittee(env.Config); err != nil {
			return height, false, err
		}
		for env.CommitteeMgr.Committee().Round < header.Round {
			if err := env.CommitteeMgr.Advance(); err != nil {
				return height, false, err
			}
			if err := env.CommitteeMgr.SelectCommittee(env.Config); err != nil {
				return height, false, err
			}
		}

		cm := env.CommitteeMgr.Committee()
		if !ValidateBlockCosignatures(header, cm, env.Verify, env.CommitteeMgr, env.Config) {
			return height, false, errPeerMalformed
		}

		if err := env.commitOne(ctx, raw); err != nil {
			return height, false, err
		}

		height++
		env.SetLastCommittedHash(header.BlockHash)
		if env.MaxChainHeight != 0 && height >= env.MaxChainHeight {
			hold = true
			break
		}
	}
	return height, hold, nil
}

// commitOne hands a single block to the range consumer under the FSM's
// commit mutex and awaits completion (spec.md §5 "One FSM-level mutex
// serializes block-commit calls").
func (e *Env) commitOne(ctx context.Context, raw []byte) error {
	var completionErr error
	done := make(chan struct{})
	e.CommitLock()
	err := e.RangeConsumer.ConsumeBlockRange(ctx, [][]byte{raw}, func(res collaborator.CompletionResult) {
		if res.Status == collaborator.CompletionAborted {
			completionErr = errBlockCommitRejected
		}
		close(done)
	})
	e.CommitUnlock()
	if err != nil {
		return err
	}
	<-done
	return completionErr
}
