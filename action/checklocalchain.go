package action

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/finalitychain/fastfinality/bftcrypto"
	"github.com/finalitychain/fastfinality/chainref"
	"github.com/finalitychain/fastfinality/collaborator"
	"github.com/finalitychain/fastfinality/config"
	"github.com/finalitychain/fastfinality/fsm"
)

// CheckLocalChain implements spec.md §4.4: poll peers for their chain
// position, classify the network against the local height, and (when
// equal) gate progress on an importance-weighted approval rating.
type CheckLocalChain struct {
	Env *Env
}

// Run executes CheckLocalChain's on_entry action and returns the event the
// §4.3 LocalChainCheck state should apply next.
func (a *CheckLocalChain) Run(ctx context.Context) fsm.Event {
	env := a.Env
	states, err := env.RemoteState.RemoteNodeStates(ctx)
	if err != nil || len(states) == 0 {
		env.Logger.Debug("checklocalchain: no remote responses, retrying", "err", err)
		sleep(ctx, env.Config.CommitteeChainHeightRequestInterval)
		return fsm.NetworkHeightDetectionFailure
	}

	local := env.LocalHeight()

	// Descending by (height, block_hash) per spec.md §4.4.
	sort.Slice(states, func(i, j int) bool {
		if states[i].Height != states[j].Height {
			return states[i].Height > states[j].Height
		}
		return states[i].BlockHash.Hex() > states[j].BlockHash.Hex()
	})
	networkHeight := states[0].Height

	switch {
	case networkHeight < local:
		env.Logger.Warn("checklocalchain: network behind local chain", "network", networkHeight, "local", local)
		sleep(ctx, time.Duration(config.CommitteePhaseCount)*env.Config.MinCommitteePhaseTime)
		return fsm.NetworkHeightLessThanLocal

	case networkHeight > local:
		env.SyncData = a.selectSyncGroup(ctx, states, networkHeight, local)
		return fsm.NetworkHeightGreaterThanLocal

	default:
		return a.handleEqualHeight(ctx, states)
	}
}

// selectSyncGroup groups remote states by their block hash at
// networkHeight, sums importance(key) across responding node+harvester
// keys per group, and picks the group with the highest total importance
// (spec.md §4.4 "deterministic majority-importance selection").
func (a *CheckLocalChain) selectSyncGroup(ctx context.Context, states []collaborator.RemoteNodeState, networkHeight, localHeight chainref.Height) ChainSyncData {
	env := a.Env
	groups := make(map[chainref.Hash256][]collaborator.RemoteNodeState)
	for _, s := range states {
		if s.Height != networkHeight {
			continue
		}
		groups[s.BlockHash] = append(groups[s.BlockHash], s)
	}

	var bestHash chainref.Hash256
	var bestWeight float64 = -1
	for hash, members := range groups {
		total := 0.0
		for _, m := range members {
			total += a.importanceOf(ctx, m)
		}
		if total > bestWeight {
			bestWeight = total
			bestHash = hash
		}
	}

	type ranked struct {
		key        bftcrypto.PublicKey
		importance float64
	}
	var keys []ranked
	for _, s := range groups[bestHash] {
		keys = append(keys, ranked{key: s.NodeKey, importance: a.importanceOf(ctx, s)})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].importance > keys[j].importance })

	out := ChainSyncData{NetworkHeight: networkHeight, LocalHeight: localHeight}
	for _, k := range keys {
		out.NodeIdentityKeys = append(out.NodeIdentityKeys, k.key)
	}
	return out
}

// importanceOf sums the on-chain importance of a remote state's node key
// plus its harvester keys (spec.md §4.4 "sum importance(key) across
// responding node keys and their harvester keys").
func (a *CheckLocalChain) importanceOf(ctx context.Context, s collaborator.RemoteNodeState) float64 {
	total := uint64(0)
	if v, err := a.Env.Importance.Importance(ctx, s.NodeKey); err == nil {
		total += v
	}
	for _, hk := range s.HarvesterKeys {
		if v, err := a.Env.Importance.Importance(ctx, hk); err == nil {
			total += v
		}
	}
	return float64(total)
}

// handleEqualHeight implements the network_height == local_height branch:
// membership check, then the approval-rating gate (spec.md §4.4).
func (a *CheckLocalChain) handleEqualHeight(ctx context.Context, states []collaborator.RemoteNodeState) fsm.Event {
	env := a.Env

	// "If the local broadcast-system membership check passes -> emit
	// NetworkHeightEqualToLocal. If membership check fails -> attempt to
	// register, then emit NotRegisteredInBroadcastSystem or
	// DbrbProcessBanned" (spec.md §4.4), mirroring SelectBlockProducer's
	// ViewFetcher.GetBanPeriod gate.
	banned, err := env.ViewFetcher.GetBanPeriod(ctx, env.Identity.BootKey.PublicKey())
	if err != nil {
		env.Logger.Warn("checklocalchain: membership check failed, registering", "err", err)
		return fsm.NotRegisteredInBroadcastSystem
	}
	if banned > 0 {
		return fsm.DbrbProcessBanned
	}

	local := env.LastCommittedHash()

	approval := a.approvalRating(ctx, states, local)
	if approval < env.Config.CommitteeEndSyncApproval {
		env.Logger.Debug("checklocalchain: approval rating below threshold", "approval", approval)
		return fsm.NetworkHeightDetectionFailure
	}
	return fsm.NetworkHeightEqualToLocal
}

// approvalRating implements original_source/extensions/fastfinality's
// utils/WeightedVotingUtils formula: for each remote state, alpha=1 if its
// hash matches local and it's Running, CommitteeNotRunningContribution if
// merely hash-matches, else 0; weighted by
// log10(importance + CommitteeBaseTotalImportance); returns
// Σ(alpha·w)/Σ(w).
func (a *CheckLocalChain) approvalRating(ctx context.Context, states []collaborator.RemoteNodeState, local chainref.Hash256) float64 {
	env := a.Env
	var num, den float64
	for _, s := range states {
		importance := a.importanceOf(ctx, s)
		w := math.Log10(importance + env.Config.CommitteeBaseTotalImportance)

		var alpha float64
		switch {
		case s.BlockHash == local && s.NodeWorkState == chainref.WorkStateRunning:
			alpha = 1
		case s.BlockHash == local:
			alpha = env.Config.CommitteeNotRunningContribution
		default:
			alpha = 0
		}

		num += alpha * w
		den += w
	}
	if den == 0 {
		return 0
	}
	return num / den
}
