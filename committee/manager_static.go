package committee

import (
	"fmt"

	"github.com/finalitychain/fastfinality/bftcrypto"
	"github.com/finalitychain/fastfinality/chainref"
	"github.com/finalitychain/fastfinality/config"
	"github.com/finalitychain/fastfinality/weight"
)

// StaticRoundRobin is a deterministic, round-robin Manager over a fixed
// member list with equal weights. It exists for tests and for simulations
// that don't need real stake-weighted selection — production nodes provide
// their own Manager backed by on-chain state, per spec.md §6 item 6.
type StaticRoundRobin struct {
	members []bftcrypto.PublicKey
	weights map[bftcrypto.KeyID]weight.Weight
	round   chainref.Round
}

// NewStaticRoundRobin builds a manager cycling the proposer through members
// in order, each with equal weight 1.
func NewStaticRoundRobin(members []bftcrypto.PublicKey) *StaticRoundRobin {
	if len(members) == 0 {
		panic("committee: StaticRoundRobin requires at least one member")
	}
	weights := make(map[bftcrypto.KeyID]weight.Weight, len(members))
	for _, m := range members {
		weights[m.ID()] = weight.FromUint64(1)
	}
	return &StaticRoundRobin{members: members, weights: weights}
}

func (m *StaticRoundRobin) Reset() { m.round = 0 }

func (m *StaticRoundRobin) SelectCommittee(_ config.Config) error { return nil }

func (m *StaticRoundRobin) Advance() error {
	m.round++
	return nil
}

func (m *StaticRoundRobin) Committee() Committee {
	idx := int(m.round) % len(m.members)
	proposer := m.members[idx]
	cosigners := make([]bftcrypto.PublicKey, 0, len(m.members)-1)
	for i, mem := range m.members {
		if i != idx {
			cosigners = append(cosigners, mem)
		}
	}
	return NewCommittee(proposer, cosigners, m.round)
}

func (m *StaticRoundRobin) Weight(key bftcrypto.PublicKey, _ config.Config) weight.Weight {
	w, ok := m.weights[key.ID()]
	if !ok {
		return weight.Zero()
	}
	return w
}

// SeekRound fast-forwards or validates the manager's round, per spec.md
// §4.6 "Fast-forward the committee selector to the current round if
// lagging; reject if it is ahead."
func (m *StaticRoundRobin) SeekRound(target chainref.Round) error {
	if target < m.round {
		return fmt.Errorf("committee: manager at round %d is ahead of target round %d", m.round, target)
	}
	for m.round < target {
		if err := m.Advance(); err != nil {
			return err
		}
	}
	return nil
}
