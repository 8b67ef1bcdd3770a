package action

import (
	"bytes"
	"context"
	"time"

	"github.com/finalitychain/fastfinality/collaborator"
	"github.com/finalitychain/fastfinality/fsm"
	"github.com/finalitychain/fastfinality/wire"
)

// GenerateBlock implements spec.md §4.7, the BlockGeneration state's entry
// action.
type GenerateBlock struct {
	Env *Env

	// Broadcast is invoked after CommitteeSilenceInterval to actually push
	// the wire.PushBlock packet (spec.md §4.7 "schedules broadcast after
	// CommitteeSilenceInterval"; "Design rationale: prevents races where
	// cosigners see a proposal before they have transitioned to the
	// waiting state").
	Broadcast func(ctx context.Context, header wire.Header, payload []byte)
}

// Run executes GenerateBlock's on_entry action.
func (a *GenerateBlock) Run(ctx context.Context) fsm.Event {
	env := a.Env
	cur := env.Current
	round := cur.Round()

	if !env.Config.EnableDbrbFastFinality {
		return fsm.BlockGenerationFailed
	}

	tip, err := env.LocalTip.LocalTip(ctx)
	if err != nil {
		env.Logger.Warn("generateblock: local tip lookup failed", "err", err)
		return fsm.BlockGenerationFailed
	}

	parentHeader := collaborator.BlockHeader{
		Height:    cur.ID().Height - 1,
		ParentRef: tip.EntityHash,
	}
	difficulty, err := env.Difficulty.CalcDifficulty(ctx, parentHeader)
	if err != nil {
		env.Logger.Warn("generateblock: difficulty compute failed", "err", err)
		return fsm.BlockGenerationFailed
	}

	header := collaborator.BlockHeader{
		Height:    cur.ID().Height,
		Round:     cur.ID().Round,
		ParentRef: tip.EntityHash,
		Timestamp: time.Now(),
		Raw:       difficulty.Bytes(),
	}

	roundTime := time.Duration(round.RoundTimeMs) * time.Millisecond
	stopAt := roundTime / 3
	stop := make(chan struct{})
	timer := time.AfterFunc(stopAt, func() { close(stop) })
	defer timer.Stop()

	block, ok, err := env.Generator.GenerateBlock(ctx, header, env.MaxTxsPerBlock, stop)
	if err != nil || !ok {
		if err != nil {
			env.Logger.Warn("generateblock: generation failed", "err", err)
		}
		return fsm.BlockGenerationFailed
	}

	sk, has := cur.BlockProposerKey()
	if !has {
		env.Logger.Error("generateblock: no proposer key staged for a round we were selected to produce")
		return fsm.BlockGenerationFailed
	}
	sig := sk.Sign(block)
	packet := wire.BlockPacket{ProposerSig: sig.Bytes(), Block: block}

	var buf bytes.Buffer
	if err := packet.Encode(&buf); err != nil {
		env.Logger.Error("generateblock: packet encode failed", "err", err)
		return fsm.BlockGenerationFailed
	}
	payload := buf.Bytes()
	wireHeader := wire.Header{Type: wire.PushBlock, Size: uint32(len(payload))}

	if a.Broadcast != nil {
		time.AfterFunc(env.Config.CommitteeSilenceInterval, func() {
			a.Broadcast(ctx, wireHeader, payload)
		})
	}

	return fsm.BlockGenerationSucceeded
}
