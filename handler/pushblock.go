package handler

// PushBlock implements Push_Block / Push_Proposed_Block (spec.md §4.12):
// reject if height != current_block_height (marking unexpected_block_height
// and returning); reject (silently, via I1) if a prior distinct proposal is
// already set; otherwise record the proposal and fire the block-received
// one-shot.
func (h *Handler) PushBlock(raw []byte) error {
	cur := h.Current()
	if cur == nil {
		return nil // no active round to deposit into; drop silently (idempotent, never blocks)
	}

	header, err := h.Codec.DecodeHeader(raw)
	if err != nil {
		return err
	}

	if header.Height != cur.ID().Height {
		cur.SetUnexpectedBlockHeight()
		return nil
	}

	if _, dup := h.seen.Get(header.BlockHash); dup {
		return nil
	}
	h.seen.Add(header.BlockHash, struct{}{})

	cur.SetProposedBlock(header.BlockHash, raw)
	if cur.Snapshot().ProposedBlockHash == header.BlockHash {
		cur.BlockReceived.Fire()
	}
	return nil
}

// PushConfirmedBlock implements Push_Confirmed_Block (spec.md §4.12,
// §6 wire table: "confirmed block includes trailing cosignatures"): the
// same height/proposal-multiple checks as PushBlock, additionally gated by
// §4.10 ValidateBlockCosignatures before firing the confirmed-block
// one-shot (a confirmed block is, by definition, already cosigned).
func (h *Handler) PushConfirmedBlock(raw []byte) error {
	cur := h.Current()
	if cur == nil {
		return nil
	}

	header, err := h.Codec.DecodeHeader(raw)
	if err != nil {
		return err
	}

	if header.Height != cur.ID().Height {
		cur.SetUnexpectedBlockHeight()
		return nil
	}

	if !validateBlockCosignatures(header, h.Committee(), h.Verify, h.Config, h.Manager) {
		return nil
	}

	if _, dup := h.seen.Get(header.BlockHash); dup {
		return nil
	}
	h.seen.Add(header.BlockHash, struct{}{})

	cur.SetProposedBlock(header.BlockHash, raw)
	if cur.Snapshot().ProposedBlockHash == header.BlockHash {
		cur.ConfirmedBlock.Fire()
	}
	return nil
}
