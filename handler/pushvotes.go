package handler

import (
	"bytes"

	"github.com/finalitychain/fastfinality/bftcrypto"
	"github.com/finalitychain/fastfinality/committee"
	"github.com/finalitychain/fastfinality/vote"
	"github.com/finalitychain/fastfinality/wire"
)

// PushPrevoteMessages implements Push_Prevote (spec.md §4.12): decode the
// batch and insert every message that survives the per-message checks into
// the round's Vote Store.
func (h *Handler) PushPrevoteMessages(raw []byte) error {
	return h.pushVotes(raw, vote.Prevote)
}

// PushPrecommitMessages implements Push_Precommit (spec.md §4.12).
func (h *Handler) PushPrecommitMessages(raw []byte) error {
	return h.pushVotes(raw, vote.Precommit)
}

// pushVotes is the shared body of PushPrevoteMessages/PushPrecommitMessages:
// reject a message if its signer is not a committee member, its block_hash
// doesn't match the round's proposed block, or either its message-signature
// or cosignature fails to verify; otherwise hand it to the Vote Store, which
// itself re-checks membership and the cosignature before counting it toward
// quorum (spec.md §4.12, §4.2).
func (h *Handler) pushVotes(raw []byte, kind vote.Kind) error {
	cur := h.Current()
	if cur == nil {
		return nil
	}

	msgs, err := wire.DecodeVoteBatch(bytes.NewReader(raw))
	if err != nil {
		return err
	}

	cm := h.Committee()
	snap := cur.Snapshot()
	store := cur.Prevotes
	if kind == vote.Precommit {
		store = cur.Precommits
	}

	for _, m := range msgs {
		if vote.Kind(m.Type) != kind {
			continue
		}
		if !snap.HasProposedBlock || m.BlockHash != snap.ProposedBlockHash {
			continue
		}
		signer, ok := resolveSigner(cm, m.Cosignature.Signer)
		if !ok {
			continue
		}
		if !verifyCommitteeMessage(m, signer) {
			continue
		}
		sig, err := cosignatureOf(m)
		if err != nil {
			continue
		}
		if kind == vote.Prevote {
			store.AddPrevote(signer, sig, m.BlockHash, cm, h.Config, h.Verify)
		} else {
			store.AddPrecommit(signer, sig, m.BlockHash, cm, h.Config, h.Verify)
		}
	}
	return nil
}

// resolveSigner maps a message's compact KeyID back to the PublicKey the
// committee knows it by, since wire.Cosignature carries only the 48-byte ID.
func resolveSigner(cm committee.Committee, id bftcrypto.KeyID) (bftcrypto.PublicKey, bool) {
	if id == cm.BlockProposer.ID() {
		return cm.BlockProposer, true
	}
	return cm.CosignerByID(id)
}
