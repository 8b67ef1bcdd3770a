package action

import (
	"github.com/finalitychain/fastfinality/bftcrypto"
	"github.com/finalitychain/fastfinality/collaborator"
	"github.com/finalitychain/fastfinality/committee"
	"github.com/finalitychain/fastfinality/config"
	"github.com/finalitychain/fastfinality/weight"
)

// ValidateBlockCosignatures implements the §4.10 predicate, shared by
// DownloadBlocks and the Push_Block/Push_Confirmed_Block message handlers:
//
//  1. block.signer == committee.block_proposer, else reject.
//  2. every cosignature's signer is a committee cosigner and verifies.
//  3. actual_weight (proposer + valid cosigners) >= CommitteeApproval *
//     total_weight (proposer + all cosigners).
//  4. number of cosignatures <= |cosigners| + 1 (padding guard).
func ValidateBlockCosignatures(
	header collaborator.DecodedBlockHeader,
	cm committee.Committee,
	verify committee.VerifyBlockHeaderCosignatureFunc,
	mgr committee.Manager,
	cfg config.Config,
) bool {
	if header.Proposer.ID() != cm.BlockProposer.ID() {
		return false
	}
	if len(header.Cosignatures) > cm.CosignerCount()+1 {
		return false
	}

	actual := mgr.Weight(cm.BlockProposer, cfg)
	total := mgr.Weight(cm.BlockProposer, cfg)
	seen := make(map[bftcrypto.KeyID]struct{}, len(header.Cosignatures))

	for _, c := range header.Cosignatures {
		if !cm.IsCosigner(c.Signer) {
			return false
		}
		if _, dup := seen[c.Signer.ID()]; dup {
			continue
		}
		seen[c.Signer.ID()] = struct{}{}
		if verify != nil && !verify(header.BlockHash, c.Signer, c.Sig) {
			return false
		}
		actual = actual.Add(mgr.Weight(c.Signer, cfg))
	}

	for _, idAny := range cm.Cosigners.ToSlice() {
		id := idAny.(bftcrypto.KeyID)
		if pk, ok := cm.CosignerByID(id); ok {
			total = total.Add(mgr.Weight(pk, cfg))
		}
	}

	num, den := weight.ApprovalRatio(cfg.CommitteeApproval)
	return actual.GE(total.Mul(num, den))
}
