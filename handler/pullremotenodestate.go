package handler

import (
	"bytes"

	"github.com/finalitychain/fastfinality/bftcrypto"
	"github.com/finalitychain/fastfinality/wire"
)

// PullRemoteNodeState implements Pull_Remote_Node_State (spec.md §4.12): it
// responds with (height, block_hash, node_work_state, [boot_key,
// harvester_keys…]). The requested height is clamped down to the local
// height — this node never claims state it hasn't reached yet — so the
// response height is whichever of the two is smaller. The block hash is
// always the last committed block's hash, also when the response height is
// below the local height; no hash is looked up for an earlier height.
func (h *Handler) PullRemoteNodeState(raw []byte) ([]byte, error) {
	req, err := wire.DecodePullRemoteNodeStateRequest(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	local := h.LocalHeight()
	respHeight := req.Height
	if local < respHeight {
		respHeight = local
	}

	keys := make([]bftcrypto.KeyID, 0, 1+len(h.HarvesterKeys))
	keys = append(keys, h.NodeKey.ID())
	for _, k := range h.HarvesterKeys {
		keys = append(keys, k.ID())
	}

	resp := wire.PullRemoteNodeStateResponse{
		Height:        respHeight,
		BlockHash:     h.LastCommittedHash(),
		NodeWorkState: h.NodeWorkState(),
		HarvesterKeys: keys,
	}

	var buf bytes.Buffer
	if err := resp.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
