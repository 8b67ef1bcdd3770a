// Package node supplements spec.md with the node-identity model
// original_source/extensions/fastfinality keeps separate from the core
// consensus types: a node's own boot key plus harvester keys (spec.md
// §4.4 "harvester_keys"), and the self-reported RemoteNodeState tuple the
// wire protocol carries.
package node

import (
	"github.com/finalitychain/fastfinality/bftcrypto"
	"github.com/finalitychain/fastfinality/chainref"
)

// Identity is this node's own key material: one boot (consensus) key plus
// zero or more harvester keys it also holds cosigning power for (spec.md
// §4.4 "SelectBlockProducer: match the selected BlockProposer against the
// node's unlocked keys").
type Identity struct {
	BootKey       bftcrypto.SecretKey
	HarvesterKeys []bftcrypto.SecretKey
}

// Keys returns every secret key this identity holds, boot key first.
func (id Identity) Keys() []bftcrypto.SecretKey {
	out := make([]bftcrypto.SecretKey, 0, 1+len(id.HarvesterKeys))
	out = append(out, id.BootKey)
	return append(out, id.HarvesterKeys...)
}

// Holds reports whether this identity controls key, returning the held
// secret key if so.
func (id Identity) Holds(key bftcrypto.PublicKey) (bftcrypto.SecretKey, bool) {
	for _, sk := range id.Keys() {
		if sk.PublicKey().ID() == key.ID() {
			return sk, true
		}
	}
	return bftcrypto.SecretKey{}, false
}

// RemoteNodeState is the chain-sync position a peer reports, matching the
// wire.PullRemoteNodeStateResponse body and collaborator.RemoteNodeState
// (spec.md §6 item 1, §4.4).
type RemoteNodeState struct {
	Height        chainref.Height
	BlockHash     chainref.Hash256
	NodeWorkState chainref.WorkState
	NodeKey       bftcrypto.PublicKey
	HarvesterKeys []bftcrypto.PublicKey
}
