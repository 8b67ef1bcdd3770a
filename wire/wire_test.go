package wire

import (
	"bytes"
	"testing"

	"github.com/finalitychain/fastfinality/bftcrypto"
	"github.com/finalitychain/fastfinality/chainref"
)

func TestHeaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	h := Header{Size: 1234, Type: PushPrevoteMessages}
	if err := WriteHeader(&buf, h); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	if buf.Len() != headerLen {
		t.Fatalf("expected %d header bytes, got %d", headerLen, buf.Len())
	}
	got, err := ReadHeader(&buf)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if got != h {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, h)
	}
}

func TestCommitteeMessageRoundTrip(t *testing.T) {
	var m CommitteeMessage
	m.Type = 0
	m.BlockHash = chainref.Hash256{1, 2, 3}
	m.Cosignature.Signer = bftcrypto.KeyID{4, 5, 6}
	m.Cosignature.Sig = [96]byte{7, 8, 9}
	m.MsgSig = [96]byte{10, 11, 12}

	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if buf.Len() != committeeMessageLen {
		t.Fatalf("expected %d bytes, got %d", committeeMessageLen, buf.Len())
	}

	got, err := DecodeCommitteeMessage(&buf)
	if err != nil {
		t.Fatalf("DecodeCommitteeMessage: %v", err)
	}
	if got != m {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, m)
	}
}

func TestVoteBatchRoundTrip(t *testing.T) {
	msgs := []CommitteeMessage{
		{Type: 0, BlockHash: chainref.Hash256{1}},
		{Type: 1, BlockHash: chainref.Hash256{2}},
	}
	var buf bytes.Buffer
	if err := EncodeVoteBatch(&buf, msgs); err != nil {
		t.Fatalf("EncodeVoteBatch: %v", err)
	}
	got, err := DecodeVoteBatch(&buf)
	if err != nil {
		t.Fatalf("DecodeVoteBatch: %v", err)
	}
	if len(got) != len(msgs) {
		t.Fatalf("expected %d messages, got %d", len(msgs), len(got))
	}
	for i := range msgs {
		if got[i] != msgs[i] {
			t.Fatalf("message %d mismatch: got %+v, want %+v", i, got[i], msgs[i])
		}
	}
}

func TestVoteBatchRejectsOversizedCount(t *testing.T) {
	msgs := make([]CommitteeMessage, 256)
	var buf bytes.Buffer
	if err := EncodeVoteBatch(&buf, msgs); err == nil {
		t.Fatal("expected an error encoding a batch of 256 messages (exceeds u8 count)")
	}
}

func TestBlockPacketRoundTrip(t *testing.T) {
	p := BlockPacket{ProposerSig: [96]byte{1, 2, 3}, Block: []byte("opaque-block-bytes")}
	var buf bytes.Buffer
	if err := p.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	size := uint32(buf.Len())
	got, err := DecodeBlockPacket(&buf, size)
	if err != nil {
		t.Fatalf("DecodeBlockPacket: %v", err)
	}
	if got.ProposerSig != p.ProposerSig || !bytes.Equal(got.Block, p.Block) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, p)
	}
}

func TestDecodeBlockPacketRejectsUndersizedPacket(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(make([]byte, 50))
	if _, err := DecodeBlockPacket(&buf, 50); err == nil {
		t.Fatal("expected an error decoding a packet too small to hold a proposer signature")
	}
}

func TestPullRemoteNodeStateRequestRoundTrip(t *testing.T) {
	req := PullRemoteNodeStateRequest{Height: 42}
	var buf bytes.Buffer
	if err := req.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := DecodePullRemoteNodeStateRequest(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != req {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, req)
	}
}

func TestPullRemoteNodeStateResponseRoundTrip(t *testing.T) {
	resp := PullRemoteNodeStateResponse{
		Height:        7,
		BlockHash:     chainref.Hash256{9, 9, 9},
		NodeWorkState: chainref.WorkState(1),
		HarvesterKeys: []bftcrypto.KeyID{{1}, {2}, {3}},
	}
	var buf bytes.Buffer
	if err := resp.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := DecodePullRemoteNodeStateResponse(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Height != resp.Height || got.BlockHash != resp.BlockHash || got.NodeWorkState != resp.NodeWorkState {
		t.Fatalf("scalar field mismatch: got %+v, want %+v", got, resp)
	}
	if len(got.HarvesterKeys) != len(resp.HarvesterKeys) {
		t.Fatalf("expected %d harvester keys, got %d", len(resp.HarvesterKeys), len(got.HarvesterKeys))
	}
	for i := range resp.HarvesterKeys {
		if got.HarvesterKeys[i] != resp.HarvesterKeys[i] {
			t.Fatalf("harvester key %d mismatch", i)
		}
	}
}

func TestPullBlocksRequestRoundTrip(t *testing.T) {
	req := PullBlocksRequest{Height: 100, NumBlocks: 10, NumResponseBytes: 4096}
	var buf bytes.Buffer
	if err := req.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := DecodePullBlocksRequest(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != req {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, req)
	}
}

func TestPullBlocksResponseRoundTrip(t *testing.T) {
	resp := PullBlocksResponse{Blocks: []byte("concatenated-block-bytes")}
	var buf bytes.Buffer
	if err := resp.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := DecodePullBlocksResponse(&buf, uint32(len(resp.Blocks)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(got.Blocks, resp.Blocks) {
		t.Fatalf("round trip mismatch: got %q, want %q", got.Blocks, resp.Blocks)
	}
}
