package node

import (
	"testing"

	"github.com/finalitychain/fastfinality/bftcrypto"
)

func testIdentityKey(t *testing.T, seed byte) bftcrypto.SecretKey {
	t.Helper()
	ikm := make([]byte, 32)
	for i := range ikm {
		ikm[i] = seed
	}
	sk, err := bftcrypto.GenerateSecretKey(ikm)
	if err != nil {
		t.Fatalf("GenerateSecretKey: %v", err)
	}
	return sk
}

func TestKeysReturnsBootKeyFirst(t *testing.T) {
	boot := testIdentityKey(t, 1)
	h1 := testIdentityKey(t, 2)
	h2 := testIdentityKey(t, 3)
	id := Identity{BootKey: boot, HarvesterKeys: []bftcrypto.SecretKey{h1, h2}}

	keys := id.Keys()
	if len(keys) != 3 {
		t.Fatalf("expected 3 keys, got %d", len(keys))
	}
	if keys[0].PublicKey().ID() != boot.PublicKey().ID() {
		t.Fatal("expected the boot key to be first")
	}
}

func TestHoldsFindsBootAndHarvesterKeys(t *testing.T) {
	boot := testIdentityKey(t, 1)
	h1 := testIdentityKey(t, 2)
	outsider := testIdentityKey(t, 9)
	id := Identity{BootKey: boot, HarvesterKeys: []bftcrypto.SecretKey{h1}}

	if _, ok := id.Holds(boot.PublicKey()); !ok {
		t.Fatal("expected Holds to find the boot key")
	}
	if _, ok := id.Holds(h1.PublicKey()); !ok {
		t.Fatal("expected Holds to find a harvester key")
	}
	if _, ok := id.Holds(outsider.PublicKey()); ok {
		t.Fatal("expected Holds to reject an unrelated key")
	}
}

func TestHoldsReturnsTheMatchingSecretKey(t *testing.T) {
	boot := testIdentityKey(t, 1)
	h1 := testIdentityKey(t, 2)
	id := Identity{BootKey: boot, HarvesterKeys: []bftcrypto.SecretKey{h1}}

	got, ok := id.Holds(h1.PublicKey())
	if !ok || got.PublicKey().ID() != h1.PublicKey().ID() {
		t.Fatal("expected Holds to return the held secret key for a harvester key")
	}
}

func TestKeysWithNoHarvesterKeys(t *testing.T) {
	boot := testIdentityKey(t, 5)
	id := Identity{BootKey: boot}
	keys := id.Keys()
	if len(keys) != 1 {
		t.Fatalf("expected exactly 1 key (boot only), got %d", len(keys))
	}
}
