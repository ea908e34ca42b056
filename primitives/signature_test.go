package primitives

import "testing"

func TestSignAndVerify(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	hash := Hash([]byte("hello"), []byte("world"))
	sig := kp.Sign(hash)
	if !Verify(kp.Account(), hash, sig) {
		t.Fatalf("expected signature to verify")
	}

	otherHash := Hash([]byte("tampered"))
	if Verify(kp.Account(), otherHash, sig) {
		t.Fatalf("expected signature over different hash to fail")
	}
}

func TestValidateWork(t *testing.T) {
	root := Hash([]byte("root"))
	var best Work
	var bestValue uint64
	for w := Work(0); w < 4096; w++ {
		v := WorkValue(w, root)
		if v > bestValue {
			bestValue = v
			best = w
		}
	}
	if !ValidateWork(best, root, bestValue) {
		t.Fatalf("expected best-found work to meet its own threshold")
	}
	if ValidateWork(best, root, bestValue+1) {
		t.Fatalf("expected work to fail a threshold one above its value")
	}
}

func TestAccountBurnAndZero(t *testing.T) {
	var zero Account
	if !zero.IsZero() {
		t.Fatalf("expected zero account to report IsZero")
	}
	if !BurnAccount.IsBurn() {
		t.Fatalf("expected BurnAccount to report IsBurn")
	}
}
