package security

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewHasher_CostClamping(t *testing.T) {
	testCases := []struct {
		name string
		cost int
		want int
	}{
		{"zero defaults", 0, bcrypt.DefaultCost},
		{"negative defaults", -1, bcrypt.DefaultCost},
		{"below min clamps", 2, bcrypt.MinCost},
		{"above max clamps", 40, bcrypt.MaxCost},
		{"in range kept", 10, 10},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHasher(tc.cost)
			if h.Cost != tc.want {
				t.Errorf("Cost = %d, want %d", h.Cost, tc.want)
			}
		})
	}
}

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	digest, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if digest == "" || digest == "correct horse battery staple" {
		t.Fatal("Hash should return a non-empty digest distinct from the plaintext")
	}

	if err := h.Compare(digest, "correct horse battery staple"); err != nil {
		t.Errorf("Compare with correct password: %v", err)
	}
	if err := h.Compare(digest, "wrong password"); err == nil {
		t.Error("Compare with wrong password should return error")
	}
}

func TestHasher_CompareInvalidDigest(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	if err := h.Compare("not-a-bcrypt-digest", "anything"); err == nil {
		t.Error("Compare with invalid digest should return error")
	}
}

func TestHasher_HashesDiffer(t *testing.T) {
	// bcrypt salts per call; two hashes of the same input must differ.
	h := NewHasher(bcrypt.MinCost)
	a, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password should differ")
	}
}
