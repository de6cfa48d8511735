package service

import "testing"

func TestPasswordHasher_DeterministicForFixedSalt(t *testing.T) {
	h := NewPasswordHasher()

	salt, err := h.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}

	first := h.Hash("pw123", salt)
	second := h.Hash("pw123", salt)
	if first != second {
		t.Fatalf("same password and salt produced different digests")
	}
}

func TestPasswordHasher_DistinctSaltsDistinctDigests(t *testing.T) {
	h := NewPasswordHasher()

	saltA, err := h.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	saltB, err := h.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	if saltA == saltB {
		t.Fatalf("two generated salts are identical")
	}

	if h.Hash("pw123", saltA) == h.Hash("pw123", saltB) {
		t.Fatalf("distinct salts produced identical digests")
	}
}

func TestPasswordHasher_Verify(t *testing.T) {
	h := NewPasswordHasher()

	salt, err := h.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	digest := h.Hash("correct horse", salt)

	if !h.Verify("correct horse", salt, digest) {
		t.Fatalf("Verify rejected the original password")
	}
	if h.Verify("wrong horse", salt, digest) {
		t.Fatalf("Verify accepted a different password")
	}
	if h.Verify("correct horse", "other salt", digest) {
		t.Fatalf("Verify accepted a different salt")
	}
}
