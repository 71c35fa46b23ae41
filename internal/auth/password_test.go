package auth

import "testing"

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher()

	digest, err := hasher.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if digest == "correct horse battery staple" {
		t.Fatal("digest must not equal the plaintext")
	}

	if !hasher.Verify("correct horse battery staple", digest) {
		t.Error("Verify returned false for the right password")
	}
	if hasher.Verify("wrong password", digest) {
		t.Error("Verify returned true for the wrong password")
	}
}

func TestPasswordHasher_SaltedDigestsDiffer(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher()

	first, err := hasher.Hash("p4ssw0rd")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	second, err := hasher.Hash("p4ssw0rd")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password must differ")
	}
}

func TestPasswordHasher_MalformedDigest(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher()

	if hasher.Verify("anything", "not-a-bcrypt-digest") {
		t.Error("Verify must fail closed on a malformed digest")
	}
	if hasher.Verify("anything", "") {
		t.Error("Verify must fail closed on an empty digest")
	}
}
