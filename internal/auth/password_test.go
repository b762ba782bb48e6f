package auth

import "testing"

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(4)

	password := "correct horse battery staple"

	hash, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "" {
		t.Fatal("Hash() returned empty hash")
	}
	if hash == password {
		t.Fatal("Hash() returned the plaintext password")
	}

	if !hasher.Verify(password, hash) {
		t.Error("Verify() = false for the correct password")
	}
	if hasher.Verify("wrong password", hash) {
		t.Error("Verify() = true for a wrong password")
	}
}

func TestPasswordHasher_DistinctHashes(t *testing.T) {
	hasher := NewPasswordHasher(4)

	first, err := hasher.Hash("secret-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := hasher.Hash("secret-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	// bcrypt salts per call.
	if first == second {
		t.Error("two hashes of the same password are identical")
	}
}

func TestNewPasswordHasher_InvalidCost(t *testing.T) {
	hasher := NewPasswordHasher(-1)
	if hasher.cost != DefaultBcryptCost {
		t.Errorf("cost = %d, want %d", hasher.cost, DefaultBcryptCost)
	}
}
