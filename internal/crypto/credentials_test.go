package crypto_test

import (
	"errors"
	"testing"

	"rollcall/internal/crypto"
)

func testCipher(t *testing.T) *crypto.Cipher {
	t.Helper()
	c, err := crypto.NewCipher("test-secret", "test-salt")
	if err != nil {
		t.Fatalf("NewCipher failed: %v", err)
	}
	return c
}

// TestCipher_RoundTrip tests that encryption is reversible.
func TestCipher_RoundTrip(t *testing.T) {
	c := testCipher(t)
	for _, plaintext := range []string{"pat", "a longer credential with spaces", "p@ss!wörd", ""} {
		enc, err := c.EncryptString(plaintext)
		if err != nil {
			t.Fatalf("encrypt %q: %v", plaintext, err)
		}
		dec, err := c.DecryptString(enc)
		if err != nil {
			t.Fatalf("decrypt %q: %v", plaintext, err)
		}
		if dec != plaintext {
			t.Errorf("round trip of %q yielded %q", plaintext, dec)
		}
	}
}

// TestCipher_DistinctCiphertexts tests that the per-message IV makes repeated
// encryptions of the same input differ.
func TestCipher_DistinctCiphertexts(t *testing.T) {
	c := testCipher(t)
	first, err := c.EncryptString("pat")
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.EncryptString("pat")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("expected distinct ciphertexts for repeated encryption")
	}
}

// TestCipher_KeyMismatch tests that a cipher with different key material
// cannot read the message.
func TestCipher_KeyMismatch(t *testing.T) {
	c := testCipher(t)
	other, err := crypto.NewCipher("other-secret", "test-salt")
	if err != nil {
		t.Fatal(err)
	}

	enc, err := c.EncryptString("pat")
	if err != nil {
		t.Fatal(err)
	}
	if dec, err := other.DecryptString(enc); err == nil && dec == "pat" {
		t.Error("a mismatched key must not recover the plaintext")
	}
}

// TestCipher_MalformedInput tests rejection of inputs that are not valid
// cipher output.
func TestCipher_MalformedInput(t *testing.T) {
	c := testCipher(t)
	for _, input := range []string{"not base64 !!!", "c2hvcnQ=", ""} {
		if _, err := c.DecryptString(input); !errors.Is(err, crypto.ErrMalformedCiphertext) {
			t.Errorf("expected ErrMalformedCiphertext for %q, got %v", input, err)
		}
	}
}

// TestNewCipher_MissingMaterial tests that empty key material is refused.
func TestNewCipher_MissingMaterial(t *testing.T) {
	if _, err := crypto.NewCipher("", "salt"); err == nil {
		t.Error("expected an error for an empty secret")
	}
	if _, err := crypto.NewCipher("secret", ""); err == nil {
		t.Error("expected an error for an empty salt")
	}
}
