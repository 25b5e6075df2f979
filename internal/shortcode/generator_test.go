package shortcode

import (
	"strings"
	"testing"
)

func TestGenerateLength(t *testing.T) {
	for _, length := range []int{4, 6, 15} {
		code, err := Generate(length)
		if err != nil {
			t.Fatalf("Generate(%d) failed: %v", length, err)
		}
		if len(code) != length {
			t.Errorf("Generate(%d) returned %q (len %d)", length, code, len(code))
		}
	}
}

func TestGenerateDefaultsLength(t *testing.T) {
	code, err := Generate(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(code) != DefaultLength {
		t.Errorf("expected default length %d, got %d", DefaultLength, len(code))
	}
}

func TestGenerateAlphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := Generate(DefaultLength)
		if err != nil {
			t.Fatal(err)
		}
		for _, r := range code {
			if !strings.ContainsRune(alphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
	}
}

func TestGenerateDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code, err := Generate(DefaultLength)
		if err != nil {
			t.Fatal(err)
		}
		if seen[code] {
			t.Fatalf("duplicate code %q after %d draws", code, i)
		}
		seen[code] = true
	}
}
