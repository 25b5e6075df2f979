package utils

import (
	"strings"
	"testing"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example.com", "https://example.com"},
		{"  example.com/path?q=1  ", "https://example.com/path?q=1"},
		{"https://example.com", "https://example.com"},
		{"HTTPS://example.com", "HTTPS://example.com"},
		{"http://example.com", "http://example.com"}, // preserved for the insecure check
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsInsecure(t *testing.T) {
	if !IsInsecure("http://example.com") {
		t.Error("http:// must be flagged insecure")
	}
	if !IsInsecure("HTTP://example.com") {
		t.Error("scheme check must be case-insensitive")
	}
	if IsInsecure("https://example.com") {
		t.Error("https:// wrongly flagged insecure")
	}
}

func TestValidateAlias(t *testing.T) {
	valid := []string{"my-link1", "abcd", "ABC-123-xyz", "123456789012345"}
	for _, alias := range valid {
		if err := ValidateAlias(alias); err != nil {
			t.Errorf("ValidateAlias(%q) unexpectedly failed: %v", alias, err)
		}
	}

	invalid := []string{"ab", "", "with space", "under_score", "way-too-long-alias-here", "has/slash"}
	for _, alias := range invalid {
		if err := ValidateAlias(alias); err == nil {
			t.Errorf("ValidateAlias(%q) unexpectedly passed", alias)
		}
	}
}

func TestValidateTargetURL(t *testing.T) {
	if err := ValidateTargetURL("https://example.com/a?b=c"); err != nil {
		t.Errorf("valid URL rejected: %v", err)
	}
	if err := ValidateTargetURL(""); err == nil {
		t.Error("empty URL accepted")
	}
	if err := ValidateTargetURL("https://" + strings.Repeat("a", 2048)); err == nil {
		t.Error("oversized URL accepted")
	}
}
