package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var aliasPattern = regexp.MustCompile(`^[A-Za-z0-9-]{4,15}$`)

var schemePattern = regexp.MustCompile(`(?i)^https?://`)

var insecurePattern = regexp.MustCompile(`(?i)^http://`)

// NormalizeURL trims the input and forces an https scheme on scheme-less
// URLs. Plain http:// input is preserved so the caller can reject it.
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	if !schemePattern.MatchString(u) {
		u = "https://" + u
	}
	return u
}

// IsInsecure reports whether the normalized URL uses plain HTTP.
func IsInsecure(normalized string) bool {
	return insecurePattern.MatchString(normalized)
}

// ValidateAlias checks a user-chosen short code against the allowed pattern.
func ValidateAlias(alias string) error {
	if !aliasPattern.MatchString(alias) {
		return fmt.Errorf("error.invalid_alias")
	}
	return nil
}

// ValidateTargetURL checks a normalized destination URL.
func ValidateTargetURL(targetURL string) error {
	if targetURL == "" {
		return fmt.Errorf("error.target_url_required")
	}
	if _, err := url.ParseRequestURI(targetURL); err != nil {
		return fmt.Errorf("error.target_url_invalid")
	}
	if len(targetURL) > 2048 {
		return fmt.Errorf("error.target_url_max_length")
	}
	return nil
}
