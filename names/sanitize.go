// Package names maps raw declaration names to identifiers that are safe to
// embed as JVM internal-name path segments.
package names

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/mod/semver"
)

// SanitizeSince is the first language version that escapes names.
// Earlier versions keep raw names for binary compatibility.
const SanitizeSince = "v1.5"

// NoNameProvided is the identifier used in place of a special name.
const NoNameProvided = "no_name_in_PSI_3d19d79d_1ba9_4cd0_b7f5_b46aa3cd5d40"

// escapeRune introduces an escape sequence. It is escaped itself, which keeps
// Sanitize injective.
const escapeRune = '\\'

// LanguageVersionConfig selects the naming rules of a language version.
type LanguageVersionConfig struct {
	// Version is a "vMAJOR.MINOR" (or "MAJOR.MINOR") language version.
	// Empty or invalid versions select the legacy rules.
	Version string
}

// Canonical returns the version in canonical semver form, or "" if invalid.
func (c LanguageVersionConfig) Canonical() string {
	v := strings.TrimSpace(c.Version)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}

// Sanitizes reports whether names are escaped under this configuration.
func (c LanguageVersionConfig) Sanitizes() bool {
	v := c.Canonical()
	return v != "" && semver.Compare(v, SanitizeSince) >= 0
}

// ValidVersion reports whether v parses as a language version.
func ValidVersion(v string) bool {
	return LanguageVersionConfig{Version: v}.Canonical() != ""
}

// illegal reports whether r may not appear in a JVM unqualified name
// (JVMS §4.2.2), extended with characters that break signature parsing.
func illegal(r rune) bool {
	switch r {
	case '.', ';', '[', '/', '<', '>', ':', escapeRune:
		return true
	}
	return unicode.IsControl(r) || unicode.IsSpace(r) || r == unicode.ReplacementChar
}

// Sanitize returns a binary-safe form of raw under cfg.
// Under legacy rules the raw name is returned unchanged.
func Sanitize(raw string, cfg LanguageVersionConfig) string {
	if !cfg.Sanitizes() {
		return raw
	}
	if raw == "" {
		return NoNameProvided
	}
	if !strings.ContainsFunc(raw, illegal) {
		return raw
	}

	var result strings.Builder
	for _, r := range raw {
		if !illegal(r) {
			result.WriteRune(r)
			continue
		}
		if r > 0xFFFF {
			fmt.Fprintf(&result, "%cU%08X", escapeRune, r)
		} else {
			fmt.Fprintf(&result, "%cu%04X", escapeRune, r)
		}
	}
	return result.String()
}

// SafeIdentifier returns name, or NoNameProvided when name is a special name
// such as "<anonymous>".
func SafeIdentifier(name string) string {
	if isSpecial(name) {
		return NoNameProvided
	}
	return name
}

func isSpecial(name string) bool {
	return name == "" || (len(name) >= 2 && name[0] == '<' && name[len(name)-1] == '>')
}

// Unsanitize reverses Sanitize. It returns an error for malformed escapes.
func Unsanitize(s string) (string, error) {
	if !strings.ContainsRune(s, escapeRune) {
		return s, nil
	}
	var result strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != escapeRune {
			result.WriteByte(s[i])
			continue
		}
		if i+1 >= len(s) {
			return "", fmt.Errorf("dangling escape at offset %d", i)
		}
		width := 0
		switch s[i+1] {
		case 'u':
			width = 4
		case 'U':
			width = 8
		default:
			return "", fmt.Errorf("unknown escape %q at offset %d", s[i+1], i)
		}
		if i+2+width > len(s) {
			return "", fmt.Errorf("short escape at offset %d", i)
		}
		code, err := strconv.ParseUint(s[i+2:i+2+width], 16, 32)
		if err != nil {
			return "", fmt.Errorf("bad escape at offset %d: %w", i, err)
		}
		result.WriteRune(rune(code))
		i += 1 + width
	}
	return result.String(), nil
}
