package transcript

import (
	"strings"
)

var trueTokens = map[string]bool{"1": true, "true": true, "yes": true, "on": true, "y": true}
var falseTokens = map[string]bool{"0": true, "false": true, "no": true, "off": true, "n": true}

// ParseBoolToken interprets the boolean tokens accepted for the
// show_unchanged_ok_tasks option. Unrecognized values fall back to the
// supplied default rather than erroring.
func ParseBoolToken(value string, fallback bool) bool {
	token := strings.ToLower(strings.TrimSpace(value))

	if trueTokens[token] {
		return true
	}
	if falseTokens[token] {
		return false
	}

	return fallback
}
