package expression

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	msgEmpty     = "Expression cannot be empty."
	msgSpace     = "Expression cannot contain spaces."
	msgComma     = "Enter one expression at a time; commas are not allowed."
	msgSlash     = "Enter a domain without protocol or path."
	msgBadRegexp = "Invalid regular expression: "
)

// ValidateDomain checks a trimmed expression and returns a user-facing
// message, or "" when the expression is acceptable. Expressions wrapped in
// slashes are treated as regular expressions.
func ValidateDomain(input string) string {
	if input == "" {
		return msgEmpty
	}
	if len(input) > 1 && strings.HasPrefix(input, "/") && strings.HasSuffix(input, "/") {
		if _, err := regexp.Compile(input[1 : len(input)-1]); err != nil {
			return msgBadRegexp + err.Error()
		}
		return ""
	}
	if strings.IndexFunc(input, unicode.IsSpace) >= 0 {
		return msgSpace
	}
	if strings.Contains(input, ",") {
		return msgComma
	}
	if strings.Contains(input, "/") {
		return msgSlash
	}
	return ""
}
