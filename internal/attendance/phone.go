package attendance

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizePhone folds compatibility characters (full-width digits, odd
// spaces) with NFKC and trims surrounding whitespace. The number is not
// otherwise validated.
func NormalizePhone(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}
