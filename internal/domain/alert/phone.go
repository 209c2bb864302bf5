package alert

import (
	"fmt"
	"strings"

	"github.com/asthmaguard/asthmaguard/internal/platform/apperror"
)

// NormalizePhone strips a phone number down to the bare digits the
// wa.me URL scheme expects. "+92 300-1234567" becomes "923001234567".
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("phone number has no digits: %w", apperror.ErrValidation)
	}
	return b.String(), nil
}
