// Package micr renders the magnetic-ink character line printed along the
// bottom of a check, using the E-13B special symbol set.
package micr

import (
	"fmt"
	"strings"

	"github.com/halverson/farmbooks/internal/utils/nacha"
)

// E-13B special symbols. Fonts map these code points to the magnetic glyphs.
const (
	SymbolTransit = "⑆" // brackets the transit routing number
	SymbolOnUs    = "⑈" // terminates the on-us (account) field
	SymbolAmount  = "⑇" // brackets a pre-encoded amount, when present
	SymbolDash    = "⑉" // separator within the on-us field
)

// Line renders the standard personal/business check MICR layout:
//
//	⑆routing⑆ account⑈ checkNumber
//
// The routing number is checksum-validated; the check number is zero-padded
// to the conventional four digits minimum.
func Line(routingNumber, accountNumber string, checkNumber int64) (string, error) {
	if err := nacha.ValidateRoutingNumber(routingNumber); err != nil {
		return "", err
	}
	if accountNumber == "" {
		return "", fmt.Errorf("account number is required for MICR encoding")
	}
	for _, r := range accountNumber {
		if (r < '0' || r > '9') && r != '-' {
			return "", fmt.Errorf("account number %q contains a character not encodable in E-13B", accountNumber)
		}
	}
	if checkNumber <= 0 {
		return "", fmt.Errorf("check number must be positive")
	}

	onUs := strings.ReplaceAll(accountNumber, "-", SymbolDash)
	return fmt.Sprintf("%s%s%s %s%s %04d",
		SymbolTransit, routingNumber, SymbolTransit,
		onUs, SymbolOnUs,
		checkNumber,
	), nil
}
