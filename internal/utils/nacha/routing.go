package nacha

import (
	"fmt"

	"github.com/halverson/farmbooks/internal/apperrors"
)

// routing number check-digit weights per the ABA algorithm
var routingWeights = [9]int{3, 7, 1, 3, 7, 1, 3, 7, 1}

// ValidateRoutingNumber verifies a 9-digit ABA routing number, including its
// mod-10 checksum. Every routing number is validated before a single byte of
// a NACHA file is emitted.
func ValidateRoutingNumber(routing string) error {
	if len(routing) != 9 {
		return fmt.Errorf("%w: %q is not 9 digits", apperrors.ErrInvalidRoutingNumber, routing)
	}
	sum := 0
	for i, r := range routing {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: %q contains a non-digit", apperrors.ErrInvalidRoutingNumber, routing)
		}
		sum += int(r-'0') * routingWeights[i]
	}
	if sum%10 != 0 {
		return fmt.Errorf("%w: %q fails mod-10 checksum", apperrors.ErrInvalidRoutingNumber, routing)
	}
	return nil
}

// RoutingPrefix returns the first 8 digits of a routing number as an integer,
// the quantity summed into batch and file entry hashes.
func RoutingPrefix(routing string) int64 {
	var n int64
	for _, r := range routing[:8] {
		n = n*10 + int64(r-'0')
	}
	return n
}

// HashTotal reduces a sum of routing prefixes to its last 10 digits, the
// NACHA entry-hash convention.
func HashTotal(sum int64) int64 {
	return sum % 10_000_000_000
}
