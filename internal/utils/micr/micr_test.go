package micr_test

import (
	"testing"

	"github.com/halverson/farmbooks/internal/apperrors"
	"github.com/halverson/farmbooks/internal/utils/micr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine(t *testing.T) {
	line, err := micr.Line("021000021", "9912345", 1001)
	require.NoError(t, err)
	assert.Equal(t, "⑆021000021⑆ 9912345⑈ 1001", line)
}

func TestLine_PadsShortCheckNumbers(t *testing.T) {
	line, err := micr.Line("021000021", "9912345", 7)
	require.NoError(t, err)
	assert.Equal(t, "⑆021000021⑆ 9912345⑈ 0007", line)
}

func TestLine_DashBecomesOnUsSeparator(t *testing.T) {
	line, err := micr.Line("021000021", "99-12345", 1001)
	require.NoError(t, err)
	assert.Contains(t, line, "99⑉12345⑈")
}

func TestLine_InvalidRouting(t *testing.T) {
	_, err := micr.Line("123456789", "9912345", 1001)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRoutingNumber)
}

func TestLine_BadInputs(t *testing.T) {
	_, err := micr.Line("021000021", "", 1001)
	assert.Error(t, err)

	_, err = micr.Line("021000021", "99X12345", 1001)
	assert.Error(t, err)

	_, err = micr.Line("021000021", "9912345", 0)
	assert.Error(t, err)
}
