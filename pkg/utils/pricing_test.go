package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/parkspot/parkspot-backend/pkg/utils"
)

func TestQuoteAmount(t *testing.T) {
	tests := []struct {
		name         string
		pricePerHour int
		vehicleType  string
		duration     int
		want         int
	}{
		{"two-wheeler one hour", 1000, "two-wheeler", 60, 600},
		{"four-wheeler half hour", 1000, "four-wheeler", 30, 500},
		{"two-wheeler ninety minutes", 1000, "two-wheeler", 90, 900},
		{"truncates toward zero", 999, "four-wheeler", 31, 516},
		{"two-wheeler rate floors", 1001, "two-wheeler", 60, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := utils.QuoteAmount(tt.pricePerHour, tt.vehicleType, tt.duration)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestQuoteAmountInvalidDuration(t *testing.T) {
	_, err := utils.QuoteAmount(1000, "four-wheeler", 0)
	require.ErrorIs(t, err, utils.ErrInvalidDuration)

	_, err = utils.QuoteAmount(1000, "two-wheeler", -30)
	require.ErrorIs(t, err, utils.ErrInvalidDuration)
}
