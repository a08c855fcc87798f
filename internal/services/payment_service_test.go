// internal/services/payment_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInCentsRoundsInsteadOfTruncating(t *testing.T) {
	cases := []struct {
		total float64
		want  int64
	}{
		{63.99, 6399}, // 63.99*100 is 6398.99... in binary
		{9.99, 999},
		{108.0, 10800},
		{0.1 + 0.2, 30},
		{0, 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, amountInCents(tc.total), "total %v", tc.total)
	}
}
