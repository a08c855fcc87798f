// internal/services/order_service_test.go
package services

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotalsChargesShippingBelowThreshold(t *testing.T) {
	totals := ComputeTotals(50)

	assert.InDelta(t, 50.0, totals.Subtotal, 1e-9)
	assert.InDelta(t, 4.0, totals.Tax, 1e-9)
	assert.InDelta(t, 9.99, totals.Shipping, 1e-9)
	assert.InDelta(t, 63.99, totals.Total, 1e-9)
}

func TestComputeTotalsFreeShippingAtThreshold(t *testing.T) {
	// The threshold is inclusive.
	totals := ComputeTotals(100)

	assert.InDelta(t, 8.0, totals.Tax, 1e-9)
	assert.Zero(t, totals.Shipping)
	assert.InDelta(t, 108.0, totals.Total, 1e-9)
}

func TestComputeTotalsFreeShippingAboveThreshold(t *testing.T) {
	totals := ComputeTotals(149.5)

	assert.Zero(t, totals.Shipping)
	assert.InDelta(t, 149.5*1.08, totals.Total, 1e-9)
}

func TestComputeTotalsZeroSubtotal(t *testing.T) {
	totals := ComputeTotals(0)

	assert.Zero(t, totals.Tax)
	assert.InDelta(t, 9.99, totals.Shipping, 1e-9)
	assert.InDelta(t, 9.99, totals.Total, 1e-9)
}

func TestGenerateOrderNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d{13,}-[0-9a-f]{8}$`)

	number := GenerateOrderNumber()
	assert.Regexp(t, pattern, number)
}

func TestGenerateOrderNumberUniqueWithinMillisecond(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		number := GenerateOrderNumber()
		require.False(t, seen[number], "duplicate order number %s", number)
		seen[number] = true
	}
}
