package gstr2b_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tallymap/internal/domain"
	"tallymap/internal/gstr2b"
)

func TestClassify_IGSTExact(t *testing.T) {
	m := gstr2b.Classify(1000, 180, 0)
	require.NotNil(t, m)
	assert.Equal(t, "18%", m.Slab.Label)
	assert.Equal(t, domain.TaxModeIGST, m.Mode)
}

func TestClassify_CGSTExact(t *testing.T) {
	m := gstr2b.Classify(1000, 0, 25)
	require.NotNil(t, m)
	assert.Equal(t, "5%", m.Slab.Label)
	assert.Equal(t, domain.TaxModeCGSTSGST, m.Mode)
}

func TestClassify_WithinTolerance(t *testing.T) {
	// 50.9 / 1000 = 5.09%, inside the 0.1 window around 5%
	m := gstr2b.Classify(1000, 50.9, 0)
	require.NotNil(t, m)
	assert.Equal(t, "5%", m.Slab.Label)
}

func TestClassify_OutsideTolerance(t *testing.T) {
	// 52 / 1000 = 5.2%, outside every slab window
	assert.Nil(t, gstr2b.Classify(1000, 52, 0))
}

func TestClassify_IGSTTakesPrecedence(t *testing.T) {
	// Positive IGST means the CGST column is never consulted, even when
	// only the CGST side would match.
	m := gstr2b.Classify(1000, 52, 90)
	assert.Nil(t, m)

	m = gstr2b.Classify(1000, 120, 90)
	require.NotNil(t, m)
	assert.Equal(t, domain.TaxModeIGST, m.Mode)
	assert.Equal(t, "12%", m.Slab.Label)
}

func TestClassify_ZeroTaxableValue(t *testing.T) {
	assert.Nil(t, gstr2b.Classify(0, 180, 0))
}

func TestClassify_NoTaxAmounts(t *testing.T) {
	assert.Nil(t, gstr2b.Classify(1000, 0, 0))
}

func TestClassify_AllSlabs(t *testing.T) {
	cases := []struct {
		igst float64
		want string
	}{
		{50, "5%"},
		{120, "12%"},
		{180, "18%"},
		{280, "28%"},
	}
	for _, tc := range cases {
		m := gstr2b.Classify(1000, tc.igst, 0)
		require.NotNil(t, m, "igst %v", tc.igst)
		assert.Equal(t, tc.want, m.Slab.Label)
	}
}
