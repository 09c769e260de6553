package gstr2b

import (
	"math"

	"tallymap/internal/domain"
)

// Tolerance is the absolute percentage-point window used when matching a
// computed tax ratio against a slab rate. Single source of truth for the
// whole pipeline.
const Tolerance = 0.1

// Slab is one fixed GST percentage tier with its per-component rates.
type Slab struct {
	Label string
	IGST  float64
	CGST  float64
	SGST  float64
}

// slabs in ascending order; classification checks them in this sequence and
// the first match wins.
var slabs = []Slab{
	{Label: "5%", IGST: 5, CGST: 2.5, SGST: 2.5},
	{Label: "12%", IGST: 12, CGST: 6, SGST: 6},
	{Label: "18%", IGST: 18, CGST: 9, SGST: 9},
	{Label: "28%", IGST: 28, CGST: 14, SGST: 14},
}

// SlabMatch is the outcome of classifying a row into a tax slab.
type SlabMatch struct {
	Slab Slab
	Mode domain.TaxMode
}

// Classify determines which slab the reported tax amounts imply for the
// given taxable value, or nil when no slab fits. A positive IGST amount is
// checked first; only when IGST is absent is the CGST side considered.
func Classify(taxableValue, igst, cgst float64) *SlabMatch {
	if taxableValue == 0 {
		return nil
	}

	if igst > 0 {
		percent := igst / taxableValue * 100
		for i := range slabs {
			if math.Abs(percent-slabs[i].IGST) <= Tolerance {
				return &SlabMatch{Slab: slabs[i], Mode: domain.TaxModeIGST}
			}
		}
	} else if cgst > 0 {
		percent := cgst / taxableValue * 100
		for i := range slabs {
			if math.Abs(percent-slabs[i].CGST) <= Tolerance {
				return &SlabMatch{Slab: slabs[i], Mode: domain.TaxModeCGSTSGST}
			}
		}
	}
	return nil
}
