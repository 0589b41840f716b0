package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farmbasket/cart-service/internal/unit"
)

func TestDerive_GramsBaseUnit(t *testing.T) {
	// ₹100 per 250g is ₹400/kg.
	d := Derive(100, unit.Normalize("250g"))
	assert.Equal(t, 400.0, d.PerUnit())
	assert.Equal(t, 200.0, d.ForQty(0.5).InexactFloat64())
}

func TestDerive_KgBaseUnit(t *testing.T) {
	d := Derive(40, unit.Normalize("1kg"))
	assert.Equal(t, 40.0, d.PerUnit())
	assert.Equal(t, 10.0, d.ForQty(0.25).InexactFloat64())
}

func TestDerive_Piece(t *testing.T) {
	d := Derive(35, unit.Normalize("piece"))
	assert.Equal(t, 35.0, d.PerUnit())
	assert.Equal(t, 105.0, d.ForQty(3).InexactFloat64())
}

func TestDerive_Dozen(t *testing.T) {
	d := Derive(90, unit.Normalize("dozen"))
	assert.Equal(t, 90.0, d.PerUnit())
	assert.Equal(t, 180.0, d.ForQty(2).InexactFloat64())
}

func TestDerive_ZeroScaleFactorGuard(t *testing.T) {
	// A zero scale factor must never divide by zero; it is treated as 1.
	d := Derive(50, unit.NormalizedUnit{Family: unit.FamilyKg, BaseAmount: 0})
	assert.Equal(t, 50.0, d.PerUnit())
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, 10.0, LineTotal(40, 0.25))
	assert.Equal(t, 20.0, LineTotal(40, 0.5))
	// 0.1+0.2 style float error must not leak into totals.
	assert.Equal(t, 0.3, LineTotal(0.1, 3))
}

func TestSum(t *testing.T) {
	assert.Equal(t, 0.3, Sum(0.1, 0.2))
	assert.Equal(t, 0.0, Sum())
}
