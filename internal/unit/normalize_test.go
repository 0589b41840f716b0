package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Grams(t *testing.T) {
	u := Normalize("250g")
	assert.Equal(t, FamilyKg, u.Family)
	assert.Equal(t, 0.25, u.BaseAmount)

	u = Normalize("500g")
	assert.Equal(t, FamilyKg, u.Family)
	assert.Equal(t, 0.5, u.BaseAmount)
}

func TestNormalize_Kilograms(t *testing.T) {
	u := Normalize("1kg")
	assert.Equal(t, FamilyKg, u.Family)
	assert.Equal(t, 1.0, u.BaseAmount)

	u = Normalize("2.5kg")
	assert.Equal(t, FamilyKg, u.Family)
	assert.Equal(t, 2.5, u.BaseAmount)
}

func TestNormalize_Piece(t *testing.T) {
	for _, raw := range []string{"piece", "1 piece", "per pc", "2 pcs", "PIECE"} {
		u := Normalize(raw)
		assert.Equal(t, FamilyPiece, u.Family, "raw=%q", raw)
		assert.Zero(t, u.BaseAmount, "raw=%q", raw)
	}
}

func TestNormalize_Dozen(t *testing.T) {
	for _, raw := range []string{"dozen", "1 dozen", "dz", "per dz"} {
		u := Normalize(raw)
		assert.Equal(t, FamilyDozen, u.Family, "raw=%q", raw)
	}
}

func TestNormalize_EmptyDefaultsToOneKg(t *testing.T) {
	for _, raw := range []string{"", "   "} {
		u := Normalize(raw)
		assert.Equal(t, FamilyKg, u.Family)
		assert.Equal(t, 1.0, u.BaseAmount)
	}
}

func TestNormalize_GramLikeFallback(t *testing.T) {
	// Contains "g" but no clean numeric match: treated as one gram so the
	// product still renders.
	u := Normalize("some g")
	assert.Equal(t, FamilyKg, u.Family)
	assert.Equal(t, 0.001, u.BaseAmount)
}

func TestNormalize_UnrecognizedDefaultsToOneKg(t *testing.T) {
	for _, raw := range []string{"bundle", "litre", "packet"} {
		u := Normalize(raw)
		assert.Equal(t, FamilyKg, u.Family, "raw=%q", raw)
		assert.Equal(t, 1.0, u.BaseAmount, "raw=%q", raw)
	}
}

func TestNormalize_CaseAndWhitespace(t *testing.T) {
	u := Normalize("  250G ")
	assert.Equal(t, FamilyKg, u.Family)
	assert.Equal(t, 0.25, u.BaseAmount)
}

func TestNormalize_NeverPanics(t *testing.T) {
	inputs := []string{"", "g", "kg", "0g", "-5kg", "1.2.3kg", "piecekg", "🥕", "250 g"}
	for _, raw := range inputs {
		u := Normalize(raw)
		assert.Contains(t, []Family{FamilyKg, FamilyPiece, FamilyDozen}, u.Family, "raw=%q", raw)
	}
}
