package unit

import (
	"regexp"
	"strconv"
	"strings"
)

// Family is the canonical measurement basis all quantity and price
// arithmetic is performed in.
type Family string

const (
	FamilyKg    Family = "kg"
	FamilyPiece Family = "piece"
	FamilyDozen Family = "dozen"
)

// NormalizedUnit relates a product's free-text base unit to one canonical
// unit. BaseAmount is the scale factor for the kg family (e.g. "250g" ->
// 0.25); it is zero for piece and dozen families, where each base unit is
// one piece or one dozen.
type NormalizedUnit struct {
	Family     Family
	BaseAmount float64
}

var (
	pieceToken = regexp.MustCompile(`\b(pieces?|pcs?)\b`)
	dozenToken = regexp.MustCompile(`\b(dozens?|dz)\b`)
	gramsLead  = regexp.MustCompile(`^(\d+)g`)
	kilosLead  = regexp.MustCompile(`^(\d+(?:\.\d+)?)kg`)
)

// Normalize parses a free-text unit descriptor ("250g", "1kg", "piece",
// "dozen") into a NormalizedUnit. It never fails: descriptors entered by
// non-technical sellers must not block rendering, so malformed input
// degrades through a fallback ladder instead of returning an error.
func Normalize(raw string) NormalizedUnit {
	s := strings.ToLower(strings.TrimSpace(raw))

	if s == "" {
		return NormalizedUnit{Family: FamilyKg, BaseAmount: 1}
	}

	if dozenToken.MatchString(s) {
		return NormalizedUnit{Family: FamilyDozen}
	}
	if pieceToken.MatchString(s) {
		return NormalizedUnit{Family: FamilyPiece}
	}

	if m := gramsLead.FindStringSubmatch(s); m != nil {
		grams, err := strconv.ParseFloat(m[1], 64)
		if err == nil && grams > 0 {
			return NormalizedUnit{Family: FamilyKg, BaseAmount: grams / 1000}
		}
	}

	if m := kilosLead.FindStringSubmatch(s); m != nil {
		kilos, err := strconv.ParseFloat(m[1], 64)
		if err == nil && kilos > 0 {
			return NormalizedUnit{Family: FamilyKg, BaseAmount: kilos}
		}
	}

	// Gram-like but with no clean numeric match ("some g", "g500"):
	// treat as one gram so the product still renders with a price.
	if strings.Contains(s, "g") {
		return NormalizedUnit{Family: FamilyKg, BaseAmount: 0.001}
	}

	return NormalizedUnit{Family: FamilyKg, BaseAmount: 1}
}
