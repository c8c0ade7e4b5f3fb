package importer

import (
	"math"
	"regexp"
	"strconv"
)

// Row is one raw manifest record before normalization. String fields
// arrive as-is from the source; numeric fields keep their raw text so
// normalization can report what was wrong with them.
type Row struct {
	SSCC       string
	PalletType string

	WeightKg string // kilograms
	VolumeM3 string // cubic meters
	HeightCm string // centimeters
	Ratio    string // floor demand in standard slots

	ProviderID   string
	ProviderName string

	TaskID        string
	RouteID       string
	TransportType string
}

var (
	rePalDims = regexp.MustCompile(`PAL\s*(\d+)\s*X\s*(\d+)`)
	reBoxDims = regexp.MustCompile(`BOX\s*(\d+)\s*X\s*(\d+)\s*X\s*(\d+)`)
)

// ParsePalletType extracts dimensions (meters) from a free-form pallet
// type like "PAL 80x120" or "Box 40x40x60". The third return is the
// height when the code carries one, or NaN.
func ParsePalletType(palletType string) (w, l, h float64, ok bool) {
	s := NormalizeCodeKey(palletType)
	if s == "" {
		return 0, 0, 0, false
	}

	if m := rePalDims.FindStringSubmatch(s); m != nil {
		wCm, _ := strconv.Atoi(m[1])
		lCm, _ := strconv.Atoi(m[2])
		return float64(wCm) / 100.0, float64(lCm) / 100.0, math.NaN(), true
	}
	if m := reBoxDims.FindStringSubmatch(s); m != nil {
		wCm, _ := strconv.Atoi(m[1])
		lCm, _ := strconv.Atoi(m[2])
		hCm, _ := strconv.Atoi(m[3])
		return float64(wCm) / 100.0, float64(lCm) / 100.0, float64(hCm) / 100.0, true
	}
	return 0, 0, 0, false
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// normalizeHeightCm validates a raw height. Heights over 4 m are
// treated as garbage, not cargo.
func normalizeHeightCm(s string) (float64, string) {
	v, ok := parseFloat(s)
	if !ok {
		return 0, "height_missing"
	}
	if v <= 0 {
		return 0, "height_nonpositive"
	}
	if v > 400 {
		return 0, "height_too_large"
	}
	return v, ""
}

func normalizeRatio(s string) (float64, string) {
	v, ok := parseFloat(s)
	if !ok {
		return 0, "ratio_missing"
	}
	if v <= 0 {
		return 0, "ratio_nonpositive"
	}
	return v, ""
}
