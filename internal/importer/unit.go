package importer

import (
	"math"

	"github.com/packman/loadplan/internal/model"
)

// Normalize turns a raw manifest row into a planner-ready cargo unit.
// Dimensions resolve catalog first, then the pallet type text, then the
// EUR pallet fallback. Height prefers the recorded value, then derives
// from volume over the footprint, then the type's own height, then
// 1.20 m. The returned notes record every fallback taken.
func Normalize(row Row) (model.CargoUnit, []string) {
	var notes []string
	note := func(s string) { notes = append(notes, s) }

	sscc := row.SSCC
	if sscc == "" {
		sscc = "UNKNOWN"
	}

	var wM, lM float64
	typeHeight := math.NaN()

	tare, haveTare := LookupTare(row.PalletType)
	switch {
	case haveTare:
		wM = tare.Width / 100.0
		lM = tare.Length / 100.0
		note("dims_from_tara_catalog")
	default:
		if w, l, h, ok := ParsePalletType(row.PalletType); ok {
			wM, lM, typeHeight = w, l, h
			note("dims_from_pallet_type")
		} else {
			wM, lM = 0.80, 1.20
			note("unknown_pallet_type")
		}
	}

	weight, haveWeight := parseFloat(row.WeightKg)
	volume, haveVolume := parseFloat(row.VolumeM3)

	var hM float64
	if heightCm, reason := normalizeHeightCm(row.HeightCm); reason == "" {
		hM = heightCm / 100.0
		note("height_from_db")
	} else {
		note(reason)
		switch {
		case haveVolume && wM*lM > 0:
			hM = volume / (wM * lM)
			note("height_from_volume")
		case !math.IsNaN(typeHeight):
			hM = typeHeight
			note("height_from_type")
		default:
			hM = 1.20
			note("no_height_no_volume")
		}
	}

	if !haveWeight && haveTare {
		weight = tare.Weight
		note("weight_from_tara")
	}

	u := model.NewCargoUnit(sscc, wM, lM, hM, weight)

	if ratio, reason := normalizeRatio(row.Ratio); reason == "" {
		u.Ratio = ratio
	} else {
		// Footprint fallback: one standard slot per m² of floor.
		note(reason)
		note("ratio_from_area")
		if u.Footprint() > 0 {
			u.Ratio = u.Footprint()
		} else {
			u.Ratio = 1.0
		}
	}

	u.PalletType = row.PalletType
	u.PalletTypeNorm = NormalizeCodeKey(row.PalletType)
	u.ProviderID = row.ProviderID
	u.ProviderName = row.ProviderName
	u.TaskID = row.TaskID
	u.RouteID = row.RouteID
	u.TransportType = row.TransportType
	u.CanBeBase = true
	u.CanBeStacked = true

	return u, notes
}
