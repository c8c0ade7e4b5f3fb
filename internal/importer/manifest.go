// Package importer reads cargo manifests from CSV and Excel files and
// normalizes raw rows into planner-ready cargo units. Column mapping is
// header-driven and case-insensitive; missing or broken values fall
// back along the packaging catalog chain.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/packman/loadplan/internal/model"
)

// ImportResult holds the units recovered from a manifest plus whatever
// went wrong along the way. Errors are per-row and never abort the
// import; warnings record normalization fallbacks.
type ImportResult struct {
	Units    []model.CargoUnit
	Errors   []string
	Warnings []string
}

// headerAliases maps semantic column roles to accepted header spellings
// (all lowercase).
var headerAliases = map[string][]string{
	"sscc":          {"sscc", "drop_container_id", "container", "container_id", "pallet_id", "id"},
	"pallet_type":   {"pallet_type", "pallettype", "type", "packaging", "tara"},
	"weight":        {"weight", "weight_kg", "kg", "mass"},
	"volume":        {"volume", "volume_m3", "m3"},
	"height":        {"height", "height_cm"},
	"ratio":         {"ratio", "floor_demand", "pallet_places"},
	"provider_id":   {"provider_id", "providerid"},
	"provider_name": {"provider_name", "providername", "provider", "supplier"},
}

// detectColumns maps header cells to roles. Returns nil when the row
// does not look like a header.
func detectColumns(row []string) map[string]int {
	mapping := make(map[string]int)
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			if _, taken := mapping[role]; taken {
				continue
			}
			for _, alias := range aliases {
				if normalized == alias {
					mapping[role] = i
					break
				}
			}
		}
	}
	if len(mapping) == 0 {
		return nil
	}
	return mapping
}

func getCell(row []string, mapping map[string]int, role string) string {
	idx, ok := mapping[role]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// importFromRows converts tabular records into units. The first
// non-empty row must be a header; rows failing SSCC presence are
// errors, normalization fallbacks are warnings.
func importFromRows(records [][]string, rowLabel string) ImportResult {
	var result ImportResult

	if len(records) == 0 {
		result.Errors = append(result.Errors, "manifest is empty")
		return result
	}

	mapping := detectColumns(records[0])
	if mapping == nil {
		result.Errors = append(result.Errors, "no recognizable header row")
		return result
	}

	for i, rec := range records[1:] {
		if isEmptyRow(rec) {
			continue
		}
		label := fmt.Sprintf("%s %d", rowLabel, i+2)

		row := Row{
			SSCC:         getCell(rec, mapping, "sscc"),
			PalletType:   getCell(rec, mapping, "pallet_type"),
			WeightKg:     getCell(rec, mapping, "weight"),
			VolumeM3:     getCell(rec, mapping, "volume"),
			HeightCm:     getCell(rec, mapping, "height"),
			Ratio:        getCell(rec, mapping, "ratio"),
			ProviderID:   getCell(rec, mapping, "provider_id"),
			ProviderName: getCell(rec, mapping, "provider_name"),
		}

		if row.SSCC == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: missing SSCC", label))
			continue
		}

		unit, notes := Normalize(row)
		for _, n := range notes {
			switch n {
			case "height_from_db", "dims_from_tara_catalog", "dims_from_pallet_type":
				// expected paths, not worth a warning
			default:
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", label, n))
			}
		}
		result.Units = append(result.Units, unit)
	}

	return result
}

// ImportCSV reads a manifest from a CSV file. The delimiter is detected
// by column-count consistency over comma, semicolon, tab and pipe.
func ImportCSV(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("cannot open file: %v", err)}}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ImportResult{Errors: []string{"file is empty"}}
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectCSVDelimiter(data)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("cannot read CSV: %v", err)}}
	}

	return importFromRows(records, "line")
}

// detectCSVDelimiter scores candidate delimiters by how consistently
// they split the file into multi-column rows.
func detectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	best := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}
		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}
		if weighted := score*10 + firstCols; weighted > bestScore {
			bestScore = weighted
			best = delim
		}
	}
	return best
}

// ImportExcel reads a manifest from the first sheet of an xlsx file.
func ImportExcel(path string) ImportResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("cannot open Excel file: %v", err)}}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{Errors: []string{"Excel file has no sheets"}}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("cannot read sheet %q: %v", sheets[0], err)}}
	}

	return importFromRows(rows, "row")
}
