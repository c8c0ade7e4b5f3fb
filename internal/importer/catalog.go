package importer

import "strings"

// TareDims is one packaging catalog entry. Dimensions are centimeters,
// weight is the tare weight in kilograms.
type TareDims struct {
	Weight float64
	Width  float64
	Height float64
	Length float64
}

// tareCatalogCM maps normalized packaging codes to their nominal
// dimensions. Manifests reference these codes when explicit dimensions
// are missing.
var tareCatalogCM = map[string]TareDims{
	"ADR 120X120": {Weight: 16, Width: 120, Height: 15, Length: 120},
	"ADR 80X120":  {Weight: 16, Width: 80, Height: 15, Length: 120},
	"BIG":         {Weight: 28, Width: 240, Height: 15, Length: 240},
	"BOX":         {Weight: 25, Width: 80, Height: 40, Length: 120},
	"BOX 40X40X60": {Weight: 0, Width: 40, Height: 5, Length: 60},
	"CS":          {Weight: 1, Width: 80, Height: 40, Length: 80},
	"DIV":         {Weight: 25, Width: 170, Height: 15, Length: 120},
	"DVA":         {Weight: 25, Width: 160, Height: 15, Length: 120},
	"FIN":         {Weight: 25, Width: 120, Height: 15, Length: 120},
	"FLO 80X120":  {Weight: 0, Width: 80, Height: 15, Length: 120},
	"GRS":         {Weight: 25, Width: 140, Height: 15, Length: 120},
	"KBX":         {Weight: 25, Width: 80, Height: 40, Length: 120},
	"LAM":         {Weight: 25, Width: 80, Height: 40, Length: 120},
	"LAM 80X140":  {Weight: 21, Width: 80, Height: 15, Length: 140},
	"MAX":         {Weight: 27, Width: 320, Height: 15, Length: 120},
	"MBX":         {Weight: 25, Width: 80, Height: 40, Length: 120},
	"MCS":         {Weight: 25, Width: 80, Height: 14.4, Length: 120},
	"MIN":         {Weight: 25, Width: 80, Height: 15, Length: 120},
	"NON":         {Weight: 1, Width: 1, Height: 1, Length: 1},
	"PAL 100X120": {Weight: 19, Width: 100, Height: 15, Length: 120},
	"PAL 120X120": {Weight: 19, Width: 120, Height: 15, Length: 120},
	"PAL 120X170": {Weight: 30, Width: 120, Height: 15, Length: 170},
	"PAL 120X240": {Weight: 32, Width: 120, Height: 15, Length: 240},
	"PAL 140X120": {Weight: 0, Width: 140, Height: 15, Length: 120},
	"PAL 150X100": {Weight: 21, Width: 150, Height: 15, Length: 100},
	"PAL 155X155": {Weight: 20, Width: 155, Height: 15, Length: 155},
	"PAL 160X120": {Weight: 40, Width: 160, Height: 15, Length: 120},
	"PAL 170X120": {Weight: 24, Width: 170, Height: 15, Length: 120},
	"PAL 200X120": {Weight: 50, Width: 200, Height: 15, Length: 120},
	"PAL 200X250": {Weight: 0, Width: 200, Height: 15, Length: 250},
	"PAL 210X310": {Weight: 15, Width: 210, Height: 15, Length: 310},
	"PAL 240X120": {Weight: 32, Width: 240, Height: 15, Length: 120},
	"PAL 240X80":  {Weight: 32, Width: 240, Height: 15, Length: 80},
	"PAL 250X120": {Weight: 35, Width: 250, Height: 15, Length: 120},
	"PAL 250X80":  {Weight: 32, Width: 250, Height: 15, Length: 80},
	"PAL 300X100": {Weight: 32, Width: 300, Height: 15, Length: 100},
	"PAL 300X120": {Weight: 60, Width: 300, Height: 15, Length: 120},
	"PAL 300X164": {Weight: 0, Width: 300, Height: 15, Length: 164},
	"PAL 300X80":  {Weight: 50, Width: 300, Height: 15, Length: 80},
	"PAL 320X120": {Weight: 32, Width: 320, Height: 15, Length: 120},
	"PAL 320X80":  {Weight: 50, Width: 320, Height: 15, Length: 80},
	"PAL 370X80":  {Weight: 32, Width: 370, Height: 15, Length: 80},
	"PAL 400X100": {Weight: 32, Width: 400, Height: 15, Length: 100},
	"PAL 400X80":  {Weight: 45, Width: 80, Height: 15, Length: 400},
	"PAL 500X120": {Weight: 15, Width: 500, Height: 15, Length: 120},
	"PAL 50X120":  {Weight: 0, Width: 500, Height: 15, Length: 120},
	"PAL 60X120":  {Weight: 0, Width: 60, Height: 15, Length: 120},
	"PAL 80X120":  {Weight: 16, Width: 80, Height: 15, Length: 120},
	"PAL 80X200":  {Weight: 20, Width: 80, Height: 15, Length: 200},
	"PAL 80X300":  {Weight: 30, Width: 80, Height: 15, Length: 300},
	"PAL 80X60":   {Weight: 8, Width: 80, Height: 15, Length: 60},
	"PCN":         {Weight: 25, Width: 80, Height: 14.4, Length: 120},
	"PLC":         {Weight: 25, Width: 80, Height: 14.4, Length: 120},
	"ROL":         {Weight: 25, Width: 80, Height: 15, Length: 120},
	"ROL 000-240": {Weight: 0, Width: 30, Height: 30, Length: 400},
	"ROL 241-360": {Weight: 0, Width: 30, Height: 30, Length: 400},
	"ROL 361-400": {Weight: 0, Width: 30, Height: 30, Length: 400},
	"ROL 361-480": {Weight: 0, Width: 30, Height: 30, Length: 400},
	"ROL 401-600": {Weight: 0, Width: 30, Height: 30, Length: 400},
	"ROL 481-600": {Weight: 0, Width: 30, Height: 30, Length: 400},
	"SPC 120X120": {Weight: 30, Width: 120, Height: 15, Length: 120},
	"SPC 80X120":  {Weight: 15, Width: 80, Height: 15, Length: 120},
	"STD":         {Weight: 25, Width: 80, Height: 14.4, Length: 120},
	"UKP":         {Weight: 25, Width: 100, Height: 15, Length: 120},
	"USP":         {Weight: 25, Width: 120, Height: 15, Length: 120},
}

// NormalizeCodeKey canonicalizes a packaging code: trimmed, uppercased,
// with the Cyrillic Х homoglyph folded into the Latin X it stands for.
func NormalizeCodeKey(s string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "Х", "X")
}

// LookupTare resolves a raw packaging code against the catalog.
func LookupTare(code string) (TareDims, bool) {
	k := NormalizeCodeKey(code)
	if k == "" {
		return TareDims{}, false
	}
	d, ok := tareCatalogCM[k]
	return d, ok
}
