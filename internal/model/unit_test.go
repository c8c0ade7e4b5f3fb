package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const holdWidth = 2.45

func TestNewCargoUnit_Defaults(t *testing.T) {
	u := NewCargoUnit("SSCC-1", 0.80, 1.20, 1.0, 300)

	assert.Equal(t, "SSCC-1", u.ID)
	assert.Equal(t, "SSCC-1", u.SSCC)
	assert.InDelta(t, 0.96, u.Ratio, 1e-9)
	assert.True(t, u.CanBeBase)
	assert.Equal(t, StatusOK, u.Status)
}

func TestNewCargoUnit_GeneratesIDWhenMissing(t *testing.T) {
	a := NewCargoUnit("", 0.80, 1.20, 1.0, 300)
	b := NewCargoUnit("", 0.80, 1.20, 1.0, 300)

	assert.Len(t, a.ID, 8)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestFloorDemand_Fallback(t *testing.T) {
	u := NewCargoUnit("x", 0.80, 1.20, 1.0, 300)
	assert.InDelta(t, 0.96, u.FloorDemand(), 1e-9)

	u.Ratio = 0
	assert.Equal(t, 1.0, u.FloorDemand())

	u.Ratio = 2.5
	assert.Equal(t, 2.5, u.FloorDemand())
}

func TestSizeClasses(t *testing.T) {
	eur := NewCargoUnit("", 0.80, 1.20, 1.0, 100)
	assert.True(t, eur.IsStandard80x120())
	assert.False(t, eur.IsBig140x120())

	// Transposed and a couple of centimeters off nominal still match.
	sloppy := NewCargoUnit("", 1.22, 0.78, 1.0, 100)
	assert.True(t, sloppy.IsStandard80x120())

	tooFar := NewCargoUnit("", 0.84, 1.20, 1.0, 100)
	assert.False(t, tooFar.IsStandard80x120())

	fin := NewCargoUnit("", 1.00, 1.20, 1.0, 100)
	assert.True(t, fin.IsFin100x120())

	big := NewCargoUnit("", 1.20, 1.40, 1.0, 100)
	assert.True(t, big.IsBig140x120())

	sq := NewCargoUnit("", 1.20, 1.20, 1.0, 100)
	assert.True(t, sq.IsSquare120())
}

func TestClass(t *testing.T) {
	cases := []struct {
		name string
		unit CargoUnit
		want UnitClass
	}{
		{"eur pallet", NewCargoUnit("", 0.80, 1.20, 1.0, 100), ClassStandard},
		{"fin pallet", NewCargoUnit("", 1.00, 1.20, 1.0, 100), ClassStandard},
		{"long cargo", NewCargoUnit("", 0.80, 2.00, 1.0, 100), ClassOversize},
		{"hold-wide", NewCargoUnit("", 2.44, 1.20, 1.0, 100), ClassOversize},
		{"small carton", NewCargoUnit("", 0.35, 0.35, 0.30, 5), ClassBox},
		{"tall narrow", NewCargoUnit("", 0.55, 1.10, 1.80, 50), ClassBox},
		{"odd pallet", NewCargoUnit("", 0.95, 1.35, 1.0, 100), ClassOther},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.unit.Class(holdWidth))
		})
	}
}

func TestClass_BoxPalletType(t *testing.T) {
	u := NewCargoUnit("", 0.95, 1.35, 1.0, 100)
	u.PalletType = "Box 60x40"

	assert.True(t, u.IsBoxLike())
	assert.Equal(t, ClassBox, u.Class(holdWidth))
}

func TestClass_OversizeBeatsBox(t *testing.T) {
	u := NewCargoUnit("", 2.44, 0.35, 0.30, 5)
	assert.Equal(t, ClassOversize, u.Class(holdWidth))
}

func TestCargoUnit_Validate(t *testing.T) {
	assert.NoError(t, NewCargoUnit("", 0.80, 1.20, 1.44, 420).Validate())

	flat := NewCargoUnit("", 0, 1.20, 1.44, 420)
	assert.ErrorContains(t, flat.Validate(), "non-positive dimensions")

	inverted := NewCargoUnit("", 0.80, -1.20, 1.44, 420)
	assert.ErrorContains(t, inverted.Validate(), "non-positive dimensions")

	weightless := NewCargoUnit("", 0.80, 1.20, 1.44, 0)
	assert.ErrorContains(t, weightless.Validate(), "non-positive weight")
}
