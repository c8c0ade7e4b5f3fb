package model

// ZoneFractions partitions the hold length into four longitudinal
// zones A-D (head to tail). The fractions must sum to 1.0.
type ZoneFractions struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
	D float64 `json:"d"`
}

// RefineSettings controls the post-placement local-search stage. It is
// disabled by default; when disabled the stage passes the plan through
// unchanged.
type RefineSettings struct {
	Enabled  bool `json:"enabled"`
	MaxIters int  `json:"max_iters"`
}

// Settings is the full planner configuration. A Settings value is
// passed into every component constructor; there is no process-wide
// settings state.
type Settings struct {
	// Geometric comparison tolerance.
	Eps float64 `json:"eps"`

	// Pressure estimation.
	FillFactorFloor       float64 `json:"fill_factor_floor"`
	FillFactorVolume      float64 `json:"fill_factor_volume"`
	ModePressureThreshold float64 `json:"mode_pressure_threshold"`

	// Packer loop.
	WindowSize   int `json:"window_size"`    // queue prefix per iteration
	MaxFreeRects int `json:"max_free_rects"` // largest-N free rects fed to the generator

	// Pattern pools and variant caps.
	PatternPrefixStd      int `json:"pattern_prefix_std"`
	PatternPrefixBig      int `json:"pattern_prefix_big"`
	MaxVariants3Across    int `json:"max_variants_3across"`
	MaxVariants5          int `json:"max_variants_5"` // 3plus2 and zigzag
	MaxVariants140Plus80  int `json:"max_variants_140plus80"`
	PatternRejectLogLimit int `json:"pattern_reject_log_limit"`

	// Zoning policy.
	Zones ZoneFractions `json:"zones"`

	HiWeightKg      float64 `json:"hi_weight_kg"`       // weight mode high-value threshold
	HiVolumeM3      float64 `json:"hi_volume_m3"`       // volume mode high-value threshold
	HiWeightMixedKg float64 `json:"hi_weight_mixed_kg"` // mixed mode high-value threshold

	WeightHiABBonus   float64 `json:"weight_hi_ab_bonus"`
	WeightHiCDPenalty float64 `json:"weight_hi_cd_penalty"`
	WeightLoCDBonus   float64 `json:"weight_lo_cd_bonus"`
	WeightLoABPenalty float64 `json:"weight_lo_ab_penalty"`

	VolumeBigABCBonus  float64 `json:"volume_big_abc_bonus"`
	VolumeBigDPenalty  float64 `json:"volume_big_d_penalty"`
	VolumeSmallCDBonus float64 `json:"volume_small_cd_bonus"`
	BigFootprintM2     float64 `json:"big_footprint_m2"`

	MixedHiABBonus   float64 `json:"mixed_hi_ab_bonus"`
	MixedLoABPenalty float64 `json:"mixed_lo_ab_penalty"`

	OversizeBonus float64 `json:"oversize_bonus"`
	BoxABPenalty  float64 `json:"box_ab_penalty"`
	BoxCDBonus    float64 `json:"box_cd_bonus"`

	// Hard rules, disabled by default.
	HardOversizeInD bool `json:"hard_oversize_in_d"`

	// Queue ordering: lower value goes earlier.
	ClassPriority map[UnitClass]int `json:"class_priority"`

	// Scoring weights.
	PolicyScoreWeight    float64 `json:"policy_score_weight"`
	QualityDensityWeight float64 `json:"quality_density_weight"`
	QualityTouchWeight   float64 `json:"quality_touch_weight"`
	QualitySlackWeight   float64 `json:"quality_slack_weight"`

	Refine RefineSettings `json:"refine"`
}

// DefaultSettings returns the named default configuration.
func DefaultSettings() Settings {
	return Settings{
		Eps: 1e-9,

		FillFactorFloor:       0.90,
		FillFactorVolume:      0.80,
		ModePressureThreshold: 0.85,

		WindowSize:   16,
		MaxFreeRects: 250,

		PatternPrefixStd:      14,
		PatternPrefixBig:      10,
		MaxVariants3Across:    6,
		MaxVariants5:          8,
		MaxVariants140Plus80:  20,
		PatternRejectLogLimit: 25,

		Zones: ZoneFractions{A: 0.25, B: 0.25, C: 0.25, D: 0.25},

		HiWeightKg:      700.0,
		HiVolumeM3:      1.0,
		HiWeightMixedKg: 700.0,

		WeightHiABBonus:   2.0,
		WeightHiCDPenalty: 3.0,
		WeightLoCDBonus:   0.5,
		WeightLoABPenalty: 0.5,

		VolumeBigABCBonus:  1.0,
		VolumeBigDPenalty:  2.0,
		VolumeSmallCDBonus: 0.5,
		BigFootprintM2:     1.6,

		MixedHiABBonus:   1.5,
		MixedLoABPenalty: 0.5,

		OversizeBonus: 0.8,
		BoxABPenalty:  0.7,
		BoxCDBonus:    1.5,

		HardOversizeInD: false,

		ClassPriority: map[UnitClass]int{
			ClassOversize: 0,
			ClassStandard: 1,
			ClassOther:    2,
			ClassBox:      3,
		},

		PolicyScoreWeight:    1.0,
		QualityDensityWeight: 10.0,
		QualityTouchWeight:   0.6,
		QualitySlackWeight:   1.5,

		Refine: RefineSettings{Enabled: false, MaxIters: 20},
	}
}

// FloorFill returns the effective floor fill factor for a vehicle,
// preferring the vehicle override.
func (s Settings) FloorFill(v Vehicle) float64 {
	if v.FillFactorFloor > 0 {
		return v.FillFactorFloor
	}
	return s.FillFactorFloor
}

// VolumeFill returns the effective volume fill factor for a vehicle.
func (s Settings) VolumeFill(v Vehicle) float64 {
	if v.FillFactorVolume > 0 {
		return v.FillFactorVolume
	}
	return s.FillFactorVolume
}

// PriorityFor returns the queue priority for a class (lower is earlier),
// falling back to a late slot for unmapped classes.
func (s Settings) PriorityFor(cls UnitClass) int {
	if p, ok := s.ClassPriority[cls]; ok {
		return p
	}
	return 99
}
