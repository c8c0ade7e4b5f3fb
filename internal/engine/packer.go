package engine

import (
	"github.com/packman/loadplan/internal/model"
)

// RunContext identifies one planning run and carries its event sink.
type RunContext struct {
	TaskID        string
	TransportType string
	Events        EventFunc
}

// Packer is the greedy floor planner. It is stateless between runs;
// one Packer value can serve any number of Pack calls.
type Packer struct {
	Settings model.Settings
}

// NewPacker returns a packer with the given settings.
func NewPacker(s model.Settings) *Packer {
	return &Packer{Settings: s}
}

// patternGroups splits candidates into pattern groups keyed by pattern
// id, keeping first-seen order so tie-breaking is deterministic.
func patternGroups(cands []model.Candidate) ([]string, map[string][]model.Candidate) {
	var order []string
	groups := make(map[string][]model.Candidate)
	for _, c := range cands {
		pid := c.Meta.PatternID
		if pid == "" {
			continue
		}
		if _, seen := groups[pid]; !seen {
			order = append(order, pid)
		}
		groups[pid] = append(groups[pid], c)
	}
	return order, groups
}

// Pack plans the unit set onto the vehicle floor. Each iteration
// regenerates candidates over a value-ordered window of the remaining
// queue; a valid pattern group always wins over the best single.
// Units that can never be placed end up in the plan's unplaced list.
func (p *Packer) Pack(units []model.CargoUnit, vehicle model.Vehicle, run RunContext) *model.Plan {
	s := p.Settings
	mode := DetectMode(units, vehicle, s)

	st := newPlanState(run.TaskID, run.TransportType, vehicle, mode, s, run.Events)
	for _, u := range units {
		st.unitsByID[u.ID] = u
	}

	st.emit("mode_detected", map[string]any{
		"mode":            string(mode.Mode),
		"weight_pressure": mode.WeightPressure,
		"floor_pressure":  mode.FloorPressure,
		"volume_pressure": mode.VolumePressure,
		"alpha":           mode.Alpha,
	})

	remaining := make([]model.CargoUnit, len(units))
	copy(remaining, units)
	SortQueue(remaining, vehicle, mode, s)

	for len(remaining) > 0 {
		window := remaining
		if len(window) > s.WindowSize {
			window = window[:s.WindowSize]
		}

		candidates := st.GenerateFloorCandidates(window)

		remIDs := make(map[string]bool, len(remaining))
		for _, u := range remaining {
			remIDs[u.ID] = true
		}

		pidOrder, groups := patternGroups(candidates)

		singleCount := 0
		for _, c := range candidates {
			if !c.IsPattern() {
				singleCount++
			}
		}
		st.emit("candidates_generated", map[string]any{
			"count":            len(candidates),
			"window":           len(window),
			"singleCount":      singleCount,
			"patternCandCount": len(candidates) - singleCount,
			"patternGroups":    len(groups),
		})

		// Patterns and singles never share a scale; the best of each
		// is tracked separately and patterns win outright at the end.
		var bestGroup []model.Candidate
		var bestGroupScore PatternScore
		var bestGroupPID string
		var bestGroupDbg map[string]any
		haveGroup := false

		rejectsLogged := 0
		rejectStats := make(map[string]int)
		logReject := func(pid, reason string, extra map[string]any) {
			rejectStats[reason]++
			if rejectsLogged >= s.PatternRejectLogLimit {
				return
			}
			payload := map[string]any{"patternId": pid, "reason": reason}
			for k, v := range extra {
				payload[k] = v
			}
			st.emit("pattern_rejected", payload)
			rejectsLogged++
		}

		for _, pid := range pidOrder {
			group := groups[pid]

			missing := make([]string, 0)
			for _, c := range group {
				if !remIDs[c.UnitID] {
					missing = append(missing, c.UnitID)
				}
			}
			if len(missing) > 0 {
				logReject(pid, "not_available", map[string]any{
					"missingUnitIds": missing,
					"groupSize":      len(group),
				})
				continue
			}

			if ok, reasons := canCommitGroup(st, group); !ok {
				logReject(pid, rejectBucket(reasons), map[string]any{
					"reasons":   reasons,
					"groupSize": len(group),
				})
				continue
			}

			policies := make([]PolicyDecision, 0, len(group))
			var hardReasons []string
			for _, c := range group {
				pol := EvaluatePolicy(st.unitsByID[c.UnitID], c, vehicle, mode, s, false)
				if len(pol.HardRejectReasons) > 0 {
					hardReasons = pol.HardRejectReasons
					break
				}
				policies = append(policies, pol)
			}
			if hardReasons != nil {
				logReject(pid, "policy_hard", map[string]any{
					"reasons":   hardReasons,
					"groupSize": len(group),
				})
				continue
			}

			var usedAreaSum, kSum, policySum float64
			for i, c := range group {
				sc := scoreSingle(st.unitsByID[c.UnitID], c, mode, policies[i], s)
				kSum += sc.K
				usedAreaSum += sc.UsedArea
				policySum += sc.Policy
			}

			quality, qdbg := patternQuality(group, s)
			score := PatternScore{
				Placed:      1,
				Quality:     quality,
				UsedAreaSum: usedAreaSum,
				PolicySum:   policySum,
				KSum:        kSum,
			}

			if !haveGroup || score.Better(bestGroupScore) {
				haveGroup = true
				bestGroup = group
				bestGroupScore = score
				bestGroupPID = pid
				bestGroupDbg = qdbg
			}
		}

		if len(groups) > 0 {
			st.emit("pattern_reject_summary", map[string]any{
				"groups":   len(groups),
				"logged":   rejectsLogged,
				"stats":    rejectStats,
				"logLimit": s.PatternRejectLogLimit,
			})
		}

		var bestSingle *model.Candidate
		var bestSingleScore SingleScore
		var bestSinglePol PolicyDecision
		for i := range candidates {
			c := candidates[i]
			if c.IsPattern() {
				continue
			}
			if ok, _ := st.canPlace(c); !ok {
				continue
			}

			u := st.unitsByID[c.UnitID]
			pol := EvaluatePolicy(u, c, vehicle, mode, s, false)
			if len(pol.HardRejectReasons) > 0 {
				continue
			}

			sc := scoreSingle(u, c, mode, pol, s)
			if bestSingle == nil || sc.Better(bestSingleScore) {
				bestSingle = &candidates[i]
				bestSingleScore = sc
				bestSinglePol = pol
			}
		}

		if !haveGroup && bestSingle == nil {
			for _, u := range remaining {
				u.Status = model.StatusUnplaced
				st.unplaced = append(st.unplaced, u)
			}
			st.emit("unplaced_all_remaining", map[string]any{"count": len(remaining)})
			break
		}

		if haveGroup {
			committed := make([]string, 0, len(bestGroup))
			for _, c := range bestGroup {
				st.commit(c)
				committed = append(committed, c.UnitID)
			}

			st.emit("pattern_committed", map[string]any{
				"patternId": bestGroupPID,
				"count":     len(bestGroup),
				"unitIds":   committed,
				"score":     bestGroupScore,
				"packing":   bestGroupDbg,
			})

			committedSet := make(map[string]bool, len(committed))
			for _, id := range committed {
				committedSet[id] = true
			}
			next := remaining[:0]
			for _, u := range remaining {
				if !committedSet[u.ID] {
					next = append(next, u)
				}
			}
			remaining = next
			continue
		}

		st.commit(*bestSingle)
		st.emit("candidate_chosen", map[string]any{
			"unitId": bestSingle.UnitID,
			"kind":   string(bestSingle.Kind),
			"score":  bestSingleScore,
			"policy": map[string]any{
				"zone":    bestSinglePol.Tags["zone"],
				"class":   bestSinglePol.Tags["class"],
				"hi":      bestSinglePol.Tags["hi"],
				"bonus":   bestSinglePol.ZoneBonus,
				"penalty": bestSinglePol.ZonePenalty,
			},
		})

		next := remaining[:0]
		for _, u := range remaining {
			if u.ID != bestSingle.UnitID {
				next = append(next, u)
			}
		}
		remaining = next
	}

	return st.snapshot()
}
