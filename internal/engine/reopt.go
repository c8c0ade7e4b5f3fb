package engine

import "github.com/packman/loadplan/internal/model"

// Refine is the local-search stage between packing and delivery. It is
// a pass-through until the swap/move operators land; disabled runs emit
// a skip marker so the pipeline stays observable end to end.
//
// TODO: move operator that rebuilds free rects after relocating one
// placed unit toward the head wall.
func Refine(plan *model.Plan, s model.Settings, sink EventFunc) *model.Plan {
	emit := func(event string, payload map[string]any) {
		plan.Events = append(plan.Events, model.DebugEvent{Event: event, Payload: payload})
		if sink == nil {
			return
		}
		func() {
			defer func() { _ = recover() }()
			sink(event, payload)
		}()
	}

	if !s.Refine.Enabled {
		emit("refine_skipped", map[string]any{"enabled": false})
		return plan
	}

	emit("refine_started", map[string]any{
		"max_iters": s.Refine.MaxIters,
		"placed":    len(plan.Placed),
		"unplaced":  len(plan.Unplaced),
	})
	emit("refine_done", map[string]any{"changed": false})
	return plan
}
