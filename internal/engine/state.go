package engine

import (
	"github.com/packman/loadplan/internal/geometry"
	"github.com/packman/loadplan/internal/model"
)

// EventFunc receives debug events as they are emitted. A nil sink is
// valid; a panicking sink is swallowed and never fails the run.
type EventFunc func(event string, payload map[string]any)

// planState is the mutable state of one planning run: items, placed
// units, the free-floor tracker, the load aggregate and the event trail.
type planState struct {
	taskID        string
	transportType string
	vehicle       model.Vehicle
	settings      model.Settings
	mode          model.ModeDecision

	unitsByID map[string]model.CargoUnit
	placed    []model.PlacedUnit
	unplaced  []model.CargoUnit

	free  *geometry.FreeRects
	loads model.AxleLoads

	events []model.DebugEvent
	sink   EventFunc
}

func newPlanState(taskID, transportType string, vehicle model.Vehicle, mode model.ModeDecision, s model.Settings, sink EventFunc) *planState {
	return &planState{
		taskID:        taskID,
		transportType: transportType,
		vehicle:       vehicle,
		settings:      s,
		mode:          mode,
		unitsByID:     make(map[string]model.CargoUnit),
		free:          geometry.NewFreeRects(vehicle.InnerWidth, vehicle.InnerLength),
		sink:          sink,
	}
}

// emit appends to the trail and forwards to the sink. The trail is
// append-only; a sink panic must not take the solver down with it.
func (st *planState) emit(event string, payload map[string]any) {
	st.events = append(st.events, model.DebugEvent{Event: event, Payload: payload})
	if st.sink == nil {
		return
	}
	func() {
		defer func() { _ = recover() }()
		st.sink(event, payload)
	}()
}

// canPlace runs the single-candidate gate chain: bounds, collision,
// then the axle check with the candidate tentatively applied.
func (st *planState) canPlace(c model.Candidate) (bool, []string) {
	if ok, r := checkBounds(c, st.vehicle); !ok {
		return false, r
	}
	if ok, r := checkCollision(c, st.placed); !ok {
		return false, r
	}

	tmp := make([]model.PlacedUnit, len(st.placed), len(st.placed)+1)
	copy(tmp, st.placed)
	tmp = append(tmp, model.Place(c, st.unitsByID[c.UnitID]))

	loads := ComputeLoads(tmp, st.vehicle)
	if ok, r := CheckLoads(loads, st.vehicle); !ok {
		return false, r
	}
	return true, nil
}

// commit places a candidate: appends the placed unit, reserves its
// floor rect and recomputes the axle loads from scratch.
func (st *planState) commit(c model.Candidate) {
	st.placed = append(st.placed, model.Place(c, st.unitsByID[c.UnitID]))
	st.free.Reserve(c.Box.FloorRect())
	st.loads = ComputeLoads(st.placed, st.vehicle)
}

func (st *planState) snapshot() *model.Plan {
	return &model.Plan{
		TaskID:        st.taskID,
		TransportType: st.transportType,
		Vehicle:       st.vehicle,
		Mode:          st.mode,
		Placed:        st.placed,
		Unplaced:      st.unplaced,
		Loads:         st.loads,
		Events:        st.events,
	}
}
