package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/packman/loadplan/internal/model"
)

// DefaultPlansDir returns the default directory for the plan store.
// Completed plans are kept at ~/.loadplan/plans/, one file per task.
func DefaultPlansDir() string {
	return filepath.Join(DefaultConfigDir(), "plans")
}

// ErrPlanNotFound is returned when the store holds no plan for a task.
var ErrPlanNotFound = errors.New("plan not found")

// sanitizeTaskID turns a task id into a safe file name component.
func sanitizeTaskID(taskID string) string {
	var b strings.Builder
	for _, r := range taskID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}

func planPath(dir, taskID string) string {
	return filepath.Join(dir, sanitizeTaskID(taskID)+".json")
}

// SavePlan writes a plan to the store directory, keyed by its task id.
// An existing plan for the same task is overwritten.
func SavePlan(dir string, plan *model.Plan) error {
	if plan.TaskID == "" {
		return errors.New("plan has no task id")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan %q: %w", plan.TaskID, err)
	}
	return os.WriteFile(planPath(dir, plan.TaskID), data, 0644)
}

// LoadPlan reads the stored plan for a task id.
func LoadPlan(dir, taskID string) (*model.Plan, error) {
	data, err := os.ReadFile(planPath(dir, taskID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	var plan model.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse stored plan %q: %w", taskID, err)
	}
	return &plan, nil
}

// ListPlans returns the task ids of all stored plans, sorted.
func ListPlans(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// DeletePlan removes the stored plan for a task id. Removing a plan
// that does not exist is not an error.
func DeletePlan(dir, taskID string) error {
	err := os.Remove(planPath(dir, taskID))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
