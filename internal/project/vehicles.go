package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/packman/loadplan/internal/model"
)

// DefaultVehiclesPath returns the default file path for custom vehicle
// presets. This is located at ~/.loadplan/vehicles.json.
func DefaultVehiclesPath() string {
	return filepath.Join(DefaultConfigDir(), "vehicles.json")
}

// SaveCustomVehicles saves custom vehicle presets to a JSON file.
func SaveCustomVehicles(path string, vehicles []model.Vehicle) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(vehicles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomVehicles loads custom vehicle presets from a JSON file.
// Returns an empty slice if the file does not exist. Vehicles failing
// validation are dropped.
func LoadCustomVehicles(path string) ([]model.Vehicle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Vehicle{}, nil
		}
		return nil, err
	}

	var vehicles []model.Vehicle
	if err := json.Unmarshal(data, &vehicles); err != nil {
		return nil, err
	}

	valid := vehicles[:0]
	for _, v := range vehicles {
		if v.Validate() == nil {
			valid = append(valid, v)
		}
	}
	return valid, nil
}

// ResolveVehicle resolves a transport type against the custom presets
// first, then the built-in presets. Custom presets shadow built-ins
// with the same ID.
func ResolveVehicle(transportType string, custom []model.Vehicle) model.Vehicle {
	for _, v := range custom {
		if v.ID == transportType {
			return v
		}
	}
	return model.PresetVehicle(transportType)
}

// ExportVehicle exports a single vehicle preset to a JSON file (for sharing).
func ExportVehicle(path string, vehicle model.Vehicle) error {
	data, err := json.MarshalIndent(vehicle, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportVehicle imports a single vehicle preset from a JSON file.
func ImportVehicle(path string) (model.Vehicle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Vehicle{}, err
	}

	var vehicle model.Vehicle
	if err := json.Unmarshal(data, &vehicle); err != nil {
		return model.Vehicle{}, err
	}

	if vehicle.ID == "" {
		return model.Vehicle{}, errors.New("imported vehicle has no id")
	}
	if err := vehicle.Validate(); err != nil {
		return model.Vehicle{}, err
	}
	return vehicle, nil
}
