package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/vi-racer/components"
)

//go:embed vehicles.toml
var vehiclesTOML string

// DefaultVehicleID is the vehicle used when none is selected
const DefaultVehicleID = "f1"

var ErrUnknownVehicle = errors.New("unknown vehicle")

// Vehicle is one catalog entry
type Vehicle struct {
	ID          string  `toml:"id"`
	Name        string  `toml:"name"`
	Category    string  `toml:"category"`
	NitroPower  float64 `toml:"nitro_power"`
	AutoBoost   bool    `toml:"auto_boost"`
	Color       string  `toml:"color"`
	Description string  `toml:"description"`
}

// Spec converts the entry into the simulation's vehicle traits
func (v Vehicle) Spec() components.VehicleSpec {
	return components.VehicleSpec{
		ID:         v.ID,
		Name:       v.Name,
		NitroPower: v.NitroPower,
		AutoBoost:  v.AutoBoost,
		Color:      v.Color,
	}
}

type catalogFile struct {
	Vehicles []Vehicle `toml:"vehicle"`
}

// Catalog is an ordered, id-indexed vehicle list
type Catalog struct {
	vehicles []Vehicle
	byID     map[string]int
}

// Parse decodes a TOML catalog, rejecting unknown keys and duplicate ids
func Parse(data string) (*Catalog, error) {
	var file catalogFile
	meta, err := toml.Decode(data, &file)
	if err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("decode catalog: unknown key %q", undecoded[0].String())
	}

	c := &Catalog{byID: make(map[string]int, len(file.Vehicles))}
	for _, v := range file.Vehicles {
		v.ID = strings.TrimSpace(v.ID)
		if v.ID == "" {
			return nil, fmt.Errorf("catalog entry %q has no id", v.Name)
		}
		if _, dup := c.byID[v.ID]; dup {
			return nil, fmt.Errorf("duplicate vehicle id %q", v.ID)
		}
		c.byID[v.ID] = len(c.vehicles)
		c.vehicles = append(c.vehicles, v)
	}
	if len(c.vehicles) == 0 {
		return nil, errors.New("catalog is empty")
	}
	return c, nil
}

var builtin = sync.OnceValues(func() (*Catalog, error) {
	return Parse(vehiclesTOML)
})

// Builtin returns the embedded catalog
func Builtin() (*Catalog, error) {
	return builtin()
}

// Lookup finds a vehicle by id; an empty id selects the default
func (c *Catalog) Lookup(id string) (Vehicle, error) {
	if id == "" {
		id = DefaultVehicleID
	}
	i, ok := c.byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Vehicle{}, fmt.Errorf("%w: %q", ErrUnknownVehicle, id)
	}
	return c.vehicles[i], nil
}

// All returns the vehicles in catalog order
func (c *Catalog) All() []Vehicle {
	return append([]Vehicle(nil), c.vehicles...)
}

// Len returns the number of vehicles
func (c *Catalog) Len() int {
	return len(c.vehicles)
}
