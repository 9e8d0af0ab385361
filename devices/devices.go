// Package devices lists the register headers known to the generator along
// with the override tables curated for them.
package devices

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"omibyte.io/mmiogen/overrides"
)

//go:embed devices.yaml
var rawDevices []byte

var (
	devices           Devices
	defaults          *overrides.Set
	ErrDeviceNotFound = errors.New("device not found")
)

type Devices []Device

// Device describes the header of one peripheral block.
type Device struct {
	ID     string `yaml:"id"`
	Header string `yaml:"header"`
	Name   string `yaml:"name"`
	Prefix string `yaml:"prefix"`
	Doc    string `yaml:"doc"`
}

// All returns the known devices in table order.
func All() Devices {
	return slices.Clone(devices)
}

// Find returns the device with the given identifier, ignoring case.
func Find(id string) (Device, error) {
	return devices.Find(id)
}

func (d Devices) Find(id string) (Device, error) {
	i := slices.IndexFunc(d, func(dev Device) bool {
		return dev.ID == strings.ToLower(id)
	})
	if i < 0 {
		return Device{}, fmt.Errorf("%w: %s", ErrDeviceNotFound, id)
	}
	return d[i], nil
}

// Select returns the devices with the given identifiers in the order they are
// requested. All devices are returned when ids is empty.
func (d Devices) Select(ids ...string) (Devices, error) {
	if len(ids) == 0 {
		return slices.Clone(d), nil
	}

	var (
		result Devices
		errs   []error
	)
	for _, id := range ids {
		dev, err := d.Find(id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		result = append(result, dev)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return result, nil
}

// IDs returns the identifiers of the devices.
func (d Devices) IDs() []string {
	ids := make([]string, len(d))
	for i, dev := range d {
		ids[i] = dev.ID
	}
	return ids
}

// Overrides returns the built-in override tables. The set is shared, callers
// must not modify it and should use overrides.Merge to extend it.
func Overrides() *overrides.Set {
	return defaults
}

func init() {
	var d struct {
		Elements  []Device      `yaml:"devices"`
		Overrides overrides.Set `yaml:"overrides"`
	}
	if err := yaml.Unmarshal(rawDevices, &d); err != nil {
		panic(err)
	}
	if err := d.Overrides.Validate(); err != nil {
		panic(err)
	}

	devices = d.Elements
	defaults = &d.Overrides
}
