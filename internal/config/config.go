package config

import (
	"bytes"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"

	"github.com/iley/yulopt/internal/dialect"
	"github.com/iley/yulopt/internal/opt"
)

/*
A plan file describes which variables are moved to memory:

	dialect = "evm-object"
	reserved_memory = "0x80"
	required_slots = 3

	[slots]
	x = 0
	y = 1
	z = 2
*/

type Plan struct {
	Dialect        string            `toml:"dialect"`
	ReservedMemory string            `toml:"reserved_memory"`
	RequiredSlots  uint64            `toml:"required_slots"`
	Slots          map[string]uint64 `toml:"slots"`
}

// LoadPlan reads a plan from a TOML file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}
	plan, err := ParsePlan(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return plan, nil
}

func ParsePlan(data []byte) (*Plan, error) {
	var plan Plan
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}
	if plan.Slots == nil {
		plan.Slots = make(map[string]uint64)
	}
	if err := plan.validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

// validate reports all problems of the plan at once.
func (p *Plan) validate() error {
	var err error
	if _, e := p.reservedMemory(); e != nil {
		err = multierr.Append(err, e)
	}
	if _, e := p.GetDialect(); e != nil {
		err = multierr.Append(err, e)
	}
	for _, name := range slices.Sorted(maps.Keys(p.Slots)) {
		if slot := p.Slots[name]; slot >= p.RequiredSlots {
			err = multierr.Append(err, fmt.Errorf("slot %d of variable %s is out of range, required_slots is %d", slot, name, p.RequiredSlots))
		}
	}
	return err
}

func (p *Plan) reservedMemory() (*uint256.Int, error) {
	if p.ReservedMemory == "" {
		return uint256.NewInt(0), nil
	}
	var value *uint256.Int
	var err error
	if strings.HasPrefix(p.ReservedMemory, "0x") {
		value, err = uint256.FromHex(p.ReservedMemory)
	} else {
		value, err = uint256.FromDecimal(p.ReservedMemory)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid reserved_memory %q: %w", p.ReservedMemory, err)
	}
	return value, nil
}

// Settings converts the plan to optimiser settings.
func (p *Plan) Settings() (opt.Settings, error) {
	reserved, err := p.reservedMemory()
	if err != nil {
		return opt.Settings{}, err
	}
	settings := opt.Settings{
		MemorySlots:      p.Slots,
		NumRequiredSlots: p.RequiredSlots,
	}
	settings.ReservedMemory.Set(reserved)
	return settings, nil
}

func (p *Plan) GetDialect() (dialect.Dialect, error) {
	return dialect.ByName(p.Dialect)
}
