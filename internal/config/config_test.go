package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func TestParsePlan(t *testing.T) {
	data := []byte(`
dialect = "evm-object"
reserved_memory = "0x80"
required_slots = 3

[slots]
x = 0
y = 2
`)
	plan, err := ParsePlan(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Dialect != "evm-object" || plan.RequiredSlots != 3 {
		t.Errorf("unexpected plan: %+v", plan)
	}
	if !reflect.DeepEqual(plan.Slots, map[string]uint64{"x": 0, "y": 2}) {
		t.Errorf("unexpected slots: %v", plan.Slots)
	}

	settings, err := plan.Settings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.ReservedMemory.Uint64() != 0x80 {
		t.Errorf("unexpected reserved memory: %s", settings.ReservedMemory.Hex())
	}
	if settings.NumRequiredSlots != 3 || len(settings.MemorySlots) != 2 {
		t.Errorf("unexpected settings: %+v", settings)
	}

	d, err := plan.GetDialect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.ProvidesObjectAccess() {
		t.Errorf("expected a dialect with object access")
	}
}

func TestParsePlanDefaults(t *testing.T) {
	plan, err := ParsePlan([]byte(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Slots == nil || len(plan.Slots) != 0 {
		t.Errorf("expected empty slots, got %v", plan.Slots)
	}
	settings, err := plan.Settings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !settings.ReservedMemory.IsZero() {
		t.Errorf("expected zero reserved memory, got %s", settings.ReservedMemory.Hex())
	}
}

func TestParsePlanDecimalReservedMemory(t *testing.T) {
	plan, err := ParsePlan([]byte(`reserved_memory = "256"`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	settings, err := plan.Settings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.ReservedMemory.Uint64() != 256 {
		t.Errorf("unexpected reserved memory: %s", settings.ReservedMemory.Hex())
	}
}

func TestParsePlanErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		err   string
	}{
		{
			name:  "slot out of range",
			input: "required_slots = 1\n[slots]\nx = 1\n",
			err:   "slot 1 of variable x is out of range",
		},
		{
			name:  "invalid reserved memory",
			input: `reserved_memory = "0xzz"`,
			err:   "invalid reserved_memory",
		},
		{
			name:  "unknown dialect",
			input: `dialect = "ewasm"`,
			err:   "ewasm",
		},
		{
			name:  "unknown field",
			input: `reserved = 1`,
			err:   "failed to parse plan",
		},
		{
			name:  "malformed",
			input: `required_slots = `,
			err:   "failed to parse plan",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePlan([]byte(tc.input))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), tc.err) {
				t.Errorf("expected error containing %q, got %q", tc.err, err.Error())
			}
		})
	}
}

func TestLoadPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.toml")
	if err := os.WriteFile(path, []byte("required_slots = 1\n[slots]\na = 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	plan, err := LoadPlan(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Slots["a"] != 0 || plan.RequiredSlots != 1 {
		t.Errorf("unexpected plan: %+v", plan)
	}

	if _, err := LoadPlan(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestParsePlanReportsAllErrors(t *testing.T) {
	input := `
reserved_memory = "0xzz"
required_slots = 1

[slots]
a = 0
b = 1
c = 5
`
	_, err := ParsePlan([]byte(input))
	if err == nil {
		t.Fatalf("expected an error")
	}
	errs := multierr.Errors(err)
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), err)
	}
	if !strings.Contains(errs[0].Error(), "invalid reserved_memory") {
		t.Errorf("unexpected first error: %v", errs[0])
	}
	if !strings.Contains(errs[1].Error(), "variable b") || !strings.Contains(errs[2].Error(), "variable c") {
		t.Errorf("expected slot errors in name order, got %v", err)
	}
}
