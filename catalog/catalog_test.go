package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestBuiltinCatalog(t *testing.T) {
	c, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin catalog failed to load: %v", err)
	}
	if c.Len() != 20 {
		t.Errorf("Expected 20 vehicles, got %d", c.Len())
	}

	for _, v := range c.All() {
		if v.NitroPower <= 0 {
			t.Errorf("Vehicle %s has non-positive nitro power %.2f", v.ID, v.NitroPower)
		}
		if !strings.HasPrefix(v.Color, "#") {
			t.Errorf("Vehicle %s color %q is not hex", v.ID, v.Color)
		}
		// Auto-boost belongs to the SUPER tier only
		if v.AutoBoost != (v.Category == "SUPER") {
			t.Errorf("Vehicle %s: autoBoost=%v in category %s", v.ID, v.AutoBoost, v.Category)
		}
	}
}

func TestLookup(t *testing.T) {
	c, err := Builtin()
	if err != nil {
		t.Fatal(err)
	}

	v, err := c.Lookup("")
	if err != nil || v.ID != DefaultVehicleID {
		t.Errorf("Empty id should select default, got %+v, %v", v, err)
	}

	v, err = c.Lookup(" S10 ")
	if err != nil {
		t.Fatalf("Lookup s10: %v", err)
	}
	spec := v.Spec()
	if spec.NitroPower != 3.5 || !spec.AutoBoost || spec.Name != "Bill World Edition" {
		t.Errorf("Unexpected spec %+v", spec)
	}

	_, err = c.Lookup("batmobile")
	if !errors.Is(err, ErrUnknownVehicle) {
		t.Errorf("Expected ErrUnknownVehicle, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Syntax", `[[vehicle]` + "\n"},
		{"Empty", ``},
		{"MissingID", "[[vehicle]]\nname = \"Nameless\"\n"},
		{"Duplicate", "[[vehicle]]\nid = \"a\"\n[[vehicle]]\nid = \"a\"\n"},
		{"UnknownKey", "[[vehicle]]\nid = \"a\"\nprice = 3.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.data); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestAllReturnsCopy(t *testing.T) {
	c, err := Parse("[[vehicle]]\nid = \"a\"\nname = \"A\"\nnitro_power = 1.0\n")
	if err != nil {
		t.Fatal(err)
	}
	all := c.All()
	all[0].Name = "changed"
	if v, _ := c.Lookup("a"); v.Name != "A" {
		t.Error("All should not expose internal storage")
	}
}
