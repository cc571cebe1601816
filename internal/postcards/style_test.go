package postcards

import (
	"image/color"
	"testing"
)

// testTheme returns a fully populated theme with a distinct color per road
// class so tests can tell the classes apart.
func testTheme() *Theme {
	return &Theme{
		Name:            "Test",
		Description:     "test palette",
		Background:      "#F5F1E8",
		Text:            "#2B2B2B",
		Water:           "#A8C3BC",
		Parks:           "#E4E0D0",
		RoadMotorway:    "#111111",
		RoadPrimary:     "#222222",
		RoadSecondary:   "#333333",
		RoadTertiary:    "#444444",
		RoadResidential: "#555555",
		RoadDefault:     "#666666",
		GradientColor:   "#F5F1E8",
	}
}

func TestRoadColor(t *testing.T) {
	theme := testTheme()

	cases := []struct {
		highway string
		want    string
	}{
		{"motorway", theme.RoadMotorway},
		{"motorway_link", theme.RoadMotorway},
		{"trunk", theme.RoadPrimary},
		{"trunk_link", theme.RoadPrimary},
		{"primary", theme.RoadPrimary},
		{"primary_link", theme.RoadPrimary},
		{"secondary", theme.RoadSecondary},
		{"secondary_link", theme.RoadSecondary},
		{"tertiary", theme.RoadTertiary},
		{"tertiary_link", theme.RoadTertiary},
		{"residential", theme.RoadResidential},
		{"living_street", theme.RoadResidential},
		{"unclassified", theme.RoadResidential},
		{"", theme.RoadResidential},
		{"footway", theme.RoadDefault},
		{"cycleway", theme.RoadDefault},
		{"busway", theme.RoadDefault},
		{"motorway;primary", theme.RoadMotorway},
		{"residential;service", theme.RoadResidential},
	}
	for _, tc := range cases {
		if got := RoadColor(tc.highway, theme); got != tc.want {
			t.Errorf("RoadColor(%q): expected %s, got %s", tc.highway, tc.want, got)
		}
	}
}

func TestRoadWidth(t *testing.T) {
	cases := []struct {
		highway string
		want    float64
	}{
		{"motorway", 1.2},
		{"motorway_link", 1.2},
		{"trunk", 1.0},
		{"primary", 1.0},
		{"primary_link", 1.0},
		{"secondary", 0.8},
		{"secondary_link", 0.8},
		{"tertiary", 0.6},
		{"tertiary_link", 0.6},
		{"residential", 0.4},
		{"unclassified", 0.4},
		{"footway", 0.4},
		{"", 0.4},
		{"secondary;tertiary", 0.8},
	}
	for _, tc := range cases {
		if got := RoadWidth(tc.highway); got != tc.want {
			t.Errorf("RoadWidth(%q): expected %v, got %v", tc.highway, tc.want, got)
		}
	}
}

func TestFadeRamp(t *testing.T) {
	base := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	ramp := fadeRamp(base)

	if len(ramp) != 256 {
		t.Fatalf("expected 256 steps, got %d", len(ramp))
	}
	if ramp[0].A != 255 {
		t.Errorf("expected first step fully opaque, got alpha %d", ramp[0].A)
	}
	if ramp[len(ramp)-1].A != 0 {
		t.Errorf("expected last step fully transparent, got alpha %d", ramp[len(ramp)-1].A)
	}
	for i := 1; i < len(ramp); i++ {
		if ramp[i].A > ramp[i-1].A {
			t.Fatalf("alpha increased at step %d: %d > %d", i, ramp[i].A, ramp[i-1].A)
		}
	}
	for i, c := range ramp {
		if c.R != base.R || c.G != base.G || c.B != base.B {
			t.Fatalf("step %d changed the base color: %+v", i, c)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	t.Run("six digit", func(t *testing.T) {
		c, err := parseHexColor("#FFAA00")
		if err != nil {
			t.Fatal(err)
		}
		want := color.NRGBA{R: 255, G: 170, B: 0, A: 255}
		if c != want {
			t.Errorf("expected %+v, got %+v", want, c)
		}
	})

	t.Run("three digit", func(t *testing.T) {
		c, err := parseHexColor("#fa0")
		if err != nil {
			t.Fatal(err)
		}
		want := color.NRGBA{R: 255, G: 170, B: 0, A: 255}
		if c != want {
			t.Errorf("expected %+v, got %+v", want, c)
		}
	})

	t.Run("invalid inputs", func(t *testing.T) {
		for _, s := range []string{"", "FFAA00", "#12345", "#GGHHII", "#1234567"} {
			if _, err := parseHexColor(s); err == nil {
				t.Errorf("expected error for %q", s)
			}
		}
	})
}
