package theme

import "testing"

func TestByNameFallsBack(t *testing.T) {
	if got := ByName("tokyo-night").Name; got != "tokyo-night" {
		t.Errorf("ByName(tokyo-night) = %q", got)
	}
	if got := ByName("no-such-theme").Name; got != FlexokiDark.Name {
		t.Errorf("ByName(unknown) = %q, want %q", got, FlexokiDark.Name)
	}
}

func TestNextWraps(t *testing.T) {
	name := All[0].Name
	for range All {
		name = Next(name).Name
	}
	if name != All[0].Name {
		t.Errorf("cycling through all themes ended on %q, want %q", name, All[0].Name)
	}
	if got := Next("unknown").Name; got != All[0].Name {
		t.Errorf("Next(unknown) = %q, want %q", got, All[0].Name)
	}
}
