package cellbuf

import "testing"

func TestRGBPacksComponents(t *testing.T) {
	c := RGB(0x12, 0x34, 0x56)
	if c.Value != 0x123456 {
		t.Errorf("value = %06x", c.Value)
	}
	r, g, b := c.RGBComponents()
	if r != 0x12 || g != 0x34 || b != 0x56 {
		t.Errorf("components = %02x %02x %02x", r, g, b)
	}
}

func TestHexParsing(t *testing.T) {
	if c := Hex("#ff8000"); c != RGB(0xff, 0x80, 0x00) {
		t.Errorf("hex with hash = %+v", c)
	}
	if c := Hex("00ff00"); c != RGB(0, 0xff, 0) {
		t.Errorf("bare hex = %+v", c)
	}
	if c := Hex("zzz"); c.IsSet() {
		t.Errorf("invalid hex produced %+v", c)
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want Color
	}{
		{"red", Red},
		{"Light Blue", Color{}},
		{"lightblue", LightBlue},
		{"default", Default()},
		{"#102030", RGB(0x10, 0x20, 0x30)},
		{"214", Indexed(214)},
	}
	for _, tc := range cases {
		got, err := ParseColor(tc.in)
		if tc.want == (Color{}) {
			if err == nil {
				t.Errorf("ParseColor(%q) accepted, want error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestColorZeroValueUnset(t *testing.T) {
	var c Color
	if c.IsSet() {
		t.Error("zero color reports set")
	}
	if !Default().IsSet() {
		t.Error("explicit default reports unset")
	}
}
