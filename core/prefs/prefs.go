package prefs

import (
	"fmt"
	"strings"
)

// Preference names used in change notifications.
const (
	NameOctaves     = "pref_octaves"
	NameRows        = "pref_rows"
	NameDamper      = "pref_damper"
	NameOrientation = "pref_orient"
)

// Names lists every preference in settings-menu order.
var Names = []string{NameOctaves, NameRows, NameDamper, NameOrientation}

// OctaveRange selects which 24 sample assets back the keyboard.
type OctaveRange int

const (
	OctavesLow  OctaveRange = iota // octaves 3 and 4
	OctavesMid                     // octaves 3 and 5
	OctavesHigh                    // octaves 4 and 5
)

var octaveText = []string{"low", "mid", "high"}

func (o OctaveRange) String() string { return enumString(octaveText, int(o)) }

// AssetIndex maps a note index to the sample asset it plays under o.
func (o OctaveRange) AssetIndex(note int) int {
	switch o {
	case OctavesHigh:
		return note + 12
	case OctavesMid:
		return note + (note/12)*12
	default:
		return note
	}
}

// Next cycles low → mid → high → low.
func (o OctaveRange) Next() OctaveRange { return (o + 1) % OctaveRange(len(octaveText)) }

func (o OctaveRange) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *OctaveRange) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "low", "34", "3-4":
		*o = OctavesLow
	case "mid", "35", "3-5":
		*o = OctavesMid
	case "high", "45", "4-5":
		*o = OctavesHigh
	default:
		return fmt.Errorf("unknown octave range %q", b)
	}
	return nil
}

// RowOrder decides which octave sits in the lower screen row.
type RowOrder int

const (
	// LowerRowHigherOctave keeps notes 0..11 in the upper row.
	LowerRowHigherOctave RowOrder = iota
	// LowerRowLowerOctave swaps the rows.
	LowerRowLowerOctave
)

var rowText = []string{"lower-row-higher-octave", "lower-row-lower-octave"}

func (r RowOrder) String() string { return enumString(rowText, int(r)) }

// Swapped reports whether regions i and i+12 are exchanged.
func (r RowOrder) Swapped() bool { return r == LowerRowLowerOctave }

func (r RowOrder) Toggle() RowOrder {
	if r == LowerRowLowerOctave {
		return LowerRowHigherOctave
	}
	return LowerRowLowerOctave
}

func (r RowOrder) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *RowOrder) UnmarshalText(b []byte) error {
	v, err := parseEnum(rowText, "row order", b)
	if err != nil {
		return err
	}
	*r = RowOrder(v)
	return nil
}

// Damper decides whether a sound stops when its key is released.
type Damper int

const (
	Sustain Damper = iota
	Dampen
)

var damperText = []string{"sustain", "dampen"}

func (d Damper) String() string { return enumString(damperText, int(d)) }

func (d Damper) Toggle() Damper {
	if d == Dampen {
		return Sustain
	}
	return Dampen
}

func (d Damper) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Damper) UnmarshalText(b []byte) error {
	v, err := parseEnum(damperText, "damper", b)
	if err != nil {
		return err
	}
	*d = Damper(v)
	return nil
}

// Orientation is the requested window orientation.
type Orientation int

const (
	OrientAuto Orientation = iota
	OrientLandscape
	OrientPortrait
)

var orientText = []string{"auto", "landscape", "portrait"}

func (o Orientation) String() string { return enumString(orientText, int(o)) }

func (o Orientation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Orientation) UnmarshalText(b []byte) error {
	v, err := parseEnum(orientText, "orientation", b)
	if err != nil {
		return err
	}
	*o = Orientation(v)
	return nil
}

// Preferences is a snapshot of every user preference.
type Preferences struct {
	Octaves     OctaveRange `yaml:"octaves"`
	Rows        RowOrder    `yaml:"rows"`
	Damper      Damper      `yaml:"damper"`
	Orientation Orientation `yaml:"orientation"`
}

func Default() Preferences {
	return Preferences{
		Octaves:     OctavesLow,
		Rows:        LowerRowHigherOctave,
		Damper:      Sustain,
		Orientation: OrientAuto,
	}
}

// Set parses value into the preference called name.
func (p *Preferences) Set(name, value string) error {
	b := []byte(value)
	switch name {
	case NameOctaves:
		return p.Octaves.UnmarshalText(b)
	case NameRows:
		return p.Rows.UnmarshalText(b)
	case NameDamper:
		return p.Damper.UnmarshalText(b)
	case NameOrientation:
		return p.Orientation.UnmarshalText(b)
	}
	return fmt.Errorf("unknown preference %q", name)
}

// Get returns the text value of the preference called name.
func (p Preferences) Get(name string) string {
	switch name {
	case NameOctaves:
		return p.Octaves.String()
	case NameRows:
		return p.Rows.String()
	case NameDamper:
		return p.Damper.String()
	case NameOrientation:
		return p.Orientation.String()
	}
	return ""
}

// Choices lists the accepted text values of a preference.
func Choices(name string) []string {
	switch name {
	case NameOctaves:
		return append([]string(nil), octaveText...)
	case NameRows:
		return append([]string(nil), rowText...)
	case NameDamper:
		return append([]string(nil), damperText...)
	case NameOrientation:
		return append([]string(nil), orientText...)
	}
	return nil
}

func enumString(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return "unknown"
	}
	return names[v]
}

func parseEnum(names []string, what string, b []byte) (int, error) {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", what, b)
}
