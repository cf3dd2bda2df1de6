package frame

import (
	"fmt"
	"strings"
)

// Profile holds the machine constants of one stud section.
// Values are in inches and must match the roll-former tooling.
type Profile struct {
	StudWidth      float64 // web depth
	StudHeight     float64 // flange height
	WebHoleSpacing float64 // pitch of fastener holes in face-to-face laps
	EndOffset      float64 // dimple inset from a formed end
	DimpleStandoff float64 // dimple to web standoff of a T terminal
	Clearance      float64 // pad on each side of an insertion opening
	Pitch          float64 // spacing of repeated clearance operations
	FinalPad       float64 // reach of the last interior cut past a branch dimple
}

// DefaultProfile returns the 3.5 x 1.5 stud profile
func DefaultProfile() Profile {
	return Profile{
		StudWidth:      3.5,
		StudHeight:     1.5,
		WebHoleSpacing: 15.0 / 16.0,
		EndOffset:      0.75,
		DimpleStandoff: 0.45,
		Clearance:      0.25,
		Pitch:          1.25,
		FinalPad:       0.5,
	}
}

// Validate checks that every dimension is positive
func (p Profile) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"stud width", p.StudWidth},
		{"stud height", p.StudHeight},
		{"web hole spacing", p.WebHoleSpacing},
		{"end offset", p.EndOffset},
		{"dimple standoff", p.DimpleStandoff},
		{"clearance", p.Clearance},
		{"pitch", p.Pitch},
		{"final pad", p.FinalPad},
	}
	for _, f := range fields {
		if f.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidProfile, f.name, f.value)
		}
	}
	return nil
}

// ExtensionType selects how far a face-to-face member runs past the lap
type ExtensionType int

const (
	// ExtendFull covers the other stud's whole footprint.
	ExtendFull ExtensionType = iota
	// ExtendFlush stops where the centerline meets the other stud's edge.
	ExtendFlush
	// ExtendNone leaves the end where it is.
	ExtendNone
)

var extensionNames = [...]string{
	ExtendFull:  "full",
	ExtendFlush: "flush",
	ExtendNone:  "none",
}

func (e ExtensionType) String() string {
	if e < 0 || int(e) >= len(extensionNames) {
		return fmt.Sprintf("ExtensionType(%d)", int(e))
	}
	return extensionNames[e]
}

// ParseExtensionType accepts a name ("full", "flush", "none") or its number
func ParseExtensionType(s string) (ExtensionType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range extensionNames {
		if s == name || s == fmt.Sprint(i) {
			return ExtensionType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown extension type %q", s)
}
