package plan

import (
	"fmt"
	"strings"
)

// ParsePolicy parses a policy name such as "keep-first".
func ParsePolicy(s string) (Policy, error) {
	for p := PolicyKeepFirst; p <= PolicyInline; p++ {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}

	return 0, fmt.Errorf("unknown split policy %q (want keep-first or inline)", s)
}

// ParseDestination parses a destination name such as "custom".
func ParseDestination(s string) (Destination, error) {
	for d := DestinationOriginal; d <= DestinationMerge; d++ {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}

	return 0, fmt.Errorf("unknown remaining destination %q (want original, custom or merge)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Destination) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty value means
// DestinationOriginal.
func (d *Destination) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = DestinationOriginal
		return nil
	}

	parsed, err := ParseDestination(string(text))
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}
