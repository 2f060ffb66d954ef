package extractor

import (
	"errors"
	"fmt"
	"strings"
)

// DescriptorSuffix terminates every precomputed descriptor file name.
const DescriptorSuffix = ".descr"

// ErrUnknownExtractor is returned when parsing an unsupported extractor name.
var ErrUnknownExtractor = errors.New("extractor: unknown extractor type")

// Type enumerates the supported detector/extractor configurations.
type Type int

const (
	ORB Type = iota
	BRISK
	AKAZE
	KAZE
	SIFT
)

// Types lists every supported extractor type.
var Types = []Type{ORB, BRISK, AKAZE, KAZE, SIFT}

func (t Type) String() string {
	switch t {
	case ORB:
		return "ORB"
	case BRISK:
		return "BRISK"
	case AKAZE:
		return "AKAZE"
	case KAZE:
		return "KAZE"
	case SIFT:
		return "SIFT"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid reports whether t is a supported extractor type.
func (t Type) Valid() bool { return t >= ORB && t <= SIFT }

// Binary reports whether the extractor emits binary (uint8 bit-string) descriptors.
func (t Type) Binary() bool { return t == ORB || t == BRISK || t == AKAZE }

// DescriptorEnding returns the suffix of descriptor files for t, e.g. ".orb.descr".
func (t Type) DescriptorEnding() string {
	return "." + strings.ToLower(t.String()) + DescriptorSuffix
}

// ParseType parses a case-insensitive extractor name; empty means ORB.
func ParseType(name string) (Type, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ORB, nil
	}
	for _, t := range Types {
		if strings.EqualFold(t.String(), name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownExtractor, name)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownExtractor, int(t))
	}
	return []byte(strings.ToLower(t.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
