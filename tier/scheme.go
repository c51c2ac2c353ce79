package tier

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scheme names the levels of a deployment's device hierarchy.
//
// A scheme is pure documentation for humans and tooling: the calculus only
// ever sees masks. Schemes are loaded from YAML files of the form:
//
//	tiers:
//	  - name: edge
//	    bit: 0
//	  - name: fog
//	    bit: 1
//	  - name: cloud
//	    bit: 2
type Scheme struct {
	byName map[string]Tier
	byBit  map[Tier]string
	names  []string // in bit order
}

type schemeFile struct {
	Tiers []schemeEntry `yaml:"tiers"`
}

type schemeEntry struct {
	Name string `yaml:"name"`
	Bit  uint   `yaml:"bit"`
}

// LoadScheme parses a YAML tier scheme.
func LoadScheme(data []byte) (*Scheme, error) {
	var f schemeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse tier scheme: %w", err)
	}
	if len(f.Tiers) == 0 {
		return nil, fmt.Errorf("tier scheme declares no tiers")
	}

	s := &Scheme{
		byName: make(map[string]Tier, len(f.Tiers)),
		byBit:  make(map[Tier]string, len(f.Tiers)),
	}
	for _, e := range f.Tiers {
		if e.Name == "" {
			return nil, fmt.Errorf("tier with bit %d has no name", e.Bit)
		}
		if e.Bit >= 32 {
			return nil, fmt.Errorf("tier %q: bit %d out of range [0,32)", e.Name, e.Bit)
		}
		t := Tier(1) << e.Bit
		if _, dup := s.byName[e.Name]; dup {
			return nil, fmt.Errorf("duplicate tier name %q", e.Name)
		}
		if prev, dup := s.byBit[t]; dup {
			return nil, fmt.Errorf("tiers %q and %q share bit %d", prev, e.Name, e.Bit)
		}
		s.byName[e.Name] = t
		s.byBit[t] = e.Name
	}

	for t := Tier(1); t != 0; t <<= 1 {
		if n, ok := s.byBit[t]; ok {
			s.names = append(s.names, n)
		}
	}
	return s, nil
}

// Lookup returns the atomic tier for a level name.
func (s *Scheme) Lookup(name string) (Tier, bool) {
	t, ok := s.byName[name]
	return t, ok
}

// Names returns the declared level names in bit order.
func (s *Scheme) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Mask builds a tier set from level names.
func (s *Scheme) Mask(names ...string) (Tier, error) {
	var m Tier
	for _, n := range names {
		t, ok := s.byName[n]
		if !ok {
			return 0, fmt.Errorf("unknown tier name %q", n)
		}
		m |= t
	}
	return m, nil
}

// Format renders a tier set using the scheme's level names.
// Levels without a name render as bit<k>; All renders as "*".
func (s *Scheme) Format(m Tier) string {
	if m == All {
		return "*"
	}
	if m == None {
		return "-"
	}
	var parts []string
	for bit := 0; bit < 32; bit++ {
		t := Tier(1) << bit
		if m&t == 0 {
			continue
		}
		if n, ok := s.byBit[t]; ok {
			parts = append(parts, n)
		} else {
			parts = append(parts, fmt.Sprintf("bit%d", bit))
		}
	}
	return strings.Join(parts, "|")
}
