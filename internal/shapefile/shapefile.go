// Package shapefile loads YAML descriptions of placed-value shapes for
// inspection tooling. A shape file bundles a tier scheme with a list of named
// shape expressions, each pinned to the device tier it should be resolved at:
//
//	scheme:
//	  tiers:
//	    - name: edge
//	      bit: 0
//	    - name: cloud
//	      bit: 1
//
//	shapes:
//	  - name: reading
//	    at: edge
//	    shape:
//	      placed:
//	        p: [edge]
//	        q: [edge, cloud]
//	        elem:
//	          scalar: double
//
// Shape nodes are one-of: scalar, field, placed, tuple, array. Tier sets are
// lists of scheme level names, with "*" standing for every tier; an absent p
// defaults to every tier and an absent q to none.
package shapefile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/fieldcalc/fieldcalc/placed"
	"github.com/fieldcalc/fieldcalc/tier"
)

// File is a parsed shape file.
type File struct {
	Scheme *tier.Scheme
	Shapes []Entry
}

// Entry is one named shape expression with its device tier.
type Entry struct {
	Name   string
	AtName string
	At     tier.Tier
	Shape  placed.Shape
}

type fileDoc struct {
	Scheme yaml.Node  `yaml:"scheme"`
	Shapes []entryDoc `yaml:"shapes"`
}

type entryDoc struct {
	Name  string   `yaml:"name"`
	At    string   `yaml:"at"`
	Shape *nodeDoc `yaml:"shape"`
}

// nodeDoc is the one-of encoding of a shape node. Exactly one branch may be
// set; Scalar disambiguates absence from the empty string via a pointer.
type nodeDoc struct {
	Scalar *string    `yaml:"scalar,omitempty"`
	Field  *nodeDoc   `yaml:"field,omitempty"`
	Placed *placedDoc `yaml:"placed,omitempty"`
	Tuple  []*nodeDoc `yaml:"tuple,omitempty"`
	Array  *arrayDoc  `yaml:"array,omitempty"`
}

type placedDoc struct {
	Tier string   `yaml:"tier,omitempty"` // defaults to the entry's device tier
	P    []string `yaml:"p,omitempty"`
	Q    []string `yaml:"q,omitempty"`
	Elem *nodeDoc `yaml:"elem"`
}

type arrayDoc struct {
	Len  int      `yaml:"len"`
	Elem *nodeDoc `yaml:"elem"`
}

// Load parses a combined scheme-and-shapes document.
func Load(data []byte) (*File, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse shape file: %w", err)
	}
	if doc.Scheme.IsZero() {
		return nil, fmt.Errorf("shape file declares no tier scheme")
	}
	raw, err := yaml.Marshal(&doc.Scheme)
	if err != nil {
		return nil, fmt.Errorf("re-encode tier scheme: %w", err)
	}
	scheme, err := tier.LoadScheme(raw)
	if err != nil {
		return nil, err
	}
	return build(scheme, doc.Shapes)
}

// Parse parses a shapes-only document against an already-loaded scheme. A
// scheme section in the document is ignored.
func Parse(scheme *tier.Scheme, data []byte) (*File, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse shape file: %w", err)
	}
	return build(scheme, doc.Shapes)
}

func build(scheme *tier.Scheme, docs []entryDoc) (*File, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("shape file declares no shapes")
	}
	f := &File{Scheme: scheme}
	seen := make(map[string]bool, len(docs))
	for i, d := range docs {
		if d.Name == "" {
			return nil, fmt.Errorf("shape %d has no name", i)
		}
		if seen[d.Name] {
			return nil, fmt.Errorf("duplicate shape name %q", d.Name)
		}
		seen[d.Name] = true
		at, ok := scheme.Lookup(d.At)
		if !ok {
			return nil, fmt.Errorf("shape %q: unknown device tier %q", d.Name, d.At)
		}
		if d.Shape == nil {
			return nil, fmt.Errorf("shape %q has no shape expression", d.Name)
		}
		s, err := buildNode(scheme, at, d.Shape)
		if err != nil {
			return nil, fmt.Errorf("shape %q: %w", d.Name, err)
		}
		f.Shapes = append(f.Shapes, Entry{Name: d.Name, AtName: d.At, At: at, Shape: s})
	}
	return f, nil
}

func buildNode(scheme *tier.Scheme, at tier.Tier, n *nodeDoc) (placed.Shape, error) {
	branches := 0
	if n.Scalar != nil {
		branches++
	}
	if n.Field != nil {
		branches++
	}
	if n.Placed != nil {
		branches++
	}
	if n.Tuple != nil {
		branches++
	}
	if n.Array != nil {
		branches++
	}
	if branches != 1 {
		return nil, fmt.Errorf("shape node must have exactly one of scalar, field, placed, tuple, array")
	}

	switch {
	case n.Scalar != nil:
		if *n.Scalar == "" {
			return nil, fmt.Errorf("scalar node has no type name")
		}
		return placed.Scalar{Name: *n.Scalar}, nil

	case n.Field != nil:
		elem, err := buildNode(scheme, at, n.Field)
		if err != nil {
			return nil, err
		}
		return placed.FieldLeaf{Elem: elem}, nil

	case n.Placed != nil:
		return buildPlaced(scheme, at, n.Placed)

	case n.Tuple != nil:
		elems := make([]placed.Shape, len(n.Tuple))
		for i, e := range n.Tuple {
			sub, err := buildNode(scheme, at, e)
			if err != nil {
				return nil, err
			}
			elems[i] = sub
		}
		return placed.Product{Elems: elems}, nil

	default:
		if n.Array.Len <= 0 {
			return nil, fmt.Errorf("array node has non-positive length %d", n.Array.Len)
		}
		if n.Array.Elem == nil {
			return nil, fmt.Errorf("array node has no element")
		}
		elem, err := buildNode(scheme, at, n.Array.Elem)
		if err != nil {
			return nil, err
		}
		return placed.ArrayOf{Elem: elem, Len: n.Array.Len}, nil
	}
}

func buildPlaced(scheme *tier.Scheme, at tier.Tier, d *placedDoc) (placed.Shape, error) {
	t := at
	if d.Tier != "" {
		var ok bool
		if t, ok = scheme.Lookup(d.Tier); !ok {
			return nil, fmt.Errorf("unknown device tier %q", d.Tier)
		}
	}
	p, err := maskOf(scheme, d.P, tier.All)
	if err != nil {
		return nil, err
	}
	q, err := maskOf(scheme, d.Q, tier.None)
	if err != nil {
		return nil, err
	}
	if d.Elem == nil {
		return nil, fmt.Errorf("placed node has no element")
	}
	elem, err := buildNode(scheme, at, d.Elem)
	if err != nil {
		return nil, err
	}
	return placed.PlacedLeaf{
		Place: placed.Placement{Tier: t, P: p, Q: q},
		Elem:  elem,
	}, nil
}

// maskOf turns a list of level names into a tier set. An absent list yields
// def; the single name "*" yields every tier.
func maskOf(scheme *tier.Scheme, names []string, def tier.Tier) (tier.Tier, error) {
	if names == nil {
		return def, nil
	}
	if len(names) == 1 && names[0] == "*" {
		return tier.All, nil
	}
	return scheme.Mask(names...)
}
