package board

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition is the plain-data form of a board, as written in YAML files.
type Definition struct {
	Tiles     []Tile               `yaml:"tiles"`
	Relations []RelationDefinition `yaml:"relations"`
}

// RelationDefinition declares one relation. Setting Reverse also declares the
// opposite relation (To -> From) in that direction with the same distance.
type RelationDefinition struct {
	From      Tile      `yaml:"from"`
	To        Tile      `yaml:"to"`
	Direction Direction `yaml:"direction"`
	Distance  int       `yaml:"distance"`
	Reverse   Direction `yaml:"reverse,omitempty"`
}

// Compile turns the definition into a Board. A missing distance defaults to 1.
func (d Definition) Compile() (*Board, error) {
	relations := make([]Relation, 0, len(d.Relations))
	for _, rd := range d.Relations {
		distance := rd.Distance
		if distance == 0 {
			distance = 1
		}
		relations = append(relations, Relation{From: rd.From, To: rd.To, Direction: rd.Direction, Distance: distance})
		if rd.Reverse != "" {
			relations = append(relations, Relation{From: rd.To, To: rd.From, Direction: rd.Reverse, Distance: distance})
		}
	}
	return New(d.Tiles, relations)
}

// Decode reads a YAML board definition and compiles it.
func Decode(r io.Reader) (*Board, error) {
	var def Definition
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("board: decode definition: %w", err)
	}
	return def.Compile()
}

// Load reads and compiles the YAML board definition at path.
func Load(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}
	defer f.Close()

	b, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return b, nil
}
