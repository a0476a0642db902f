// SPDX-License-Identifier: MIT

package sketch

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/pdsketch/pd"
)

// YAML format:
//
//	records:
//	  - point: [0, 0]
//	    plan:
//	      - {point: [0, 0], mass: 10}
//	  - point: [1, 4]
//	    parent: 0
//	    plan:
//	      - {point: [0, 0], mass: -3}
//	      - {point: [1, 4], mass: 3}
//
// A missing or null parent is NoParent.
type yamlDoc struct {
	Records []yamlRecord `yaml:"records"`
}

type yamlRecord struct {
	Point  [2]float64  `yaml:"point,flow"`
	Parent *int        `yaml:"parent,omitempty"`
	Plan   []yamlEntry `yaml:"plan"`
}

type yamlEntry struct {
	Point [2]float64 `yaml:"point,flow"`
	Mass  int        `yaml:"mass"`
}

func encodeYAML(w io.Writer, records []Record) error {
	doc := yamlDoc{Records: make([]yamlRecord, len(records))}
	for i, r := range records {
		yr := yamlRecord{
			Point: [2]float64{r.Point.Birth, r.Point.Death},
			Plan:  make([]yamlEntry, 0, len(r.Delta)),
		}
		if r.Parent != NoParent {
			parent := r.Parent
			yr.Parent = &parent
		}
		for _, p := range r.Delta.Keys() {
			yr.Plan = append(yr.Plan, yamlEntry{Point: [2]float64{p.Birth, p.Death}, Mass: r.Delta[p]})
		}
		doc.Records[i] = yr
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("sketch: yaml encode: %w", err)
	}

	return enc.Close()
}

func decodeYAML(r io.Reader) ([]Record, error) {
	var doc yamlDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, fmt.Errorf("sketch: yaml decode: %w: %w", ErrFormat, err)
	}

	records := make([]Record, len(doc.Records))
	for i, yr := range doc.Records {
		rec := Record{
			Point:  pd.P(yr.Point[0], yr.Point[1]),
			Parent: NoParent,
			Delta:  pd.NewPlan(len(yr.Plan)),
		}
		if yr.Parent != nil {
			if *yr.Parent < 0 {
				return nil, fmt.Errorf("sketch: record %d: parent %d is negative: %w", i, *yr.Parent, ErrFormat)
			}
			rec.Parent = *yr.Parent
		}
		if rec.Point.HasNaN() {
			return nil, fmt.Errorf("sketch: record %d: %w: %w", i, ErrFormat, pd.ErrBadPoint)
		}
		for _, e := range yr.Plan {
			p := pd.P(e.Point[0], e.Point[1])
			if p.HasNaN() {
				return nil, fmt.Errorf("sketch: record %d: plan key: %w: %w", i, ErrFormat, pd.ErrBadPoint)
			}
			rec.Delta.Add(p, e.Mass)
		}
		records[i] = rec
	}

	return records, nil
}
