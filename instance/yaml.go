package instance

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvpack/knapsack"
)

// yamlInstance is the on-disk YAML layout.
type yamlInstance struct {
	Name     string     `yaml:"name,omitempty"`
	Capacity int        `yaml:"capacity"`
	Items    []yamlItem `yaml:"items"`
}

type yamlItem struct {
	Value  float64 `yaml:"value"`
	Weight int     `yaml:"weight"`
}

// ParseYAML decodes
//
//	name: optional
//	capacity: 11
//	items:
//	  - {value: 8, weight: 4}
func ParseYAML(r io.Reader) (Instance, error) {
	var doc yamlInstance
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return Instance{}, fmt.Errorf("%w: yaml: %w", ErrMalformed, err)
	}

	values := make([]float64, len(doc.Items))
	weights := make([]int, len(doc.Items))
	var i int
	for i = range doc.Items {
		values[i] = doc.Items[i].Value
		weights[i] = doc.Items[i].Weight
	}
	items, err := knapsack.NewItems(values, weights)
	if err != nil {
		return Instance{}, err
	}
	inst := Instance{Name: doc.Name, Capacity: doc.Capacity, Items: items}
	if err = inst.Validate(); err != nil {
		return Instance{}, err
	}

	return inst, nil
}

// WriteYAML encodes inst in the YAML layout.
func WriteYAML(w io.Writer, inst Instance) error {
	doc := yamlInstance{Name: inst.Name, Capacity: inst.Capacity, Items: make([]yamlItem, len(inst.Items))}
	var it knapsack.Item
	for _, it = range inst.Items {
		doc.Items[it.Index] = yamlItem{Value: it.Value, Weight: it.Weight}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}

	return enc.Close()
}
