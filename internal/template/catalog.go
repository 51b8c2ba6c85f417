package template

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var catalogYAML []byte

type catalog struct {
	Grid     []Template `yaml:"grid"`
	Advanced []Template `yaml:"advanced"`
	Cover    []Template `yaml:"cover"`
}

// loadCatalog parses the embedded system catalog. The file ships inside the
// binary, so a parse or validation failure is a build defect and panics.
func loadCatalog() catalog {
	var c catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		panic("failed to unmarshal embedded templates.yaml: " + err.Error())
	}
	if len(c.Grid) == 0 {
		panic("embedded templates.yaml has no grid templates")
	}
	for _, bucket := range [][]Template{c.Grid, c.Advanced, c.Cover} {
		for _, t := range bucket {
			if err := t.Validate(); err != nil {
				panic(fmt.Sprintf("embedded templates.yaml: %v", err))
			}
		}
	}
	return c
}
