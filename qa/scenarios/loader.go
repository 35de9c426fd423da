// Package scenarios runs YAML-defined dispatch scenarios against the real
// dispatcher stack. Each scenario describes a case, a dispatcher block and
// the expected per-period outcome; module-backed scenarios carry the module
// script inline.
package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wenchichenginl/HERON/core/model"
)

type CaseDef struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
	Num   int     `yaml:"num"`
}

type ComponentDef struct {
	Name     string   `yaml:"name"`
	Produces []string `yaml:"produces,omitempty"`
	Consumes []string `yaml:"consumes,omitempty"`
	Stores   []string `yaml:"stores,omitempty"`
}

func (c ComponentDef) ToModel() model.Component {
	return model.Component{
		Name:     c.Name,
		Produces: c.Produces,
		Consumes: c.Consumes,
		Stores:   c.Stores,
	}
}

type DispatcherDef struct {
	Type string         `yaml:"type"`
	Conf map[string]any `yaml:"conf,omitempty"`
}

type Expected struct {
	// Totals is the expected per-period activity total for each resource,
	// summed across components.
	Totals map[string]float64 `yaml:"totals"`
	// Unfilled is the expected number of series left missing or all-zero.
	Unfilled int `yaml:"unfilled,omitempty"`
}

type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Case        CaseDef        `yaml:"case"`
	Components  []ComponentDef `yaml:"components"`
	Dispatcher  DispatcherDef  `yaml:"dispatcher"`
	// Module, when set, is written to dispatch.sh in the scenario run dir.
	Module   string   `yaml:"module,omitempty"`
	Periods  int      `yaml:"periods,omitempty"`
	Expected Expected `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
