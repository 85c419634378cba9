package gen

import "github.com/koskimas/json2code/internal/ir"

// Manifest lists everything generated by one run, in processing order.
type Manifest struct {
	Units []ManifestUnit `yaml:"units"`
}

type ManifestUnit struct {
	File    string   `yaml:"file"`
	Outputs []string `yaml:"outputs"`
	Records []string `yaml:"records"`
	Routes  []string `yaml:"routes"`
}

func (m *Manifest) Add(unit *ir.Unit, outputs []File) {
	u := ManifestUnit{
		File:    unit.File,
		Outputs: make([]string, 0, len(outputs)),
		Records: make([]string, 0, len(unit.Records)),
		Routes:  make([]string, 0, len(unit.Routes)),
	}

	for _, o := range outputs {
		u.Outputs = append(u.Outputs, o.Path)
	}

	for _, r := range unit.Records {
		u.Records = append(u.Records, r.Name)
	}

	for _, r := range unit.Routes {
		u.Routes = append(u.Routes, r.Nickname)
	}

	m.Units = append(m.Units, u)
}

func (m *Manifest) Render() ([]byte, error) {
	return marshalYaml(m)
}
