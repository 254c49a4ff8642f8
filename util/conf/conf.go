package conf

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Generation holds the parameters of a generation run. Zero values are
// filled in by Default; flag handling in the app layer may override any
// of them after loading.
type Generation struct {
	BeamSize          int    `yaml:"beam size"`
	MaxSteps          int    `yaml:"max steps"`
	Seed              int64  `yaml:"seed"`
	Sentences         int    `yaml:"sentences"`
	RewriteRootLabels bool   `yaml:"rewrite root labels"`
	LabelMapFile      string `yaml:"label map"`
	TagMapFile        string `yaml:"tag map"`
	WordMapFile       string `yaml:"word map"`
}

func Default() *Generation {
	return &Generation{
		BeamSize:          8,
		MaxSteps:          200,
		Seed:              1,
		Sentences:         1,
		RewriteRootLabels: true,
	}
}

func Load(data []byte) (*Generation, error) {
	gen := Default()
	if err := yaml.Unmarshal(data, gen); err != nil {
		return nil, errors.Wrap(err, "unmarshalling generation conf")
	}
	return gen, nil
}

func LoadFile(filename string) (*Generation, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "reading generation conf")
	}
	return Load(data)
}
