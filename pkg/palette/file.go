package palette

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bugu00/chorogrid/pkg/errors"
)

// LoadFile reads named palettes from a YAML file mapping palette names to
// color lists:
//
//	heat: ["#ffffcc", "#fd8d3c", "#800026"]
//	parties: ["#2166ac", "#b2182b"]
//
// Every color is validated; the file fails as a whole on the first bad
// entry.
func LoadFile(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "reading palette file %s", path)
	}

	var palettes map[string][]string
	if err := yaml.Unmarshal(data, &palettes); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPalette, err, "parsing palette file %s", path)
	}

	for name, colors := range palettes {
		if err := ValidateAll(colors); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPalette, err, "palette %q in %s", name, path)
		}
	}
	return palettes, nil
}
