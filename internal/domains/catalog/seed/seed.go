package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"cleanbook/internal/domains/catalog/model"
)

//go:embed services.yaml
var servicesYAML []byte

type Service struct {
	Name        string         `yaml:"name"`
	Category    string         `yaml:"category"`
	Description string         `yaml:"description"`
	BasePrice   int64          `yaml:"base_price"`
	PriceUnit   string         `yaml:"price_unit"`
	Duration    int            `yaml:"duration"`
	Features    []string       `yaml:"features"`
	Options     []model.Option `yaml:"options"`
}

type catalog struct {
	Services []Service `yaml:"services"`
}

// Services returns the default catalog embedded in the binary.
func Services() ([]Service, error) {
	return Parse(servicesYAML)
}

func Parse(raw []byte) ([]Service, error) {
	var c catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to parse service seed: %w", err)
	}

	return c.Services, nil
}
