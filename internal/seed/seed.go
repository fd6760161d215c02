// Package seed loads client, location and resource fixtures from YAML.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/nurpe/agrojobs/internal/model"
	"github.com/nurpe/agrojobs/internal/service"
)

//go:embed default.yaml
var defaultFixtures []byte

type Fixtures struct {
	Clients   []ClientFixture `yaml:"clients"`
	Resources struct {
		Machinery []ResourceFixture `yaml:"machinery"`
		Operators []ResourceFixture `yaml:"operators"`
	} `yaml:"resources"`
}

type ClientFixture struct {
	Name      string            `yaml:"name"`
	Type      string            `yaml:"type"`
	Locations []LocationFixture `yaml:"locations"`
}

type LocationFixture struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

type ResourceFixture struct {
	Name       string `yaml:"name"`
	HourlyRate string `yaml:"hourly_rate"`
	Active     *bool  `yaml:"active"`
}

type ClientCreator interface {
	CreateClient(ctx context.Context, principal model.Principal, input service.CreateClientInput) (*model.Client, error)
}

type ResourceCreator interface {
	CreateResource(ctx context.Context, principal model.Principal, kind model.ResourceKind, input service.ResourceInput) (*model.Resource, error)
}

type Result struct {
	Clients   int
	Locations int
	Resources int
}

// Default returns the built-in fixtures: two sample clients with their
// locations.
func Default() (*Fixtures, error) {
	return Parse(defaultFixtures)
}

func Read(r io.Reader) (*Fixtures, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Fixtures, error) {
	var fixtures Fixtures
	if err := yaml.Unmarshal(raw, &fixtures); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &fixtures, nil
}

// Apply creates every fixture through the services so the usual
// validation applies. It stops at the first failure.
func Apply(ctx context.Context, fixtures *Fixtures, principal model.Principal, clients ClientCreator, resources ResourceCreator) (Result, error) {
	var result Result

	for i, c := range fixtures.Clients {
		input := service.CreateClientInput{Name: c.Name, Type: c.Type}
		for _, loc := range c.Locations {
			input.Locations = append(input.Locations, service.LocationInput{Name: loc.Name, Address: loc.Address})
		}
		if _, err := clients.CreateClient(ctx, principal, input); err != nil {
			return result, fmt.Errorf("client #%d %q: %w", i+1, c.Name, err)
		}
		result.Clients++
		result.Locations += len(c.Locations)
	}

	groups := []struct {
		kind  model.ResourceKind
		items []ResourceFixture
	}{
		{model.ResourceKindMachinery, fixtures.Resources.Machinery},
		{model.ResourceKindOperator, fixtures.Resources.Operators},
	}
	for _, group := range groups {
		for i, r := range group.items {
			rate, err := decimal.NewFromString(r.HourlyRate)
			if err != nil {
				return result, fmt.Errorf("%s #%d %q: invalid hourly_rate %q", group.kind, i+1, r.Name, r.HourlyRate)
			}
			input := service.ResourceInput{Name: r.Name, HourlyRate: rate, Active: r.Active}
			if _, err := resources.CreateResource(ctx, principal, group.kind, input); err != nil {
				return result, fmt.Errorf("%s #%d %q: %w", group.kind, i+1, r.Name, err)
			}
			result.Resources++
		}
	}
	return result, nil
}
