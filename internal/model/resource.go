package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ResourceKind string

const (
	ResourceKindMachinery ResourceKind = "MACHINERY"
	ResourceKindOperator  ResourceKind = "OPERATOR"
)

// ParseResourceKind accepts the enum value as well as the plural path
// segments used by the HTTP API ("machinery", "operators").
func ParseResourceKind(raw string) (ResourceKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "machinery":
		return ResourceKindMachinery, nil
	case "operator", "operators":
		return ResourceKindOperator, nil
	default:
		return "", newValidationError("kind", fmt.Sprintf("unknown resource kind %q", raw))
	}
}

// Resource is a piece of machinery or an operator billed by the hour.
type Resource struct {
	ID         uuid.UUID
	Kind       ResourceKind
	Name       string
	HourlyRate decimal.Decimal
	Active     bool
}

func NewResource(kind ResourceKind, name string, hourlyRate decimal.Decimal, active bool) (*Resource, error) {
	if kind != ResourceKindMachinery && kind != ResourceKindOperator {
		return nil, newValidationError("kind", fmt.Sprintf("unknown resource kind %q", kind))
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newValidationError("name", "is required")
	}
	if hourlyRate.IsNegative() {
		return nil, newValidationError("hourly_rate", "must not be negative")
	}
	return &Resource{
		ID:         uuid.New(),
		Kind:       kind,
		Name:       name,
		HourlyRate: hourlyRate,
		Active:     active,
	}, nil
}

// Assignment is a value snapshot of a resource taken when it was assigned
// to a job. HourlyRate is the rate at assignment time.
type Assignment struct {
	ResourceID uuid.UUID
	Name       string
	HourlyRate decimal.Decimal
	Hours      decimal.Decimal
}

func NewAssignment(resource Resource, hours decimal.Decimal) (Assignment, error) {
	if hours.IsNegative() {
		return Assignment{}, newValidationError("hours", "must not be negative")
	}
	return Assignment{
		ResourceID: resource.ID,
		Name:       resource.Name,
		HourlyRate: resource.HourlyRate,
		Hours:      hours,
	}, nil
}

func (a Assignment) Cost() decimal.Decimal {
	return a.HourlyRate.Mul(a.Hours)
}
