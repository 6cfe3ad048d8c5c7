// Package rates resolves the depreciation and tax rates applied to a claim's
// depreciation draft. Rates default to the built-in schedule and can be
// overridden per carrier or jurisdiction from a YAML file.
package rates

import (
	"math"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Built-in rates.
const (
	DefaultACVRate        = 0.25
	DefaultNonACVRate     = 0.15
	DefaultSupplementRate = 0.20
	DefaultTaxRate        = 0.08
)

// RateSet holds the fractional rates used by one draft computation.
// A nil field in an override inherits the schedule default.
type RateSet struct {
	ACV        *float64 `yaml:"acv" mapstructure:"acv"`
	NonACV     *float64 `yaml:"non_acv" mapstructure:"non_acv"`
	Supplement *float64 `yaml:"supplement" mapstructure:"supplement"`
	Tax        *float64 `yaml:"tax" mapstructure:"tax"`
}

// Rates is a fully resolved RateSet.
type Rates struct {
	ACV        float64
	NonACV     float64
	Supplement float64
	Tax        float64
}

// Schedule maps carriers and jurisdictions to rate overrides.
type Schedule struct {
	Default       RateSet            `yaml:"default"`
	Carriers      map[string]RateSet `yaml:"carriers"`
	Jurisdictions map[string]RateSet `yaml:"jurisdictions"`
}

// Defaults returns the built-in rates.
func Defaults() Rates {
	return Rates{
		ACV:        DefaultACVRate,
		NonACV:     DefaultNonACVRate,
		Supplement: DefaultSupplementRate,
		Tax:        DefaultTaxRate,
	}
}

// DefaultSchedule returns a schedule with no overrides.
func DefaultSchedule() Schedule {
	return Schedule{}
}

// LoadFile reads a YAML rate schedule. An empty path yields DefaultSchedule.
func LoadFile(path string) (Schedule, error) {
	if path == "" {
		return DefaultSchedule(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Schedule{}, eris.Wrapf(err, "rates: read %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML rate schedule.
func Parse(data []byte) (Schedule, error) {
	var s Schedule
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Schedule{}, eris.Wrap(err, "rates: decode schedule")
	}
	if err := s.Validate(); err != nil {
		return Schedule{}, err
	}
	s.Carriers = normalizeKeys(s.Carriers)
	s.Jurisdictions = normalizeKeys(s.Jurisdictions)
	return s, nil
}

// Validate rejects any rate outside [0, 1].
func (s Schedule) Validate() error {
	if err := s.Default.validate("default"); err != nil {
		return err
	}
	for name, rs := range s.Carriers {
		if err := rs.validate("carrier " + name); err != nil {
			return err
		}
	}
	for name, rs := range s.Jurisdictions {
		if err := rs.validate("jurisdiction " + name); err != nil {
			return err
		}
	}
	return nil
}

// For resolves the rates for a claim: carrier override first, then
// jurisdiction override, then the schedule default, then the built-ins.
func (s Schedule) For(carrier, jurisdiction string) Rates {
	r := s.Default.over(Defaults())
	if rs, ok := s.Jurisdictions[normalizeKey(jurisdiction)]; ok && jurisdiction != "" {
		r = rs.over(r)
	}
	if rs, ok := s.Carriers[normalizeKey(carrier)]; ok && carrier != "" {
		r = rs.over(r)
	}
	return r
}

func (rs RateSet) over(base Rates) Rates {
	if rs.ACV != nil {
		base.ACV = *rs.ACV
	}
	if rs.NonACV != nil {
		base.NonACV = *rs.NonACV
	}
	if rs.Supplement != nil {
		base.Supplement = *rs.Supplement
	}
	if rs.Tax != nil {
		base.Tax = *rs.Tax
	}
	return base
}

func (rs RateSet) validate(scope string) error {
	fields := map[string]*float64{
		"acv":        rs.ACV,
		"non_acv":    rs.NonACV,
		"supplement": rs.Supplement,
		"tax":        rs.Tax,
	}
	for name, v := range fields {
		if v != nil && (math.IsNaN(*v) || *v < 0 || *v > 1) {
			return eris.Errorf("rates: %s %s rate %v outside [0, 1]", scope, name, *v)
		}
	}
	return nil
}

func normalizeKeys(m map[string]RateSet) map[string]RateSet {
	if len(m) == 0 {
		return m
	}
	out := make(map[string]RateSet, len(m))
	for k, v := range m {
		out[normalizeKey(k)] = v
	}
	return out
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}
