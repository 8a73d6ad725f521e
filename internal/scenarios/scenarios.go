// Package scenarios defines the closed set of named macro-economic and
// climate scenario bundles risks are evaluated under. The bundles are static
// lookup data; the analysis core only ever reads them.
package scenarios

import (
	"sort"

	"github.com/xkilldash9x/climarisk-cli/api/schemas"
)

var bundles = map[string]schemas.Scenario{
	"Net Zero 2050": {
		Name:                  "Net Zero 2050",
		TempIncrease:          1.5,
		CarbonPrice:           250,
		RenewableEnergy:       0.75,
		PolicyStringency:      0.9,
		BiodiversityLoss:      0.1,
		EcosystemDegradation:  0.2,
		FinancialStability:    0.8,
		SupplyChainDisruption: 0.3,
	},
	"Delayed Transition": {
		Name:                  "Delayed Transition",
		TempIncrease:          2.5,
		CarbonPrice:           125,
		RenewableEnergy:       0.55,
		PolicyStringency:      0.6,
		BiodiversityLoss:      0.3,
		EcosystemDegradation:  0.4,
		FinancialStability:    0.6,
		SupplyChainDisruption: 0.5,
	},
	"Current Policies": {
		Name:                  "Current Policies",
		TempIncrease:          3.5,
		CarbonPrice:           35,
		RenewableEnergy:       0.35,
		PolicyStringency:      0.2,
		BiodiversityLoss:      0.5,
		EcosystemDegradation:  0.6,
		FinancialStability:    0.4,
		SupplyChainDisruption: 0.7,
	},
	"Nature Positive": {
		Name:                  "Nature Positive",
		TempIncrease:          1.8,
		CarbonPrice:           200,
		RenewableEnergy:       0.7,
		PolicyStringency:      0.8,
		BiodiversityLoss:      -0.1, // Net gain.
		EcosystemDegradation:  -0.2, // Net restoration.
		FinancialStability:    0.75,
		SupplyChainDisruption: 0.4,
	},
	"Nature Degradation": {
		Name:                  "Nature Degradation",
		TempIncrease:          3.0,
		CarbonPrice:           50,
		RenewableEnergy:       0.4,
		PolicyStringency:      0.3,
		BiodiversityLoss:      0.6,
		EcosystemDegradation:  0.7,
		FinancialStability:    0.5,
		SupplyChainDisruption: 0.6,
	},
	"Resilient Systems": {
		Name:                  "Resilient Systems",
		TempIncrease:          2.0,
		CarbonPrice:           150,
		RenewableEnergy:       0.6,
		PolicyStringency:      0.7,
		BiodiversityLoss:      0.2,
		EcosystemDegradation:  0.3,
		FinancialStability:    0.9,
		SupplyChainDisruption: 0.2,
	},
	"Cascading Failures": {
		Name:                  "Cascading Failures",
		TempIncrease:          3.5,
		CarbonPrice:           75,
		RenewableEnergy:       0.45,
		PolicyStringency:      0.4,
		BiodiversityLoss:      0.5,
		EcosystemDegradation:  0.6,
		FinancialStability:    0.3,
		SupplyChainDisruption: 0.8,
	},
	"Global Instability": {
		Name:                  "Global Instability",
		TempIncrease:          4.0,
		CarbonPrice:           50,
		RenewableEnergy:       0.4,
		PolicyStringency:      0.3,
		BiodiversityLoss:      0.6,
		EcosystemDegradation:  0.7,
		FinancialStability:    0.2,
		SupplyChainDisruption: 0.8,
	},
}

// All returns a copy of every scenario bundle keyed by name.
func All() map[string]schemas.Scenario {
	out := make(map[string]schemas.Scenario, len(bundles))
	for name, s := range bundles {
		out[name] = s
	}
	return out
}

// Get looks up one scenario bundle by name.
func Get(name string) (schemas.Scenario, bool) {
	s, ok := bundles[name]
	return s, ok
}

// Names returns the scenario names in ascending order.
func Names() []string {
	names := make([]string, 0, len(bundles))
	for name := range bundles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
