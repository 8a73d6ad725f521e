package schemas

// Scenario is a named bundle of macro-economic and climate parameters under
// which risks are evaluated. The closed set of bundles lives in
// internal/scenarios; this type only defines the shape.
type Scenario struct {
	Name                  string  `json:"name"`
	TempIncrease          float64 `json:"temp_increase"`
	CarbonPrice           float64 `json:"carbon_price"`
	RenewableEnergy       float64 `json:"renewable_energy"`
	PolicyStringency      float64 `json:"policy_stringency"`
	BiodiversityLoss      float64 `json:"biodiversity_loss"`
	EcosystemDegradation  float64 `json:"ecosystem_degradation"`
	FinancialStability    float64 `json:"financial_stability"`
	SupplyChainDisruption float64 `json:"supply_chain_disruption"`
}
