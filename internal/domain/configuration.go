package domain

// Snapshot is the set of records read from the data layer at one point in time.
// The engine never mutates it.
type Snapshot struct {
	Properties []PropertyRecord `yaml:"properties" json:"properties"`
	Tenants    []TenantRecord   `yaml:"tenants" json:"tenants"`
	Roommates  []RoommateRecord `yaml:"roommates" json:"roommates"`
	Payments   []PaymentRecord  `yaml:"payments" json:"payments"`
	Charges    []ChargeRecord   `yaml:"charges" json:"charges"`
}

// Configuration is a portfolio input file: a snapshot plus the static lookups the
// engine needs alongside it.
type Configuration struct {
	Snapshot      `yaml:",inline"`
	ChargesConfig ChargesConfigTable `yaml:"charges_config,omitempty" json:"charges_config,omitempty"`
	Tax           *TaxConfig         `yaml:"tax,omitempty" json:"tax,omitempty"`
	Simulations   []SimulationInput  `yaml:"simulations,omitempty" json:"simulations,omitempty"`
}
