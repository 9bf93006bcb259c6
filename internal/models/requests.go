package models

// MortgageRequest is the mortgage form
type MortgageRequest struct {
	Principal         Number `json:"principal"`
	AnnualRatePercent Number `json:"annual_rate_percent"`
	TermYears         Number `json:"term_years"`
}

// AgeRequest holds dates as YYYY-MM-DD; an empty AsOf means today
type AgeRequest struct {
	BirthDate string `json:"birth_date"`
	AsOf      string `json:"as_of,omitempty"`
}

// TemperatureRequest is the temperature form
type TemperatureRequest struct {
	Value Number `json:"value"`
	Scale string `json:"scale"`
}

// CurrencyRequest is the currency form
type CurrencyRequest struct {
	Amount Number `json:"amount"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// UnitsRequest is the unit form. Empty From/To fall back to the category's
// default pair; To set to "*" lists every other unit.
type UnitsRequest struct {
	Amount   Number `json:"amount"`
	Category string `json:"category"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
}

// ScientificRequest carries keys to apply to the state held in Token.
// An empty Token starts a new session. Input is tokenized and applied
// after Keys.
type ScientificRequest struct {
	Token string   `json:"token,omitempty"`
	Keys  []string `json:"keys,omitempty"`
	Input string   `json:"input,omitempty"`
}
