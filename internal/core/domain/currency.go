package domain

// Currency represents a currency accepted on foreign-currency line fields.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // ISO 4217, Primary Key
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int    `json:"precision"`
	AuditFields
}
