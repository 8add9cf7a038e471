package domain

// VendorCurrencySetting holds the currency a vendor prices its products in.
// Vendors without a setting are treated as pricing in the base currency.
type VendorCurrencySetting struct {
	VendorID     string `json:"vendorID"`
	CurrencyCode string `json:"currencyCode"`
	AuditFields
}
