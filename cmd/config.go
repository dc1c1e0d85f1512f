package cmd

// Config carries all runtime settings, loaded from the environment at
// startup.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	CarrierBaseURL      string
	CarrierClientID     string
	CarrierClientSecret string

	// Store origin address, embedded in every reservation request.
	OriginPostalCode string
	OriginStreet     string
	OriginNumber     string
	OriginDistrict   string
	OriginCity       string
	OriginState      string

	QuoteSecret                string
	FreeShippingThresholdCents int64
	StripeWebhookSecret        string
}
