package utils

// Application constants
const (
	// Service name reported by /health
	ServiceName = "quickcart-payments-backend"

	// Default port
	DefaultPort = "8080"

	// Default currency when a create-session request omits it
	DefaultCurrency = "INR"

	// Default CORS origin
	DefaultAllowedOrigin = "*"

	// Default bound on a single outbound gateway call
	DefaultProviderTimeout = "15s"

	// Default log directory
	DefaultLogDir = "logs"
)
