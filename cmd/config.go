package cmd

import "time"

// Config carries all application settings read from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string

	// HandoverCodeTTL is the lifetime of the merchant handover code.
	HandoverCodeTTL time.Duration
	// DeliveryCodeTTL is the lifetime of the customer delivery code.
	DeliveryCodeTTL time.Duration
	// CodeLength is the number of characters in handover and delivery
	// codes. Values outside 4..8 fall back to 6.
	CodeLength int
	// AcceptanceWindow is how long an assignment may sit unaccepted before
	// the sweep reassigns it.
	AcceptanceWindow time.Duration
	// AlertTTL dedupes no-agent-available ops alerts per order.
	AlertTTL time.Duration
	// SweepSchedule is the six-field cron schedule of the acceptance sweep.
	SweepSchedule string

	// RouteDistanceKm and RouteTimeMinutes are the fixed city-average
	// estimate recorded on new assignments.
	RouteDistanceKm  string
	RouteTimeMinutes int
}
