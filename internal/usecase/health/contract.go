package health

import "context"

// StorePinger checks cache store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// ProviderChecker checks catalog provider availability.
type ProviderChecker interface {
	HealthCheck(ctx context.Context) error
}
