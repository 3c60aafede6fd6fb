package component

import "context"

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health holds health information for a component.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is a lifecycle-managed resource such as a redis facade.
type Component interface {
	// Name returns the unique name of the component for registration.
	Name() string

	// Start acquires the component's resources.
	Start(ctx context.Context) error

	// Stop releases the component's resources.
	Stop(ctx context.Context) error

	// Health returns the current health status of the component.
	Health(ctx context.Context) Health
}

// Description summarizes a component for startup output.
type Description struct {
	// Name is the display name; empty means Component.Name().
	Name string
	// Type categorizes the component, e.g. "redis".
	Type string
	// Details is a one-line summary, e.g. "localhost:6379 db=0 ssl=false".
	Details string
}

// Describable is optionally implemented by components that can report how
// they are configured.
type Describable interface {
	Describe() Description
}
