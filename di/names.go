package di

// Names are the container keys used by the wiring helpers.
type Names struct {
	Config   string
	Logger   string
	Metrics  string
	Redis    string
	Registry string
}

// Keys holds the default container keys.
var Keys = Names{
	Config:   "config",
	Logger:   "logger",
	Metrics:  "redis_metrics",
	Redis:    "redis",
	Registry: "component_registry",
}
