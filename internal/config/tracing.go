package config

// TracingConfig holds OTLP trace export configuration.
//
// Traces are shipped over OTLP/HTTP to a local collector agent.
// See internal/observability for the exporter setup.
type TracingConfig struct {
	// Endpoint is the OTLP/HTTP collector endpoint (default: localhost:4318)
	Endpoint string `mapstructure:"endpoint" json:"endpoint"`
	// Environment is the deployment environment tag (default: dev)
	Environment string `mapstructure:"environment" json:"environment"`
	// ServiceName is the service name attached to exported spans (default: parley)
	ServiceName string `mapstructure:"service_name" json:"service_name"`
}
