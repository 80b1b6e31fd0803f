package config

import (
	"fmt"
	"strings"

	"github.com/shoply/cartd/pkg/config"
	"github.com/shoply/cartd/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig       `koanf:"server"`
	Redis      config.RedisConfig      `koanf:"redis"`
	Log        config.LogConfig        `koanf:"log"`
	PProf      config.PProfConfig      `koanf:"pprof"`
	Nats       config.NATSConfig       `koanf:"nats"`
	Shutdown   config.ShutdownConfig   `koanf:"shutdown"`
	Resilience config.ResilienceConfig `koanf:"resilience"`
	Services   struct {
		Products config.ClientConfig `koanf:"products"`
	} `koanf:"services"`
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString("\n--- Server Configuration ---\n")
	b.WriteString(fmt.Sprintf("  server.port: %d\n", c.HTTPServer.Port))
	b.WriteString(fmt.Sprintf("  server.maxHeaderBytes: %d\n", c.HTTPServer.MaxHeaderBytes))
	b.WriteString(fmt.Sprintf("  server.timeout.read: %v\n", c.HTTPServer.Timeout.Read))
	b.WriteString(fmt.Sprintf("  server.timeout.write: %v\n", c.HTTPServer.Timeout.Write))
	b.WriteString(fmt.Sprintf("  server.timeout.idle: %v\n", c.HTTPServer.Timeout.Idle))
	b.WriteString(fmt.Sprintf("  server.timeout.readHeader: %v\n", c.HTTPServer.Timeout.ReadHeader))

	b.WriteString("\n--- Cart Storage ---\n")
	b.WriteString(fmt.Sprintf("  redis.addr: %s\n", c.Redis.Addr))
	b.WriteString(fmt.Sprintf("  redis.db: %d\n", c.Redis.DB))
	b.WriteString(fmt.Sprintf("  redis.timeout: %s\n", c.Redis.Timeout))

	b.WriteString("\n--- External Services ---\n")
	b.WriteString(fmt.Sprintf("  services.products.baseurl: %s\n", c.Services.Products.BaseURL))
	b.WriteString(fmt.Sprintf("  services.products.timeout: %s\n", c.Services.Products.Timeout))
	b.WriteString(fmt.Sprintf("  nats.enabled: %t\n", c.Nats.Enabled))
	b.WriteString(fmt.Sprintf("  nats.url: %s\n", c.Nats.Url))
	b.WriteString(fmt.Sprintf("  nats.timeout: %s\n", c.Nats.Timeout))

	b.WriteString("\n--- Resilience ---\n")
	b.WriteString(fmt.Sprintf("  resilience.retry.maxattempts: %d\n", c.Resilience.Retry.MaxAttempts))
	b.WriteString(fmt.Sprintf("  resilience.retry.initialbackoff: %v\n", c.Resilience.Retry.InitialBackoff))
	b.WriteString(fmt.Sprintf("  resilience.circuitbreaker.consecutivefailures: %d\n", c.Resilience.CircuitBreaker.ConsecutiveFailures))
	b.WriteString(fmt.Sprintf("  resilience.circuitbreaker.errorratepercent: %d\n", c.Resilience.CircuitBreaker.ErrorRatePercent))
	b.WriteString(fmt.Sprintf("  resilience.circuitbreaker.opentimeout: %v\n", c.Resilience.CircuitBreaker.OpenTimeout))

	b.WriteString("\n--- Observability & Logging ---\n")
	b.WriteString(fmt.Sprintf("  log.level: %s\n", c.Log.Level))
	b.WriteString(fmt.Sprintf("  pprof.enabled: %t\n", c.PProf.Enabled))
	b.WriteString(fmt.Sprintf("  pprof.address: %s\n", c.PProf.Addr))

	b.WriteString("\n--- Application Behavior ---\n")
	b.WriteString(fmt.Sprintf("  shutdown.timeout: %s\n", c.Shutdown.Timeout))

	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.HTTPServer.Validate(); err != nil {
		return err
	}
	if err := c.Redis.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.PProf.Validate(); err != nil {
		return err
	}
	if err := c.Nats.Validate(); err != nil {
		return err
	}
	if err := c.Shutdown.Validate(); err != nil {
		return err
	}
	if err := c.Resilience.Validate(); err != nil {
		return err
	}
	if err := c.Services.Products.Validate(); err != nil {
		return err
	}

	return nil
}
