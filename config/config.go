package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// StorageConfig names the Azure Storage resources backing the read model.
type StorageConfig struct {
	StorageConnectionString string `envconfig:"STORAGE_CONNECTION_STRING" required:"true"`
	EventsQueue             string `envconfig:"EVENTS_QUEUE" default:"engine-events"`
	ProcessInstancesTable   string `envconfig:"PROCESS_INSTANCES_TABLE" default:"ProcessInstances"`
	TasksTable              string `envconfig:"TASKS_TABLE" default:"Tasks"`
	VariablesTable          string `envconfig:"VARIABLES_TABLE" default:"Variables"`
	Debug                   bool   `envconfig:"DEBUG" default:"false"`
}

// Config holds the environment driven settings of the query updater.
type Config struct {
	StorageConfig
	RedisConnectionString string        `envconfig:"REDIS_CONNECTION_STRING" required:"true"`
	UpdatesChannel        string        `envconfig:"UPDATES_CHANNEL" default:"query-updates"`
	VariablesCacheTTL     time.Duration `envconfig:"VARIABLES_CACHE_TTL" default:"12h"`
	VariablesCacheLimit   int32         `envconfig:"VARIABLES_CACHE_LIMIT" default:"200"`
	PollInterval          time.Duration `envconfig:"POLL_INTERVAL" default:"1s"`
	MaxDequeueCount       int64         `envconfig:"MAX_DEQUEUE_COUNT" default:"5"`
	OpsPort               string        `envconfig:"OPS_PORT" default:"8081"`
}

// Load reads the full service configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadStorage reads only the storage settings, for tools that do not talk to
// Redis.
func LoadStorage() (*StorageConfig, error) {
	var cfg StorageConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *StorageConfig) Validate() error {
	if c.EventsQueue == "" || c.ProcessInstancesTable == "" || c.TasksTable == "" || c.VariablesTable == "" {
		return errors.New("missing storage config")
	}
	return nil
}

func (c *Config) Validate() error {
	if err := c.StorageConfig.Validate(); err != nil {
		return err
	}
	switch {
	case c.VariablesCacheLimit <= 0:
		return errors.New("VARIABLES_CACHE_LIMIT must be greater than zero")
	case c.VariablesCacheTTL <= 0:
		return errors.New("VARIABLES_CACHE_TTL must be greater than zero")
	case c.PollInterval <= 0:
		return errors.New("POLL_INTERVAL must be greater than zero")
	case c.MaxDequeueCount <= 0:
		return errors.New("MAX_DEQUEUE_COUNT must be greater than zero")
	}
	return nil
}

// Tables returns the names of every read-model table.
func (c *StorageConfig) Tables() []string {
	return []string{c.ProcessInstancesTable, c.TasksTable, c.VariablesTable}
}
