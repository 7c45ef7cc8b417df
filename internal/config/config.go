package config

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/vdash/vdash/internal/aws"
	"github.com/vdash/vdash/internal/config/data"
	"github.com/vdash/vdash/internal/dao"
)

// DefaultAPITimeout bounds every AWS call.
const DefaultAPITimeout = 30 * time.Second

// Config is the root configuration for the application.
type Config struct {
	Vdash *Vdash `yaml:"vdash"`
	conn  aws.Connection
	mx    sync.RWMutex
}

// NewConfig creates a new Config with defaults.
func NewConfig() *Config {
	return &Config{Vdash: NewVdash()}
}

// Load loads the configuration from the given path. A missing file keeps
// the defaults unless force is set.
func (c *Config) Load(path string, force bool) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	found, err := data.LoadOptionalYAML(path, c)
	if err != nil {
		return fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	if !found && force {
		return fmt.Errorf("config file does not exist: %s", path)
	}
	if c.Vdash == nil {
		c.Vdash = NewVdash()
	}

	return nil
}

// Save saves the configuration to path. If force is false, only saves if
// the file already exists.
func (c *Config) Save(path string, force bool) error {
	c.mx.RLock()
	defer c.mx.RUnlock()

	if path == "" {
		return fmt.Errorf("no config file path configured")
	}
	if _, err := os.Stat(path); err != nil && !force {
		return nil
	}
	if err := data.SaveYAML(path, c); err != nil {
		return fmt.Errorf("failed to save config to %s: %w", path, err)
	}

	return nil
}

// Refine applies CLI flags and validates the result. For the S3 store
// it also resolves the AWS profile and region:
// - Profile: CLI --profile > store.profile > AWS_PROFILE > default
// - Region: CLI --region > store.region > profile region > us-east-1
func (c *Config) Refine(flags *data.Flags, profiles *aws.ProfileDiscovery) (*aws.ClientConfig, error) {
	c.mx.Lock()
	defer c.mx.Unlock()

	if c.Vdash == nil {
		return nil, errors.New("config.vdash is nil")
	}
	c.Vdash.Override(flags)
	if err := c.Vdash.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	spec := c.Vdash.StoreSpec()
	if spec.Kind != dao.StoreS3 {
		return nil, nil
	}

	c.Vdash.mx.RLock()
	profile, region := c.Vdash.Store.Profile, c.Vdash.Store.Region
	c.Vdash.mx.RUnlock()
	if profile == "" {
		profile = aws.ActiveProfileName()
	}
	if profiles != nil {
		pp, err := profiles.Profiles()
		if err != nil {
			return nil, err
		}
		// No local profiles means credentials come from the environment.
		if len(pp) > 0 {
			p, err := profiles.Profile(profile)
			if err != nil {
				return nil, fmt.Errorf("profile %q not found: %w", profile, err)
			}
			if region == "" {
				region = p.DefaultRegion
			}
		}
	}
	if region == "" {
		region = aws.DefaultRegion
	}

	return &aws.ClientConfig{Profile: profile, Region: region, Timeout: DefaultAPITimeout}, nil
}

// Connection returns the AWS connection.
func (c *Config) Connection() aws.Connection {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.conn
}

// SetConnection sets the AWS connection.
func (c *Config) SetConnection(conn aws.Connection) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.conn = conn
}

// StoreSpec returns the store selection including the AWS connection.
func (c *Config) StoreSpec() dao.StoreSpec {
	c.mx.RLock()
	defer c.mx.RUnlock()

	spec := c.Vdash.StoreSpec()
	spec.Conn = c.conn
	return spec
}
