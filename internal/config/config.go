package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"odatatable/internal/model"
	"odatatable/internal/odata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "ODATATABLE"

// Config is the runtime configuration of the table client.
type Config struct {
	// Endpoint is the OData collection URL
	Endpoint string `mapstructure:"endpoint" validate:"required,url"`

	// PageSize is the initial number of rows per page
	PageSize int `mapstructure:"pageSize" validate:"oneof=5 10 25 50"`

	// Timeout bounds a single page request
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`

	// LogFile receives diagnostic records, "-" disables logging
	LogFile string `mapstructure:"logFile"`

	// Debug enables debug level records
	Debug bool `mapstructure:"debug"`

	// Sort holds initial sort keys as "Field:dir"
	Sort []string `mapstructure:"sort"`

	// Filter holds initial filter conditions as "Field:operator:value"
	Filter []string `mapstructure:"filter"`
}

// Criteria parses the initial sort keys and filter conditions.
func (c *Config) Criteria() ([]model.SortCriterion, []model.FilterCriterion, error) {
	sort := make([]model.SortCriterion, 0, len(c.Sort))
	for _, s := range c.Sort {
		criterion, err := model.ParseSortCriterion(s)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid sort %q: %w", s, err)
		}
		sort = append(sort, criterion)
	}

	filter := make([]model.FilterCriterion, 0, len(c.Filter))
	for _, s := range c.Filter {
		criterion, err := model.ParseFilterCriterion(s)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid filter %q: %w", s, err)
		}
		if !criterion.Field.Supports(criterion.Operator) {
			return nil, nil, fmt.Errorf("invalid filter %q: %s does not support %s: %w",
				s, criterion.Field, criterion.Operator, model.ErrUnknownOperator)
		}
		filter = append(filter, criterion)
	}
	return sort, filter, nil
}

// Manager loads configuration from defaults, a yaml file, the environment
// and bound command line flags, in increasing priority.
type Manager struct {
	cfg    *Config
	vipers *viper.Viper
}

func NewManager() *Manager {
	return &Manager{
		cfg:    &Config{},
		vipers: viper.New(),
	}
}

// Viper exposes the underlying instance so callers can bind flags.
func (cm *Manager) Viper() *viper.Viper {
	return cm.vipers
}

func (cm *Manager) GetConfig() *Config {
	return cm.cfg
}

func (cm *Manager) SetDefaults() {
	cm.vipers.SetDefault("endpoint", odata.DefaultEndpoint)
	cm.vipers.SetDefault("pageSize", model.DefaultPageSize)
	cm.vipers.SetDefault("timeout", 15*time.Second)
	cm.vipers.SetDefault("logFile", DefaultLogFile())
}

func (cm *Manager) BindEnvVariables() {
	cm.vipers.SetEnvPrefix(envPrefix)
	cm.vipers.AutomaticEnv()
	cm.vipers.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envs := map[string]string{
		"endpoint": envPrefix + "_ENDPOINT",
		"pageSize": envPrefix + "_PAGE_SIZE",
		"timeout":  envPrefix + "_TIMEOUT",
		"logFile":  envPrefix + "_LOG_FILE",
		"debug":    envPrefix + "_DEBUG",
	}
	for key, env := range envs {
		_ = cm.vipers.BindEnv(key, env)
	}
}

// Load reads configFile, or searches the default locations when it is empty,
// then decodes and validates the result.
func (cm *Manager) Load(configFile string) (*Config, error) {
	for _, envFile := range []string{".env", ".env.local"} {
		if err := LoadDotEnv(envFile); err != nil {
			return nil, err
		}
	}

	cm.SetDefaults()
	cm.BindEnvVariables()

	if configFile != "" {
		cm.vipers.SetConfigFile(configFile)
	} else {
		cm.vipers.SetConfigName("odatatable")
		cm.vipers.SetConfigType("yaml")
		cm.vipers.AddConfigPath(".")
		cm.vipers.AddConfigPath("./config")
		if home, err := os.UserHomeDir(); err == nil {
			cm.vipers.AddConfigPath(filepath.Join(home, ".odatatable"))
		}
	}

	if err := cm.vipers.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := cm.vipers.Unmarshal(cm.cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cm.Validate(); err != nil {
		return nil, err
	}
	return cm.cfg, nil
}

func (cm *Manager) Validate() error {
	return Validate(cm.cfg)
}

// Validate checks field constraints.
func Validate(cfg *Config) error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// DefaultLogFile returns $HOME/.odatatable/odatatable.log, or a file in the
// working directory when the home directory is unknown.
func DefaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "odatatable.log"
	}
	return filepath.Join(home, ".odatatable", "odatatable.log")
}

// LoadDotEnv exports ODATATABLE_* assignments from path. Variables already
// set in the environment win. A missing file is not an error.
func LoadDotEnv(path string) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}

	for key, value := range vars {
		if !strings.HasPrefix(key, envPrefix+"_") {
			continue
		}
		if _, set := os.LookupEnv(key); !set {
			_ = os.Setenv(key, value)
		}
	}
	return nil
}
