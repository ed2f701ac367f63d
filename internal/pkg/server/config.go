package server

import (
	"net"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiosk404/roster/pkg/logger"
	"github.com/kiosk404/roster/pkg/utils/homedir"
	"github.com/spf13/viper"
)

const (
	// RecommendedHomeDir defines the default directory used to place all roster service configurations.
	RecommendedHomeDir = ".roster"

	// RecommendedEnvPrefix defines the ENV prefix used by all roster services.
	RecommendedEnvPrefix = "ROSTER"
)

// Config is a structure used to configure a GenericAPIServer.
// Its members are sorted roughly in order of importance for composers.
type Config struct {
	InsecureServing *InsecureServingInfo
	Mode            string
	Healthz         bool
	EnableProfiling bool
	ShutdownTimeout time.Duration
}

// InsecureServingInfo holds configuration of the insecure http server.
type InsecureServingInfo struct {
	Address string
}

// NewConfig returns a Config struct with the default values.
func NewConfig() *Config {
	return &Config{
		InsecureServing: &InsecureServingInfo{Address: "127.0.0.1:8080"},
		Mode:            gin.ReleaseMode,
		Healthz:         true,
		EnableProfiling: false,
		ShutdownTimeout: 10 * time.Second,
	}
}

// CompletedConfig is the completed configuration for GenericAPIServer.
type CompletedConfig struct {
	*Config
}

// Complete fills in any fields not set that are required to have valid data and can be derived
// from other fields.
func (c *Config) Complete() CompletedConfig {
	if c.InsecureServing == nil {
		c.InsecureServing = &InsecureServingInfo{}
	}
	if c.InsecureServing.Address == "" {
		c.InsecureServing.Address = "127.0.0.1:8080"
	}
	if c.Mode == "" {
		c.Mode = gin.ReleaseMode
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	return CompletedConfig{c}
}

// New returns a new instance of GenericAPIServer from the given config.
func (c CompletedConfig) New() (*GenericAPIServer, error) {
	gin.SetMode(c.Mode)

	s := &GenericAPIServer{
		InsecureServingInfo: c.InsecureServing,
		healthz:             c.Healthz,
		enableProfiling:     c.EnableProfiling,
		shutdownTimeout:     c.ShutdownTimeout,
		Engine:              gin.New(),
	}
	initGenericAPIServer(s)
	return s, nil
}

// JoinHostPort builds the listen address from a host and a port.
func JoinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// LoadConfig reads in config file and ENV variables if set. An empty cfg
// searches for <defaultName>.yaml in the working directory and
// $HOME/.roster. A missing config file is not an error.
func LoadConfig(cfg string, defaultName string) {
	if cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath(filepath.Join(homedir.HomeDir(), RecommendedHomeDir))
		viper.SetConfigName(defaultName)
	}

	// Use config file from the flag.
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix(RecommendedEnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if cfg != "" {
			logger.Warn("[Config] failed to read configuration file(%s): %v", cfg, err)
		}
		return
	}
	logger.Info("[Config] using config file %s", viper.ConfigFileUsed())
}
