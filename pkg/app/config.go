package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kiosk404/roster/pkg/utils/homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFlagName = "config"
	envPrefix      = "ROSTER"
)

var cfgFile string

func init() {
	pflag.StringVarP(&cfgFile, configFlagName, "c", cfgFile, "Read configuration from specified `FILE`, "+
		"support JSON, TOML, YAML, HCL, or Java properties formats.")
}

// addConfigFlag adds the --config flag to fs. Values from the config file
// sit under flags; ROSTER_* environment variables override both.
func addConfigFlag(fs *pflag.FlagSet) {
	fs.AddFlag(pflag.Lookup(configFlagName))

	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

// readConfig loads the file named by --config, or <basename>.yaml from the
// working directory or $HOME/.roster when present.
func readConfig(basename string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath(filepath.Join(homedir.HomeDir(), ".roster"))
		viper.SetConfigName(basename)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("failed to read configuration file(%s): %w", cfgFile, err)
	}
	return nil
}
