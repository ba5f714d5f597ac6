package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug                = "debug"
	ConfigCPUProfile           = "cpu-profile"
	ConfigMemProfile           = "mem-profile"
	ConfigDataPath             = "data-path"
	ConfigMaxDepth             = "max-depth"
	ConfigBranchingFactor      = "branching-factor"
	ConfigLocalBranchingFactor = "local-branching-factor"
	ConfigLocalDepth           = "local-depth"
	ConfigSearchLogPath        = "search-log-path"
	ConfigAutoplayThreads      = "autoplay-threads"
	ConfigAutoplayGames        = "autoplay-games"
	ConfigOpeningRow           = "opening-row"
	ConfigOpeningCol           = "opening-col"

	ConfigHeuristicAlpha   = "heuristic.alpha"
	ConfigHeuristicBetaMe  = "heuristic.beta-me"
	ConfigHeuristicBetaAdv = "heuristic.beta-adv"
	ConfigHeuristicGamma   = "heuristic.gamma"
	ConfigHeuristicDelta   = "heuristic.delta"
	ConfigHeuristicEpsilon = "heuristic.epsilon"
	ConfigHeuristicZeta    = "heuristic.zeta"
)

// Config is the engine configuration. Values come, in increasing order of
// precedence, from defaults, an optional YAML config file, HEXENGINE_*
// environment variables and command-line flags.
type Config struct {
	*viper.Viper
	args []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigDataPath, "./data")
	v.SetDefault(ConfigMaxDepth, 3)
	v.SetDefault(ConfigBranchingFactor, 30)
	v.SetDefault(ConfigLocalBranchingFactor, 200)
	v.SetDefault(ConfigLocalDepth, 1)
	v.SetDefault(ConfigSearchLogPath, "")
	v.SetDefault(ConfigAutoplayThreads, 1)
	v.SetDefault(ConfigAutoplayGames, 10)
	v.SetDefault(ConfigOpeningRow, 5)
	v.SetDefault(ConfigOpeningCol, 7)
}

func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	setDefaults(c.Viper)
	return c
}

// Load reads configuration from the command line arguments, the environment
// and the config file named by --config, if any.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	setDefaults(c.Viper)

	fs := pflag.NewFlagSet("hexengine", pflag.ContinueOnError)
	// everything from the first non-flag on is a shell command
	fs.SetInterspersed(false)
	fs.String("config", "", "path to a YAML config file")
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigMemProfile, "", "write a memory profile to this file")
	fs.String(ConfigDataPath, "./data", "directory for game records and search logs")
	fs.Int(ConfigMaxDepth, 3, "search depth for a turn")
	fs.Int(ConfigBranchingFactor, 30, "candidate moves examined per search node")
	fs.Int(ConfigLocalBranchingFactor, 200, "candidate moves examined by the template local search")
	fs.Int(ConfigLocalDepth, 1, "depth of the template local search")
	fs.String(ConfigSearchLogPath, "", "write a YAML record of root evaluations to this file")
	fs.Int(ConfigAutoplayThreads, 1, "number of self-play games run at the same time")
	fs.Int(ConfigAutoplayGames, 10, "number of self-play games to run")
	err := fs.Parse(args)
	if err != nil {
		return err
	}
	c.args = fs.Args()
	err = c.BindPFlags(fs)
	if err != nil {
		return err
	}

	c.SetEnvPrefix("HEXENGINE")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	c.AutomaticEnv()

	cfgFile, _ := fs.GetString("config")
	if cfgFile == "" {
		return nil
	}
	c.SetConfigFile(cfgFile)
	c.SetConfigType("yaml")
	if err := c.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			log.Warn().Str("path", cfgFile).Msg("config-file-not-found")
			return nil
		}
		return err
	}
	return nil
}

// Args returns the command-line arguments left over after flag parsing.
func (c *Config) Args() []string {
	return c.args
}

// AdjustRelativePaths makes a relative data path relative to basepath, and
// a relative search log path relative to the data path.
func (c *Config) AdjustRelativePaths(basepath string) {
	data := c.GetString(ConfigDataPath)
	if data != "" && !filepath.IsAbs(data) {
		data = filepath.Join(basepath, data)
		c.Set(ConfigDataPath, data)
	}
	if p := c.GetString(ConfigSearchLogPath); p != "" && !filepath.IsAbs(p) {
		c.Set(ConfigSearchLogPath, filepath.Join(data, p))
	}
}

// SanitizedSettings returns the settings map for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
