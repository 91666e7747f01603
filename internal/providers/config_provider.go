package providers

import (
	"fmt"
	"path/filepath"
	"psgdle/internal/structures"
	"strings"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "PSGDLE_LOG_LEVEL")
	viper.BindEnv("persistence.saveInterval", "PSGDLE_SAVE_INTERVAL")
	viper.BindEnv("dataset.playersPath", "PSGDLE_PLAYERS_PATH")
	viper.BindEnv("dataset.matchesPath", "PSGDLE_MATCHES_PATH")
	viper.BindEnv("cache.enabled", "PSGDLE_CACHE_ENABLED")
	viper.BindEnv("cache.size", "PSGDLE_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "psgdle"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
