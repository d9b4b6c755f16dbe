package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"warden-bot/model"
	"warden-bot/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads the bot configuration: secrets from the environment (.env
// supported), everything else from config.yaml with WARDEN_-prefixed
// environment overrides.
func Load() (*model.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return nil, errors.New("BOT_TOKEN environment variable not set")
	}
	appID := os.Getenv("APP_ID")
	if appID == "" {
		return nil, errors.New("APP_ID environment variable not set")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./data")
	v.SetEnvPrefix("WARDEN")
	v.AutomaticEnv()
	v.SetDefault("data_dir", "./data")
	v.SetDefault("default_mute_duration", "24h")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Println("Info: config.yaml not found, using defaults")
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	muteDuration, err := utils.ParseDuration(v.GetString("default_mute_duration"))
	if err != nil {
		return nil, fmt.Errorf("invalid default_mute_duration: %w", err)
	}

	cfg := &model.Config{
		BotToken:            token,
		AppID:               appID,
		DataDir:             v.GetString("data_dir"),
		LogChannelID:        v.GetString("log_channel_id"),
		DefaultMuteDuration: muteDuration,
		DeveloperUserIDs:    v.GetStringSlice("developer_user_ids"),
	}
	if cfg.LogChannelID == "" {
		log.Println("Warning: log_channel_id not set, operator logging to Discord is disabled")
	}

	return cfg, nil
}
