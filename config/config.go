package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	JWT struct {
		SecretKey        string `mapstructure:"secret_key"`
		AccessTTLMinutes int    `mapstructure:"access_ttl_minutes"`
		RefreshTTLHours  int    `mapstructure:"refresh_ttl_hours"`
		SweepMinutes     int    `mapstructure:"sweep_minutes"`
	} `mapstructure:"jwt"`
	Gemini struct {
		APIKey string `mapstructure:"api_key"`
		APIURL string `mapstructure:"api_url"`
	} `mapstructure:"gemini"`
}

var AppConfig Config

func LoadConfig(path string) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.SetDefault("jwt.access_ttl_minutes", 15)
	viper.SetDefault("jwt.refresh_ttl_hours", 336)
	viper.SetDefault("jwt.sweep_minutes", 30)
	viper.SetDefault("gemini.api_url", "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	// The signing key is shared by every token operation. Failing here is a
	// configuration error; there is no sensible runtime fallback.
	if AppConfig.JWT.SecretKey == "" {
		log.Fatal("jwt.secret_key must be set in config")
	}
}
