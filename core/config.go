package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Conf *viper.Viper

func init() {
	Conf = viper.New()

	// defaults
	Conf.SetTypeByDefaultValue(true)
	Conf.SetDefault("debug", false)
	Conf.SetDefault("appName", "PeerReviewClient")
	Conf.SetDefault("swVersion", "0.6.5")
	Conf.SetDefault("apiVersion", "0.6.2")
	Conf.SetDefault("apiBase", "https://www.apibaobab.com/api/v1/")
	Conf.SetDefault("apiBaseDebug", "https://localhost:44391/api/v1/")
	Conf.SetDefault("httpTimeout", 100*time.Second)
	Conf.SetDefault("website", 8)
	Conf.SetDefault("language", "it")
	Conf.SetDefault("credentialsFile", "loginInfo.json")
	Conf.SetDefault("credentialsSecret", "rQ7bjJd0fjGvd1ToB3rRg4A9zTzJgkUE")
	Conf.SetDefault("logFile", filepath.Join("logs", "client.log"))
	Conf.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, PROD
	if env == "" {
		env = "DEV"
	}
	Conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := ".env." + strings.ToLower(env)
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	Conf.AutomaticEnv()
}

// APIBase returns the base URL of the remote API for the current mode.
func APIBase(debug bool) string {
	if debug {
		return Conf.GetString("apiBaseDebug")
	}
	return Conf.GetString("apiBase")
}
