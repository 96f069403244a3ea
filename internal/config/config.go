package config

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/styleaura/storefront/pkg/logger"
)

func MustInit() {
	envErr := godotenv.Load("./.env")
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		panic("error while loading .env file: " + envErr.Error())
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/storefront")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		panic("error while reading config file: " + err.Error())
	}
	SetupLogger()

	if envErr != nil {
		slog.Info("No .env file found, using process environment")
	}
}

func SetupLogger() {
	handler := logger.NewHandler(&slog.HandlerOptions{
		Level: logger.ParseLevel(viper.GetString("log.level")),
	})
	log := slog.New(handler)
	slog.SetDefault(log)
}
