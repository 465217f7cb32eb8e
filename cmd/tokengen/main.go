package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rx3lixir/fonoteka/internal/config"
	"github.com/rx3lixir/fonoteka/pkg/jwt"
)

// tokengen mints a bearer token for the ops HTTP API from the configured
// secret key.
func main() {
	configPath := flag.String("config", "internal/config/config.yaml", "path to config file")
	subject := flag.String("subject", "ops", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	logger := log.New(os.Stderr)

	cm, err := config.NewConfigManager(*configPath)
	if err != nil {
		logger.Error("Error getting config file", "error", err)
		os.Exit(1)
	}

	secret := cm.GetConfig().GeneralParams.SecretKey
	if secret == "" {
		logger.Error("secret_key is not configured")
		os.Exit(1)
	}

	token, err := jwt.NewService(secret, *ttl).Mint(*subject)
	if err != nil {
		logger.Error("Failed to mint token", "error", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
