// Command relay-token prints a signed token for a bot relay. The relay sends
// it as "Authorization: Bearer <token>" on POST /api/v1/commands.
//
// The secret, issuer and lifetime come from the auth config section.
//
// Flags:
//
//	--relay  relay name stored as the token subject (required)
//	--config YAML config path (default $CONFIG_PATH)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/heartmarshall/dante-lexicon/internal/auth"
	"github.com/heartmarshall/dante-lexicon/internal/config"
)

func main() {
	relayFlag := flag.String("relay", "", "relay name")
	configFlag := flag.String("config", os.Getenv(config.PathEnv), "YAML config path")
	flag.Parse()

	if *relayFlag == "" {
		log.Fatal("--relay is required")
	}

	cfg, err := config.LoadFile(*configFlag)
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}
	if !cfg.Auth.Enabled() {
		log.Fatal("auth.jwt_secret is not configured")
	}

	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	token, err := jwt.GenerateRelayToken(*relayFlag)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}
	fmt.Println(token)
}
