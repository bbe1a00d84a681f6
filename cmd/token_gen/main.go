package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"infinite-experiment/airclock/internal/auth"
	"infinite-experiment/airclock/internal/config"
)

func main() {
	subject := flag.String("sub", "ops", "subject recorded in the token")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	token, err := auth.IssueAdminToken([]byte(cfg.Auth.AdminJWTSecret), *subject, *ttl)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Println("New admin token:", token)
}
