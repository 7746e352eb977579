package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/kenocia/payroll-backend-go/internal/config"
	"github.com/kenocia/payroll-backend-go/internal/pkg/jwt"
)

// tokengen mints an access token for an operator. There is no interactive
// login; tokens are issued out of band and handed to the payroll clients.
func main() {
	userID := flag.String("user", "", "operator user id to embed in the token")
	name := flag.String("name", "", "display name claim")
	role := flag.String("role", "operator", "role claim")
	refresh := flag.Bool("refresh", false, "mint a refresh token instead")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: tokengen -user <id> [-name <name>] [-role <role>] [-refresh]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	svc := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiration,
		cfg.JWT.RefreshExpiration,
	)

	var token string
	var expiresAt int64
	if *refresh {
		token, expiresAt, err = svc.GenerateRefreshToken(*userID)
	} else {
		token, expiresAt, err = svc.GenerateAccessToken(*userID, *name, *role)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintln(os.Stderr, "expires:", time.Unix(expiresAt, 0).Format(time.RFC3339))
}
