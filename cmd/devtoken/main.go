// Command devtoken prints a signed bearer token for local development.
//
//	go run ./cmd/devtoken -sub 1 -role superadmin
//
// It signs with JWT_SECRET, the same secret the API verifies against.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

func main() {
	sub := flag.Uint("sub", 1, "user id")
	role := flag.String("role", models.RoleSuperadmin, "superadmin or barber")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *role != models.RoleSuperadmin && *role != models.RoleBarber {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
		os.Exit(2)
	}

	cfg := config.Load()
	if !cfg.IsDevelopment() {
		fmt.Fprintln(os.Stderr, "refusing to mint tokens outside ENV=development")
		os.Exit(1)
	}

	signed, err := middleware.SignToken(cfg.JWTSecret, uint(*sub), *role, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(signed)
}
