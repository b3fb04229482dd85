package main

import (
	"log"

	"github.com/aussiebroadwan/folio/internal/portfolio/app"
)

//go:generate swag init -g internal/portfolio/http/router.go -d ../../ -o ../../api/portfolio --parseInternal

func main() {
	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
