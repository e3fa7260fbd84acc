package main

import (
	"log"

	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatalf("storefront api failed: %v", err)
	}
}
