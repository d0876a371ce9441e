package main

import (
	"context"
	"log"

	"github.com/IT21177828/CTSE-Project/internal/app/productapi"
)

func main() {
	if err := productapi.Run(context.Background()); err != nil {
		log.Fatalf("product service failed: %v", err)
	}
}
