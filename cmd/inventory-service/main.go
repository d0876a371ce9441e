package main

import (
	"context"
	"log"

	"github.com/IT21177828/CTSE-Project/internal/app/inventoryapi"
)

func main() {
	if err := inventoryapi.Run(context.Background()); err != nil {
		log.Fatalf("inventory service failed: %v", err)
	}
}
