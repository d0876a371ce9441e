package main

import (
	"context"
	"log"

	"github.com/IT21177828/CTSE-Project/internal/app/orderapi"
)

func main() {
	if err := orderapi.Run(context.Background()); err != nil {
		log.Fatalf("order service failed: %v", err)
	}
}
