package main

import (
	"log"

	"github.com/MrSnakeDoc/toolshelf/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ toolshelf failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ toolshelf stopped with error: %v", err)
	}
}
