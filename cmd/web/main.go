package main

import (
	"github.com/sahithdaddla/veera20-Job-Applications/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	// Optional; deployments set real environment variables instead.
	_ = godotenv.Load()

	app.Run()
}
