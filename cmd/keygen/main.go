package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/arnavshah/booth-roster-go/pkg/auth"
)

func main() {
	// Load .env from project root
	_ = godotenv.Load("../.env")

	if len(os.Args) < 2 {
		fmt.Println("Usage: keygen <keyName>")
		os.Exit(1)
	}

	name := os.Args[1]
	secret := os.Getenv("API_MASTER_SECRET")
	if secret == "" {
		fmt.Println("Error: API_MASTER_SECRET not found in .env")
		os.Exit(1)
	}

	a := auth.New(os.Getenv("JWT_SECRET"), secret)
	fmt.Printf("Generated Key for %s:\n%s\n", name, a.GenerateKey(name))
}
