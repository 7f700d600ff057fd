package main

import "github.com/joho/godotenv"

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()
	Execute()
}
