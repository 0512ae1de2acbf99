package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional in production; real deployments set env vars directly.
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment as-is")
	}

	log.SetPrefix("gt/gym-tracker-go-api: ")
	log.SetFlags(0)

	h := &Handler{db: getDBPool()}
	defer h.db.Close()

	router := gin.Default()
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	addr := "localhost:3000"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	router.Run(addr)
}
