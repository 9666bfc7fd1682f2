package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const defaultOpenAIBaseURL = "https://api.openai.com"

func main() {
	log.SetPrefix("ft/fitness-dash-go-api: ")
	log.SetFlags(0)

	// .env is optional in deployed environments where config comes from the
	// platform; only local dev relies on the file.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	pool := getDBPool()
	defer pool.Close()

	h := newHandler(pool, defaultOpenAIBaseURL)

	router := gin.Default()
	router.SetTrustedProxies(nil)

	corsConfig := cors.DefaultConfig()
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		corsConfig.AllowOrigins = []string{origin}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	h.registerRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	fmt.Printf("Starting API on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
