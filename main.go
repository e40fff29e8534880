package main

import (
	"log"

	"github.com/YashJain2410/StudyBuddy/config"
	"github.com/YashJain2410/StudyBuddy/helpers"
	"github.com/YashJain2410/StudyBuddy/routes"

	"github.com/gin-gonic/gin"
)

func main() {

	log.Println("Starting application...")

	helpers.SetJWTKey(config.JWTSecret())

	r := gin.Default()
	api := r.Group("/api")
	routes.SetupRoutes(api)

	addr := config.Addr()
	log.Println("Server listening on", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
