package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salustele/teleconsult-api/internal/config"
	dbpkg "github.com/salustele/teleconsult-api/internal/db"
	"github.com/salustele/teleconsult-api/internal/redisclient"
	"github.com/salustele/teleconsult-api/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb, err := redisclient.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
