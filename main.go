package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/store"
)

func main() {
	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	scene, err := config.LoadScene(cfg.SceneFile)
	if err != nil {
		log.Fatal("Failed to load scene: ", err)
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer st.Close()

	srv := newServer(cfg, scene, st)
	r, err := srv.router()
	if err != nil {
		log.Fatal("Failed to build router: ", err)
	}

	// Clean up old visitor data for privacy compliance.
	go srv.pruneVisitors()

	log.Printf("Portfolio listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
