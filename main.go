package main

import (
	"fmt"
	"log"

	"restropos-backend/config"
	"restropos-backend/routes"
	"restropos-backend/services"
	"restropos-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	blobs, err := buildBlobStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open blob store: %v", err)
	}

	domainStore := store.New(blobs)

	snapshots := services.NewSnapshotService(blobs)
	snapshots.StartScheduler()
	defer snapshots.Stop()

	recommender := services.NewRecommendationService(cfg.RecommenderURL, cfg.RecommenderTimeout)

	r := routes.SetupRouter(cfg, domainStore, recommender)
	printRoutes(r)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// buildBlobStore picks Postgres-backed blobs when DB_URL is set, file-backed
// blobs otherwise.
func buildBlobStore(cfg config.Config) (store.BlobStore, error) {
	if cfg.DBURL != "" {
		db, err := config.ConnectDB(cfg.DBURL)
		if err != nil {
			return nil, err
		}
		return store.NewGormBlobStore(db)
	}
	return store.NewFileBlobStore(cfg.DataDir)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
