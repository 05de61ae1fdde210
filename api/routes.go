// Package api exposes the stamping toolkit over HTTP for headless use:
// upload, analyze, header/footer processing, merge, unlock and page
// numbering. Uploads are size-capped multipart files processed through a
// temp directory; outputs stream back as downloads.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Config holds the server configuration.
type Config struct {
	Port        string
	MaxFileSize int64
	TempDir     string
}

const (
	// fileCleanupDelay is how long temp files linger after the response
	// streams out, so an in-flight download never loses its backing file.
	fileCleanupDelay = 2 * time.Second

	tempDirPermissions = 0o755
)

// SetupRoutes registers the API under /api/pdf plus a health endpoint.
func SetupRoutes(r *gin.Engine, config *Config) {
	s := newServer(config)

	apiGroup := r.Group("/api/pdf")
	{
		apiGroup.POST("/upload", s.handleUpload)
		apiGroup.POST("/analyze", s.handleAnalyze)
		apiGroup.POST("/process", s.handleProcess)
		apiGroup.POST("/merge", s.handleMerge)
		apiGroup.POST("/unlock", s.handleUnlock)
		apiGroup.POST("/page-numbers", s.handlePageNumbers)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "pagestamp",
		})
	})
}
