// Copyright 2025 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/agents"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/telemetry"
)

func main() {
	telemetry.SetupLogging()
	slog.Info("Logging initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := GetConfig()

	_, err := telemetry.SetupOpenTelemetry(ctx, config)
	if err != nil {
		slog.Error("Failed to setup OpenTelemetry", "error", err)
		log.Fatal(err)
	}
	slog.Info("Tracing initialized")

	InitState(ctx)
	slog.Info("Initialized State")

	r := gin.Default()

	// Add OpenTelemetry middleware
	r.Use(otelgin.Middleware("artisan-studio-server"))

	// Permissive CORS keeps local frontend development friction-free.
	r.Use(cors.Default())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Create the "/api/v1" group
	apiV1 := r.Group("/api/v1")
	{
		CollateralRouter(apiV1)
		AssemblyRouter(apiV1)
		RunRouter(apiV1)
	}

	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	// Start the server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to listen: ", "error", err)
		}
	}()
	slog.Info("Server Ready on port 8080")

	// Wait for an interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutdown Server ...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server Shutdown Failed:", "error", err)
	}

	log.Println("Server exiting")
}

// collateralRequestBody is the JSON payload for a full generation order.
type collateralRequestBody struct {
	ProductName        string `json:"product_name"`
	ProductDescription string `json:"product_description" binding:"required"`
	GcsImageURI        string `json:"gcs_image_uri" binding:"required"`
	Directive          string `json:"directive"`
}

// imageExtensions are the upload formats accepted as product photos.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"}

// validateCollateralRequest applies the sanity checks on a generation order:
// a non-empty description and a gs:// URI that points at an image file.
func validateCollateralRequest(body *collateralRequestBody) string {
	if strings.TrimSpace(body.ProductDescription) == "" {
		return "product description is required and cannot be empty"
	}
	if !strings.HasPrefix(body.GcsImageURI, model.GCSScheme) {
		return "GCS image URI must start with 'gs://' (example: gs://bucket-name/image.jpg)"
	}
	lower := strings.ToLower(body.GcsImageURI)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return ""
		}
	}
	return "GCS image URI should point to an image file (" + strings.Join(imageExtensions, ", ") + ")"
}

// CollateralRouter sets up the route that runs a full collateral generation:
// story, images, music, narration, video, and the final assembled reel.
func CollateralRouter(r *gin.RouterGroup) {
	collateral := r.Group("/collateral")
	{
		collateral.POST("", func(c *gin.Context) {
			var body collateralRequestBody
			if err := c.ShouldBindJSON(&body); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if msg := validateCollateralRequest(&body); msg != "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": msg})
				return
			}

			start := time.Now()
			result, err := state.coordinator.GenerateCollateral(c, &agents.CollateralRequest{
				ProductName: body.ProductName,
				Description: body.ProductDescription,
				ImageURI:    body.GcsImageURI,
				Directive:   body.Directive,
			})
			if err != nil {
				slog.Error("collateral generation failed", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"result":                  result,
				"processing_time_seconds": time.Since(start).Seconds(),
			})
		})
	}
}

// AssemblyRouter sets up the route that runs the video-assembly pipeline
// synchronously against caller-supplied clips.
func AssemblyRouter(r *gin.RouterGroup) {
	assembly := r.Group("/assembly")
	{
		assembly.POST("", func(c *gin.Context) {
			var request model.AssemblyRequest
			if err := c.ShouldBindJSON(&request); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if len(request.Videos) == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "at least one video is required"})
				return
			}

			result := state.assembly.Assemble(c, &request)
			status := http.StatusOK
			if result.Status != model.StatusSuccess {
				status = http.StatusUnprocessableEntity
			}
			c.JSON(status, result)
		})
	}
}

// RunRouter sets up the routes for browsing the assembly run history and
// sharing finished reels.
func RunRouter(r *gin.RouterGroup) {
	runs := r.Group("/runs")
	{
		runs.GET("", func(c *gin.Context) {
			count, err := strconv.Atoi(c.DefaultQuery("count", "20"))
			if err != nil {
				count = 20
			}
			out, err := state.runService.RecentRuns(c, count)
			if err != nil {
				slog.Error("failed to list runs", "error", err)
				c.Status(http.StatusInternalServerError)
				return
			}
			c.JSON(http.StatusOK, out)
		})

		runs.GET("/:id", func(c *gin.Context) {
			out, err := state.runService.FindRun(c, c.Param("id"))
			if err != nil {
				c.Status(http.StatusNotFound)
				return
			}
			c.JSON(http.StatusOK, out)
		})

		// Share a finished reel with a time-limited download link.
		runs.GET("/:id/share", func(c *gin.Context) {
			run, err := state.runService.FindRun(c, c.Param("id"))
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
				return
			}
			if run.OutputURI == "" {
				c.JSON(http.StatusConflict, gin.H{"error": "run produced no output"})
				return
			}
			signedURL, err := state.shareService.GenerateSignedURL(c, run.OutputURI, 15*time.Minute)
			if err != nil {
				slog.Error("failed to sign share URL", "run", run.RunID, "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate share URL"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"url": signedURL})
		})
	}
}
