package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up the API endpoints and groups them logically.
func RegisterRoutes(router *gin.Engine, h *APIHandler) {
	// Wrong verbs on a known path answer 405 instead of 404
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: "Method Not Allowed"})
	})

	// --- Prompt enhancement ---
	promptGroup := router.Group("/prompt")
	{
		promptGroup.POST("/enhance", h.EnhancePrompt)  // Full pipeline, stores artifacts
		promptGroup.POST("/enhance/raw", h.EnhanceRaw) // Prompt + optional SVG straight to the model
		promptGroup.POST("/identify", h.IdentifyText)  // Visual text detection only
	}

	// --- Standalone SVG text generator ---
	svgGroup := router.Group("/svg")
	{
		svgGroup.POST("/generate", h.GenerateSVG)
	}

	// --- Artifact downloads ---
	router.GET("/artifacts/:id/:name", h.DownloadArtifact)

	router.GET("/health", h.Health)
}
