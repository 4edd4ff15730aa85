package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"prompt_engineer_server/internal/ai"
	"prompt_engineer_server/internal/artifacts"
	"prompt_engineer_server/internal/enhancer"
	"prompt_engineer_server/internal/textparts"
	"prompt_engineer_server/internal/types"
	"prompt_engineer_server/internal/utils"
	"prompt_engineer_server/internal/vectortext"

	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"
)

// APIKeyHeader carries a caller supplied Gemini key.
const APIKeyHeader = "X-API-Key"

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	service *enhancer.Service
	store   *artifacts.Store
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(service *enhancer.Service, store *artifacts.Store) *APIHandler {
	return &APIHandler{
		service: service,
		store:   store,
	}
}

// --- Structs for API Requests/Responses ---

type EnhanceRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type EnhanceResponse struct {
	Response   *types.EnhancedPrompt `json:"response"`
	VisualText string                `json:"visualText,omitempty"`
	Steps      []string              `json:"steps"`
	Artifacts  artifacts.Bundle      `json:"artifacts"`
}

type EnhanceRawRequest struct {
	UserPrompt string `json:"userPrompt" binding:"required"`
	SVGCode    string `json:"svgCode"`
}

type IdentifyRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type IdentifyResponse struct {
	VisualText *string `json:"visualText"`
}

type SVGRequest struct {
	Text string `json:"text" binding:"required"`
}

type ErrorResponse struct {
	Error string   `json:"error"`
	Steps []string `json:"steps,omitempty"`
}

// --- API Handlers ---

// POST /prompt/enhance
func (h *APIHandler) EnhancePrompt(c *gin.Context) {
	var req EnhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	log.Printf("Received enhancement request (%d chars)", len(req.Prompt))

	res, err := h.service.Enhance(c.Request.Context(), req.Prompt, c.GetHeader(APIKeyHeader))
	if err != nil {
		log.Printf("Error enhancing prompt: %v", err)
		status, msg := errorStatus(err)
		c.JSON(status, ErrorResponse{Error: msg, Steps: res.Steps})
		return
	}

	bundle, err := artifacts.Build(res.Response)
	if err == nil {
		bundle, err = h.store.Save(bundle)
	}
	if err != nil {
		log.Printf("Error storing artifacts: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to store artifacts", Steps: res.Steps})
		return
	}

	c.JSON(http.StatusOK, EnhanceResponse{
		Response:   res.Response,
		VisualText: res.VisualText,
		Steps:      res.Steps,
		Artifacts:  bundle,
	})
}

// POST /prompt/enhance/raw
func (h *APIHandler) EnhanceRaw(c *gin.Context) {
	var req EnhanceRawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "userPrompt is required"})
		return
	}

	resp, err := h.service.EnhanceRaw(c.Request.Context(), c.GetHeader(APIKeyHeader), req.UserPrompt, req.SVGCode)
	if err != nil {
		log.Printf("Error in raw enhancement: %v", err)
		status, msg := errorStatus(err)
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// POST /prompt/identify
func (h *APIHandler) IdentifyText(c *gin.Context) {
	var req IdentifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	var resp IdentifyResponse
	if parts := textparts.IdentifyTextParts(req.Prompt); parts.Found {
		resp.VisualText = &parts.VisualText
	}
	c.JSON(http.StatusOK, resp)
}

// POST /svg/generate
func (h *APIHandler) GenerateSVG(c *gin.Context) {
	var req SVGRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	svg, err := h.service.GenerateSVG(req.Text)
	if err != nil {
		log.Printf("Error generating SVG: %v", err)
		status, msg := errorStatus(err)
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}

// GET /artifacts/:id/:name
func (h *APIHandler) DownloadArtifact(c *gin.Context) {
	id, name := c.Param("id"), c.Param("name")

	f, err := h.store.Open(id, name)
	if err != nil {
		if errors.Is(err, artifacts.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Artifact not found"})
			return
		}
		log.Printf("Error reading artifact %s/%s: %v", id, name, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read artifact"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name))
	c.Data(http.StatusOK, utils.DetermineContentType(f.Name), []byte(f.Content))
}

// GET /health
func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "fontLoaded": h.service.FontLoaded()})
}

// errorStatus maps a pipeline error to the HTTP status and message sent back.
func errorStatus(err error) (int, string) {
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	var urlErr *url.Error
	switch {
	case errors.Is(err, ai.ErrPromptRequired):
		return http.StatusBadRequest, "Prompt is required"
	case errors.Is(err, vectortext.ErrEmptyText):
		return http.StatusBadRequest, capitalize(err.Error())
	case errors.Is(err, ai.ErrAPIKeyRequired):
		return http.StatusUnauthorized, "API key is not configured; send one in the " + APIKeyHeader + " header"
	case errors.Is(err, enhancer.ErrFontUnavailable):
		return http.StatusServiceUnavailable, capitalize(err.Error())
	case errors.Is(err, ai.ErrEmptyResponse), errors.Is(err, ai.ErrBadModelOutput):
		return http.StatusBadGateway, capitalize(err.Error())
	case errors.As(err, &apiErr), errors.As(err, &reqErr), errors.As(err, &urlErr):
		status := utils.UpstreamStatus(err)
		return status, "Gemini API error: " + err.Error()
	}
	return http.StatusInternalServerError, "Internal server error"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
