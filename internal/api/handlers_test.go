package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"prompt_engineer_server/internal/ai"
	"prompt_engineer_server/internal/artifacts"
	"prompt_engineer_server/internal/enhancer"
	"prompt_engineer_server/internal/types"
	"prompt_engineer_server/internal/vectortext"

	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

type stubEnhancer struct {
	err    error
	gotKey string
	gotSVG string
}

func (s *stubEnhancer) EnhancePrompt(_ context.Context, apiKey, userPrompt, svgCode string) (*types.EnhancedPrompt, error) {
	s.gotKey, s.gotSVG = apiKey, svgCode
	if s.err != nil {
		return nil, s.err
	}
	return &types.EnhancedPrompt{
		OriginalPromptFA: userPrompt,
		EnhancedPromptEN: "A bakery sign",
		NegativePromptEN: "blurry",
		GeneratedSVG:     svgCode,
	}, nil
}

func setupRouter(t *testing.T, stub *stubEnhancer, withFont bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var font *vectortext.Font
	if withFont {
		f, err := vectortext.ParseFont(goregular.TTF)
		require.NoError(t, err)
		font = f
	}
	h := NewAPIHandler(enhancer.NewService(stub, font), artifacts.NewStore(t.TempDir()))

	router := gin.New()
	RegisterRoutes(router, h)
	return router
}

func doJSON(router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func TestEnhancePrompt_SuccessAndDownload(t *testing.T) {
	stub := &stubEnhancer{}
	router := setupRouter(t, stub, true)

	w := doJSON(router, http.MethodPost, "/prompt/enhance", gin.H{"prompt": `a bakery with a تابلو "BREAD"`}, map[string]string{APIKeyHeader: "user-key"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "user-key", stub.gotKey)

	var resp struct {
		Response   types.EnhancedPrompt `json:"response"`
		VisualText string               `json:"visualText"`
		Steps      []string             `json:"steps"`
		Artifacts  struct {
			ID    string `json:"id"`
			Files []struct {
				Name string `json:"name"`
			} `json:"files"`
		} `json:"artifacts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "BREAD", resp.VisualText)
	assert.Equal(t, "A bakery sign", resp.Response.EnhancedPromptEN)
	assert.NotEmpty(t, resp.Response.GeneratedSVG)
	assert.Equal(t, enhancer.StepDone, resp.Steps[len(resp.Steps)-1])
	require.NotEmpty(t, resp.Artifacts.ID)
	require.Len(t, resp.Artifacts.Files, 3)

	w = doJSON(router, http.MethodGet, "/artifacts/"+resp.Artifacts.ID+"/"+artifacts.SVGFile, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="generated_text.svg"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, resp.Response.GeneratedSVG, w.Body.String())

	w = doJSON(router, http.MethodGet, "/artifacts/"+resp.Artifacts.ID+"/"+artifacts.TextFile, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "A bakery sign\n--neg blurry", w.Body.String())
}

func TestEnhancePrompt_BadRequests(t *testing.T) {
	router := setupRouter(t, &stubEnhancer{}, false)

	w := doJSON(router, http.MethodPost, "/prompt/enhance", gin.H{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/prompt/enhance", gin.H{"prompt": "   "}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Prompt is required", decodeError(t, w).Error)
}

func TestEnhancePrompt_ErrorStatuses(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"missing key", ai.ErrAPIKeyRequired, http.StatusUnauthorized},
		{"upstream auth", &openai.APIError{HTTPStatusCode: http.StatusForbidden, Message: "permission denied"}, http.StatusUnauthorized},
		{"rate limited", &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests, Message: "quota"}, http.StatusTooManyRequests},
		{"upstream down", &openai.RequestError{HTTPStatusCode: http.StatusServiceUnavailable, Err: assert.AnError}, http.StatusBadGateway},
		{"bad model output", ai.ErrBadModelOutput, http.StatusBadGateway},
		{"unexpected", assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := setupRouter(t, &stubEnhancer{err: tc.err}, false)
			w := doJSON(router, http.MethodPost, "/prompt/enhance", gin.H{"prompt": "hello"}, nil)
			assert.Equal(t, tc.status, w.Code)

			e := decodeError(t, w)
			assert.NotEmpty(t, e.Error)
			require.NotEmpty(t, e.Steps)
			assert.Equal(t, enhancer.StepFailed, e.Steps[len(e.Steps)-1])
		})
	}
}

func TestEnhanceRaw(t *testing.T) {
	stub := &stubEnhancer{}
	router := setupRouter(t, stub, false)

	w := doJSON(router, http.MethodPost, "/prompt/enhance/raw", gin.H{"userPrompt": "hi", "svgCode": "<svg/>"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "<svg/>", resp["generated_svg"])

	w = doJSON(router, http.MethodPost, "/prompt/enhance/raw", gin.H{"svgCode": "<svg/>"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "userPrompt is required", decodeError(t, w).Error)
}

func TestIdentifyText(t *testing.T) {
	router := setupRouter(t, &stubEnhancer{}, false)

	w := doJSON(router, http.MethodPost, "/prompt/identify", gin.H{"prompt": "نوشته: سلام:"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"visualText":"سلام"}`, w.Body.String())

	w = doJSON(router, http.MethodPost, "/prompt/identify", gin.H{"prompt": "a cat"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"visualText":null}`, w.Body.String())
}

func TestGenerateSVG(t *testing.T) {
	w := doJSON(setupRouter(t, &stubEnhancer{}, false), http.MethodPost, "/svg/generate", gin.H{"text": "Hi"}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	router := setupRouter(t, &stubEnhancer{}, true)
	w = doJSON(router, http.MethodPost, "/svg/generate", gin.H{"text": "Hi"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<path d=\"M")

	w = doJSON(router, http.MethodPost, "/svg/generate", gin.H{"text": "  "}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadArtifact_NotFound(t *testing.T) {
	router := setupRouter(t, &stubEnhancer{}, false)

	w := doJSON(router, http.MethodGet, "/artifacts/6f1c2a52-7d3e-4a43-9b0e-5b8f1e2d9c11/"+artifacts.TextFile, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodGet, "/artifacts/nope/secret.txt", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	router := setupRouter(t, &stubEnhancer{}, false)

	w := doJSON(router, http.MethodGet, "/prompt/enhance", nil, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "Method Not Allowed", decodeError(t, w).Error)
}

func TestHealth(t *testing.T) {
	w := doJSON(setupRouter(t, &stubEnhancer{}, true), http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","fontLoaded":true}`, w.Body.String())
}
