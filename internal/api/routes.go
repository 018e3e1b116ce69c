package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hwpib/benchmarking-engine/internal/algorithm"
	"github.com/hwpib/benchmarking-engine/internal/benchmark"
	"github.com/hwpib/benchmarking-engine/internal/db"
	"github.com/hwpib/benchmarking-engine/internal/state"
	"github.com/hwpib/benchmarking-engine/pkg/models"
)

// APIHandler wires the HTTP layer to the shared server state, the
// persistence layer, and the websocket broadcaster.
type APIHandler struct {
	srv   *state.Server
	store *db.PostgresStore
	wsHub *Hub
}

// SetupRouter builds the Gin engine: CORS, auth/rate-limiting on the
// analyst-only routes, and the endpoints for formula/atomic/config
// upload, company input submission, running a benchmark, and fetching
// a company's output.
func SetupRouter(srv *state.Server, store *db.PostgresStore, wsHub *Hub) *gin.Engine {
	r := gin.Default()

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowedOrigins == "" || allowedOrigins == "*" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowed := range strings.Split(allowedOrigins, ",") {
				if strings.TrimSpace(allowed) == origin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					break
				}
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Authorization, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	handler := &APIHandler{srv: srv, store: store, wsHub: wsHub}

	pub := r.Group("/api/v1")
	{
		pub.GET("/health", handler.handleHealth)
		pub.GET("/stream", wsHub.Subscribe)
		pub.GET("/company/:id/output", handler.handleGetOutput)
	}

	// Analyst-only endpoints: formula/atomic upload and run control are
	// gated by the bearer-token check and the stricter rate limit.
	analyst := r.Group("/api/v1/analyst")
	analyst.Use(AuthMiddleware())
	analyst.Use(NewRateLimiter(30, 5).Middleware())
	{
		analyst.POST("/formulas", handler.handleUploadFormulas)
		analyst.POST("/atomics", handler.handleUploadAtomics)
		analyst.POST("/config", handler.handleUploadConfig)
		analyst.POST("/benchmark/run", handler.handleRunBenchmark)
	}

	// Company endpoints carry the same identity check but a looser
	// rate limit, since every participating company submits input.
	company := r.Group("/api/v1/company")
	company.Use(AuthMiddleware())
	company.Use(NewRateLimiter(60, 10).Middleware())
	{
		company.POST("/input", handler.handleSubmitInput)
	}

	return r
}

func (h *APIHandler) handleHealth(c *gin.Context) {
	_, loaded := h.srv.Algorithm()
	c.JSON(http.StatusOK, gin.H{
		"status":         "operational",
		"algorithmReady": loaded,
		"participants":   h.srv.ParticipantCount(),
		"dbConnected":    h.store != nil,
	})
}

// handleUploadFormulas parses an intermediary formula file, lowers it
// to atomics, builds an Algorithm from the result, and installs it as
// the server's current algorithm.
func (h *APIHandler) handleUploadFormulas(c *gin.Context) {
	body, err := singleUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	forms, err := models.ParseFormulaFile(bytes.NewReader(body))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	atomics, err := algorithm.Lower(forms)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	alg, err := algorithm.LoadAtomics(atomics)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	h.srv.SetAlgorithm(alg)
	c.JSON(http.StatusOK, gin.H{
		"status": "algorithm_loaded",
		"kpis":   alg.KPIs(),
	})
}

// handleUploadAtomics parses an atomic file directly (bypassing
// formula lowering) and installs the resulting Algorithm.
func (h *APIHandler) handleUploadAtomics(c *gin.Context) {
	body, err := singleUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alg, err := algorithm.Load(bytes.NewReader(body))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	h.srv.SetAlgorithm(alg)
	c.JSON(http.StatusOK, gin.H{
		"status": "algorithm_loaded",
		"kpis":   alg.KPIs(),
	})
}

// handleUploadConfig parses a run configuration and installs it,
// persisting a history row if a store is configured.
func (h *APIHandler) handleUploadConfig(c *gin.Context) {
	body, err := singleUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := models.ParseConfig(bytes.NewReader(body))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.srv.SetConfig(cfg)

	if h.store != nil {
		if _, err := h.store.SaveConfig(c.Request.Context(), cfg.Name, cfg.Description, cfg.KAnonymity, cfg.EvalMode, cfg.Offload); err != nil {
			log.Printf("failed to persist config history: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "config_loaded", "kAnonymity": cfg.KAnonymity})
}

// handleSubmitInput parses one company's input file and records it
// against the identity the auth middleware has already validated.
func (h *APIHandler) handleSubmitInput(c *gin.Context) {
	companyID := companyIDFromRequest(c)

	body, err := singleUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in, err := models.ParseInput(bytes.NewReader(body))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alg, ok := h.srv.Algorithm()
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "no algorithm loaded yet"})
		return
	}
	if err := alg.VerifyInput(in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	h.srv.AdmitCompany(companyID, models.Certificate(companyID))
	h.srv.SetCompanyInput(companyID, in)

	c.JSON(http.StatusOK, gin.H{
		"status":    "input_recorded",
		"companyId": companyID,
		"variables": in.Size(),
	})
}

// handleRunBenchmark runs the currently loaded algorithm over every
// participating company, broadcasting progress over the websocket hub
// and persisting a shallow audit record of the run.
func (h *APIHandler) handleRunBenchmark(c *gin.Context) {
	alg, ok := h.srv.Algorithm()
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "no algorithm loaded yet"})
		return
	}
	if !h.srv.CanRunBenchmark() {
		c.JSON(http.StatusPreconditionFailed, gin.H{
			"error": "k-anonymity floor not met",
			"have":  h.srv.ParticipantCount(),
			"need":  h.srv.Config().KAnonymity,
		})
		return
	}

	runID := uuid.New().String()
	inputs := h.srv.ParticipatingInputs()
	started := time.Now()

	outputs, runErr := benchmark.Run(alg, inputs, h.broadcastProgress(runID))

	if runErr == nil {
		for companyID, out := range outputs {
			h.srv.SetCompanyOutput(companyID, out)
		}
	}

	if h.store != nil {
		go h.persistRunAudit(runID, alg, inputs, started, runErr)
	}

	if runErr != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"runId": runID, "error": runErr.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runId": runID, "status": "benchmarking-success", "companies": len(outputs)})
}

// handleGetOutput returns one company's assigned output, if any.
func (h *APIHandler) handleGetOutput(c *gin.Context) {
	id := c.Param("id")
	company, ok := h.srv.Company(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown company"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"companyId": id, "output": company.ResultsData.Vars()})
}

// broadcastProgress returns a benchmark.ProgressFunc that forwards
// every progress line to the websocket hub, tagged with runID.
func (h *APIHandler) broadcastProgress(runID string) benchmark.ProgressFunc {
	return func(message string) {
		data, err := json.Marshal(gin.H{"type": "benchmark_progress", "runId": runID, "message": message})
		if err != nil {
			return
		}
		h.wsHub.Broadcast(data)
	}
}

func (h *APIHandler) persistRunAudit(runID string, alg *algorithm.Algorithm, inputs map[string]models.Input, started time.Time, runErr error) {
	audit := db.RunAudit{
		RunID:        runID,
		CompanyCount: len(inputs),
		KPICount:     len(alg.KPIs()),
		StartedAt:    started.UnixMilli(),
		DurationMs:   time.Since(started).Milliseconds(),
		Succeeded:    runErr == nil,
	}
	if err := h.store.SaveRunAudit(context.Background(), audit); err != nil {
		log.Printf("failed to persist run audit %s: %v", runID, err)
	}
}

// companyIDFromRequest derives a stable per-caller company ID from
// the bearer token's identity; in the absence of auth (dev mode) a
// fresh random ID is minted per request.
func companyIDFromRequest(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if parts := strings.SplitN(auth, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
