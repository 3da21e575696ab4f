package server

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/inspectech/ddr/internal/config"
	"github.com/inspectech/ddr/internal/core"
	"github.com/inspectech/ddr/internal/core/model"
	"github.com/inspectech/ddr/internal/llm"
	"github.com/inspectech/ddr/internal/report"
)

type Server struct {
	Config    *config.Config
	Pipeline  *core.Pipeline
	Generator *report.Generator
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Using built-in defaults.", cfgPath, err)
		cfg = config.Default()
	}

	// Env overrides for the LLM collaborator.
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_EMBEDDING_MODEL"); v != "" {
		cfg.LLM.EmbeddingModel = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	// LLM unavailability is not fatal: analysis runs with lexical dedup only
	// and report sections fall back to structured text.
	llmClient, embedder, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		log.Printf("Warning: LLM client unavailable: %v. Running with rule-based analysis only.", err)
		llmClient, embedder = nil, nil
	}

	return &Server{
		Config:    cfg,
		Pipeline:  core.NewPipeline(cfg, embedder),
		Generator: report.NewGenerator(llmClient),
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/api/status", s.Status)
	r.POST("/api/analyze", s.Analyze)

	return r
}

func (s *Server) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "online",
		"llm_provider": s.Config.LLM.Provider,
		"model":        s.Config.LLM.Model,
	})
}

// AnalyzeRequest is the input boundary: per-area raw findings from the
// document-extraction collaborator, plus generation options.
type AnalyzeRequest struct {
	PropertyDetails  model.PropertyDetails             `json:"property_details"`
	NegativeFindings map[string][]string               `json:"negative_findings"`
	PositiveFindings map[string][]string               `json:"positive_findings"`
	ThermalData      map[string]*model.ThermalEvidence `json:"thermal_data"`

	GenerateProse bool `json:"generate_prose"`
}

type AnalyzeResponse struct {
	Success    bool                    `json:"success"`
	Report     *model.DDRReport        `json:"report"`
	ReportMD   string                  `json:"report_md,omitempty"`
	Validation report.ValidationResult `json:"validation"`
}

func (s *Server) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ddr := s.Pipeline.BuildReport(&model.ExtractionResult{
		PropertyDetails:     req.PropertyDetails,
		RawNegativeFindings: req.NegativeFindings,
		RawPositiveFindings: req.PositiveFindings,
		ThermalData:         req.ThermalData,
	})

	s.Pipeline.Analyze(c.Request.Context(), ddr)

	var md string
	if req.GenerateProse {
		s.Generator.GenerateSections(c.Request.Context(), ddr)
		md = report.RenderMarkdown(ddr)
	}

	c.JSON(http.StatusOK, AnalyzeResponse{
		Success:    true,
		Report:     ddr,
		ReportMD:   md,
		Validation: report.Validate(ddr),
	})
}
