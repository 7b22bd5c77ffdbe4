package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rezonia/facturx/internal/check"
	"github.com/rezonia/facturx/internal/cii"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/pdf"
	"github.com/rezonia/facturx/internal/processor"
)

// Config holds server configuration
type Config struct {
	Address      string
	Profile      model.Profile
	CountryCode  string
	RunChecks    bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
	Logger       zerolog.Logger
}

// Server represents the HTTP API server
type Server struct {
	config  *Config
	router  *gin.Engine
	checker *check.Checker
	log     zerolog.Logger
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if !config.Profile.IsValid() {
		config.Profile = model.ProfileEN16931
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(config.Logger))

	s := &Server{
		config:  config,
		router:  router,
		checker: check.NewChecker(),
		log:     config.Logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/generate/xml", s.handleGenerateXML)
		v1.POST("/generate/pdf", s.handleGeneratePDF)
		v1.POST("/check", s.handleCheck)
		v1.POST("/inspect", s.handleInspect)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

// pipelineFor builds a per-request pipeline. Pipelines are stateless and
// cheap; the request profile overrides the server default.
func (s *Server) pipelineFor(profile string) *processor.Pipeline {
	p := s.config.Profile
	if profile != "" {
		p = model.ParseProfile(profile)
	}
	return processor.NewPipeline(
		processor.WithProfile(p),
		processor.WithCountryCode(s.config.CountryCode),
		processor.WithChecks(s.config.RunChecks),
	)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGenerateXML(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result := s.pipelineFor(req.Profile).GenerateXML(ctx, &req.Invoice, &req.Seller, req.Client)
	if result.Error != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:    result.Error.Error(),
			Warnings: result.Warnings,
		})
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", result.XML)
}

func (s *Server) handleGeneratePDF(c *gin.Context) {
	invoiceField := c.PostForm("invoice")
	if invoiceField == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing invoice form field"})
		return
	}

	var req GenerateRequest
	if err := bindJSONString(invoiceField, &req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid invoice JSON", Details: err.Error()})
		return
	}

	fileHeader, err := c.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing pdf form file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to open pdf upload", Details: err.Error()})
		return
	}
	defer file.Close()

	pdfBytes, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read pdf upload", Details: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	result := s.pipelineFor(req.Profile).GeneratePDF(ctx, &req.Invoice, &req.Seller, req.Client, pdfBytes)
	if result.Error != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:    result.Error.Error(),
			Warnings: result.Warnings,
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, result.Document.Number))
	c.Data(http.StatusOK, "application/pdf", result.PDF)
}

func (s *Server) handleCheck(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	result := s.pipelineFor(req.Profile).GenerateXML(c.Request.Context(), &req.Invoice, &req.Seller, req.Client)
	if result.Document == nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "conversion produced no document"})
		return
	}

	findings := s.checker.Check(result.Document)
	errs := check.Errors(findings)

	c.JSON(http.StatusOK, CheckResponse{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: check.Warnings(findings),
	})
}

func (s *Server) handleInspect(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return
	}

	resp := InspectResponse{Size: len(body)}

	switch {
	case bytes.HasPrefix(body, []byte("%PDF")):
		resp.Format = "pdf"
		has, err := pdf.HasStructuredData(body)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "failed to inspect PDF", Details: err.Error()})
			return
		}
		resp.HasAttachment = has
		if has {
			if xmlData, err := pdf.ExtractStructuredData(body); err == nil {
				fillProfile(&resp, xmlData)
			}
		}

	case looksLikeXML(body):
		resp.Format = "xml"
		fillProfile(&resp, body)

	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unsupported file format"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Helper functions

func fillProfile(resp *InspectResponse, xmlData []byte) {
	urn, err := cii.GuidelineURN(xmlData)
	if err != nil {
		return
	}
	resp.GuidelineURN = urn
	if p, ok := model.ProfileForURN(urn); ok {
		resp.Profile = string(p)
	}
}

func looksLikeXML(data []byte) bool {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
	return bytes.HasPrefix(trimmed, []byte("<"))
}

func bindJSONString(s string, v interface{}) error {
	return json.Unmarshal([]byte(s), v)
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
