package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cloud-ru/mcp-mortgage-go/internal/tools"
)

// Server HTTP транспорт для инструментов
type Server struct {
	engine   *gin.Engine
	registry tools.Registry
	log      *zap.Logger
}

// New собирает gin роутер. limiter может быть nil
func New(registry tools.Registry, limiter *RateLimiter, log *zap.Logger) *Server {
	s := &Server{
		engine:   gin.New(),
		registry: registry,
		log:      log,
	}

	s.engine.Use(gin.Recovery(), RequestID(), AccessLog(log), Metrics())

	s.engine.GET("/healthz", s.health)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api/v1")
	if limiter != nil {
		api.Use(limiter.Middleware())
	}
	api.GET("/tools", s.listTools)
	api.POST("/tools/:name", s.callToolJSON)
	api.GET("/tools/:name", s.callToolQuery)

	return s
}

// Handler возвращает http.Handler для http.Server
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": s.registry.Names()})
}

func (s *Server) callToolJSON(c *gin.Context) {
	var params map[string]interface{}
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	s.callTool(c, params)
}

// callToolQuery принимает параметры из query string, как их передает мини-программа
func (s *Server) callToolQuery(c *gin.Context) {
	params := make(map[string]interface{})
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	s.callTool(c, params)
}

func (s *Server) callTool(c *gin.Context, params map[string]interface{}) {
	name := c.Param("name")
	handler, ok := s.registry[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown tool: " + name})
		return
	}

	result, err := handler(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, tools.ErrInvalidParams) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.log.Error("tool call failed", zap.String("tool", name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "calculation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}
