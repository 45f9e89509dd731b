// Package web provides the read-only HTTP API of the bot.
// It uses Gin for routing and middleware.
package web

import (
	"bytes"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/spam"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// Per-IP request budget
const (
	rateWindow      = 60 * time.Second
	rateMaxRequests = 100
)

// Server represents the web server
type Server struct {
	engine           *gin.Engine
	webhookURL       string
	allowedHostRegex *regexp.Regexp
	limiter          *spam.Guard
	httpClient       *http.Client
}

// NewServer creates a web server. allowedHosts is a regular expression
// matched against the Host header; empty accepts every host.
func NewServer(webhookURL, allowedHosts string) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine:     gin.New(),
		webhookURL: webhookURL,
		limiter:    spam.NewGuard(rateWindow, rateMaxRequests),
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
	if allowedHosts != "" {
		re, err := regexp.Compile(allowedHosts)
		if err != nil {
			return nil, fmt.Errorf("invalid allowed hosts pattern: %w", err)
		}
		s.allowedHostRegex = re
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(s.logsMiddleware())
	s.engine.Use(s.rateLimitMiddleware())
	s.setupErrorHandlers()

	return s, nil
}

// Engine returns the underlying Gin engine
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// logsMiddleware logs requests and rejects hosts outside the allow list
func (s *Server) logsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.allowedHostRegex == nil || s.allowedHostRegex.MatchString(c.Request.Host) {
			logger.Debug(fmt.Sprintf("Nueva solicitud: %s %s", c.Request.Method, c.Request.URL.Path), "WebServer")
			c.Next()
			return
		}

		logger.Warn(fmt.Sprintf("Solicitud sospechosa: %s %s | %s", c.Request.Method, c.Request.URL.Path, c.ClientIP()), "WebServer")
		go s.reportSuspicious(c.Request.Method, c.Request.URL.Path, c.ClientIP())
		c.AbortWithStatus(http.StatusForbidden)
	}
}

// reportSuspicious sends a rejected request to the logs webhook
func (s *Server) reportSuspicious(method, path, ip string) {
	if s.webhookURL == "" {
		return
	}

	payload := map[string]interface{}{
		"embeds": []interface{}{
			map[string]interface{}{
				"title":       fmt.Sprintf("💫 | Solicitud Sospechosa Rechazada: %s %s", method, path),
				"description": fmt.Sprintf("> **Ruta:** `%s`\n> **IP:** `%s`", path, ip),
				"color":       0xFFA500,
				"timestamp":   time.Now().Format(time.RFC3339),
			},
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return
	}

	resp, err := s.httpClient.Post(s.webhookURL, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return
	}
	defer resp.Body.Close()
}

// rateLimitMiddleware limits every client IP with the same sliding window
// the spam guard uses for chat messages
func (s *Server) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter.Observe("web", c.ClientIP(), time.Now()).Suppress {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Demasiadas solicitudes, por favor intente de nuevo más tarde.",
			})
			return
		}
		c.Next()
	}
}

func (s *Server) setupErrorHandlers() {
	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": "La ruta solicitada no existe.",
			"status":  404,
		})
	})

	s.engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error":   "Method Not Allowed",
			"message": "El método HTTP no está permitido para esta ruta.",
			"status":  405,
		})
	})
}

// Start starts the web server
func (s *Server) Start(port string) error {
	logger.Info(fmt.Sprintf("🚀 Servidor escuchando en http://localhost:%s", port), "WebServer")
	return s.engine.Run(":" + port)
}

// StartAsync starts the web server in a goroutine
func (s *Server) StartAsync(port string) {
	go func() {
		if err := s.Start(port); err != nil {
			logger.Error(fmt.Sprintf("Error starting web server: %v", err), "WebServer")
		}
	}()
}

// SweepLimiter drops idle rate limit windows
func (s *Server) SweepLimiter(now time.Time) int {
	return s.limiter.Sweep(now)
}

// Group creates a new router group
func (s *Server) Group(path string, handlers ...gin.HandlerFunc) *gin.RouterGroup {
	return s.engine.Group(path, handlers...)
}
