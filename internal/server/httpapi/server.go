// Package httpapi exposes the service as an HTTP+JSON API. It is a thin
// transport adapter over the services layer: handlers validate the payload,
// call one service operation, and translate sentinel errors to status codes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/snugbooks/backend/internal/logging"
	"github.com/snugbooks/backend/internal/server/services"
)

type Server struct {
	address    string
	adminToken string
	users      *services.UserService
	records    *services.RecordService
	companies  *services.CompanyService
	logger     logging.Logger
	engine     *gin.Engine
}

func NewServer(a string, l logging.Logger, us *services.UserService, rs *services.RecordService, cs *services.CompanyService, adminToken string) (*Server, error) {
	s := &Server{
		address:    a,
		adminToken: adminToken,
		users:      us,
		records:    rs,
		companies:  cs,
		logger:     l.With("module", "http_server"),
	}
	s.engine = s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())

	// Deliberately wide open; the frontend is served from another origin.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: false,
	}))

	r.GET("/health", s.health)

	r.GET("/users", s.listUsers)
	r.POST("/users", s.createUser)
	r.PATCH("/users/:id/role", s.adminOnly(), s.updateUserRole)

	r.POST("/auth/login", s.login)
	r.POST("/auth/reset", s.resetPassword)

	r.POST("/sie-files", s.createSIEFile)
	r.GET("/sie-files", s.listSIEFiles)

	r.POST("/receipts", s.createReceipt)
	r.GET("/receipts", s.listReceipts)

	r.GET("/companies", s.listCompanies)
	r.POST("/companies", s.createCompany)
	r.PUT("/companies/:id", s.updateCompany)
	r.DELETE("/companies/:id", s.deleteCompany)

	return r
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.engine,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
