package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"activitytracker/src/domain"
	"activitytracker/src/domain/entities"
	"activitytracker/src/services/activities"
	"activitytracker/src/services/users"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UserService é o que os handlers precisam de services/users.
type UserService interface {
	CreateUser(ctx context.Context, input users.CreateUserInput) (*entities.User, error)
	GetUserByID(ctx context.Context, id entities.ID) (*entities.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entities.User, error)
	GetAllUsers(ctx context.Context) []*entities.User
	GetUsersPage(ctx context.Context, page int, size int) (domain.Page, error)
	UpdateUser(ctx context.Context, id entities.ID, input users.UpdateUserInput) (*entities.User, error)
	DeleteUser(ctx context.Context, id entities.ID) error
	CountUsers(ctx context.Context) (int64, error)
	Authenticate(ctx context.Context, username string, password string) (*entities.User, error)
}

// ActivityService é o que os handlers precisam de services/activities.
type ActivityService interface {
	GetAllActivities(ctx context.Context) []*entities.Activity
	CreateActivity(ctx context.Context, input activities.CreateActivityInput) (*entities.Activity, error)
	DeleteActivity(ctx context.Context, id entities.ID) error
}

// Server representa o servidor HTTP da API
type Server struct {
	logger          *slog.Logger
	server          *http.Server
	mux             *http.ServeMux
	port            int
	userService     UserService
	activityService ActivityService
}

// NewServer cria uma nova instância do servidor
func NewServer(logger *slog.Logger, port int, userService UserService, activityService ActivityService) *Server {
	server := &Server{
		mux:             http.NewServeMux(),
		port:            port,
		logger:          logger,
		userService:     userService,
		activityService: activityService,
	}

	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      server.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Rotas de Leitura
	server.handle("GET /v1/users", server.ListUsers)
	server.handle("GET /v1/users/count", server.CountUsers)
	server.handle("GET /v1/users/{id}", server.GetUserByID)
	server.handle("GET /v1/users/by-username/{username}", server.GetUserByUsername)
	server.handle("GET /v1/activities", server.ListActivities)

	// Rotas de Escrita
	server.handle("POST /v1/users", server.CreateUser)
	server.handle("PUT /v1/users/{id}", server.UpdateUser)
	server.handle("DELETE /v1/users/{id}", server.DeleteUser)
	server.handle("POST /v1/activities", server.CreateActivity)
	server.handle("DELETE /v1/activities/{id}", server.DeleteActivity)

	server.handle("POST /v1/auth/login", server.Login)

	server.mux.Handle("GET /metrics", promhttp.Handler())

	return server
}

func (s *Server) handle(pattern string, handler http.HandlerFunc) {
	s.mux.Handle(pattern, instrument(pattern, handler))
}

// Handler expõe o roteador, usado nos testes com httptest.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start inicia o servidor HTTP
func (s *Server) Start() error {
	s.logger.Info("Server started", "port", s.port)

	return s.server.ListenAndServe()
}

// Shutdown encerra o servidor HTTP de forma graciosa
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
