package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emilythestrangee/bloglite/backend/internal/auth"
	"github.com/emilythestrangee/bloglite/backend/internal/config"
	"github.com/emilythestrangee/bloglite/backend/internal/database"
	"github.com/emilythestrangee/bloglite/backend/internal/handlers"
	"github.com/emilythestrangee/bloglite/backend/internal/logger"
	"github.com/emilythestrangee/bloglite/backend/internal/metrics"
	"github.com/emilythestrangee/bloglite/backend/internal/middleware"
	"github.com/emilythestrangee/bloglite/backend/internal/service"
)

type Server struct {
	cfg     *config.Config
	db      database.Service
	handler *handlers.Handler
	auth    *middleware.Auth
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// New wires the services, session store and handlers on top of db.
func New(cfg *config.Config, db database.Service, l zerolog.Logger) *Server {
	gormDB := db.GetDB()
	m := metrics.New()

	identity := service.NewIdentityService(gormDB)
	graph := service.NewFollowService(gormDB)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	sessions := middleware.NewSessions(middleware.NewSessionStore(cfg.Auth))

	handler := handlers.NewHandler(handlers.Services{
		Identity: identity,
		Graph:    graph,
		Feed:     service.NewFeedService(gormDB, graph, m.FeedFallbacks),
		Posts:    service.NewPostService(gormDB),
		Search:   service.NewSearchService(gormDB),
		Tokens:   tokens,
		Sessions: sessions,
		Metrics:  m,
	})

	return &Server{
		cfg:     cfg,
		db:      db,
		handler: handler,
		auth:    middleware.NewAuth(sessions, tokens, identity),
		metrics: m,
		log:     l,
	}
}

// NewServer creates and configures the HTTP server.
func NewServer(cfg *config.Config, db database.Service, l zerolog.Logger) *http.Server {
	s := New(cfg, db, l)

	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.metrics.GinMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	// Everything below is logged and may carry a session.
	app := r.Group("")
	app.Use(logger.GinMiddleware(s.log), s.auth.Identify())
	{
		app.GET("/login", s.handler.Auth.LoginForm)
		app.POST("/login", s.handler.Auth.Login)
		app.GET("/signup", s.handler.Auth.SignupForm)
		app.POST("/signup", s.handler.Auth.Signup)

		protected := app.Group("")
		protected.Use(s.auth.RequireAuth())
		{
			protected.GET("/logout", s.handler.Auth.Logout)

			protected.GET("/", s.handler.Feed.Home)
			protected.GET("/home", s.handler.Feed.Home)

			protected.GET("/search", s.handler.User.SearchForm)
			protected.POST("/search", s.handler.User.Search)

			protected.GET("/create_post", s.handler.Post.CreateForm)
			protected.POST("/create_post", s.handler.Post.CreatePost)
			protected.GET("/myprofile", s.handler.Post.MyProfile)
			protected.GET("/profile/:username", s.handler.Post.Profile)
			protected.GET("/edit_post/:id", s.handler.Post.EditForm)
			protected.POST("/edit_post/:id", s.handler.Post.EditPost)
			protected.GET("/delete_post/:id", s.handler.Post.DeleteConfirm)
			protected.POST("/delete_post/:id", s.handler.Post.DeletePost)

			both := []string{http.MethodGet, http.MethodPost}
			protected.Match(both, "/follow/:username", s.handler.User.FollowUser)
			protected.Match(both, "/unfollow/:username", s.handler.User.UnfollowUser)
			protected.Match(both, "/followers/:username", s.handler.User.GetFollowers)
			protected.Match(both, "/following/:username", s.handler.User.GetFollowing)
		}
	}

	return r
}

func (s *Server) health(c *gin.Context) {
	stats := s.db.Health()
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, stats)
}
