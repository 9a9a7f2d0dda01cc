package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/drewmudry/scriptcast-api/internal/config"
	"github.com/drewmudry/scriptcast-api/internal/logging"
	"github.com/drewmudry/scriptcast-api/internal/platform"
	"github.com/drewmudry/scriptcast-api/jobs"
	"github.com/drewmudry/scriptcast-api/scriptgen"
	"github.com/drewmudry/scriptcast-api/scripts"
	"github.com/drewmudry/scriptcast-api/store"
	"github.com/drewmudry/scriptcast-api/tasks"
	"github.com/drewmudry/scriptcast-api/videos"
)

type Server struct {
	Config *config.Config
	DB     *gorm.DB
	Store  *store.Store
	Queue  *tasks.Queue
	Router *gin.Engine
}

func NewServer(cfg *config.Config) (*Server, error) {
	if err := cfg.ValidateScriptGen(); err != nil {
		return nil, err
	}

	db, err := platform.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, err
	}
	st := store.New(db)
	if err := st.Migrate(); err != nil {
		return nil, err
	}
	rdb := platform.NewRedisClient(cfg.Redis)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.Use(corsMiddleware(cfg.Server.FrontendURL))

	server := &Server{
		Config: cfg,
		DB:     db,
		Store:  st,
		Queue:  tasks.NewQueue(rdb),
		Router: router,
	}
	server.setupRoutes(newGenerator(cfg.ScriptGen))
	return server, nil
}

// corsMiddleware allows the frontend origin. Credentials are only allowed for an
// explicit origin; browsers reject them together with "*".
func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		if origin != "*" {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Add("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func newGenerator(cfg config.ScriptGenConfig) scriptgen.Generator {
	if cfg.Backend == config.GeneratorOpenAI {
		return scriptgen.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
	return scriptgen.NewHTTPGenerator(cfg.APIURL, cfg.SessionCookieName, cfg.Timeout)
}

func (s *Server) setupRoutes(gen scriptgen.Generator) {
	scriptHandler := scripts.NewHandler(scripts.NewService(s.Store, gen), s.Config.ScriptGen.SessionCookieName)
	videoHandler := videos.NewHandler(videos.NewService(s.Store, s.Queue))
	jobHandler := jobs.NewHandler(jobs.NewService(s.Store))

	s.Router.GET("/health", jobs.Health)
	s.Router.POST("/generate-script", scriptHandler.GenerateScript)
	s.Router.POST("/trigger-video-gen", videoHandler.TriggerVideoGen)
	s.Router.GET("/get-job-status", jobHandler.GetJobStatus)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("Request")
	}
}

func (s *Server) Run() error {
	log.Info().Str("port", s.Config.Server.Port).Msg("Server starting")
	return s.Router.Run(":" + s.Config.Server.Port)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logging.Setup(cfg.LogLevel, false)

	server, err := NewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run server")
	}
}
