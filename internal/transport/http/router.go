package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"trivia-quiz/internal/app"
)

// NewRouter mounts the REST API, the websocket endpoint and the health check.
func NewRouter(service *app.QuizService, log *zap.Logger, leaderboardLimit int) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := NewAPIHandler(service, leaderboardLimit)
	group := r.Group("/api")
	group.GET("/categories", api.Categories)
	group.GET("/leaderboard", api.Leaderboard)
	group.POST("/sessions", api.CreateSession)
	group.GET("/sessions/:id", api.Session)
	group.DELETE("/sessions/:id", api.Abandon)
	group.POST("/sessions/:id/start", api.Start)
	group.POST("/sessions/:id/answers", api.Submit)
	group.GET("/sessions/:id/result", api.Result)
	group.POST("/sessions/:id/score", api.SubmitScore)

	ws := NewWSHandler(service, log)
	r.GET("/ws", func(c *gin.Context) {
		ws.ServeWS(c.Writer, c.Request)
	})
	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
