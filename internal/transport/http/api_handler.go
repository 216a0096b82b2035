package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

// APIHandler exposes the quiz use cases over REST.
type APIHandler struct {
	service          *app.QuizService
	leaderboardLimit int
}

func NewAPIHandler(service *app.QuizService, leaderboardLimit int) *APIHandler {
	return &APIHandler{service: service, leaderboardLimit: leaderboardLimit}
}

type startRequest struct {
	Category   int    `json:"category" binding:"min=0"`
	Difficulty string `json:"difficulty"`
	Amount     int    `json:"amount" binding:"min=0,max=50"`
}

func (r startRequest) config() (domain.QuizConfig, bool) {
	diff, ok := domain.ParseDifficulty(r.Difficulty)
	return domain.QuizConfig{CategoryID: r.Category, Difficulty: diff, Amount: r.Amount}, ok
}

type answerRequest struct {
	QuestionIndex *int   `json:"questionIndex" binding:"required"`
	Answer        string `json:"answer"`
}

type scoreRequest struct {
	Player string `json:"player"`
}

func writeError(c *gin.Context, err error) {
	payload, status := classify(err)
	c.JSON(status, payload)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorPayload{Kind: "bad_request", Message: msg})
}

func (h *APIHandler) CreateSession(c *gin.Context) {
	view, err := h.service.CreateSession(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *APIHandler) Start(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	cfg, ok := req.config()
	if !ok {
		badRequest(c, "unknown difficulty "+strconv.Quote(req.Difficulty))
		return
	}
	view, err := h.service.Start(c.Request.Context(), c.Param("id"), cfg)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *APIHandler) Session(c *gin.Context) {
	view, err := h.service.Session(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *APIHandler) Submit(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	feedback, err := h.service.Submit(c.Request.Context(), c.Param("id"), domain.AnswerSubmission{
		QuestionIndex: *req.QuestionIndex,
		Answer:        req.Answer,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedback)
}

func (h *APIHandler) Result(c *gin.Context) {
	result, err := h.service.Result(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *APIHandler) SubmitScore(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	record, err := h.service.SubmitScore(c.Request.Context(), c.Param("id"), req.Player)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *APIHandler) Abandon(c *gin.Context) {
	if err := h.service.Abandon(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *APIHandler) Leaderboard(c *gin.Context) {
	limit := h.leaderboardLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			badRequest(c, "limit must be a positive integer")
			return
		}
		limit = n
	}
	records, err := h.service.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": records})
}

func (h *APIHandler) Categories(c *gin.Context) {
	cats, err := h.service.Categories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}
