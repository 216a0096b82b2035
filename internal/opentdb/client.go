// Package opentdb talks to the Open Trivia Database HTTP API.
package opentdb

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"trivia-quiz/internal/domain"
)

const DefaultBaseURL = "https://opentdb.com"

// Response codes documented by OpenTDB.
const (
	codeSuccess       = 0
	codeNoResults     = 1
	codeInvalidParam  = 2
	codeTokenNotFound = 3
	codeTokenEmpty    = 4
	codeRateLimited   = 5
)

var responseMessages = map[int]string{
	codeNoResults:     "not enough questions for this category and difficulty",
	codeInvalidParam:  "invalid parameter",
	codeTokenNotFound: "session token not found",
	codeTokenEmpty:    "session token exhausted",
	codeRateLimited:   "rate limited, try again in a few seconds",
}

// Client fetches questions and categories. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu  sync.Mutex
	rnd *rand.Rand
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRand makes option shuffling deterministic.
func WithRand(rnd *rand.Rand) Option {
	return func(c *Client) { c.rnd = rnd }
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type questionsResponse struct {
	ResponseCode int           `json:"response_code"`
	Results      []rawQuestion `json:"results"`
}

// rawQuestion fields are base64 encoded because requests ask for encode=base64.
type rawQuestion struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type categoriesResponse struct {
	TriviaCategories []domain.Category `json:"trivia_categories"`
}

// FetchQuestions requests cfg.Amount multiple-choice questions.
// Every failure is reported as domain.ErrContentFetch.
func (c *Client) FetchQuestions(ctx context.Context, cfg domain.QuizConfig) ([]domain.Question, error) {
	params := url.Values{}
	params.Set("amount", strconv.Itoa(cfg.Amount))
	if cfg.CategoryID != domain.AnyCategory {
		params.Set("category", strconv.Itoa(cfg.CategoryID))
	}
	if cfg.Difficulty != domain.DifficultyAny {
		params.Set("difficulty", string(cfg.Difficulty))
	}
	params.Set("type", "multiple")
	params.Set("encode", "base64")

	var data questionsResponse
	if err := c.getJSON(ctx, "/api.php?"+params.Encode(), &data); err != nil {
		return nil, err
	}
	if data.ResponseCode != codeSuccess {
		msg, ok := responseMessages[data.ResponseCode]
		if !ok {
			msg = "unexpected response code " + strconv.Itoa(data.ResponseCode)
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrContentFetch, msg)
	}

	questions := make([]domain.Question, 0, len(data.Results))
	for _, raw := range data.Results {
		q, err := decodeQuestion(raw)
		if err != nil {
			continue
		}
		q.Options = c.shuffledOptions(q)
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: questions were empty or corrupted", domain.ErrContentFetch)
	}
	return questions, nil
}

// Categories lists the provider's categories.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var data categoriesResponse
	if err := c.getJSON(ctx, "/api_category.php", &data); err != nil {
		return nil, err
	}
	return data.TriviaCategories, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrContentFetch, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrContentFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: HTTP %d", domain.ErrContentFetch, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrContentFetch, err)
	}
	return nil
}

func decodeQuestion(raw rawQuestion) (domain.Question, error) {
	prompt, err := decodeField(raw.Question)
	if err != nil {
		return domain.Question{}, err
	}
	correct, err := decodeField(raw.CorrectAnswer)
	if err != nil {
		return domain.Question{}, err
	}
	incorrect := make([]string, 0, len(raw.IncorrectAnswers))
	for _, ans := range raw.IncorrectAnswers {
		decoded, err := decodeField(ans)
		if err != nil {
			return domain.Question{}, err
		}
		incorrect = append(incorrect, decoded)
	}
	category, err := decodeField(raw.Category)
	if err != nil {
		return domain.Question{}, err
	}
	difficulty, err := decodeField(raw.Difficulty)
	if err != nil {
		return domain.Question{}, err
	}
	return domain.Question{
		Prompt:           prompt,
		CorrectAnswer:    correct,
		IncorrectAnswers: incorrect,
		Category:         category,
		Difficulty:       domain.Difficulty(difficulty),
	}, nil
}

func decodeField(encoded string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	return html.UnescapeString(string(b)), nil
}

func (c *Client) shuffledOptions(q domain.Question) []string {
	options := make([]string, 0, len(q.IncorrectAnswers)+1)
	options = append(options, q.IncorrectAnswers...)
	options = append(options, q.CorrectAnswer)

	c.mu.Lock()
	c.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	c.mu.Unlock()
	return options
}
