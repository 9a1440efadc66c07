// Package backend is the typed client for the remote scraping/AI backend.
// It owns the error contract: non-2xx responses carry {"error": "..."}
// bodies whose message is surfaced to the user, with a per-call fallback
// when the body is not parseable.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/darksuryansh/PricePilot/internal/domain"
	apperrors "github.com/darksuryansh/PricePilot/pkg/errors"
	"github.com/darksuryansh/PricePilot/pkg/httpclient"
)

// Client issues HTTP requests to the shopping backend. All methods are
// safe for concurrent use. The scrape call is rate-limited because it
// triggers ingestion work on the backend.
type Client struct {
	baseURL       string
	http          *httpclient.Client
	scrapeLimiter *rate.Limiter
	logger        *slog.Logger
	tracer        trace.Tracer
}

// New creates a backend client. scrapeLimiter may be nil to disable the
// scrape rate limit.
func New(baseURL string, hc *httpclient.Client, scrapeLimiter *rate.Limiter, logger *slog.Logger) *Client {
	return &Client{
		baseURL:       baseURL,
		http:          hc,
		scrapeLimiter: scrapeLimiter,
		logger:        logger,
		tracer:        otel.Tracer("pricepilot/backend"),
	}
}

// Search returns products matching a free-text query. An empty result is
// not an error.
func (c *Client) Search(ctx context.Context, query string) ([]domain.RawProduct, error) {
	var out struct {
		Products []domain.RawProduct `json:"products"`
	}
	path := "/api/products/search?q=" + url.QueryEscape(query)
	if err := c.getJSON(ctx, "search", path, "Failed to search products", &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

// Recent returns the most recently scraped products.
func (c *Client) Recent(ctx context.Context, limit int) ([]domain.RawProduct, error) {
	var out struct {
		Products []domain.RawProduct `json:"products"`
	}
	path := "/api/products/recent?limit=" + strconv.Itoa(limit)
	if err := c.getJSON(ctx, "recent", path, "Failed to get recent products", &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

// Scrape asks the backend to ingest a product URL. This is the only call
// with a server-side side effect and it is slow; it passes through the
// rate limiter before hitting the wire.
func (c *Client) Scrape(ctx context.Context, productURL string) (*domain.ScrapeResult, error) {
	if c.scrapeLimiter != nil {
		if err := c.scrapeLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("scrape rate limit: %w", err)
		}
	}
	var out domain.ScrapeResult
	body := map[string]string{"url": productURL}
	if err := c.postJSON(ctx, "scrape", "/api/scrape", body, "Failed to scrape product", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Product fetches a single product by id.
func (c *Client) Product(ctx context.Context, id string) (*domain.RawProduct, error) {
	var out domain.RawProduct
	if err := c.getJSON(ctx, "product", "/api/product/"+url.PathEscape(id), "Failed to get product", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PriceHistory fetches the dated per-platform price series for a product.
func (c *Client) PriceHistory(ctx context.Context, id, period string, days int) (*domain.HistoryResponse, error) {
	var out domain.HistoryResponse
	path := fmt.Sprintf("/api/product/%s/price-history?period=%s&days=%d",
		url.PathEscape(id), url.QueryEscape(period), days)
	if err := c.getJSON(ctx, "price_history", path, "Failed to get price history", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reviews fetches the raw customer reviews for a product.
func (c *Client) Reviews(ctx context.Context, id string) ([]domain.Review, error) {
	var out struct {
		Reviews []domain.Review `json:"reviews"`
	}
	path := "/api/product/" + url.PathEscape(id) + "/reviews"
	if err := c.getJSON(ctx, "reviews", path, "Failed to get reviews", &out); err != nil {
		return nil, err
	}
	return out.Reviews, nil
}

// AIInsights fetches the AI deal assessment for a product.
func (c *Client) AIInsights(ctx context.Context, id string) (*domain.Insight, error) {
	var out domain.Insight
	path := "/api/product/" + url.PathEscape(id) + "/ai-insights"
	if err := c.getJSON(ctx, "ai_insights", path, "Failed to get AI insights", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReviewInsights fetches the review-derived insight block. Its shape
// varies by analyzer version, so it is passed through untyped.
func (c *Client) ReviewInsights(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	path := "/api/product/" + url.PathEscape(id) + "/review-insights"
	if err := c.getJSON(ctx, "review_insights", path, "Failed to get review insights", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SentimentAnalysis fetches the aggregate review-sentiment analysis.
func (c *Client) SentimentAnalysis(ctx context.Context, id string) (*domain.Sentiment, error) {
	var out domain.Sentiment
	path := "/api/product/" + url.PathEscape(id) + "/sentiment-analysis"
	if err := c.getJSON(ctx, "sentiment", path, "Failed to get sentiment analysis", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SuggestedQuestions fetches Q&A prompts for a product.
func (c *Client) SuggestedQuestions(ctx context.Context, id string) ([]string, error) {
	var out domain.SuggestedQuestions
	path := "/api/product/" + url.PathEscape(id) + "/suggested-questions"
	if err := c.getJSON(ctx, "suggested_questions", path, "Failed to get suggested questions", &out); err != nil {
		return nil, err
	}
	return out.Questions, nil
}

// AskQuestion asks a one-shot question about a product.
func (c *Client) AskQuestion(ctx context.Context, id, question string) (*domain.Answer, error) {
	var out domain.Answer
	path := "/api/product/" + url.PathEscape(id) + "/ask-question"
	body := map[string]string{"question": question}
	if err := c.postJSON(ctx, "ask_question", path, body, "Failed to answer question", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Chat sends one assistant conversation turn.
func (c *Client) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	if req.History == nil {
		req.History = []domain.ChatMessage{}
	}
	var out domain.ChatResponse
	if err := c.postJSON(ctx, "chat", "/api/chatbot", req, "Failed to get chatbot response", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ComparePrices fetches live per-platform quotes for a product name. The
// summary fields of the result are recomputed locally by the caller.
func (c *Client) ComparePrices(ctx context.Context, productName string) (*domain.ComparisonResult, error) {
	var out domain.ComparisonResult
	body := map[string]string{"product_name": productName}
	if err := c.postJSON(ctx, "compare_prices", "/api/compare-prices", body, "Failed to compare prices", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health probes the backend's health endpoint.
func (c *Client) Health(ctx context.Context) (*domain.HealthStatus, error) {
	var out domain.HealthStatus
	if err := c.getJSON(ctx, "health", "/api/health", "Backend is not responding", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type requestOption func(*http.Request)

func withBearer(token string) requestOption {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) getJSON(ctx context.Context, op, path, fallback string, out any, opts ...requestOption) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request for %s: %w", op, err)
	}
	return c.doJSON(ctx, op, req, fallback, out, opts...)
}

func (c *Client) postJSON(ctx context.Context, op, path string, body any, fallback string, out any, opts ...requestOption) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request for %s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(ctx, op, req, fallback, out, opts...)
}

// doJSON executes the request and decodes a JSON body into out, mapping
// failures onto the error contract: transport failures get a connection
// hint, non-2xx responses surface the backend's message or the fallback.
func (c *Client) doJSON(ctx context.Context, op string, req *http.Request, fallback string, out any, opts ...requestOption) error {
	for _, opt := range opts {
		opt(req)
	}

	ctx, span := c.tracer.Start(ctx, "backend."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.Path),
		),
	)
	defer span.End()

	start := time.Now()
	resp, err := c.http.Do(ctx, req)
	requestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(op, "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		c.logger.WarnContext(ctx, "backend request failed",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
		return apperrors.Transport(op, err)
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetStatus(codes.Error, "backend error")
		return c.errorFromBody(ctx, op, resp, fallback)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &apperrors.RequestError{
			Op:      op,
			Status:  resp.StatusCode,
			Message: fallback,
			Err:     fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

// errorFromBody builds the RequestError for a non-2xx response. The body
// is expected to be {"error": "..."}; anything else falls back to the
// per-call generic message.
func (c *Client) errorFromBody(ctx context.Context, op string, resp *http.Response, fallback string) error {
	message := fallback
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil {
		var errBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &errBody) == nil && errBody.Error != "" {
			message = errBody.Error
		}
	}

	c.logger.WarnContext(ctx, "backend returned error",
		slog.String("op", op),
		slog.Int("status", resp.StatusCode),
		slog.String("message", message),
	)
	return &apperrors.RequestError{
		Op:      op,
		Status:  resp.StatusCode,
		Message: message,
	}
}
