package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darksuryansh/PricePilot/internal/domain"
	"github.com/darksuryansh/PricePilot/internal/service"
	apperrors "github.com/darksuryansh/PricePilot/pkg/errors"
	"github.com/darksuryansh/PricePilot/pkg/health"
)

type stubBackend struct {
	product    *domain.RawProduct
	productErr error
	search     []domain.RawProduct
	comparison *domain.ComparisonResult
}

func (s *stubBackend) Search(ctx context.Context, q string) ([]domain.RawProduct, error) {
	return s.search, nil
}

func (s *stubBackend) Recent(ctx context.Context, limit int) ([]domain.RawProduct, error) {
	return s.search, nil
}

func (s *stubBackend) Scrape(ctx context.Context, url string) (*domain.ScrapeResult, error) {
	return &domain.ScrapeResult{Success: true, ProductID: "B0A"}, nil
}

func (s *stubBackend) Product(ctx context.Context, id string) (*domain.RawProduct, error) {
	return s.product, s.productErr
}

func (s *stubBackend) PriceHistory(ctx context.Context, id, period string, days int) (*domain.HistoryResponse, error) {
	return nil, apperrors.ErrNotFound
}

func (s *stubBackend) Reviews(ctx context.Context, id string) ([]domain.Review, error) {
	return []domain.Review{{Text: "works great", Rating: "5"}}, nil
}

func (s *stubBackend) ReviewInsights(ctx context.Context, id string) (map[string]any, error) {
	return map[string]any{"summary": "mostly positive"}, nil
}

func (s *stubBackend) AIInsights(ctx context.Context, id string) (*domain.Insight, error) {
	return nil, apperrors.ErrNotFound
}

func (s *stubBackend) SentimentAnalysis(ctx context.Context, id string) (*domain.Sentiment, error) {
	return nil, apperrors.ErrNotFound
}

func (s *stubBackend) SuggestedQuestions(ctx context.Context, id string) ([]string, error) {
	return []string{"Is it any good?"}, nil
}

func (s *stubBackend) AskQuestion(ctx context.Context, id, q string) (*domain.Answer, error) {
	return &domain.Answer{Question: q, Answer: "yes"}, nil
}

func (s *stubBackend) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	return &domain.ChatResponse{Response: "hello", AIGenerated: true}, nil
}

func (s *stubBackend) ComparePrices(ctx context.Context, name string) (*domain.ComparisonResult, error) {
	return s.comparison, nil
}

func newTestRouter(backend service.Backend) http.Handler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	products := service.NewProductService(backend, logger, time.Second)
	return NewRouter(NewHandler(products, logger), health.NewHandler(), []string{"*"}, logger)
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestProductEndpoint(t *testing.T) {
	backend := &stubBackend{product: &domain.RawProduct{
		ASIN: "B0A", Name: "Echo Dot", Platform: "amazon", CurrentPrice: 4499,
	}}
	rec := doRequest(t, newTestRouter(backend), http.MethodGet, "/api/v1/view/product/B0A", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data service.ProductView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Echo Dot", resp.Data.Product.Name)
	assert.Equal(t, 4499.0, resp.Data.Stats.Lowest)
}

func TestProductEndpointUpstreamError(t *testing.T) {
	backend := &stubBackend{productErr: &apperrors.RequestError{
		Op: "product", Status: http.StatusNotFound, Message: "Product not found",
	}}
	rec := doRequest(t, newTestRouter(backend), http.MethodGet, "/api/v1/view/product/missing", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "UPSTREAM_ERROR", resp.Error.Code)
	assert.Equal(t, "Product not found", resp.Error.Message)
}

func TestProductEndpointBackendDown(t *testing.T) {
	backend := &stubBackend{productErr: apperrors.Transport("product", io.ErrUnexpectedEOF)}
	rec := doRequest(t, newTestRouter(backend), http.MethodGet, "/api/v1/view/product/B0A", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestScrapeEndpointValidation(t *testing.T) {
	rec := doRequest(t, newTestRouter(&stubBackend{}), http.MethodPost, "/api/v1/view/product", `{"url": "not a url"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestScrapeEndpoint(t *testing.T) {
	backend := &stubBackend{product: &domain.RawProduct{
		ASIN: "B0A", Name: "Echo Dot", Platform: "amazon", CurrentPrice: 4499,
	}}
	rec := doRequest(t, newTestRouter(backend), http.MethodPost, "/api/v1/view/product",
		`{"url": "https://www.amazon.in/dp/B0A"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSearchEndpointRequiresQuery(t *testing.T) {
	rec := doRequest(t, newTestRouter(&stubBackend{}), http.MethodGet, "/api/v1/view/search", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchEndpointEmptyResultIsArray(t *testing.T) {
	rec := doRequest(t, newTestRouter(&stubBackend{}), http.MethodGet, "/api/v1/view/search?q=nothing", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data": []}`, rec.Body.String())
}

func TestRecentEndpointLimitValidation(t *testing.T) {
	rec := doRequest(t, newTestRouter(&stubBackend{}), http.MethodGet, "/api/v1/view/recent?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, newTestRouter(&stubBackend{}), http.MethodGet, "/api/v1/view/recent?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompareEndpoint(t *testing.T) {
	price1, price2 := 100.0, 80.0
	backend := &stubBackend{comparison: &domain.ComparisonResult{
		ProductName: "thing",
		Platforms: []domain.PlatformPrice{
			{Platform: "amazon", CurrentPrice: &price1, Availability: true},
			{Platform: "flipkart", CurrentPrice: &price2, Availability: true},
		},
	}}
	rec := doRequest(t, newTestRouter(backend), http.MethodPost, "/api/v1/view/compare", `{"product_name": "thing"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data domain.ComparisonResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data.BestPlatform)
	assert.Equal(t, "flipkart", *resp.Data.BestPlatform)
	assert.Equal(t, 20.0, resp.Data.SavingsPercentage)
}

func TestChatEndpoint(t *testing.T) {
	rec := doRequest(t, newTestRouter(&stubBackend{}), http.MethodPost, "/api/v1/chat", `{"query": "hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data service.ChatTurn `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.ConversationID)
	assert.Equal(t, "hello", resp.Data.Response.Response)
}

func TestChatEndpointValidation(t *testing.T) {
	rec := doRequest(t, newTestRouter(&stubBackend{}), http.MethodPost, "/api/v1/chat", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAskEndpoint(t *testing.T) {
	rec := doRequest(t, newTestRouter(&stubBackend{}), http.MethodPost,
		"/api/v1/view/product/B0A/ask", `{"question": "Is it durable?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"answer":"yes"`)
}

func TestReviewsEndpoint(t *testing.T) {
	rec := doRequest(t, newTestRouter(&stubBackend{}), http.MethodGet, "/api/v1/view/product/B0A/reviews", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"review_text":"works great"`)
}

func TestReviewInsightsEndpoint(t *testing.T) {
	rec := doRequest(t, newTestRouter(&stubBackend{}), http.MethodGet, "/api/v1/view/product/B0A/review-insights", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"summary":"mostly positive"`)
}

func TestHealthLive(t *testing.T) {
	rec := doRequest(t, newTestRouter(&stubBackend{}), http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
