// Package service orchestrates backend calls into view models: base
// product fetch, concurrent enrichment, cross-platform fan-out, and the
// compare/search/chat flows.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/darksuryansh/PricePilot/internal/compare"
	"github.com/darksuryansh/PricePilot/internal/domain"
	"github.com/darksuryansh/PricePilot/internal/viewmodel"
	apperrors "github.com/darksuryansh/PricePilot/pkg/errors"
)

// Backend is the slice of the API client the product service needs. Tests
// substitute a fake.
type Backend interface {
	Search(ctx context.Context, query string) ([]domain.RawProduct, error)
	Recent(ctx context.Context, limit int) ([]domain.RawProduct, error)
	Scrape(ctx context.Context, url string) (*domain.ScrapeResult, error)
	Product(ctx context.Context, id string) (*domain.RawProduct, error)
	PriceHistory(ctx context.Context, id, period string, days int) (*domain.HistoryResponse, error)
	Reviews(ctx context.Context, id string) ([]domain.Review, error)
	ReviewInsights(ctx context.Context, id string) (map[string]any, error)
	AIInsights(ctx context.Context, id string) (*domain.Insight, error)
	SentimentAnalysis(ctx context.Context, id string) (*domain.Sentiment, error)
	SuggestedQuestions(ctx context.Context, id string) ([]string, error)
	AskQuestion(ctx context.Context, id, question string) (*domain.Answer, error)
	Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error)
	ComparePrices(ctx context.Context, productName string) (*domain.ComparisonResult, error)
}

// ProductView is a fully built product page payload.
type ProductView struct {
	Product *domain.DisplayProduct  `json:"product"`
	Stats   domain.PriceStats       `json:"price_stats"`
	Rating  viewmodel.RatingSummary `json:"rating"`
}

// ChatTurn is one assistant exchange, tagged with the conversation it
// belongs to so callers can thread follow-ups.
type ChatTurn struct {
	ConversationID string              `json:"conversation_id"`
	Response       domain.ChatResponse `json:"response"`
}

// ProductService loads and normalizes products.
type ProductService struct {
	backend       Backend
	logger        *slog.Logger
	enrichTimeout time.Duration
	historyPeriod string
	historyDays   int
}

// NewProductService creates the service. enrichTimeout bounds each
// individual enrichment fetch; the base product fetch is bounded only by
// the caller's context.
func NewProductService(backend Backend, logger *slog.Logger, enrichTimeout time.Duration) *ProductService {
	return &ProductService{
		backend:       backend,
		logger:        logger,
		enrichTimeout: enrichTimeout,
		historyPeriod: "daily",
		historyDays:   30,
	}
}

// LoadProduct fetches a product by id and enriches it. The base fetch
// failing fails the load; enrichment failures degrade to defaults.
func (s *ProductService) LoadProduct(ctx context.Context, id string) (*ProductView, error) {
	raw, err := s.backend.Product(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, raw)
}

// LoadFromURL ingests a product URL: scrape, fetch the resulting product,
// then fan out fetches for each cross-platform match. Individual match
// fetches that fail are dropped; partial success is the norm.
func (s *ProductService) LoadFromURL(ctx context.Context, productURL string) (*ProductView, error) {
	scraped, err := s.backend.Scrape(ctx, productURL)
	if err != nil {
		return nil, err
	}
	if !scraped.Success || scraped.ProductID == "" {
		return nil, &apperrors.RequestError{
			Op:      "scrape",
			Message: "Failed to scrape product",
		}
	}

	raw, err := s.backend.Product(ctx, scraped.ProductID)
	if err != nil {
		return nil, err
	}

	if len(scraped.CrossPlatformMatches) > 0 {
		raw.CrossPlatform = s.fetchMatches(ctx, scraped.CrossPlatformMatches)
	}
	return s.buildView(ctx, raw)
}

// fetchMatches fetches cross-platform match records concurrently. Failed
// fetches are logged and dropped; the returned slice keeps the input
// order of the matches that succeeded.
func (s *ProductService) fetchMatches(ctx context.Context, matches []domain.CrossPlatformMatch) []domain.RawProduct {
	results := make([]*domain.RawProduct, len(matches))
	var wg sync.WaitGroup
	for i, match := range matches {
		wg.Add(1)
		go func(i int, match domain.CrossPlatformMatch) {
			defer wg.Done()
			product, err := s.backend.Product(ctx, match.ProductID)
			if err != nil {
				s.logger.WarnContext(ctx, "cross-platform fetch failed, dropping entry",
					slog.String("platform", match.Platform),
					slog.String("product_id", match.ProductID),
					slog.String("error", err.Error()),
				)
				return
			}
			results[i] = product
		}(i, match)
	}
	wg.Wait()

	products := make([]domain.RawProduct, 0, len(matches))
	for _, p := range results {
		if p != nil {
			products = append(products, *p)
		}
	}
	return products
}

// buildView runs the three enrichment fetches concurrently and assembles
// the final view model. Each enrichment failure is logged and treated as
// "not available yet".
func (s *ProductService) buildView(ctx context.Context, raw *domain.RawProduct) (*ProductView, error) {
	id, err := raw.ResolveID()
	if err != nil {
		return nil, err
	}

	var enr viewmodel.Enrichments
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		enr.History = fetchOptional(s, ctx, id, "price history", func(ctx context.Context) (*domain.HistoryResponse, error) {
			return s.backend.PriceHistory(ctx, id, s.historyPeriod, s.historyDays)
		})
	}()
	go func() {
		defer wg.Done()
		enr.Insight = fetchOptional(s, ctx, id, "ai insights", func(ctx context.Context) (*domain.Insight, error) {
			return s.backend.AIInsights(ctx, id)
		})
	}()
	go func() {
		defer wg.Done()
		enr.Sentiment = fetchOptional(s, ctx, id, "sentiment", func(ctx context.Context) (*domain.Sentiment, error) {
			return s.backend.SentimentAnalysis(ctx, id)
		})
	}()
	wg.Wait()

	dp, err := viewmodel.Build(raw, enr)
	if err != nil {
		return nil, err
	}
	return &ProductView{
		Product: dp,
		Stats:   viewmodel.Stats(dp, raw),
		Rating:  viewmodel.AggregateRating(dp, raw),
	}, nil
}

// fetchOptional runs one enrichment fetch under its own timeout and maps
// failure to absence.
func fetchOptional[T any](s *ProductService, ctx context.Context, id, kind string, fetch func(context.Context) (*T, error)) *T {
	fctx := ctx
	if s.enrichTimeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(ctx, s.enrichTimeout)
		defer cancel()
	}
	result, err := fetch(fctx)
	if err != nil {
		s.logger.InfoContext(ctx, "enrichment not available",
			slog.String("kind", kind),
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return result
}

// SearchProducts returns products matching a free-text query.
func (s *ProductService) SearchProducts(ctx context.Context, query string) ([]domain.RawProduct, error) {
	return s.backend.Search(ctx, query)
}

// RecentProducts returns the most recently scraped products.
func (s *ProductService) RecentProducts(ctx context.Context, limit int) ([]domain.RawProduct, error) {
	return s.backend.Recent(ctx, limit)
}

// ComparePrices fetches live quotes and recomputes the best-deal summary
// locally so the banner always matches the table.
func (s *ProductService) ComparePrices(ctx context.Context, productName string) (*domain.ComparisonResult, error) {
	fetched, err := s.backend.ComparePrices(ctx, productName)
	if err != nil {
		return nil, err
	}
	result := compare.Aggregate(fetched.ProductName, fetched.Platforms)
	if result.ProductName == "" {
		result.ProductName = productName
	}
	return &result, nil
}

// Reviews returns the raw customer reviews for a product. A product with
// no reviews yields an empty slice, not an error.
func (s *ProductService) Reviews(ctx context.Context, id string) ([]domain.Review, error) {
	reviews, err := s.backend.Reviews(ctx, id)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}

// ReviewInsights returns the review-derived insight block. Its shape varies
// by analyzer version, so it passes through untyped.
func (s *ProductService) ReviewInsights(ctx context.Context, id string) (map[string]any, error) {
	return s.backend.ReviewInsights(ctx, id)
}

// SuggestedQuestions returns Q&A prompts for a product.
func (s *ProductService) SuggestedQuestions(ctx context.Context, id string) ([]string, error) {
	return s.backend.SuggestedQuestions(ctx, id)
}

// AskQuestion asks a one-shot question about a product.
func (s *ProductService) AskQuestion(ctx context.Context, id, question string) (*domain.Answer, error) {
	return s.backend.AskQuestion(ctx, id, question)
}

// Chat sends an assistant turn. A blank conversation id starts a new
// conversation.
func (s *ProductService) Chat(ctx context.Context, conversationID string, req domain.ChatRequest) (*ChatTurn, error) {
	if conversationID == "" {
		conversationID = uuid.NewString()
	}
	resp, err := s.backend.Chat(ctx, req)
	if err != nil {
		return nil, err
	}
	return &ChatTurn{ConversationID: conversationID, Response: *resp}, nil
}
