package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/darksuryansh/PricePilot/internal/domain"
	"github.com/darksuryansh/PricePilot/internal/service"
	apperrors "github.com/darksuryansh/PricePilot/pkg/errors"
	"github.com/darksuryansh/PricePilot/pkg/httputil"
	"github.com/darksuryansh/PricePilot/pkg/validator"
)

const defaultRecentLimit = 10

// Handler serves the view-model endpoints.
type Handler struct {
	products *service.ProductService
	logger   *slog.Logger
}

func NewHandler(products *service.ProductService, logger *slog.Logger) *Handler {
	return &Handler{products: products, logger: logger}
}

// Product serves the fully built product page payload.
func (h *Handler) Product(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("product id is required"), h.logger)
		return
	}

	view, err := h.products.LoadProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: view})
}

type scrapeRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// ScrapeProduct ingests a product URL and serves the resulting view. This
// is the slow path; the backend scrapes on demand.
func (h *Handler) ScrapeProduct(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	view, err := h.products.LoadFromURL(r.Context(), req.URL)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: view})
}

// Search serves raw search results; these feed the results list, not the
// product page, so they are not run through the builder.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("query parameter q is required"), h.logger)
		return
	}

	products, err := h.products.SearchProducts(r.Context(), query)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if products == nil {
		products = []domain.RawProduct{}
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// Recent serves the recently scraped products rail.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			httputil.WriteError(w, r, apperrors.InvalidInput("limit must be between 1 and 100"), h.logger)
			return
		}
		limit = parsed
	}

	products, err := h.products.RecentProducts(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if products == nil {
		products = []domain.RawProduct{}
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

type compareRequest struct {
	ProductName string `json:"product_name" validate:"required"`
}

// Compare serves the recomputed best-deal summary for a product name.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	result, err := h.products.ComparePrices(r.Context(), req.ProductName)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// Reviews serves the raw customer reviews for a product.
func (h *Handler) Reviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.products.Reviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: reviews})
}

// ReviewInsights serves the review-derived insight block.
func (h *Handler) ReviewInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.products.ReviewInsights(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: insights})
}

// Questions serves Q&A prompts for a product.
func (h *Handler) Questions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.products.SuggestedQuestions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if questions == nil {
		questions = []string{}
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: questions})
}

type askRequest struct {
	Question string `json:"question" validate:"required"`
}

// Ask answers a one-shot question about a product.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	answer, err := h.products.AskQuestion(r.Context(), chi.URLParam(r, "id"), req.Question)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: answer})
}

type chatRequest struct {
	ConversationID string               `json:"conversation_id"`
	Query          string               `json:"query" validate:"required"`
	ProductID      string               `json:"product_id"`
	ProductName    string               `json:"product_name"`
	History        []domain.ChatMessage `json:"conversation_history"`
}

// Chat relays one assistant conversation turn.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	turn, err := h.products.Chat(r.Context(), req.ConversationID, domain.ChatRequest{
		Query:       req.Query,
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		History:     req.History,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: turn})
}
