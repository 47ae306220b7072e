package api

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dviradani/amazon-backend/internal/auth"
	"github.com/dviradani/amazon-backend/internal/config"
	"github.com/dviradani/amazon-backend/internal/domain"
	"github.com/dviradani/amazon-backend/internal/store"
)

// defaultPageSize is the catalog search page size applied when the request
// omits pageSize or supplies a non-positive value.
const defaultPageSize = 6

// HTTPHandler holds dependencies for HTTP handlers.
type HTTPHandler struct {
	productStore store.ProductStorer
	userStore    store.UserStorer
	orderStore   store.OrderStorer
	authCfg      config.AuthConfig
	validate     *validator.Validate
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(ps store.ProductStorer, us store.UserStorer, os store.OrderStorer, authCfg config.AuthConfig) *HTTPHandler {
	return &HTTPHandler{
		productStore: ps,
		userStore:    us,
		orderStore:   os,
		authCfg:      authCfg,
		validate:     validator.New(),
	}
}

// --- Helpers ---

// ErrorResponse defines the structure for JSON error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil { // Avoid writing empty body for 204 No Content
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("ERROR: Failed to encode JSON response: %v", err)
			// Fallback, as headers might have been written
			http.Error(w, `{"error": "Internal server error during JSON encoding"}`, http.StatusInternalServerError)
		}
	}
}

// --- Product Handlers ---

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productStore.ListProducts(r.Context())
	if err != nil {
		log.Printf("ERROR: ListProducts store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}
	respondWithJSON(w, http.StatusOK, products)
}

func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.productStore.ListCategories(r.Context())
	if err != nil {
		log.Printf("ERROR: ListCategories store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}
	respondWithJSON(w, http.StatusOK, categories)
}

func (h *HTTPHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	productID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || productID <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	product, err := h.productStore.GetProductByID(r.Context(), productID)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Printf("ERROR: GetProductByID store operation for ID %d failed: %v", productID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}
	respondWithJSON(w, http.StatusOK, product)
}

func (h *HTTPHandler) GetProductByToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	product, err := h.productStore.GetProductByToken(r.Context(), token)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Printf("ERROR: GetProductByToken store operation for token %q failed: %v", token, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}
	respondWithJSON(w, http.StatusOK, product)
}

// SearchResponse is the paginated catalog search envelope. countProducts is
// the number of items on the current page, and pages is derived from it (not
// from the total match count) to remain wire-compatible with the storefront.
type SearchResponse struct {
	Products      []domain.Product `json:"products"`
	Page          int              `json:"page"`
	CountProducts int              `json:"countProducts"`
	Pages         int              `json:"pages"`
}

// SearchProducts normalizes the raw query parameters into a typed search
// descriptor with explicit defaulting, runs the catalog query and assembles
// the response envelope.
func (h *HTTPHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	qParams := r.URL.Query()

	pageSize, err := strconv.Atoi(qParams.Get("pageSize"))
	if err != nil || pageSize <= 0 {
		pageSize = defaultPageSize
	}
	page, err := strconv.Atoi(qParams.Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	params := store.SearchProductsParams{
		Query:    qParams.Get("query"),
		Category: qParams.Get("category"),
		Price:    qParams.Get("price"),
		Rating:   qParams.Get("rating"),
		Order:    qParams.Get("order"),
		Page:     page,
		PageSize: pageSize,
	}

	products, err := h.productStore.SearchProducts(r.Context(), params)
	if err != nil {
		log.Printf("ERROR: SearchProducts store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to search products")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	countProducts := len(products)
	respondWithJSON(w, http.StatusOK, SearchResponse{
		Products:      products,
		Page:          page,
		CountProducts: countProducts,
		Pages:         int(math.Ceil(float64(countProducts) / float64(pageSize))),
	})
}

// --- Seed Handler ---

// ResetData replaces the whole catalog with the built-in sample products.
// Development convenience endpoint; it is not exposed behind auth, matching
// the storefront's expectations.
func (h *HTTPHandler) ResetData(w http.ResponseWriter, r *http.Request) {
	seeded, err := h.productStore.ResetProducts(r.Context(), store.SeedProducts())
	if err != nil {
		log.Printf("ERROR: ResetData store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to reset data")
		return
	}
	respondWithJSON(w, http.StatusCreated, seeded)
}

// --- Route Registration ---

// RegisterRoutes sets up the HTTP routes for the service.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	requireAuth := auth.Middleware(h.authCfg.JWTSecret)

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)                   // GET /api/products
		r.Get("/categories", h.ListCategories)       // GET /api/products/categories
		r.Get("/search", h.SearchProducts)           // GET /api/products/search
		r.Get("/token/{token}", h.GetProductByToken) // GET /api/products/token/{token}
		r.Get("/id/{id}", h.GetProductByID)          // GET /api/products/id/{id}
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", h.CreateOrder)     // POST /api/orders
		r.Get("/{id}", h.GetOrderByID) // GET /api/orders/{id}
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/signup", h.SignUp)              // POST /api/users/signup
		r.Post("/signin", h.SignIn)              // POST /api/users/signin
		r.With(requireAuth).Get("/", h.GetUsers) // GET /api/users
	})

	r.Post("/api/seed/resetData", h.ResetData) // POST /api/seed/resetData
}
