package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/core/service"
)

type HTTPHandler struct {
	catalog  *service.CatalogService
	cart     *service.CartService
	checkout *service.CheckoutService
	logger   *zap.Logger
}

func NewHTTPHandler(catalog *service.CatalogService, cart *service.CartService, checkout *service.CheckoutService, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{
		catalog:  catalog,
		cart:     cart,
		checkout: checkout,
		logger:   logger,
	}
}

// NewRouter mounts the storefront API.
func NewRouter(h *HTTPHandler) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/categories", h.Categories)
			r.Get("/categories/{id}/products", h.ProductsByCategory)
			r.Get("/products", h.Products)
			r.Get("/products/featured", h.Featured)
			r.Get("/products/{id}", h.Product)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddCartItem)
			r.Put("/items/{id}", h.UpdateCartItem)
			r.Delete("/items/{id}", h.RemoveCartItem)
			r.Post("/checkout", h.CartCheckout)
		})

		r.Post("/checkout", h.Checkout)
	})

	return r
}

type addItemRequest struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type checkoutRequest struct {
	Items []domain.LineItem `json:"items"`
}

type checkoutResponse struct {
	URL string `json:"url"`
}

type cartResponse struct {
	Items []domain.LineItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
	Count int               `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.internalError(w, "list categories", err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *HTTPHandler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Products(r.Context())
	if err != nil {
		h.internalError(w, "list products", err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *HTTPHandler) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ProductsByCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.internalError(w, "list category products", err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *HTTPHandler) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Featured(r.Context())
	if err != nil {
		h.internalError(w, "list featured products", err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *HTTPHandler) Product(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid product id"})
		return
	}

	product, err := h.catalog.Product(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "product not found"})
			return
		}
		h.internalError(w, "get product", err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cart.Get(r.Context())
	if err != nil {
		h.internalError(w, "get cart", err)
		return
	}
	writeCart(w, cart)
}

func (h *HTTPHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.ID == 0 || req.Name == "" || req.Price.IsNegative() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing required fields"})
		return
	}

	cart, err := h.cart.AddItem(r.Context(), domain.Product{
		ID:    req.ID,
		Name:  req.Name,
		Price: req.Price,
		Image: req.Image,
	})
	if err != nil {
		h.internalError(w, "add cart item", err)
		return
	}
	writeCart(w, cart)
}

func (h *HTTPHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid item id"})
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "quantity is required"})
		return
	}

	cart, err := h.cart.UpdateQuantity(r.Context(), id, *req.Quantity)
	if err != nil {
		h.internalError(w, "update cart item", err)
		return
	}
	writeCart(w, cart)
}

func (h *HTTPHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid item id"})
		return
	}

	cart, err := h.cart.RemoveItem(r.Context(), id)
	if err != nil {
		h.internalError(w, "remove cart item", err)
		return
	}
	writeCart(w, cart)
}

func (h *HTTPHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cart.Clear(r.Context())
	if err != nil {
		h.internalError(w, "clear cart", err)
		return
	}
	writeCart(w, cart)
}

// Checkout formats externally supplied line items into an order link. It
// never touches the stored cart; clearing after navigation is the caller's
// responsibility.
func (h *HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	link, err := h.checkout.FormatItems(req.Items)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidLineItem) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		h.logger.Error("format order", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to process cart"})
		return
	}
	writeJSON(w, http.StatusOK, checkoutResponse{URL: link})
}

// CartCheckout checks out the stored cart: the response carries the order
// link and the cart has been cleared. On failure the cart is unchanged.
func (h *HTTPHandler) CartCheckout(w http.ResponseWriter, r *http.Request) {
	link, err := h.checkout.Checkout(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidLineItem) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		h.logger.Error("checkout cart", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to process cart"})
		return
	}
	writeJSON(w, http.StatusOK, checkoutResponse{URL: link})
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func writeCart(w http.ResponseWriter, cart domain.Cart) {
	if cart.Items == nil {
		cart.Items = []domain.LineItem{}
	}
	writeJSON(w, http.StatusOK, cartResponse{
		Items: cart.Items,
		Total: cart.Total(),
		Count: cart.Count(),
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
