package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/digimarket/internal/core/domain"
	"github.com/vncsmyrnk/digimarket/internal/core/ports"
)

type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

type createOrderRequest struct {
	ProductID     string               `json:"product_id"`
	Email         string               `json:"email"`
	Quantity      int                  `json:"quantity"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
}

type updateOrderRequest struct {
	Quantity    *int                `json:"quantity"`
	Status      *domain.OrderStatus `json:"status"`
	DownloadURL *string             `json:"download_url"`
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.ErrAuthenticationRequired)
		return
	}

	orders, err := h.service.ListOrders(r.Context(), identity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.ErrAuthenticationRequired)
		return
	}

	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	var productID uuid.UUID
	if req.ProductID != "" {
		id, err := parseUUID(req.ProductID, "product_id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		productID = id
	}

	order, err := h.service.Create(r.Context(), identity, ports.CreateOrderInput{
		ProductID:     productID,
		Email:         req.Email,
		Quantity:      req.Quantity,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/orders/"+order.ID.String())
	respondJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.ErrAuthenticationRequired)
		return
	}
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	order, err := h.service.GetOrder(r.Context(), identity, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.ErrAuthenticationRequired)
		return
	}
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	order, err := h.service.Update(r.Context(), identity, id, ports.UpdateOrderInput{
		Quantity:    req.Quantity,
		Status:      req.Status,
		DownloadURL: req.DownloadURL,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.ErrAuthenticationRequired)
		return
	}
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), identity, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
