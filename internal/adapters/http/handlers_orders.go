package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/noorulain276775/pizza-delivery-app/internal/application"
)

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req application.CreateOrderRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "create_order", err)
		return
	}

	res, err := h.orders.CreateOrder(r.Context(), req)
	if err != nil {
		writeMappedError(r.Context(), w, "create_order", err)
		return
	}
	writeSuccess(w, http.StatusCreated, res)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "order_id"))
	if err != nil {
		writeValidationError(r.Context(), w, "get_order", err)
		return
	}

	res, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		writeMappedError(r.Context(), w, "get_order", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	res, err := h.orders.ListOrders(r.Context())
	if err != nil {
		writeMappedError(r.Context(), w, "list_orders", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) listPizzas(w http.ResponseWriter, r *http.Request) {
	res, err := h.orders.ListPizzas(r.Context())
	if err != nil {
		writeMappedError(r.Context(), w, "list_pizzas", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) getPizza(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "pizza_id"))
	if err != nil {
		writeValidationError(r.Context(), w, "get_pizza", err)
		return
	}

	res, err := h.orders.GetPizza(r.Context(), id)
	if err != nil {
		writeMappedError(r.Context(), w, "get_pizza", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}
