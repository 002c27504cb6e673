package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"foodgateway/pkg/logger"
	"foodgateway/pkg/models"
	"foodgateway/service"
)

const maxBodyBytes = 1 << 20

type handler struct {
	services service.IServiceManager
	log      logger.ILogger
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "Gateway API is running!")
}

func (h *handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.Warning("invalid order request", logger.String("request_id", middleware.GetReqID(r.Context())), logger.Error(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.log.Info("received order request",
		logger.String("request_id", middleware.GetReqID(r.Context())),
		logger.String("customer_id", req.CustomerID))

	resp := h.services.Order().CreateOrder(r.Context(), &req)
	writeJSON(w, http.StatusCreated, resp)
}

func (h *handler) getOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	h.log.Info("getting order status", logger.String("order_id", orderID))

	writeJSON(w, http.StatusOK, h.services.Status().GetOrderStatus(r.Context(), orderID))
}

func (h *handler) sendTestNotification(w http.ResponseWriter, r *http.Request) {
	var req models.NotificationRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.log.Info("sending test notification", logger.String("order_id", req.OrderID), logger.String("status", req.Status))
	h.services.Notification().SendNow(r.Context(), req.OrderID, req.Status, req.Title, req.Body)
	writeText(w, http.StatusOK, "Notification sent")
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
