package rest

import (
	"net/http"

	"bookstore-be/internal/apperror"
	"bookstore-be/internal/logger"
	"bookstore-be/internal/utils"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type placeOrderRequest struct {
	Order []struct {
		ID string `json:"_id"`
	} `json:"order"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var in placeOrderRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, "PlaceOrder", err)
		return
	}

	bookIDs := make([]string, 0, len(in.Order))
	for _, item := range in.Order {
		bookIDs = append(bookIDs, item.ID)
	}

	results, err := h.OrderSvc.PlaceOrder(r.Context(), identity(r).ID, bookIDs)
	if err != nil && results == nil {
		writeError(w, r, "PlaceOrder", err)
		return
	}
	if err != nil {
		// partial placement: the caller gets every item back to reconcile
		status := apperror.Status(err)
		logger.FromCtx(r.Context()).Warn("order partially placed",
			zap.String("layer", "rest"),
			zap.String("method", "PlaceOrder"),
			zap.Int("status", status),
			zap.Error(err),
		)
		utils.WriteJSON(w, status, utils.Response{
			Status:  "Partial",
			Message: apperror.Message(err),
			Data:    results,
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Response{
		Status:  statusSuccess,
		Message: "Order placed successfully.",
		Data:    results,
	})
}

func (h *Handler) ReconcileOrder(w http.ResponseWriter, r *http.Request) {
	res, err := h.OrderSvc.Reconcile(r.Context(), identity(r).ID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, "ReconcileOrder", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Response{
		Status:  statusSuccess,
		Message: "Order reconciled successfully.",
		Data:    res,
	})
}

func (h *Handler) GetOrderHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.OrderSvc.GetHistory(r.Context(), identity(r).ID)
	if err != nil {
		writeError(w, r, "GetOrderHistory", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Response{
		Status:  statusSuccess,
		Message: "Order history retrieved successfully.",
		Data:    entries,
	})
}

func (h *Handler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	entries, err := h.OrderSvc.ListAll(r.Context(), identity(r))
	if err != nil {
		writeError(w, r, "GetAllOrders", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Response{
		Status:  statusSuccess,
		Message: "All orders retrieved successfully.",
		Data:    entries,
	})
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var in statusRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, "UpdateStatus", err)
		return
	}

	o, err := h.OrderSvc.UpdateStatus(r.Context(), identity(r), mux.Vars(r)["id"], in.Status)
	if err != nil {
		writeError(w, r, "UpdateStatus", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Response{
		Status:  statusSuccess,
		Message: "Order status updated successfully.",
		Data:    o,
	})
}
