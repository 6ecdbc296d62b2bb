package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/darkbluein/locale-store-service/internal/domain"
	"github.com/darkbluein/locale-store-service/internal/usecase"
	orderdto "github.com/darkbluein/locale-store-service/internal/usecase/dto/order"
)

type OrderHandler struct {
	uc usecase.OrderUsecase
}

func NewOrderHandler(uc usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type createOrderRequest struct {
	StoreID     string                    `json:"storeId"`
	AccountID   string                    `json:"accountId"`
	Items       []orderdto.OrderItemInput `json:"items"`
	Method      string                    `json:"method"`
	Delivery    bool                      `json:"delivery"`
	DeliverByMs int64                     `json:"deliverBy"`
	InStore     bool                      `json:"inStore"`
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrValidation)
		return
	}

	order, err := h.uc.CreateOrder(r.Context(), &orderdto.CreateOrderInput{
		Token:     bearerToken(r),
		StoreID:   req.StoreID,
		AccountID: req.AccountID,
		Items:     req.Items,
		Method:    req.Method,
		Delivery:  req.Delivery,
		DeliverBy: time.Duration(req.DeliverByMs) * time.Millisecond,
		InStore:   req.InStore,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}
