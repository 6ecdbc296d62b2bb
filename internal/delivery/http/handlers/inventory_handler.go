package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/darkbluein/locale-store-service/internal/domain"
	"github.com/darkbluein/locale-store-service/internal/usecase"
	inventorydto "github.com/darkbluein/locale-store-service/internal/usecase/dto/inventory"
)

type InventoryHandler struct {
	uc usecase.InventoryUsecase
}

func NewInventoryHandler(uc usecase.InventoryUsecase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

type productUpdateRequest struct {
	ID       string                  `json:"id"`
	Name     string                  `json:"name"`
	Price    string                  `json:"price"`
	Barcode  string                  `json:"barcode"`
	Quantity *domain.ProductQuantity `json:"quantity"`
}

type addToInventoryRequest struct {
	Products []productUpdateRequest `json:"products"`
}

func (h *InventoryHandler) AddToInventory(w http.ResponseWriter, r *http.Request) {
	var req addToInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrValidation)
		return
	}

	updates := make([]domain.ProductUpdate, 0, len(req.Products))
	for _, p := range req.Products {
		updates = append(updates, domain.ProductUpdate{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Barcode:  p.Barcode,
			Quantity: p.Quantity,
		})
	}

	modified, err := h.uc.AddToInventory(r.Context(), &inventorydto.AddToInventoryInput{
		Token:    bearerToken(r),
		Products: updates,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"modified": modified})
}

func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	record, err := h.uc.GetInventory(r.Context(), bearerToken(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}
