package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/darkbluein/locale-store-service/internal/domain"
	"github.com/darkbluein/locale-store-service/internal/usecase"
	storedto "github.com/darkbluein/locale-store-service/internal/usecase/dto/store"
)

type StoreHandler struct {
	uc usecase.StoreUsecase
}

func NewStoreHandler(uc usecase.StoreUsecase) *StoreHandler {
	return &StoreHandler{uc: uc}
}

type editStoreRequest struct {
	Edit      bool                    `json:"edit"`
	StoreInfo storedto.StoreInfoInput `json:"storeInfo"`
}

type editStoreResponse struct {
	Store        *domain.StoreProfile `json:"store,omitempty"`
	Token        string               `json:"token,omitempty"`
	RefreshToken string               `json:"refreshToken,omitempty"`
	Updated      bool                 `json:"updated"`
}

func (h *StoreHandler) EditStore(w http.ResponseWriter, r *http.Request) {
	var req editStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrValidation)
		return
	}

	result, err := h.uc.EditStore(r.Context(), &storedto.EditStoreInput{
		Token:     bearerToken(r),
		Edit:      req.Edit,
		StoreInfo: req.StoreInfo,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if !req.Edit {
		status = http.StatusCreated
	}
	writeJSON(w, status, editStoreResponse{
		Store:        result.Store,
		Token:        result.Token,
		RefreshToken: result.RefreshToken,
		Updated:      result.Updated,
	})
}

type verifyStoreRequest struct {
	StoreID  string `json:"storeId"`
	Verified bool   `json:"verified"`
}

func (h *StoreHandler) VerifyStore(w http.ResponseWriter, r *http.Request) {
	var req verifyStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrValidation)
		return
	}

	verified, err := h.uc.VerifyStore(r.Context(), &storedto.VerifyStoreInput{
		Token:    bearerToken(r),
		StoreID:  req.StoreID,
		Verified: req.Verified,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"verified": verified})
}

func (h *StoreHandler) GetStore(w http.ResponseWriter, r *http.Request) {
	output, err := h.uc.GetStore(r.Context(), bearerToken(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

func (h *StoreHandler) GetConfirmation(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeId")

	output, err := h.uc.GetConfirmation(r.Context(), bearerToken(r), storeID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

type addAccountRequest struct {
	Contact storedto.ContactInput `json:"contact"`
	OrderID string                `json:"orderId"`
}

func (h *StoreHandler) AddAccount(w http.ResponseWriter, r *http.Request) {
	var req addAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrValidation)
		return
	}

	account, err := h.uc.AddAccount(r.Context(), &storedto.AddAccountInput{
		Token:   bearerToken(r),
		Contact: req.Contact,
		OrderID: req.OrderID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}
