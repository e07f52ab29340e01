package accounts

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/nftarena/battle-coordinator/pkg/api"
	"github.com/nftarena/battle-coordinator/pkg/mapping"
	"github.com/nftarena/battle-coordinator/pkg/models"
	"github.com/nftarena/battle-coordinator/pkg/storage"
)

// AccountsHandler holds the dependencies for account-related handlers.
type AccountsHandler struct {
	Store storage.AccountStore
}

// NewAccountsHandler creates a new AccountsHandler.
func NewAccountsHandler(store storage.AccountStore) *AccountsHandler {
	return &AccountsHandler{Store: store}
}

// CreateAccount handles the logic for registering a new account.
func (h *AccountsHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var newAccount api.NewAccount
	if err := json.NewDecoder(r.Body).Decode(&newAccount); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if newAccount.PrimaryAddress == "" {
		http.Error(w, "primary_address is required", http.StatusBadRequest)
		return
	}

	account, err := h.Store.CreateAccount(r.Context(), newAccount.PrimaryAddress)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			http.Error(w, "Account for this address already exists", http.StatusConflict)
		} else {
			http.Error(w, fmt.Sprintf("Failed to create account: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiAccount := mapping.ToApiAccount(account)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiAccount); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetAccountByAddress handles the logic for retrieving an account.
func (h *AccountsHandler) GetAccountByAddress(w http.ResponseWriter, r *http.Request, address string) {
	account, err := h.Store.GetAccount(r.Context(), address)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Account not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve account: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiAccount := mapping.ToApiAccount(account)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiAccount); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// LinkAccount handles the logic for linking a secondary address.
func (h *AccountsHandler) LinkAccount(w http.ResponseWriter, r *http.Request, address string) {
	var link api.LinkRequest
	if err := json.NewDecoder(r.Body).Decode(&link); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if models.NormalizeAddress(link.SecondaryAddress) == "" {
		http.Error(w, "secondary_address is required", http.StatusBadRequest)
		return
	}

	account, err := h.Store.LinkAccount(r.Context(), address, link.SecondaryAddress)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Account not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrStaleVersion):
			http.Error(w, "Account was modified concurrently, retry", http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to link account: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiAccount := mapping.ToApiAccount(account)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiAccount); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ResolveSecondary handles the reverse lookup from a secondary address.
func (h *AccountsHandler) ResolveSecondary(w http.ResponseWriter, r *http.Request, secondary string) {
	primary, err := h.Store.ResolvePrimary(r.Context(), secondary)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "No account linked to this address", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to resolve address: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(api.ResolveResponse{PrimaryAddress: primary}); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
