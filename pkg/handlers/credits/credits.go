package credits

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/nftarena/battle-coordinator/pkg/api"
	"github.com/nftarena/battle-coordinator/pkg/mapping"
	"github.com/nftarena/battle-coordinator/pkg/storage"
)

const defaultListLimit = 50

// CreditsHandler holds the dependencies for reward-ledger handlers.
type CreditsHandler struct {
	Store storage.CreditReader
}

// NewCreditsHandler creates a new CreditsHandler.
func NewCreditsHandler(store storage.CreditReader) *CreditsHandler {
	return &CreditsHandler{Store: store}
}

// ListCreditEntries handles the recent-rewards feed.
func (h *CreditsHandler) ListCreditEntries(w http.ResponseWriter, r *http.Request) {
	limit := int32(defaultListLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = int32(parsed)
	}

	entries, err := h.Store.ListCreditEntries(r.Context(), limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list credit entries: %v", err), http.StatusInternalServerError)
		return
	}

	out := make([]*api.CreditEntry, len(entries))
	for i := range entries {
		out[i] = mapping.ToApiCreditEntry(&entries[i])
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(out); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
