package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gracechain/versebot/internal/config"
	"github.com/gracechain/versebot/internal/models"
	"github.com/gracechain/versebot/internal/publisher"
	"github.com/gracechain/versebot/internal/storage"
)

// Handlers holds the API handlers.
type Handlers struct {
	store  *storage.Store
	quota  *publisher.Quota
	limits config.Limits
}

// NewHandlers creates new API handlers.
func NewHandlers(store *storage.Store, quota *publisher.Quota, limits config.Limits) *Handlers {
	return &Handlers{store: store, quota: quota, limits: limits}
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func getLimit(r *http.Request, defaultLimit int) int {
	limit := defaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	return limit
}

// ============================================================================
// USAGE HANDLERS
// ============================================================================

// GetUsage returns the current month's ledger next to the configured
// limits.
func (h *Handlers) GetUsage(w http.ResponseWriter, r *http.Request) {
	if h.quota == nil {
		respondError(w, http.StatusServiceUnavailable, "Quota not available")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"usage": h.quota.Usage(),
		"limits": map[string]int{
			"monthly_posts": h.limits.MonthlyPosts,
			"monthly_reads": h.limits.MonthlyReads,
			"daily_posts":   h.limits.DailyPosts,
			"daily_reads":   h.limits.DailyReads,
		},
	})
}

// ============================================================================
// POST HANDLERS
// ============================================================================

// GetPosts returns recently published segments, optionally filtered by
// kind.
func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "Storage not available")
		return
	}

	limit := getLimit(r, 20)

	var (
		posts []models.PostRecord
		err   error
	)
	if kind := r.URL.Query().Get("kind"); kind != "" {
		posts, err = h.store.GetPostsByKind(r.Context(), models.PostKind(kind), limit)
	} else {
		posts, err = h.store.GetRecentPosts(r.Context(), limit)
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"posts": posts,
		"count": len(posts),
	})
}
