package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/sahzadahmad246/sonipaintingapp-sub002/config"
	"github.com/sahzadahmad246/sonipaintingapp-sub002/models"
)

// AuditHandler exposes the append-only audit trail to admins
type AuditHandler struct {
	db *gorm.DB
}

func NewAuditHandler() *AuditHandler {
	return &AuditHandler{db: config.DB}
}

// ListAuditLogs lists audit entries newest first, filterable by action
// and actor
func (h *AuditHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	query := h.db.Model(&models.AuditLog{})

	if action := r.URL.Query().Get("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if actor := r.URL.Query().Get("actorId"); actor != "" {
		query = query.Where("actor_id = ?", actor)
	}

	limit := 100
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 500 {
		limit = l
	}

	var entries []models.AuditLog
	if err := query.Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		http.Error(w, "Failed to fetch audit logs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}
