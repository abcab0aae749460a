package booking

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/apperr"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

type AuditReader interface {
	ListByUser(ctx context.Context, userUID string, limit, offset int) ([]models.AuditLog, int64, error)
}

type History struct {
	audit AuditReader
}

func NewHistory(audit AuditReader) *History {
	return &History{audit: audit}
}

// Execute pages through the user's booking events, newest first. Out of
// range page and limit values fall back to the defaults.
func (uc *History) Execute(
	ctx context.Context,
	userID string,
	page int,
	limit int,
) (*dto.HistoryPage, error) {

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperr.Validation(domain.CodeMissingUser, "Missing user identity")
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}

	logs, total, err := uc.audit.ListByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return nil, err
		}
		return nil, apperr.Internal("history_failed", err)
	}

	entries := make([]dto.AuditEntry, 0, len(logs))
	for _, l := range logs {
		entry := dto.AuditEntry{
			ID:        l.ID,
			Action:    l.Action,
			EntityID:  l.EntityID,
			CreatedAt: l.CreatedAt,
		}
		if l.Metadata != "" && json.Valid([]byte(l.Metadata)) {
			entry.Metadata = json.RawMessage(l.Metadata)
		}
		entries = append(entries, entry)
	}

	return &dto.HistoryPage{
		Page:    page,
		Limit:   limit,
		Total:   total,
		Entries: entries,
	}, nil
}
