package chat

import (
	"context"
	"errors"

	"github.com/mindmate/aura-server/internal/models"
	"github.com/mindmate/aura-server/internal/store"
)

// LoadHistory returns the prior turns of a session in the transcript
// format the AI API expects, oldest first. A missing chat store or an
// empty session yields an empty transcript, not an error: the
// conversation path tolerates store absence.
func LoadHistory(ctx context.Context, messages *store.MessageStore, sessionID, userID string) ([]models.HistoryTurn, error) {
	msgs, err := messages.History(ctx, sessionID, userID)
	if errors.Is(err, store.ErrUnavailable) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	turns := make([]models.HistoryTurn, 0, len(msgs))
	for _, m := range msgs {
		role := models.RoleModel
		if m.Sender == models.SenderUser {
			role = models.RoleUser
		}
		turns = append(turns, models.HistoryTurn{Role: role, Content: m.Message})
	}

	return turns, nil
}
