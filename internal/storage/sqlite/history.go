package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/skycast/internal/core"
	"github.com/sandevgo/skycast/pkg/log"
)

// History persists conversation transcripts. It is the write-through
// sink behind a session; the session never reads its live history back
// from here, only commands like /history do.
type History struct {
	db *sql.DB
}

func NewHistory(db *sql.DB) *History {
	return &History{db: db}
}

func (h *History) AddMessage(ctx context.Context, sessionID string, msg core.ChatMessage) error {
	query := `INSERT INTO messages (message_id, session_id, role, text, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := h.db.ExecContext(ctx, query, msg.ID, sessionID, msg.Role, msg.Text, msg.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func (h *History) GetMessages(ctx context.Context, sessionID string, limit int) ([]core.ChatMessage, error) {
	// Fetch the LAST 'limit' messages by ordering DESC
	query := `SELECT message_id, role, text, created_at FROM messages WHERE session_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := h.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []core.ChatMessage
	for rows.Next() {
		var msg core.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.Role, &msg.Text, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse back to chronological order, oldest first.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	log.FromCtx(ctx).Debug().Int("count", len(messages)).Msg("loaded transcript messages")
	return messages, nil
}

func (h *History) ClearSession(ctx context.Context, sessionID string) error {
	_, err := h.db.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
