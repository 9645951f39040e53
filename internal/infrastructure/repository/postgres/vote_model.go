package postgres

import (
	"time"

	"github.com/bolzplatz/tippspiel/internal/domain/poll"
)

type voteTableModel struct {
	ID      int64     `db:"id"`
	UserID  int64     `db:"user_id"`
	PollID  string    `db:"poll_id"`
	Choice  bool      `db:"choice"`
	VotedAt time.Time `db:"voted_at"`
}

func (m voteTableModel) toDomain() poll.Vote {
	return poll.Vote{
		ID:      m.ID,
		UserID:  m.UserID,
		PollID:  m.PollID,
		Choice:  m.Choice,
		VotedAt: m.VotedAt,
	}
}
