package poll

import "time"

// Vote is a single yes/no answer by a user on a named poll. One vote per
// user and poll; later submissions are rejected.
type Vote struct {
	ID      int64
	UserID  int64
	PollID  string
	Choice  bool
	VotedAt time.Time
}

// Counts is the tally of a poll.
type Counts struct {
	Yes int
	No  int
}
