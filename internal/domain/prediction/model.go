package prediction

import "time"

// Winner indicator values shared by predictions and real results.
const (
	WinnerDraw  = 0
	WinnerTeam1 = 1
	WinnerTeam2 = 2
)

// Point tiers, highest first. A prediction earns exactly one tier.
const (
	PointsExactScore = 4
	PointsGoalDiff   = 3
	PointsTendency   = 2
	PointsNone       = 0
)

// Score is one result pair, either predicted or real.
type Score struct {
	Team1 int
	Team2 int
}

func (s Score) GoalDiff() int {
	return s.Team1 - s.Team2
}

func (s Score) Winner() int {
	switch {
	case s.Team1 > s.Team2:
		return WinnerTeam1
	case s.Team1 < s.Team2:
		return WinnerTeam2
	default:
		return WinnerDraw
	}
}

// PointsFor awards the highest tier the predicted score qualifies for
// against the actual result:
//
//	exact score                                  -> 4
//	exact goal difference, result not a draw     -> 3
//	correct winner, or exact diff on a draw      -> 2
//	anything else                                -> 0
//
// The goal-difference tier is deliberately unreachable on drawn results:
// a matching diff on a draw routes to the tendency tier instead.
func PointsFor(predicted, actual Score) int {
	if predicted == actual {
		return PointsExactScore
	}
	if predicted.GoalDiff() == actual.GoalDiff() && actual.Winner() != WinnerDraw {
		return PointsGoalDiff
	}
	if predicted.Winner() == actual.Winner() ||
		(predicted.GoalDiff() == actual.GoalDiff() && actual.Winner() == WinnerDraw) {
		return PointsTendency
	}
	return PointsNone
}

// Prediction is one user's guess for one match. At most one row exists
// per (user, match); no row means no prediction.
type Prediction struct {
	ID          int64
	UserID      int64
	MatchID     int64
	Round       int
	Team1Score  int
	Team2Score  int
	GoalDiff    int
	Winner      int
	Points      int
	PredictedAt time.Time
}

func (p Prediction) Score() Score {
	return Score{Team1: p.Team1Score, Team2: p.Team2Score}
}

// UserTotals is the grouped-sum aggregation of one user's predictions.
type UserTotals struct {
	UserID          int64
	TotalPoints     int
	CorrectResult   int
	CorrectGoalDiff int
	CorrectTendency int
}
