// Package openliga talks to the OpenLigaDB REST API, the public feed for
// German football results.
package openliga

import (
	"strings"
	"time"
)

// apiMatch mirrors the getmatchdata payload.
type apiMatch struct {
	MatchID            int64        `json:"matchID"`
	LeagueShortcut     string       `json:"leagueShortcut"`
	MatchDateTimeUTC   time.Time    `json:"matchDateTimeUTC"`
	Group              apiGroup     `json:"group"`
	Team1              apiTeam      `json:"team1"`
	Team2              apiTeam      `json:"team2"`
	MatchResults       []apiResult  `json:"matchResults"`
	MatchIsFinished    bool         `json:"matchIsFinished"`
	LastUpdateDateTime fuzzyTime    `json:"lastUpdateDateTime"`
}

type apiGroup struct {
	GroupName    string `json:"groupName"`
	GroupOrderID int    `json:"groupOrderID"`
}

type apiTeam struct {
	TeamID        int64  `json:"teamId"`
	TeamName      string `json:"teamName"`
	ShortName     string `json:"shortName"`
	TeamIconURL   string `json:"teamIconUrl"`
	TeamGroupName string `json:"teamGroupName"`
}

type apiResult struct {
	ResultName    string `json:"resultName"`
	PointsTeam1   int    `json:"pointsTeam1"`
	PointsTeam2   int    `json:"pointsTeam2"`
	ResultOrderID int    `json:"resultOrderID"`
}

// apiTableRow mirrors one getbltable row.
type apiTableRow struct {
	TeamInfoID    int64  `json:"teamInfoId"`
	TeamName      string `json:"teamName"`
	Points        int    `json:"points"`
	Goals         int    `json:"goals"`
	OpponentGoals int    `json:"opponentGoals"`
	Matches       int    `json:"matches"`
	Won           int    `json:"won"`
	Lost          int    `json:"lost"`
	Draw          int    `json:"draw"`
	GoalDiff      int    `json:"goalDiff"`
}

type apiCurrentGroup struct {
	GroupOrderID int `json:"groupOrderID"`
}

// extractScore picks the score out of the result list. The feed appends
// result entries as a match progresses (halftime, fulltime, extra time).
// When every expected entry is present the last one is authoritative,
// otherwise the feed's fulltime slot is. An empty list means no score yet.
func extractScore(results []apiResult) (*int, *int) {
	if len(results) == 0 {
		return nil, nil
	}

	pick := results[len(results)-1]
	if len(results) != pick.ResultOrderID && len(results) > 1 {
		pick = results[1]
	}

	t1, t2 := pick.PointsTeam1, pick.PointsTeam2
	return &t1, &t2
}

// fuzzyTime parses the feed's timezone-less local timestamps alongside
// proper RFC 3339 ones.
type fuzzyTime struct {
	time.Time
}

var fuzzyLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (f *fuzzyTime) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		f.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range fuzzyLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			f.Time = t.UTC()
			return nil
		}
		lastErr = err
	}
	return lastErr
}
