package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bolzplatz/tippspiel/internal/domain/match"
	"github.com/bolzplatz/tippspiel/internal/domain/team"
	"github.com/bolzplatz/tippspiel/internal/infrastructure/repository/memory"
	"github.com/bolzplatz/tippspiel/internal/platform/logging"
)

type fakeFeed struct {
	matchesByCompetition map[string][]FeedMatch
	matchesByID          map[int64]FeedMatch
	table                []FeedTableRow
	failCompetitions     map[string]bool
	failMatchIDs         map[int64]bool
}

func (f *fakeFeed) MatchesByCompetition(_ context.Context, competition, _, _ string) ([]FeedMatch, error) {
	if f.failCompetitions[competition] {
		return nil, errors.New("feed down")
	}
	return f.matchesByCompetition[competition], nil
}

func (f *fakeFeed) MatchByID(_ context.Context, id int64) (FeedMatch, error) {
	if f.failMatchIDs[id] {
		return FeedMatch{}, errors.New("feed down")
	}
	fm, ok := f.matchesByID[id]
	if !ok {
		return FeedMatch{}, errors.New("unknown match")
	}
	return fm, nil
}

func (f *fakeFeed) Table(context.Context, string, string) ([]FeedTableRow, error) {
	return f.table, nil
}

func newSyncFixture(now time.Time, feed *fakeFeed, matches []match.Match, teams []team.Team) (*SyncService, *memory.MatchRepository, *memory.TeamRepository) {
	matchRepo := memory.NewMatchRepository(matches)
	teamRepo := memory.NewTeamRepository(teams)
	service := NewSyncService(feed, matchRepo, teamRepo, logging.NewNop(), SyncConfig{
		Competitions: []string{"bl1", "dfb"},
		Season:       "2024",
		Workers:      2,
	})
	service.now = func() time.Time { return now }
	return service, matchRepo, teamRepo
}

func TestSyncService_SyncAll_InsertsMatchesAndTeams(t *testing.T) {
	now := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)
	kickoff := time.Date(2024, 9, 14, 15, 30, 0, 0, time.UTC)

	feed := &fakeFeed{
		matchesByCompetition: map[string][]FeedMatch{
			"bl1": {{
				ExternalID: 70001,
				Round:      3,
				Team1:      FeedTeam{ExternalID: 40, Name: "FC Bayern München", ShortName: "Bayern", GroupName: "3. Spieltag"},
				Team2:      FeedTeam{ExternalID: 7, Name: "Borussia Dortmund", ShortName: "BVB", GroupName: "3. Spieltag"},
				KickoffAt:  kickoff,
			}},
		},
	}

	service, matchRepo, teamRepo := newSyncFixture(now, feed, nil, nil)

	result, err := service.SyncAll(t.Context())
	if err != nil {
		t.Fatalf("SyncAll: %v", err)
	}
	if result.Matches != 1 || result.Teams != 2 || result.Failed != 0 {
		t.Fatalf("result: %+v", result)
	}

	m, found, _ := matchRepo.GetByID(t.Context(), 70001)
	if !found {
		t.Fatal("match not stored")
	}
	if m.League != "bl1" || m.Round != 3 || !m.KickoffAt.Equal(kickoff) {
		t.Fatalf("stored match wrong: %+v", m)
	}

	if _, found, _ := teamRepo.GetByID(t.Context(), 40); !found {
		t.Fatal("team 40 not stored")
	}
	if _, found, _ := teamRepo.GetByID(t.Context(), team.PlaceholderID); !found {
		t.Fatal("placeholder team missing")
	}

	teams, _ := teamRepo.List(t.Context())
	for _, tm := range teams {
		if !tm.UpdatedAt.Equal(now) {
			t.Fatalf("team %d not stamped: %v", tm.ID, tm.UpdatedAt)
		}
	}
}

func TestSyncService_SyncAll_PreservesCuratedTeamFields(t *testing.T) {
	now := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)

	feed := &fakeFeed{
		matchesByCompetition: map[string][]FeedMatch{
			"bl1": {{
				ExternalID: 70002,
				Team1:      FeedTeam{ExternalID: 40, Name: "FC Bayern München", IconURL: "https://feed/new.png", GroupName: "Achtelfinale"},
				Team2:      FeedTeam{ExternalID: 7, Name: "Borussia Dortmund"},
				KickoffAt:  now.Add(48 * time.Hour),
			}},
		},
	}

	service, _, teamRepo := newSyncFixture(now, feed, nil, []team.Team{
		{ID: 40, Name: "Bayern", IconURL: "https://local/bayern.png", IconPath: "icons/bayern.png", GroupName: team.NoGroup},
	})

	if _, err := service.SyncAll(t.Context()); err != nil {
		t.Fatalf("SyncAll: %v", err)
	}

	tm, _, _ := teamRepo.GetByID(t.Context(), 40)
	if tm.Name != "Bayern" || tm.IconURL != "https://local/bayern.png" || tm.IconPath != "icons/bayern.png" {
		t.Fatalf("curated fields were overwritten: %+v", tm)
	}
	if tm.GroupName != "Achtelfinale" {
		t.Fatalf("group must follow the feed: %q", tm.GroupName)
	}
}

func TestSyncService_SyncAll_PreservesEvaluationOnUpsert(t *testing.T) {
	now := time.Date(2024, 9, 15, 20, 0, 0, 0, time.UTC)
	kickoff := now.Add(-4 * time.Hour)
	evaluatedAt := now.Add(-time.Hour)

	feed := &fakeFeed{
		matchesByCompetition: map[string][]FeedMatch{
			"bl1": {{
				ExternalID: 70003,
				Team1:      FeedTeam{ExternalID: 40},
				Team2:      FeedTeam{ExternalID: 7},
				Team1Score: intPtr(2),
				Team2Score: intPtr(2),
				KickoffAt:  kickoff,
				Finished:   true,
			}},
		},
	}

	service, matchRepo, _ := newSyncFixture(now, feed, []match.Match{
		{ID: 70003, Team1ID: 40, Team2ID: 7, KickoffAt: kickoff, Finished: true, Evaluated: true, EvaluatedAt: &evaluatedAt},
	}, []team.Team{{ID: 40}, {ID: 7}})

	if _, err := service.SyncAll(t.Context()); err != nil {
		t.Fatalf("SyncAll: %v", err)
	}

	m, _, _ := matchRepo.GetByID(t.Context(), 70003)
	if !m.Evaluated || m.EvaluatedAt == nil || !m.EvaluatedAt.Equal(evaluatedAt) {
		t.Fatalf("evaluation state lost on upsert: %+v", m)
	}
	if m.Team1Score == nil || *m.Team1Score != 2 {
		t.Fatalf("feed score not applied: %+v", m)
	}
}

func TestSyncService_SyncAll_FailingCompetitionDoesNotBlockOthers(t *testing.T) {
	now := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)

	feed := &fakeFeed{
		matchesByCompetition: map[string][]FeedMatch{
			"dfb": {{
				ExternalID: 80001,
				Team1:      FeedTeam{ExternalID: 9},
				Team2:      FeedTeam{ExternalID: 10},
				KickoffAt:  now.Add(time.Hour),
			}},
		},
		failCompetitions: map[string]bool{"bl1": true},
	}

	service, matchRepo, _ := newSyncFixture(now, feed, nil, nil)

	result, err := service.SyncAll(t.Context())
	if err != nil {
		t.Fatalf("SyncAll: %v", err)
	}
	if result.Failed != 1 || result.Matches != 1 {
		t.Fatalf("result: %+v", result)
	}
	if _, found, _ := matchRepo.GetByID(t.Context(), 80001); !found {
		t.Fatal("dfb match should be stored despite bl1 failure")
	}
}

func TestSyncService_SyncLive(t *testing.T) {
	now := time.Date(2024, 9, 14, 16, 0, 0, 0, time.UTC)

	feed := &fakeFeed{
		matchesByID: map[int64]FeedMatch{
			1: {ExternalID: 1, Team1Score: intPtr(1), Team2Score: intPtr(0), Finished: false, LastUpdateAt: now},
			2: {ExternalID: 2, Team1Score: intPtr(3), Team2Score: intPtr(1), Finished: true, LastUpdateAt: now},
		},
		failMatchIDs: map[int64]bool{3: true},
	}

	service, matchRepo, _ := newSyncFixture(now, feed, []match.Match{
		{ID: 1, KickoffAt: now.Add(-30 * time.Minute)},
		{ID: 2, KickoffAt: now.Add(-2 * time.Hour)},
		{ID: 3, KickoffAt: now.Add(-time.Hour)},
		// Manual match, must never hit the feed.
		{ID: -5, KickoffAt: now.Add(-time.Hour)},
		// Not underway yet.
		{ID: 4, KickoffAt: now.Add(time.Hour)},
	}, nil)

	finished, err := service.SyncLive(t.Context())
	if err != nil {
		t.Fatalf("SyncLive: %v", err)
	}
	if !finished {
		t.Fatal("a match finished, caller must be told to run a full sync")
	}

	m1, _, _ := matchRepo.GetByID(t.Context(), 1)
	if m1.Team1Score == nil || *m1.Team1Score != 1 || m1.Finished {
		t.Fatalf("live match 1 wrong: %+v", m1)
	}
	m2, _, _ := matchRepo.GetByID(t.Context(), 2)
	if !m2.Finished {
		t.Fatalf("match 2 should be finished: %+v", m2)
	}
	manual, _, _ := matchRepo.GetByID(t.Context(), -5)
	if manual.Team1Score != nil {
		t.Fatalf("manual match must stay untouched: %+v", manual)
	}
}

func TestSyncService_RefreshTable(t *testing.T) {
	now := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)

	feed := &fakeFeed{
		table: []FeedTableRow{
			{TeamExternalID: 40, TeamName: "FC Bayern München", Points: 9, Goals: 11, OpponentGoals: 2, Matches: 3, Won: 3, GoalDiff: 9},
			{TeamExternalID: 7, TeamName: "Borussia Dortmund", Points: 7, Goals: 8, OpponentGoals: 4, Matches: 3, Won: 2, Draw: 1, GoalDiff: 4},
		},
	}

	service, _, teamRepo := newSyncFixture(now, feed, nil, []team.Team{{ID: 40}, {ID: 7}})

	if err := service.RefreshTable(t.Context()); err != nil {
		t.Fatalf("RefreshTable: %v", err)
	}

	ranked, _ := teamRepo.ListByRank(t.Context())
	if len(ranked) != 2 {
		t.Fatalf("ranked teams: got %d, want 2", len(ranked))
	}
	if ranked[0].ID != 40 || ranked[0].Rank != 1 || ranked[0].Points != 9 {
		t.Fatalf("rank 1 wrong: %+v", ranked[0])
	}
	if ranked[1].ID != 7 || ranked[1].Rank != 2 {
		t.Fatalf("rank 2 wrong: %+v", ranked[1])
	}
}
