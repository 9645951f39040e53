package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/bolzplatz/tippspiel/internal/domain/match"
	"github.com/bolzplatz/tippspiel/internal/domain/team"
	"github.com/bolzplatz/tippspiel/internal/platform/logging"
)

// SyncConfig selects what the feed sync pulls.
type SyncConfig struct {
	// Competitions are feed shortcuts, e.g. "bl1" and "dfb".
	Competitions []string
	Season       string
	// TeamFilter narrows getmatchdata to a single team where set.
	TeamFilter string
	// TableCompetition is the competition whose standing fills the local
	// league table. Defaults to the first entry of Competitions.
	TableCompetition string
	Workers          int
}

// SyncResult summarizes one full sync pass.
type SyncResult struct {
	Competitions int `json:"competitions"`
	Matches      int `json:"matches"`
	Teams        int `json:"teams"`
	Failed       int `json:"failed"`
}

// SyncService pulls matches, teams and the league table from the score feed
// into local storage.
type SyncService struct {
	provider  FeedProvider
	matchRepo match.Repository
	teamRepo  team.Repository
	logger    *logging.Logger
	cfg       SyncConfig
	now       func() time.Time
}

func NewSyncService(
	provider FeedProvider,
	matchRepo match.Repository,
	teamRepo team.Repository,
	logger *logging.Logger,
	cfg SyncConfig,
) *SyncService {
	if cfg.TableCompetition == "" && len(cfg.Competitions) > 0 {
		cfg.TableCompetition = cfg.Competitions[0]
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SyncService{
		provider:  provider,
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// SyncAll refreshes every configured competition, fanning the competitions
// out over a worker pool. A failing match or team is logged and skipped so
// one bad feed row cannot block the rest of the pass. On success every team
// row gets its update timestamp bumped.
func (s *SyncService) SyncAll(ctx context.Context) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncAll")
	defer span.End()

	if s.provider == nil {
		return SyncResult{}, fmt.Errorf("%w: score feed is not configured", ErrDependencyUnavailable)
	}
	if len(s.cfg.Competitions) == 0 {
		return SyncResult{}, fmt.Errorf("%w: no competitions configured", ErrInvalidInput)
	}

	if err := s.ensurePlaceholderTeam(ctx); err != nil {
		return SyncResult{}, err
	}

	pool, err := ants.NewPool(s.cfg.Workers)
	if err != nil {
		return SyncResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var matchCount, teamCount, failedCount atomic.Int32
	var workers sync.WaitGroup
	for _, competition := range s.cfg.Competitions {
		competition := competition
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			matches, teams, failed := s.syncCompetition(ctx, competition)
			matchCount.Add(int32(matches))
			teamCount.Add(int32(teams))
			failedCount.Add(int32(failed))
		}); err != nil {
			workers.Done()
			return SyncResult{}, fmt.Errorf("submit competition to worker pool: %w", err)
		}
	}
	workers.Wait()

	if err := s.teamRepo.TouchAll(ctx, s.now().UTC()); err != nil {
		return SyncResult{}, fmt.Errorf("stamp team update time: %w", err)
	}

	return SyncResult{
		Competitions: len(s.cfg.Competitions),
		Matches:      int(matchCount.Load()),
		Teams:        int(teamCount.Load()),
		Failed:       int(failedCount.Load()),
	}, nil
}

func (s *SyncService) syncCompetition(ctx context.Context, competition string) (matches, teams, failed int) {
	feedMatches, err := s.provider.MatchesByCompetition(ctx, competition, s.cfg.Season, s.cfg.TeamFilter)
	if err != nil {
		s.logger.ErrorContext(ctx, "fetch competition matches", "competition", competition, "error", err)
		return 0, 0, 1
	}

	for _, fm := range feedMatches {
		inserted, err := s.upsertFeedTeams(ctx, fm)
		if err != nil {
			s.logger.WarnContext(ctx, "upsert feed teams", "match", fm.ExternalID, "error", err)
			failed++
			continue
		}
		teams += inserted

		if err := s.matchRepo.Upsert(ctx, feedMatchToDomain(fm, competition)); err != nil {
			s.logger.WarnContext(ctx, "upsert match", "match", fm.ExternalID, "error", err)
			failed++
			continue
		}
		matches++
	}
	return matches, teams, failed
}

// upsertFeedTeams creates unknown teams and refreshes the group assignment
// of known ones. Names and icons are curated by hand and never overwritten
// from the feed.
func (s *SyncService) upsertFeedTeams(ctx context.Context, fm FeedMatch) (int, error) {
	inserted := 0
	for _, ft := range []FeedTeam{fm.Team1, fm.Team2} {
		if ft.ExternalID == 0 {
			continue
		}
		existing, found, err := s.teamRepo.GetByID(ctx, ft.ExternalID)
		if err != nil {
			return inserted, fmt.Errorf("get team %d: %w", ft.ExternalID, err)
		}

		group := ft.GroupName
		if group == "" {
			group = team.NoGroup
		}

		if !found {
			if err := s.teamRepo.Insert(ctx, team.Team{
				ID:        ft.ExternalID,
				Name:      ft.Name,
				ShortName: ft.ShortName,
				IconURL:   ft.IconURL,
				GroupName: group,
				UpdatedAt: s.now().UTC(),
			}); err != nil {
				return inserted, fmt.Errorf("insert team %d: %w", ft.ExternalID, err)
			}
			inserted++
			continue
		}

		if existing.GroupName != group {
			if err := s.teamRepo.UpdateGroupName(ctx, ft.ExternalID, group); err != nil {
				return inserted, fmt.Errorf("update team group %d: %w", ft.ExternalID, err)
			}
		}
	}
	return inserted, nil
}

func (s *SyncService) ensurePlaceholderTeam(ctx context.Context) error {
	_, found, err := s.teamRepo.GetByID(ctx, team.PlaceholderID)
	if err != nil {
		return fmt.Errorf("get placeholder team: %w", err)
	}
	if found {
		return nil
	}
	if err := s.teamRepo.Insert(ctx, team.Placeholder(s.now().UTC())); err != nil {
		return fmt.Errorf("insert placeholder team: %w", err)
	}
	return nil
}

// RefreshTable replaces the stored league table with the feed standing.
// Rank follows the feed's row order.
func (s *SyncService) RefreshTable(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.RefreshTable")
	defer span.End()

	if s.provider == nil {
		return fmt.Errorf("%w: score feed is not configured", ErrDependencyUnavailable)
	}

	rows, err := s.provider.Table(ctx, s.cfg.TableCompetition, s.cfg.Season)
	if err != nil {
		return fmt.Errorf("fetch league table: %w", err)
	}

	teams := make([]team.Team, 0, len(rows))
	for i, row := range rows {
		teams = append(teams, team.Team{
			ID:            row.TeamExternalID,
			Name:          row.TeamName,
			Points:        row.Points,
			Goals:         row.Goals,
			OpponentGoals: row.OpponentGoals,
			Matches:       row.Matches,
			Won:           row.Won,
			Lost:          row.Lost,
			Draw:          row.Draw,
			GoalDiff:      row.GoalDiff,
			Rank:          i + 1,
		})
	}
	if err := s.teamRepo.UpdateStats(ctx, teams); err != nil {
		return fmt.Errorf("update league table: %w", err)
	}
	return nil
}

// SyncLive refreshes the scores of every match currently underway by
// fetching each one individually from the feed. Manually created matches
// (negative ids) are never touched. Returns true when at least one match
// flipped to finished during this pass, which signals the caller to run a
// full sync afterwards.
func (s *SyncService) SyncLive(ctx context.Context) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncLive")
	defer span.End()

	underway, err := s.matchRepo.ListUnderway(ctx, s.now().UTC())
	if err != nil {
		return false, fmt.Errorf("list underway matches: %w", err)
	}

	var anyFinished atomic.Bool
	var wg conc.WaitGroup
	for _, m := range underway {
		m := m
		if m.IsManual() {
			continue
		}
		wg.Go(func() {
			fm, err := s.provider.MatchByID(ctx, m.ID)
			if err != nil {
				s.logger.WarnContext(ctx, "fetch live match", "match", m.ID, "error", err)
				return
			}
			if err := s.matchRepo.UpdateScores(ctx, m.ID, fm.Team1Score, fm.Team2Score, fm.Finished, fm.LastUpdateAt); err != nil {
				s.logger.WarnContext(ctx, "update live match", "match", m.ID, "error", err)
				return
			}
			if fm.Finished {
				anyFinished.Store(true)
			}
		})
	}
	wg.Wait()

	return anyFinished.Load(), nil
}

func feedMatchToDomain(fm FeedMatch, competition string) match.Match {
	group := fm.GroupName
	if group == "" {
		group = team.NoGroup
	}
	return match.Match{
		ID:           fm.ExternalID,
		Round:        fm.Round,
		Team1ID:      fm.Team1.ExternalID,
		Team2ID:      fm.Team2.ExternalID,
		Team1Score:   fm.Team1Score,
		Team2Score:   fm.Team2Score,
		KickoffAt:    fm.KickoffAt,
		Finished:     fm.Finished,
		League:       competition,
		GroupName:    group,
		LastUpdateAt: fm.LastUpdateAt,
	}
}
