package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/bolzplatz/tippspiel/internal/domain/team"
)

// TeamGroup is one tournament group with its teams in rank order.
type TeamGroup struct {
	Name  string      `json:"name"`
	Teams []team.Team `json:"teams"`
}

// TableService serves the league table and the group stage view.
type TableService struct {
	teamRepo team.Repository
}

func NewTableService(teamRepo team.Repository) *TableService {
	return &TableService{teamRepo: teamRepo}
}

// Table returns all teams in league table order. The placeholder team never
// shows up.
func (s *TableService) Table(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TableService.Table")
	defer span.End()

	teams, err := s.teamRepo.ListByRank(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams by rank: %w", err)
	}

	out := make([]team.Team, 0, len(teams))
	for _, t := range teams {
		if t.ID == team.PlaceholderID {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// Groups buckets the teams by their group label. Teams without a group
// assignment are dropped from the view.
func (s *TableService) Groups(ctx context.Context) ([]TeamGroup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TableService.Groups")
	defer span.End()

	teams, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string][]team.Team)
	for _, t := range teams {
		if t.GroupName == "" || t.GroupName == team.NoGroup {
			continue
		}
		byName[t.GroupName] = append(byName[t.GroupName], t)
	}

	groups := make([]TeamGroup, 0, len(byName))
	for name, members := range byName {
		groups = append(groups, TeamGroup{Name: name, Teams: members})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups, nil
}
