package usecase

import (
	"testing"

	"github.com/bolzplatz/tippspiel/internal/domain/team"
	"github.com/bolzplatz/tippspiel/internal/infrastructure/repository/memory"
)

func TestTableService(t *testing.T) {
	teamRepo := memory.NewTeamRepository([]team.Team{
		{ID: 40, Name: "FC Bayern München", Rank: 1, GroupName: "Gruppe A"},
		{ID: 7, Name: "Borussia Dortmund", Rank: 2, GroupName: "Gruppe A"},
		{ID: 9, Name: "FC Schalke 04", Rank: 3, GroupName: team.NoGroup},
		{ID: team.PlaceholderID, Name: "-", GroupName: team.NoGroup},
	})
	service := NewTableService(teamRepo)

	table, err := service.Table(t.Context())
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	if len(table) != 3 {
		t.Fatalf("table: got %d teams, want 3 (placeholder hidden)", len(table))
	}
	if table[0].ID != 40 || table[1].ID != 7 {
		t.Fatalf("rank order wrong: %+v", table)
	}

	groups, err := service.Groups(t.Context())
	if err != nil {
		t.Fatalf("Groups: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("groups: got %d, want 1 (None group dropped)", len(groups))
	}
	if groups[0].Name != "Gruppe A" || len(groups[0].Teams) != 2 {
		t.Fatalf("group wrong: %+v", groups[0])
	}
}
