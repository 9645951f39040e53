package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "username").
		From("users").
		Where(Eq("id", int64(7)), Expr("total_points > ?", 0)).
		OrderBy("total_points DESC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, username FROM users WHERE id = $1 AND total_points > $2 ORDER BY total_points DESC LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != int64(7) || args[1] != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderGroupBy(t *testing.T) {
	query, _, err := Select("user_id", "SUM(points) AS total_points").
		From("predictions").
		GroupBy("user_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT user_id, SUM(points) AS total_points FROM predictions GROUP BY user_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
}

func TestInsertBuilderWithConflictSuffix(t *testing.T) {
	query, args, err := InsertInto("teams").
		Columns("id", "name").
		Values(int64(40), "FC Bayern München").
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO teams (id, name) VALUES ($1, $2) ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("matches").
		Set("finished", true).
		SetExpr("last_update_at", "NOW()").
		Where(Eq("id", int64(70001))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE matches SET finished = $1, last_update_at = NOW() WHERE id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != true || args[1] != int64(70001) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("predictions").
		Where(Eq("id", int64(3))).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM predictions WHERE id = $1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("predictions").ToSQL(); err == nil {
		t.Fatal("delete without where must fail")
	}
}

func TestInFallsBackOnEmptyValues(t *testing.T) {
	query, args, err := Select("id").
		From("predictions").
		Where(In("id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM predictions WHERE 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		ID      int64  `db:"id"`
		Name    string `db:"name"`
		Skipped string
	}

	query, args, err := InsertModel("teams", row{ID: 7, Name: "Borussia Dortmund"}, "")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}
	if query != "INSERT INTO teams (id, name) VALUES ($1, $2)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}
