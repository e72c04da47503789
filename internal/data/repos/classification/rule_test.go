package classification

import (
	"context"
	"testing"

	"github.com/yungbote/tubesort-backend/internal/data/repos/testutil"
	types "github.com/yungbote/tubesort-backend/internal/domain"
)

func TestRuleRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewRuleRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "rules@example.com")
	p := testutil.SeedPlaylist(t, ctx, tx, u.ID, "PLrules000001")

	created, err := repo.Create(ctx, tx, &types.ClassificationRule{
		UserID:     u.ID,
		PlaylistID: p.ID,
		RuleType:   types.RuleTypeKeyword,
		RuleValue:  "lofi",
		Priority:   3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	value := "synthwave"
	priority := 1
	updated, err := repo.Update(ctx, tx, created.ID, RuleUpdate{RuleValue: &value, Priority: &priority})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.RuleValue != "synthwave" || updated.Priority != 1 {
		t.Fatalf("Update: not applied: %+v", updated)
	}
	if updated.RuleType != types.RuleTypeKeyword {
		t.Fatalf("Update: untouched field changed: %+v", updated)
	}

	snapshot, err := repo.Delete(ctx, tx, created.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if snapshot == nil || snapshot.RuleValue != "synthwave" {
		t.Fatalf("Delete: expected pre-delete snapshot, got %+v", snapshot)
	}

	gone, err := repo.Get(ctx, tx, created.ID)
	if err != nil {
		t.Fatalf("Get (deleted): %v", err)
	}
	if gone != nil {
		t.Fatalf("Get (deleted): expected nil, got %+v", gone)
	}
}

func TestRuleRepoGetByPriority(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewRuleRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "priority@example.com")
	p := testutil.SeedPlaylist(t, ctx, tx, u.ID, "PLpriority001")

	// Shared priority 1 pair exercises the id tie-break.
	high := testutil.SeedRule(t, ctx, tx, u.ID, p.ID, types.RuleTypeChannel, "UCchan", 1)
	low := testutil.SeedRule(t, ctx, tx, u.ID, p.ID, types.RuleTypeKeyword, "lofi", 5)
	tied := testutil.SeedRule(t, ctx, tx, u.ID, p.ID, types.RuleTypeTag, "chill", 1)

	ordered, err := repo.GetByPriority(ctx, tx, u.ID, p.ID)
	if err != nil {
		t.Fatalf("GetByPriority: %v", err)
	}
	if len(ordered) != 3 {
		t.Fatalf("GetByPriority: expected 3 rules, got %d", len(ordered))
	}
	if ordered[0].ID != high.ID || ordered[1].ID != tied.ID || ordered[2].ID != low.ID {
		t.Fatalf("GetByPriority: unexpected order: %d,%d,%d", ordered[0].ID, ordered[1].ID, ordered[2].ID)
	}
}

func TestRuleRepoGetByUserAndPlaylist(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewRuleRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "rulescope@example.com")
	mine := testutil.SeedPlaylist(t, ctx, tx, u.ID, "PLrulescope01")
	other := testutil.SeedPlaylist(t, ctx, tx, u.ID, "PLrulescope02")

	testutil.SeedRule(t, ctx, tx, u.ID, mine.ID, types.RuleTypeKeyword, "go", 1)
	testutil.SeedRule(t, ctx, tx, u.ID, other.ID, types.RuleTypeKeyword, "rust", 1)

	rules, err := repo.GetByUserAndPlaylist(ctx, tx, u.ID, mine.ID)
	if err != nil {
		t.Fatalf("GetByUserAndPlaylist: %v", err)
	}
	if len(rules) != 1 || rules[0].RuleValue != "go" {
		t.Fatalf("GetByUserAndPlaylist: unexpected result: %+v", rules)
	}
}
