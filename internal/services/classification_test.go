package services

import (
	"context"
	"errors"
	"testing"

	classificationrepo "github.com/yungbote/tubesort-backend/internal/data/repos/classification"
	playlistrepo "github.com/yungbote/tubesort-backend/internal/data/repos/playlist"
	"github.com/yungbote/tubesort-backend/internal/data/repos/testutil"
	types "github.com/yungbote/tubesort-backend/internal/domain"
	apperrors "github.com/yungbote/tubesort-backend/internal/pkg/errors"
)

// Services are wired against the per-test transaction, so their internal
// transactions become savepoints on it and roll back with the test.

func TestClassifyWritesHistory(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	classificationRepo := classificationrepo.NewClassificationRepo(tx, log)
	ruleRepo := classificationrepo.NewRuleRepo(tx, log)
	historyRepo := classificationrepo.NewHistoryRepo(tx, log)
	plRepo := playlistrepo.NewPlaylistRepo(tx, log)
	svc := NewClassificationService(tx, log, classificationRepo, ruleRepo, historyRepo, plRepo)

	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, tx, "classifysvc@example.com")
	v := testutil.SeedVideo(t, ctx, tx, "classifysvc-vid")
	p := testutil.SeedPlaylist(t, ctx, tx, u.ID, "PLclassifysvc")

	created, err := svc.Classify(ctx, u, v.ID, p.ID, 0.8)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if created.Status != types.ClassificationStatusPending {
		t.Fatalf("Classify: expected pending status, got %q", created.Status)
	}

	videos, err := plRepo.ListVideos(ctx, tx, p.ID)
	if err != nil {
		t.Fatalf("ListVideos: %v", err)
	}
	if len(videos) != 1 || videos[0].ID != v.ID {
		t.Fatalf("Classify should add the video to the playlist, got %+v", videos)
	}

	trail, err := historyRepo.GetByVideoAndPlaylist(ctx, tx, v.ID, p.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(trail) != 1 || trail[0].Action != types.HistoryActionAdd {
		t.Fatalf("Classify should log one add action, got %+v", trail)
	}

	_, err = svc.Classify(ctx, u, v.ID, p.ID, 1.5)
	if !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("Classify (confidence out of range): expected ErrInvalidArgument, got %v", err)
	}
}

func TestClassifyRejectsForeignPlaylist(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	classificationRepo := classificationrepo.NewClassificationRepo(tx, log)
	ruleRepo := classificationrepo.NewRuleRepo(tx, log)
	historyRepo := classificationrepo.NewHistoryRepo(tx, log)
	plRepo := playlistrepo.NewPlaylistRepo(tx, log)
	svc := NewClassificationService(tx, log, classificationRepo, ruleRepo, historyRepo, plRepo)

	ctx := context.Background()
	owner := testutil.SeedUser(t, ctx, tx, "plowner@example.com")
	intruder := testutil.SeedUser(t, ctx, tx, "intruder@example.com")
	v := testutil.SeedVideo(t, ctx, tx, "foreign-vid")
	p := testutil.SeedPlaylist(t, ctx, tx, owner.ID, "PLforeign0001")

	_, err := svc.Classify(ctx, intruder, v.ID, p.ID, 0.5)
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("Classify (foreign playlist): expected ErrUnauthorized, got %v", err)
	}

	_, err = svc.Classify(ctx, owner, v.ID, p.ID+1000, 0.5)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Classify (missing playlist): expected ErrNotFound, got %v", err)
	}
}

func TestUpdateStatusWritesModify(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	classificationRepo := classificationrepo.NewClassificationRepo(tx, log)
	ruleRepo := classificationrepo.NewRuleRepo(tx, log)
	historyRepo := classificationrepo.NewHistoryRepo(tx, log)
	plRepo := playlistrepo.NewPlaylistRepo(tx, log)
	svc := NewClassificationService(tx, log, classificationRepo, ruleRepo, historyRepo, plRepo)

	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, tx, "statussvc@example.com")
	v := testutil.SeedVideo(t, ctx, tx, "statussvc-vid")
	p := testutil.SeedPlaylist(t, ctx, tx, u.ID, "PLstatussvc01")
	c := testutil.SeedClassification(t, ctx, tx, v.ID, p.ID, u.ID, types.ClassificationStatusPending)

	confidence := 0.95
	updated, err := svc.UpdateStatus(ctx, u, c.ID, types.ClassificationStatusCompleted, &confidence)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != types.ClassificationStatusCompleted || updated.Confidence != 0.95 {
		t.Fatalf("UpdateStatus: unexpected row: %+v", updated)
	}

	trail, err := historyRepo.GetByVideoAndPlaylist(ctx, tx, v.ID, p.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(trail) != 1 || trail[0].Action != types.HistoryActionModify {
		t.Fatalf("UpdateStatus should log one modify action, got %+v", trail)
	}

	_, err = svc.UpdateStatus(ctx, u, c.ID, "archived", nil)
	if !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("UpdateStatus (bad status): expected ErrInvalidArgument, got %v", err)
	}
}

func TestUnclassifyRemovesMembership(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	classificationRepo := classificationrepo.NewClassificationRepo(tx, log)
	ruleRepo := classificationrepo.NewRuleRepo(tx, log)
	historyRepo := classificationrepo.NewHistoryRepo(tx, log)
	plRepo := playlistrepo.NewPlaylistRepo(tx, log)
	svc := NewClassificationService(tx, log, classificationRepo, ruleRepo, historyRepo, plRepo)

	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, tx, "unclassify@example.com")
	v := testutil.SeedVideo(t, ctx, tx, "unclassify-vid")
	p := testutil.SeedPlaylist(t, ctx, tx, u.ID, "PLunclassify1")
	testutil.SeedMembership(t, ctx, tx, p.ID, v.ID)
	c := testutil.SeedClassification(t, ctx, tx, v.ID, p.ID, u.ID, types.ClassificationStatusCompleted)

	if err := svc.Unclassify(ctx, u, c.ID); err != nil {
		t.Fatalf("Unclassify: %v", err)
	}

	gone, err := classificationRepo.Get(ctx, tx, c.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gone != nil {
		t.Fatalf("Unclassify should delete the classification, got %+v", gone)
	}

	videos, err := plRepo.ListVideos(ctx, tx, p.ID)
	if err != nil {
		t.Fatalf("ListVideos: %v", err)
	}
	if len(videos) != 0 {
		t.Fatalf("Unclassify should remove the membership, got %+v", videos)
	}

	trail, err := historyRepo.GetByVideoAndPlaylist(ctx, tx, v.ID, p.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(trail) != 1 || trail[0].Action != types.HistoryActionRemove {
		t.Fatalf("Unclassify should log one remove action, got %+v", trail)
	}
}

func TestRuleLifecycle(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	classificationRepo := classificationrepo.NewClassificationRepo(tx, log)
	ruleRepo := classificationrepo.NewRuleRepo(tx, log)
	historyRepo := classificationrepo.NewHistoryRepo(tx, log)
	plRepo := playlistrepo.NewPlaylistRepo(tx, log)
	svc := NewClassificationService(tx, log, classificationRepo, ruleRepo, historyRepo, plRepo)

	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, tx, "rulesvc@example.com")
	p := testutil.SeedPlaylist(t, ctx, tx, u.ID, "PLrulesvc0001")

	_, err := svc.CreateRule(ctx, &types.ClassificationRule{
		UserID: u.ID, PlaylistID: p.ID, RuleType: "regex", RuleValue: ".*",
	})
	if !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("CreateRule (bad type): expected ErrInvalidArgument, got %v", err)
	}

	second, err := svc.CreateRule(ctx, &types.ClassificationRule{
		UserID: u.ID, PlaylistID: p.ID, RuleType: types.RuleTypeTag, RuleValue: "chill", Priority: 2,
	})
	if err != nil {
		t.Fatalf("CreateRule: %v", err)
	}
	first, err := svc.CreateRule(ctx, &types.ClassificationRule{
		UserID: u.ID, PlaylistID: p.ID, RuleType: types.RuleTypeKeyword, RuleValue: "lofi", Priority: 1,
	})
	if err != nil {
		t.Fatalf("CreateRule: %v", err)
	}

	ordered, err := svc.RulesInOrder(ctx, u.ID, p.ID)
	if err != nil {
		t.Fatalf("RulesInOrder: %v", err)
	}
	if len(ordered) != 2 || ordered[0].ID != first.ID || ordered[1].ID != second.ID {
		t.Fatalf("RulesInOrder: unexpected order: %+v", ordered)
	}

	deleted, err := svc.DeleteRule(ctx, u, first.ID)
	if err != nil {
		t.Fatalf("DeleteRule: %v", err)
	}
	if deleted == nil || deleted.ID != first.ID {
		t.Fatalf("DeleteRule: expected snapshot of %d, got %+v", first.ID, deleted)
	}
}

func TestRuleOwnership(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	classificationRepo := classificationrepo.NewClassificationRepo(tx, log)
	ruleRepo := classificationrepo.NewRuleRepo(tx, log)
	historyRepo := classificationrepo.NewHistoryRepo(tx, log)
	plRepo := playlistrepo.NewPlaylistRepo(tx, log)
	svc := NewClassificationService(tx, log, classificationRepo, ruleRepo, historyRepo, plRepo)

	ctx := context.Background()
	owner := testutil.SeedUser(t, ctx, tx, "ruleowner@example.com")
	intruder := testutil.SeedUser(t, ctx, tx, "ruleintruder@example.com")
	p := testutil.SeedPlaylist(t, ctx, tx, owner.ID, "PLruleown0001")
	rule := testutil.SeedRule(t, ctx, tx, owner.ID, p.ID, types.RuleTypeKeyword, "lofi", 1)

	value := "jazz"
	if _, err := svc.UpdateRule(ctx, intruder, rule.ID, classificationrepo.RuleUpdate{RuleValue: &value}); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("UpdateRule (intruder): expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.DeleteRule(ctx, intruder, rule.ID); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("DeleteRule (intruder): expected ErrUnauthorized, got %v", err)
	}
	kept, err := ruleRepo.Get(ctx, tx, rule.ID)
	if err != nil || kept == nil || kept.RuleValue != "lofi" {
		t.Fatalf("rule should be untouched after intruder attempts, got %+v (err %v)", kept, err)
	}

	if _, err := svc.UpdateRule(ctx, owner, rule.ID+1000, classificationrepo.RuleUpdate{RuleValue: &value}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("UpdateRule (missing): expected ErrNotFound, got %v", err)
	}

	updated, err := svc.UpdateRule(ctx, owner, rule.ID, classificationrepo.RuleUpdate{RuleValue: &value})
	if err != nil {
		t.Fatalf("UpdateRule (owner): %v", err)
	}
	if updated.RuleValue != "jazz" {
		t.Fatalf("UpdateRule (owner): value not applied, got %+v", updated)
	}
	if _, err := svc.DeleteRule(ctx, owner, rule.ID); err != nil {
		t.Fatalf("DeleteRule (owner): %v", err)
	}
}
