package service

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/hazypayback/internal/db"
	"github.com/hazypayback/internal/logic"
)

func TestSaveBeerLogCatalogStyle(t *testing.T) {
	ledger, recalc, _, cleanup := setupLedgerTest(t)
	defer cleanup()

	now := testDay(20)
	ledger.SetNowFunc(fixedNow(now))
	recalc.SetNowFunc(fixedNow(now))

	entry, err := ledger.SaveBeerLog(BeerLogInput{
		Timestamp: now,
		Style:     "国産ピルスナー",
		SizeMl:    350,
		Count:     2,
	}, 0)
	if err != nil {
		t.Fatalf("SaveBeerLog returned error: %v", err)
	}

	spec := logic.StyleByName("国産ピルスナー")
	want := logic.AlcoholDebit(350, spec.ABV, spec.CarbType, 2)
	if math.Abs(entry.Kcal-want) > 1e-9 {
		t.Fatalf("expected debit %v, got %v", want, entry.Kcal)
	}
	if entry.Kcal >= 0 {
		t.Fatalf("beer debit must be negative, got %v", entry.Kcal)
	}
	if !strings.Contains(entry.Name, "x2") {
		t.Fatalf("expected count suffix in name, got %q", entry.Name)
	}
}

func TestSaveBeerLogCustomDry(t *testing.T) {
	ledger, recalc, _, cleanup := setupLedgerTest(t)
	defer cleanup()

	now := testDay(20)
	ledger.SetNowFunc(fixedNow(now))
	recalc.SetNowFunc(fixedNow(now))

	abv := 40.0
	entry, err := ledger.SaveBeerLog(BeerLogInput{
		Timestamp:  now,
		IsCustom:   true,
		CustomType: logic.CarbTypeDry,
		VolumeMl:   100,
		ABV:        &abv,
	}, 0)
	if err != nil {
		t.Fatalf("SaveBeerLog returned error: %v", err)
	}

	// 100ml * 40% * 0.8g/ml * 7kcal/g、糖質ゼロなので糖質加算なし
	want := -224.0
	if math.Abs(entry.Kcal-want) > 1e-9 {
		t.Fatalf("expected debit %v, got %v", want, entry.Kcal)
	}
	if entry.Style != "Custom" {
		t.Fatalf("expected custom style marker, got %q", entry.Style)
	}
}

func TestSaveBeerLogRejectsInvalidRating(t *testing.T) {
	ledger, _, _, cleanup := setupLedgerTest(t)
	defer cleanup()

	_, err := ledger.SaveBeerLog(BeerLogInput{Style: "IPA", Rating: 6}, 0)
	if !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
}

func TestSaveExerciseLogRejectsNonPositiveMinutes(t *testing.T) {
	ledger, _, _, cleanup := setupLedgerTest(t)
	defer cleanup()

	_, err := ledger.SaveExerciseLog(ExerciseLogInput{ExerciseKey: "running", Minutes: 0}, 0)
	if !errors.Is(err, ErrInvalidMinutes) {
		t.Fatalf("expected ErrInvalidMinutes, got %v", err)
	}
}

func TestUpdateBeerLogRecomputesDebit(t *testing.T) {
	ledger, recalc, _, cleanup := setupLedgerTest(t)
	defer cleanup()

	now := testDay(20)
	ledger.SetNowFunc(fixedNow(now))
	recalc.SetNowFunc(fixedNow(now))

	entry, err := ledger.SaveBeerLog(BeerLogInput{Timestamp: now, Style: "国産ピルスナー", SizeMl: 350, Count: 1}, 0)
	if err != nil {
		t.Fatalf("SaveBeerLog returned error: %v", err)
	}

	updated, err := ledger.SaveBeerLog(BeerLogInput{Timestamp: now, Style: "国産ピルスナー", SizeMl: 500, Count: 3}, entry.ID)
	if err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if updated.ID != entry.ID {
		t.Fatalf("expected update to keep id %d, got %d", entry.ID, updated.ID)
	}

	spec := logic.StyleByName("国産ピルスナー")
	want := logic.AlcoholDebit(500, spec.ABV, spec.CarbType, 3)
	if math.Abs(updated.Kcal-want) > 1e-9 {
		t.Fatalf("expected recomputed debit %v, got %v", want, updated.Kcal)
	}

	var count int64
	if err := db.DB.Model(&db.LogEntry{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected single row after update, got %d", count)
	}
}

func TestDeleteLog(t *testing.T) {
	ledger, recalc, _, cleanup := setupLedgerTest(t)
	defer cleanup()

	now := testDay(20)
	ledger.SetNowFunc(fixedNow(now))
	recalc.SetNowFunc(fixedNow(now))

	entry, err := ledger.SaveExerciseLog(ExerciseLogInput{Date: now, ExerciseKey: "walking", Minutes: 15}, 0)
	if err != nil {
		t.Fatalf("SaveExerciseLog returned error: %v", err)
	}

	if err := ledger.DeleteLog(entry.ID); err != nil {
		t.Fatalf("DeleteLog returned error: %v", err)
	}
	if err := ledger.DeleteLog(entry.ID); !errors.Is(err, ErrLogNotFound) {
		t.Fatalf("expected ErrLogNotFound on second delete, got %v", err)
	}
}

func TestBulkDeleteLogs(t *testing.T) {
	ledger, recalc, _, cleanup := setupLedgerTest(t)
	defer cleanup()

	now := testDay(20)
	ledger.SetNowFunc(fixedNow(now))
	recalc.SetNowFunc(fixedNow(now))

	var ids []uint
	for _, d := range []int{18, 19, 20} {
		entry, err := ledger.SaveExerciseLog(ExerciseLogInput{Date: testDay(d), ExerciseKey: "walking", Minutes: 10}, 0)
		if err != nil {
			t.Fatalf("SaveExerciseLog returned error: %v", err)
		}
		ids = append(ids, entry.ID)
	}

	if err := ledger.BulkDeleteLogs(ids[:2]); err != nil {
		t.Fatalf("BulkDeleteLogs returned error: %v", err)
	}

	logs, err := ledger.ListLogs()
	if err != nil {
		t.Fatalf("ListLogs returned error: %v", err)
	}
	if len(logs) != 1 || logs[0].ID != ids[2] {
		t.Fatalf("expected only last entry to survive, got %d rows", len(logs))
	}

	if err := ledger.BulkDeleteLogs([]uint{9999}); !errors.Is(err, ErrLogNotFound) {
		t.Fatalf("expected ErrLogNotFound for unknown ids, got %v", err)
	}
}

func TestUpsertDailyCheckIsIdempotentPerDay(t *testing.T) {
	ledger, recalc, _, cleanup := setupLedgerTest(t)
	defer cleanup()

	now := testDay(20)
	ledger.SetNowFunc(fixedNow(now))
	recalc.SetNowFunc(fixedNow(now))

	if _, err := ledger.UpsertDailyCheck(DailyCheckInput{Date: now, IsDryDay: true}); err != nil {
		t.Fatalf("first upsert returned error: %v", err)
	}
	record, err := ledger.UpsertDailyCheck(DailyCheckInput{Date: now, IsDryDay: false, WaterOk: true})
	if err != nil {
		t.Fatalf("second upsert returned error: %v", err)
	}

	if record.IsDryDay {
		t.Fatal("expected second upsert to overwrite dry flag")
	}
	if !record.WaterOk {
		t.Fatal("expected second upsert to set water flag")
	}

	var count int64
	if err := db.DB.Model(&db.DailyCheck{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single check row per day, got %d", count)
	}
}

func TestUpsertDailyCheckSyncsWeight(t *testing.T) {
	ledger, recalc, settings, cleanup := setupLedgerTest(t)
	defer cleanup()

	now := testDay(20)
	ledger.SetNowFunc(fixedNow(now))
	recalc.SetNowFunc(fixedNow(now))

	weight := 55.5
	if _, err := ledger.UpsertDailyCheck(DailyCheckInput{Date: now, Weight: &weight}); err != nil {
		t.Fatalf("UpsertDailyCheck returned error: %v", err)
	}

	profile := settings.GetProfile()
	if profile.WeightKg != 55.5 {
		t.Fatalf("expected weight synced to profile, got %v", profile.WeightKg)
	}
}

func TestEnsureTodayCheck(t *testing.T) {
	ledger, recalc, _, cleanup := setupLedgerTest(t)
	defer cleanup()

	now := testDay(20)
	ledger.SetNowFunc(fixedNow(now))
	recalc.SetNowFunc(fixedNow(now))

	if err := ledger.EnsureTodayCheck(); err != nil {
		t.Fatalf("first EnsureTodayCheck returned error: %v", err)
	}
	if err := ledger.EnsureTodayCheck(); err != nil {
		t.Fatalf("second EnsureTodayCheck returned error: %v", err)
	}

	checks, err := ledger.ListChecks()
	if err != nil {
		t.Fatalf("ListChecks returned error: %v", err)
	}
	if len(checks) != 1 {
		t.Fatalf("expected single placeholder check, got %d", len(checks))
	}
	if checks[0].IsDryDay {
		t.Fatal("placeholder check must not claim a dry day")
	}
}

func TestListLogsPage(t *testing.T) {
	ledger, recalc, _, cleanup := setupLedgerTest(t)
	defer cleanup()

	now := testDay(20)
	ledger.SetNowFunc(fixedNow(now))
	recalc.SetNowFunc(fixedNow(now))

	for _, d := range []int{18, 19, 20} {
		if _, err := ledger.SaveExerciseLog(ExerciseLogInput{Date: testDay(d), ExerciseKey: "walking", Minutes: 10}, 0); err != nil {
			t.Fatalf("SaveExerciseLog returned error: %v", err)
		}
	}

	page, err := ledger.ListLogsPage(0, 2)
	if err != nil {
		t.Fatalf("ListLogsPage returned error: %v", err)
	}
	if page.TotalCount != 3 {
		t.Fatalf("expected total 3, got %d", page.TotalCount)
	}
	if len(page.Logs) != 2 {
		t.Fatalf("expected page of 2, got %d", len(page.Logs))
	}
	if !page.Logs[0].Timestamp.After(page.Logs[1].Timestamp) {
		t.Fatal("expected newest-first ordering")
	}
}
