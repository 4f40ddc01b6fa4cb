package service

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/hazypayback/internal/db"
	"github.com/hazypayback/internal/logic"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupLedgerTest(t *testing.T) (*LedgerService, *RecalcService, *SettingService, func()) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.User{}, &db.LogEntry{}, &db.DailyCheck{}, &db.SystemSetting{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	settings := NewSettingService(gdb)
	recalc := NewRecalcService(gdb, settings)
	ledger := NewLedgerService(gdb, settings, recalc)

	return ledger, recalc, settings, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func testDay(d int) time.Time {
	return time.Date(2026, 8, d, 12, 0, 0, 0, time.Local)
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRecalcCascadePropagation(t *testing.T) {
	ledger, recalc, _, cleanup := setupLedgerTest(t)
	defer cleanup()

	now := testDay(20)
	ledger.SetNowFunc(fixedNow(now))
	recalc.SetNowFunc(fixedNow(now))

	// 今天记一条 30 分钟跑步：账本里只有这一天，连续日数 1，无奖励
	entry, err := ledger.SaveExerciseLog(ExerciseLogInput{
		Date:        now,
		ExerciseKey: "running",
		Minutes:     30,
	}, 0)
	if err != nil {
		t.Fatalf("SaveExerciseLog returned error: %v", err)
	}

	profile := logic.Profile{}
	base := logic.MinutesToKcal(30, "running", profile)
	if math.Abs(entry.Kcal-base) > 1e-9 {
		t.Fatalf("expected base credit %v, got %v", base, entry.Kcal)
	}
	if entry.BonusMultiplier != 1.0 {
		t.Fatalf("expected multiplier 1.0, got %v", entry.BonusMultiplier)
	}

	// 三天前补一条休肝打卡：最早记录日前移，中间两天按被动休肝接上，
	// 今天的连续日数变为 4，倍率升到 1.1，级联必须改写已入账的运动记录
	if _, err := ledger.UpsertDailyCheck(DailyCheckInput{
		Date:     testDay(17),
		IsDryDay: true,
	}); err != nil {
		t.Fatalf("UpsertDailyCheck returned error: %v", err)
	}

	var updated db.LogEntry
	if err := db.DB.First(&updated, entry.ID).Error; err != nil {
		t.Fatalf("failed to reload entry: %v", err)
	}

	want := base * 1.1
	if math.Abs(updated.Kcal-want) > 1e-6 {
		t.Fatalf("expected cascaded credit %v, got %v", want, updated.Kcal)
	}
	if !strings.Contains(updated.Memo, "Streak Bonus x1.1") {
		t.Fatalf("expected bonus annotation in memo, got %q", updated.Memo)
	}
	if updated.BonusMultiplier != 1.1 {
		t.Fatalf("expected multiplier 1.1, got %v", updated.BonusMultiplier)
	}
}

func TestRecalcIdempotence(t *testing.T) {
	ledger, recalc, _, cleanup := setupLedgerTest(t)
	defer cleanup()

	now := testDay(20)
	ledger.SetNowFunc(fixedNow(now))
	recalc.SetNowFunc(fixedNow(now))

	if _, err := ledger.SaveExerciseLog(ExerciseLogInput{Date: testDay(18), ExerciseKey: "stepper", Minutes: 40}, 0); err != nil {
		t.Fatalf("SaveExerciseLog returned error: %v", err)
	}
	if _, err := ledger.UpsertDailyCheck(DailyCheckInput{Date: testDay(15), IsDryDay: true}); err != nil {
		t.Fatalf("UpsertDailyCheck returned error: %v", err)
	}

	// 第一次调用把状态推到不动点
	if _, err := recalc.RecalcFrom(testDay(15)); err != nil {
		t.Fatalf("first recalc returned error: %v", err)
	}

	// 没有新的变更时，紧接着的第二次调用不允许产生任何写入
	updates, err := recalc.RecalcFrom(testDay(15))
	if err != nil {
		t.Fatalf("second recalc returned error: %v", err)
	}
	if updates != 0 {
		t.Fatalf("expected zero writes on repeated recalc, got %d", updates)
	}
}

func TestRecalcFutureDateIsNoop(t *testing.T) {
	ledger, recalc, _, cleanup := setupLedgerTest(t)
	defer cleanup()

	now := testDay(20)
	ledger.SetNowFunc(fixedNow(now))
	recalc.SetNowFunc(fixedNow(now))

	if _, err := ledger.SaveExerciseLog(ExerciseLogInput{Date: testDay(19), ExerciseKey: "running", Minutes: 20}, 0); err != nil {
		t.Fatalf("SaveExerciseLog returned error: %v", err)
	}

	updates, err := recalc.RecalcFrom(now.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("future recalc returned error: %v", err)
	}
	if updates != 0 {
		t.Fatalf("expected empty range for future date, got %d updates", updates)
	}
}

func TestRecalcRemovesStaleBonus(t *testing.T) {
	ledger, recalc, _, cleanup := setupLedgerTest(t)
	defer cleanup()

	now := testDay(20)
	ledger.SetNowFunc(fixedNow(now))
	recalc.SetNowFunc(fixedNow(now))

	// 17 日与 19 日休肝打卡，18 日无记录按被动休肝衔接，
	// 今天运动入账时连续日数为 3，带 1.1 倍奖励
	for _, d := range []int{17, 19} {
		if _, err := ledger.UpsertDailyCheck(DailyCheckInput{Date: testDay(d), IsDryDay: true}); err != nil {
			t.Fatalf("UpsertDailyCheck returned error: %v", err)
		}
	}
	entry, err := ledger.SaveExerciseLog(ExerciseLogInput{Date: now, ExerciseKey: "running", Minutes: 30, ApplyBonus: true}, 0)
	if err != nil {
		t.Fatalf("SaveExerciseLog returned error: %v", err)
	}
	if entry.BonusMultiplier != 1.1 {
		t.Fatalf("expected multiplier 1.1 before edit, got %v", entry.BonusMultiplier)
	}

	// 事后补记 18 日的一次饮酒：链条断裂，奖励必须回收、备注标记必须消失
	if _, err := ledger.SaveBeerLog(BeerLogInput{
		Timestamp: testDay(18),
		Style:     "国産ピルスナー",
		SizeMl:    500,
		Count:     2,
	}, 0); err != nil {
		t.Fatalf("SaveBeerLog returned error: %v", err)
	}

	var updated db.LogEntry
	if err := db.DB.First(&updated, entry.ID).Error; err != nil {
		t.Fatalf("failed to reload entry: %v", err)
	}

	base := logic.MinutesToKcal(30, "running", logic.Profile{})
	if math.Abs(updated.Kcal-base) > 1e-6 {
		t.Fatalf("expected bonus stripped back to %v, got %v", base, updated.Kcal)
	}
	if strings.Contains(updated.Memo, "Streak Bonus") {
		t.Fatalf("expected bonus annotation removed, got %q", updated.Memo)
	}
	if updated.BonusMultiplier != 1.0 {
		t.Fatalf("expected multiplier reset to 1.0, got %v", updated.BonusMultiplier)
	}
}
