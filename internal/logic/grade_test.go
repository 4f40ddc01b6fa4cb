package logic

import (
	"testing"

	"github.com/hazypayback/internal/db"
)

func TestClassifyGradeNoData(t *testing.T) {
	now := day(2026, 8, 20)

	grade := ClassifyGrade(nil, nil, testProfile, now)
	if !grade.IsRookie {
		t.Fatal("expected rookie grade with no data")
	}
	if grade.Rank != "Beginner" {
		t.Fatalf("expected Beginner, got %s", grade.Rank)
	}
	if grade.CurrentStreak != 0 {
		t.Fatalf("expected streak 0, got %d", grade.CurrentStreak)
	}
}

func TestClassifyGradeRookieTiers(t *testing.T) {
	now := day(2026, 8, 20)

	// 账龄 10 天（8/11 起），其中 7 天显式休肝 → 成功率 0.7 → Rookie S
	checks := []db.DailyCheck{emptyCheck(day(2026, 8, 11))}
	for i := 0; i < 7; i++ {
		checks = append(checks, dryCheck(day(2026, 8, 20-i)))
	}

	grade := ClassifyGrade(nil, checks, testProfile, now)
	if !grade.IsRookie {
		t.Fatal("expected rookie within 28-day window")
	}
	if grade.Rank != "Rookie S" {
		t.Fatalf("expected Rookie S at rate 0.7, got %s (rate %v)", grade.Rank, grade.RawRate)
	}

	// 同样账龄只有 3 个成功日 → 0.3 → Rookie B
	checks = []db.DailyCheck{emptyCheck(day(2026, 8, 11))}
	for i := 0; i < 3; i++ {
		checks = append(checks, dryCheck(day(2026, 8, 20-i)))
	}

	grade = ClassifyGrade(nil, checks, testProfile, now)
	if grade.Rank != "Rookie B" {
		t.Fatalf("expected Rookie B at rate 0.3, got %s (rate %v)", grade.Rank, grade.RawRate)
	}
}

func TestClassifyGradeVeteranTiers(t *testing.T) {
	now := day(2026, 8, 20)

	// 账龄从 7/1 起（超过 28 天）；8/7 有饮酒截断回溯，8/8 起连续 12 天休肝
	logs := []db.LogEntry{
		beerLog(day(2026, 7, 1), -300),
		beerLog(day(2026, 8, 7), -300),
	}
	var checks []db.DailyCheck
	for i := 0; i < 12; i++ {
		checks = append(checks, dryCheck(day(2026, 8, 19-i)))
	}

	grade := ClassifyGrade(logs, checks, testProfile, now)
	if grade.IsRookie {
		t.Fatal("expected veteran grade after 28 days")
	}
	if grade.Rank != "A" {
		t.Fatalf("expected rank A at streak 12, got %s (streak %d)", grade.Rank, grade.CurrentStreak)
	}
	if grade.Next == nil || *grade.Next != 20 {
		t.Fatalf("expected next threshold 20, got %v", grade.Next)
	}

	// 连续 20 天以上 → S，无晋级目标
	checks = nil
	for i := 0; i < 20; i++ {
		checks = append(checks, dryCheck(day(2026, 8, 19-i)))
	}
	logs = []db.LogEntry{
		beerLog(day(2026, 7, 1), -300),
		beerLog(day(2026, 7, 30), -300),
	}

	grade = ClassifyGrade(logs, checks, testProfile, now)
	if grade.Rank != "S" {
		t.Fatalf("expected rank S at streak 20, got %s (streak %d)", grade.Rank, grade.CurrentStreak)
	}
	if grade.Next != nil {
		t.Fatalf("expected no next threshold at top rank, got %v", *grade.Next)
	}
}
