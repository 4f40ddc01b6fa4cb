package logic

import (
	"time"

	"github.com/hazypayback/internal/db"
)

// rookieWindowDays 新手期窗口：开始记录后的前 28 天按成功率评级。
const rookieWindowDays = 28

// Grade 是评级结果，供进度条等外部展示使用。
type Grade struct {
	Rank          string
	Label         string
	CurrentStreak int
	IsRookie      bool
	// Next 是晋级所需的连续日数阈值，顶级为 nil
	Next *int
	// 新手期专用：当前成功率与晋级目标成功率
	RawRate    float64
	TargetRate float64
}

func intPtr(v int) *int { return &v }

// ClassifyGrade 根据账龄与连续日数评定等级。
// 新手期（账龄不足 28 天）按窗口内成功日比例评 Rookie 档；
// 之后按当前连续日数评 S/A/B/C。
func ClassifyGrade(logs []db.LogEntry, checks []db.DailyCheck, p Profile, now time.Time) Grade {
	today := StartOfDay(now)

	// 账龄从最早一条记录算起，无记录时视为今天开始
	firstDate := today
	for _, l := range logs {
		if l.Timestamp.Before(firstDate) {
			firstDate = l.Timestamp
		}
	}
	for _, c := range checks {
		if c.Timestamp.Before(firstDate) {
			firstDate = c.Timestamp
		}
	}
	firstDate = StartOfDay(firstDate)

	daysSinceStart := int(today.Sub(firstDate).Hours()/24) + 1
	if daysSinceStart < 1 {
		daysSinceStart = 1
	}

	streak := ComputeStreak(logs, checks, p, now, now)

	if daysSinceStart < rookieWindowDays {
		rate := float64(countSuccessDays(logs, checks, p, today)) / float64(daysSinceStart)

		switch {
		case rate >= 0.70:
			return Grade{Rank: "Rookie S", Label: "新星 🌟", CurrentStreak: streak, IsRookie: true, Next: intPtr(1), RawRate: rate, TargetRate: 1.0}
		case rate >= 0.40:
			return Grade{Rank: "Rookie A", Label: "期待の星 🔥", CurrentStreak: streak, IsRookie: true, Next: intPtr(1), RawRate: rate, TargetRate: 0.70}
		case rate >= 0.25:
			return Grade{Rank: "Rookie B", Label: "駆け出し 🐣", CurrentStreak: streak, IsRookie: true, Next: intPtr(1), RawRate: rate, TargetRate: 0.40}
		default:
			return Grade{Rank: "Beginner", Label: "たまご 🥚", CurrentStreak: streak, IsRookie: true, Next: intPtr(1), RawRate: rate, TargetRate: 0.25}
		}
	}

	switch {
	case streak >= 20:
		return Grade{Rank: "S", Label: "神の肝臓 👼", CurrentStreak: streak}
	case streak >= 12:
		return Grade{Rank: "A", Label: "鉄の肝臓 🛡️", CurrentStreak: streak, Next: intPtr(20)}
	case streak >= 8:
		return Grade{Rank: "B", Label: "健康志向 🌿", CurrentStreak: streak, Next: intPtr(12)}
	default:
		return Grade{Rank: "C", Label: "要注意 ⚠️", CurrentStreak: streak, Next: intPtr(8)}
	}
}

// countSuccessDays 统计回溯 28 天窗口内的成功日数。
// 成功日：显式休肝打卡，或当日有记录且净热量 ≥ 0。
func countSuccessDays(logs []db.LogEntry, checks []db.DailyCheck, p Profile, today time.Time) int {
	count := 0
	for i := 0; i < rookieWindowDays; i++ {
		day := today.AddDate(0, 0, -i)

		isDry := false
		for _, c := range checks {
			if c.IsDryDay && SameDay(c.Timestamp, day) {
				isDry = true
				break
			}
		}
		if isDry {
			count++
			continue
		}

		hasEntry := false
		net := 0.0
		for _, l := range logs {
			if SameDay(l.Timestamp, day) {
				hasEntry = true
				net += EntryKcal(l, p)
			}
		}
		if hasEntry && net >= 0 {
			count++
		}
	}
	return count
}
