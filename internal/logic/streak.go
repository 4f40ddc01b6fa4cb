package logic

import (
	"time"

	"github.com/hazypayback/internal/db"
)

// maxStreakDays 是回溯步数的硬上限，防止异常数据造成超长循环。
const maxStreakDays = 3650

// legacyBeerKcal 旧版饮酒记录缺少 kcal 时的估算负债。
const legacyBeerKcal = -150.0

const dayKeyFormat = "2006-01-02"

// DayKey 返回按本地时区分桶的日历日键。
// 统一转换到本地时区：数据库驱动读回的时间可能带 UTC 时区，
// 直接取字段会把跨时区的同一天切到不同桶里。
func DayKey(t time.Time) string {
	return t.Local().Format(dayKeyFormat)
}

// StartOfDay 返回 t 所在本地日历日的零点。
func StartOfDay(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}

// EndOfDay 返回 t 所在本地日历日的最后一纳秒。
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// SameDay 判断两个时间是否落在同一本地日历日。
func SameDay(a, b time.Time) bool {
	al, bl := a.Local(), b.Local()
	return al.Year() == bl.Year() && al.YearDay() == bl.YearDay()
}

// EntryKcal 返回记录的入账热量。
// 旧版数据没有预计算 kcal 时给出派生替代值：运动按默认强度从 RawMinutes 推算，
// 饮酒按保守估算入账——绝不因缺字段而失败。
func EntryKcal(l db.LogEntry, p Profile) float64 {
	if l.Kcal != 0 {
		return l.Kcal
	}
	switch l.Type {
	case db.LogTypeExercise:
		if l.RawMinutes > 0 {
			key := l.ExerciseKey
			if key == "" {
				key = DefaultExerciseKey
			}
			return MinutesToKcal(l.RawMinutes, key, p)
		}
		return 0
	case db.LogTypeBeer:
		return legacyBeerKcal
	default:
		return 0
	}
}

// dayActivity 聚合某个日历日的记录情况。
type dayActivity struct {
	hasBeer     bool
	hasExercise bool
	netKcal     float64
}

// ComputeStreak 计算截至基准日的连续合格日数。
//
// 合格日的定义：
//   - 存在显式 isDryDay 打卡；或
//   - 当日有记录且净热量 ≥ 0（饮酒已被运动完全抵消）；或
//   - 当日无饮酒记录——该「被动休肝」推定仅适用于严格早于真实今天的日期。
//     今天尚未结束，没有记录不代表没喝，因此今天必须有显式依据才计入。
//
// 索引只收录时间戳不晚于起点日终点的记录，因此在级联重算中以历史日期为
// 基准调用时不会「看见未来」。相同输入必得相同输出，这是级联幂等的前提。
func ComputeStreak(logs []db.LogEntry, checks []db.DailyCheck, p Profile, referenceDate, now time.Time) int {
	if len(logs) == 0 && len(checks) == 0 {
		return 0
	}

	// 最古记录日是硬下限，回溯永不越过它
	var firstDate time.Time
	for _, l := range logs {
		if firstDate.IsZero() || l.Timestamp.Before(firstDate) {
			firstDate = l.Timestamp
		}
	}
	for _, c := range checks {
		if firstDate.IsZero() || c.Timestamp.Before(firstDate) {
			firstDate = c.Timestamp
		}
	}
	firstDate = StartOfDay(firstDate)

	target := StartOfDay(referenceDate)

	// 基准日当天有记录则从基准日开始回溯，否则从前一天开始。
	// 每日自动补建的空打卡（isDryDay=false 且无日志）不算「有记录」：
	// 它不构成当日结果的证据，若计入会把尚未打卡的一天误判为断签。
	hasActivityOnTarget := false
	for _, l := range logs {
		if SameDay(l.Timestamp, target) {
			hasActivityOnTarget = true
			break
		}
	}
	if !hasActivityOnTarget {
		for _, c := range checks {
			if c.IsDryDay && SameDay(c.Timestamp, target) {
				hasActivityOnTarget = true
				break
			}
		}
	}

	walk := target
	if !hasActivityOnTarget {
		walk = target.AddDate(0, 0, -1)
	}

	// 只索引起点日终点之前的记录
	limit := EndOfDay(walk)

	dayMap := make(map[string]*dayActivity)
	for _, l := range logs {
		if l.Timestamp.After(limit) {
			continue
		}
		key := DayKey(l.Timestamp)
		act, ok := dayMap[key]
		if !ok {
			act = &dayActivity{}
			dayMap[key] = act
		}
		switch l.Type {
		case db.LogTypeBeer:
			act.hasBeer = true
		case db.LogTypeExercise:
			act.hasExercise = true
		}
		act.netKcal += EntryKcal(l, p)
	}

	dryMap := make(map[string]bool)
	for _, c := range checks {
		if c.Timestamp.After(limit) {
			continue
		}
		if c.IsDryDay {
			dryMap[DayKey(c.Timestamp)] = true
		}
	}

	today := StartOfDay(now)
	streak := 0

	for i := 0; i < maxStreakDays; i++ {
		if walk.Before(firstDate) {
			break
		}

		key := DayKey(walk)
		act := dayMap[key]
		isToday := walk.Equal(today)

		qualifies := false
		switch {
		case dryMap[key]:
			qualifies = true
		case act != nil && act.netKcal >= 0:
			qualifies = true
		case !isToday && (act == nil || !act.hasBeer):
			// 被动休肝：过去的无饮酒日视为合格，今天除外
			qualifies = true
		}

		if !qualifies {
			break
		}
		streak++
		walk = walk.AddDate(0, 0, -1)
	}

	return streak
}

// StreakMultiplier 把连续日数映射为运动还款的奖励倍率。
func StreakMultiplier(streak int) float64 {
	switch {
	case streak >= 14:
		return 1.3
	case streak >= 7:
		return 1.2
	case streak >= 3:
		return 1.1
	default:
		return 1.0
	}
}
