package service

import (
	"fmt"
	"log"
	"math"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/hazypayback/internal/db"
	"github.com/hazypayback/internal/logic"
	"gorm.io/gorm"
)

// recalcEpsilonKcal 小于该差值的热量变化不回写（写入最小化）。
const recalcEpsilonKcal = 0.1

// maxCascadeDays 限制单次级联覆盖的天数，与连续日数回溯上限一致。
const maxCascadeDays = 3650

// bonusMemoPattern 匹配备注中的连击奖励标记。
var bonusMemoPattern = regexp.MustCompile(`Streak Bonus x[0-9.]+`)

// RecalcService 是级联重算引擎。
//
// 任何账本变更（插入/编辑/删除日志、修改打卡）都可能追溯性地改变之后每一天
// 的连续日数判定，进而改变已写入运动记录的奖励倍率。RecalcFrom 从变更日起
// 逐日走到今天，重算各日倍率并只回写真正变化的记录，使存储的 Kcal 缓存重新
// 收敛到事实来源（RawMinutes + 当日倍率）。
//
// 整个遍历在单个事务内提交，半途崩溃不会留下新旧倍率混用的状态；全程持有
// 互斥锁，同一时刻只允许一次级联在途。重算是幂等的：紧接着的第二次调用不
// 产生任何写入。
type RecalcService struct {
	db       *gorm.DB
	settings *SettingService
	now      func() time.Time

	mu sync.Mutex
}

// NewRecalcService 构造 RecalcService。
func NewRecalcService(gdb *gorm.DB, settings *SettingService) *RecalcService {
	return &RecalcService{db: gdb, settings: settings, now: time.Now}
}

// SetNowFunc 注入时钟，供测试固定「今天」。
func (s *RecalcService) SetNowFunc(now func() time.Time) {
	s.now = now
}

// RecalcFrom 从 changed 所在日历日开始向今天做级联重算，返回回写条数。
// changed 在未来时为空区间，直接返回 0。
func (s *RecalcService) RecalcFrom(changed time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	start := logic.StartOfDay(changed)
	if start.After(logic.EndOfDay(now)) {
		return 0, nil
	}

	// 最多回溯 maxCascadeDays 天，限制最坏情况延迟
	if floor := logic.StartOfDay(now).AddDate(0, 0, -maxCascadeDays); start.Before(floor) {
		log.Printf("[recalc] start %s clamped to %s", start.Format("2006-01-02"), floor.Format("2006-01-02"))
		start = floor
	}

	profile := s.settings.GetProfile()

	// 整个级联只做一次一致性快照读，途中重读会把要消除的不一致重新引入
	var logs []db.LogEntry
	if err := s.db.Order("timestamp ASC").Find(&logs).Error; err != nil {
		return 0, fmt.Errorf("load logs for recalc: %w", err)
	}
	var checks []db.DailyCheck
	if err := s.db.Order("timestamp ASC").Find(&checks).Error; err != nil {
		return 0, fmt.Errorf("load checks for recalc: %w", err)
	}

	updated := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for day := start; !day.After(now); day = day.AddDate(0, 0, 1) {
			streak := logic.ComputeStreak(logs, checks, profile, day, now)
			multiplier := logic.StreakMultiplier(streak)

			for i := range logs {
				entry := &logs[i]
				if entry.Type != db.LogTypeExercise || !logic.SameDay(entry.Timestamp, day) {
					continue
				}

				key := entry.ExerciseKey
				if key == "" {
					key = logic.DefaultExerciseKey
				}
				base := logic.MinutesToKcal(entry.RawMinutes, key, profile)
				newKcal, _ := logic.ExerciseCredit(base, streak)
				newMemo := rebuildBonusMemo(entry.Memo, multiplier)

				if math.Abs(newKcal-entry.Kcal) <= recalcEpsilonKcal && newMemo == entry.Memo {
					continue
				}

				if err := tx.Model(&db.LogEntry{}).Where("id = ?", entry.ID).Updates(map[string]interface{}{
					"kcal":             newKcal,
					"memo":             newMemo,
					"bonus_multiplier": multiplier,
				}).Error; err != nil {
					return fmt.Errorf("update exercise log %d: %w", entry.ID, err)
				}

				// 同步快照：当日入账变化会影响之后日子的净热量判定
				entry.Kcal = newKcal
				entry.Memo = newMemo
				entry.BonusMultiplier = multiplier
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if updated > 0 {
		log.Printf("[recalc] updated %d exercise logs from %s", updated, start.Format("2006-01-02"))
	}
	return updated, nil
}

// rebuildBonusMemo 去掉旧的奖励标记，倍率大于 1 时追加新的标记。
func rebuildBonusMemo(memo string, multiplier float64) string {
	cleaned := strings.TrimSpace(bonusMemoPattern.ReplaceAllString(memo, ""))
	if multiplier <= 1.0 {
		return cleaned
	}

	token := fmt.Sprintf("Streak Bonus x%.1f", multiplier)
	if cleaned == "" {
		return token
	}
	return cleaned + " " + token
}
