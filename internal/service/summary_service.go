package service

import (
	"fmt"
	"math"
	"time"

	"github.com/hazypayback/internal/db"
	"github.com/hazypayback/internal/logic"
	"gorm.io/gorm"
)

// TankData 是「酒罐」展示所需的换算结果：
// 当前收支折合多少罐指定酒款，以及用基准运动还清负债需要的分钟数。
type TankData struct {
	BalanceKcal  float64
	Style        string
	UnitKcal     float64
	CanCount     float64
	BaseExercise string
	RepayMinutes int
}

// DayStatusItem 是日历/周视图中单日的分类结果。
type DayStatusItem struct {
	Date   string
	Status logic.DayStatus
}

// Summary 汇总主界面一次性需要的全部派生数据。
type Summary struct {
	BalanceKcal   float64
	CurrentStreak int
	Multiplier    float64
	Grade         logic.Grade
	Tank          TankData
	Suggestion    *logic.RedemptionSuggestion
}

// SummaryService 提供账本的聚合读取，全部为派生值，不做任何写入。
type SummaryService struct {
	db       *gorm.DB
	settings *SettingService
	now      func() time.Time
}

// NewSummaryService 构造 SummaryService。
func NewSummaryService(gdb *gorm.DB, settings *SettingService) *SummaryService {
	return &SummaryService{db: gdb, settings: settings, now: time.Now}
}

// SetNowFunc 注入时钟，供测试固定「今天」。
func (s *SummaryService) SetNowFunc(now func() time.Time) {
	s.now = now
}

// Balance 返回全账本的净热量（负为尚未还清的负债）。
func (s *SummaryService) Balance() (float64, error) {
	var balance float64
	if err := s.db.Model(&db.LogEntry{}).
		Select("COALESCE(SUM(kcal), 0)").Scan(&balance).Error; err != nil {
		return 0, fmt.Errorf("sum balance: %w", err)
	}
	return balance, nil
}

// Tank 按偏好模式计算罐数与还款分钟数。mode 取 "mode1"/"mode2"。
func (s *SummaryService) Tank(mode string) (*TankData, error) {
	balance, err := s.Balance()
	if err != nil {
		return nil, err
	}

	prefs := s.settings.GetPreferences()
	profile := s.settings.GetProfile()

	style := prefs.Mode1Style
	if mode == "mode2" {
		style = prefs.Mode2Style
	}
	unitKcal := logic.StyleUnitKcal(style)

	return &TankData{
		BalanceKcal:  balance,
		Style:        style,
		UnitKcal:     unitKcal,
		CanCount:     logic.KcalToBeverageCount(balance, unitKcal),
		BaseExercise: prefs.BaseExercise,
		RepayMinutes: logic.KcalToMinutes(math.Abs(balance), prefs.BaseExercise, profile),
	}, nil
}

// DayStatuses 返回 [start, end] 区间内每个日历日的分类。
func (s *SummaryService) DayStatuses(start, end time.Time) ([]DayStatusItem, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("invalid range: end before start")
	}

	rangeStart := logic.StartOfDay(start)
	rangeEnd := logic.EndOfDay(end)

	var logs []db.LogEntry
	if err := s.db.Where("timestamp BETWEEN ? AND ?", rangeStart, rangeEnd).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("load logs for statuses: %w", err)
	}
	var checks []db.DailyCheck
	if err := s.db.Where("check_date BETWEEN ? AND ?", rangeStart, logic.StartOfDay(end)).
		Find(&checks).Error; err != nil {
		return nil, fmt.Errorf("load checks for statuses: %w", err)
	}

	profile := s.settings.GetProfile()

	var items []DayStatusItem
	for day := rangeStart; !day.After(rangeEnd); day = day.AddDate(0, 0, 1) {
		items = append(items, DayStatusItem{
			Date:   logic.DayKey(day),
			Status: logic.ClassifyDay(day, logs, checks, profile),
		})
	}
	return items, nil
}

// Grade 计算当前评级。
func (s *SummaryService) Grade() (logic.Grade, error) {
	logs, checks, err := s.snapshot()
	if err != nil {
		return logic.Grade{}, err
	}
	return logic.ClassifyGrade(logs, checks, s.settings.GetProfile(), s.now()), nil
}

// Overview 汇总主界面数据：收支、连续日数、倍率、评级、酒罐与还款建议。
func (s *SummaryService) Overview(mode string) (*Summary, error) {
	logs, checks, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	profile := s.settings.GetProfile()
	now := s.now()

	streak := logic.ComputeStreak(logs, checks, profile, now, now)

	tank, err := s.Tank(mode)
	if err != nil {
		return nil, err
	}

	var suggestion *logic.RedemptionSuggestion
	if tank.BalanceKcal < 0 {
		suggestion = logic.SuggestRedemption(tank.BalanceKcal, profile)
	}

	return &Summary{
		BalanceKcal:   tank.BalanceKcal,
		CurrentStreak: streak,
		Multiplier:    logic.StreakMultiplier(streak),
		Grade:         logic.ClassifyGrade(logs, checks, profile, now),
		Tank:          *tank,
		Suggestion:    suggestion,
	}, nil
}

func (s *SummaryService) snapshot() ([]db.LogEntry, []db.DailyCheck, error) {
	var logs []db.LogEntry
	if err := s.db.Find(&logs).Error; err != nil {
		return nil, nil, fmt.Errorf("load logs: %w", err)
	}
	var checks []db.DailyCheck
	if err := s.db.Find(&checks).Error; err != nil {
		return nil, nil, fmt.Errorf("load checks: %w", err)
	}
	return logs, checks, nil
}
