package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hazypayback/internal/db"
	"github.com/hazypayback/internal/logic"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrLogNotFound 在指定记录不存在时返回
	ErrLogNotFound = errors.New("log entry not found")
	// ErrInvalidMinutes 当运动时长非正时返回
	ErrInvalidMinutes = errors.New("exercise minutes must be positive")
	// ErrInvalidRating 当评分超出 0-5 时返回
	ErrInvalidRating = errors.New("rating must be between 0 and 5")
)

// BeerLogInput 定义新增/编辑饮酒记录的字段。
// IsCustom 为真时按 VolumeMl+ABV+CustomType 自由计算，否则按酒款目录取默认值。
type BeerLogInput struct {
	Timestamp time.Time
	Style     string
	SizeMl    float64
	Count     float64
	// ABV 覆盖酒款默认度数，nil 表示使用目录值
	ABV      *float64
	IsCustom bool
	// CustomType 取 dry（蒸馏酒）或 sweet（酿造酒/鸡尾酒）
	CustomType string
	VolumeMl   float64
	Brewery    string
	Brand      string
	Rating     int
	Memo       string
}

// ExerciseLogInput 定义新增/编辑运动记录的字段。
type ExerciseLogInput struct {
	Date        time.Time
	ExerciseKey string
	Minutes     float64
	ApplyBonus  bool
	Memo        string
}

// DailyCheckInput 定义每日打卡的字段。
type DailyCheckInput struct {
	Date          time.Time
	IsDryDay      bool
	Weight        *float64
	WaistEase     bool
	FootLightness bool
	WaterOk       bool
	FiberOk       bool
}

// LogsPage 是分页查询结果。
type LogsPage struct {
	Logs       []db.LogEntry
	TotalCount int64
}

// LedgerService 是账本的唯一写入口。
// 每个变更操作完成后都会以受影响的最早日期触发一次级联重算，
// 保证之后任何读取看到的奖励倍率与完整历史一致。
type LedgerService struct {
	db       *gorm.DB
	settings *SettingService
	recalc   *RecalcService
	now      func() time.Time
}

// NewLedgerService 构造 LedgerService。
func NewLedgerService(gdb *gorm.DB, settings *SettingService, recalc *RecalcService) *LedgerService {
	return &LedgerService{db: gdb, settings: settings, recalc: recalc, now: time.Now}
}

// SetNowFunc 注入时钟，供测试固定「今天」。
func (s *LedgerService) SetNowFunc(now func() time.Time) {
	s.now = now
}

// SaveBeerLog 新增（id=0）或更新一条饮酒记录，负债热量由输入重新推导。
func (s *LedgerService) SaveBeerLog(input BeerLogInput, id uint) (*db.LogEntry, error) {
	if input.Rating < 0 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	ts := input.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}

	var name string
	var kcal float64
	var volumeMl, abv float64
	var carbType string
	count := input.Count
	if count <= 0 {
		count = 1
	}

	if input.IsCustom {
		carbType = logic.CarbTypeSweet
		name = "醸造酒/カクテル"
		if input.CustomType == logic.CarbTypeDry {
			carbType = logic.CarbTypeDry
			name = "蒸留酒 (糖質ゼロ)"
		}
		volumeMl = input.VolumeMl
		if input.ABV != nil {
			abv = *input.ABV
		}
		count = 1
		kcal = logic.AlcoholDebit(volumeMl, abv, carbType, count)
	} else {
		spec := logic.StyleByName(input.Style)
		abv = spec.ABV
		if input.ABV != nil {
			abv = *input.ABV
		}
		carbType = spec.CarbType
		volumeMl = input.SizeMl
		if volumeMl <= 0 {
			volumeMl = 350
		}
		kcal = logic.AlcoholDebit(volumeMl, abv, carbType, count)

		name = spec.Name
		if count != 1 {
			name = fmt.Sprintf("%s x%g", spec.Name, count)
		}
	}

	entry := db.LogEntry{
		Timestamp: ts,
		Type:      db.LogTypeBeer,
		Name:      name,
		Kcal:      kcal,
		Style:     strings.TrimSpace(input.Style),
		VolumeMl:  volumeMl,
		ABV:       abv,
		CarbType:  carbType,
		Count:     count,
		Brewery:   strings.TrimSpace(input.Brewery),
		Brand:     strings.TrimSpace(input.Brand),
		Rating:    input.Rating,
		Memo:      strings.TrimSpace(input.Memo),
	}
	if input.IsCustom {
		entry.Style = "Custom"
	}

	saved, earliest, err := s.persistLog(entry, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.recalc.RecalcFrom(earliest); err != nil {
		return saved, fmt.Errorf("recalc after beer log: %w", err)
	}
	return saved, nil
}

// SaveExerciseLog 新增（id=0）或更新一条运动记录。
// 时间戳统一落在所选日期的正午；ApplyBonus 时按该日连续日数先行计入奖励，
// 随后的级联无论如何都会把当日倍率收敛到正确值。
func (s *LedgerService) SaveExerciseLog(input ExerciseLogInput, id uint) (*db.LogEntry, error) {
	if input.Minutes <= 0 {
		return nil, ErrInvalidMinutes
	}

	date := input.Date
	if date.IsZero() {
		date = s.now()
	}
	ts := logic.StartOfDay(date).Add(12 * time.Hour)

	profile := s.settings.GetProfile()
	spec := logic.ExerciseByKey(input.ExerciseKey)
	baseKcal := logic.MinutesToKcal(input.Minutes, spec.Key, profile)

	finalKcal := baseKcal
	multiplier := 1.0
	memo := strings.TrimSpace(input.Memo)

	if input.ApplyBonus {
		var logs []db.LogEntry
		if err := s.db.Find(&logs).Error; err != nil {
			return nil, fmt.Errorf("load logs: %w", err)
		}
		var checks []db.DailyCheck
		if err := s.db.Find(&checks).Error; err != nil {
			return nil, fmt.Errorf("load checks: %w", err)
		}

		streak := logic.ComputeStreak(logs, checks, profile, ts, s.now())
		finalKcal, multiplier = logic.ExerciseCredit(baseKcal, streak)
		if multiplier > 1.0 {
			token := fmt.Sprintf("Streak Bonus x%.1f", multiplier)
			if memo == "" {
				memo = token
			} else {
				memo = memo + " " + token
			}
		}
	}

	entry := db.LogEntry{
		Timestamp:       ts,
		Type:            db.LogTypeExercise,
		Name:            spec.Label,
		Kcal:            finalKcal,
		ExerciseKey:     spec.Key,
		RawMinutes:      input.Minutes,
		BonusMultiplier: multiplier,
		Memo:            memo,
	}

	saved, earliest, err := s.persistLog(entry, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.recalc.RecalcFrom(earliest); err != nil {
		return saved, fmt.Errorf("recalc after exercise log: %w", err)
	}
	return saved, nil
}

// persistLog 落库一条记录，返回保存结果与级联起点（编辑时取新旧时间戳中较早者）。
func (s *LedgerService) persistLog(entry db.LogEntry, id uint) (*db.LogEntry, time.Time, error) {
	earliest := entry.Timestamp

	if id == 0 {
		if err := s.db.Create(&entry).Error; err != nil {
			return nil, earliest, fmt.Errorf("create log entry: %w", err)
		}
		return &entry, earliest, nil
	}

	var existing db.LogEntry
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, earliest, ErrLogNotFound
		}
		return nil, earliest, fmt.Errorf("find log entry: %w", err)
	}

	if existing.Timestamp.Before(earliest) {
		earliest = existing.Timestamp
	}

	entry.ID = existing.ID
	entry.CreatedAt = existing.CreatedAt
	if err := s.db.Save(&entry).Error; err != nil {
		return nil, earliest, fmt.Errorf("update log entry: %w", err)
	}
	return &entry, earliest, nil
}

// DeleteLog 删除一条记录并从其日期触发级联。
func (s *LedgerService) DeleteLog(id uint) error {
	var existing db.LogEntry
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLogNotFound
		}
		return fmt.Errorf("find log entry: %w", err)
	}

	if err := s.db.Delete(&db.LogEntry{}, id).Error; err != nil {
		return fmt.Errorf("delete log entry: %w", err)
	}

	if _, err := s.recalc.RecalcFrom(existing.Timestamp); err != nil {
		return fmt.Errorf("recalc after delete: %w", err)
	}
	return nil
}

// BulkDeleteLogs 批量删除，并以其中最早的日期触发一次级联。
func (s *LedgerService) BulkDeleteLogs(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	var existing []db.LogEntry
	if err := s.db.Where("id IN ?", ids).Find(&existing).Error; err != nil {
		return fmt.Errorf("find log entries: %w", err)
	}
	if len(existing) == 0 {
		return ErrLogNotFound
	}

	earliest := existing[0].Timestamp
	for _, entry := range existing[1:] {
		if entry.Timestamp.Before(earliest) {
			earliest = entry.Timestamp
		}
	}

	if err := s.db.Delete(&db.LogEntry{}, ids).Error; err != nil {
		return fmt.Errorf("bulk delete log entries: %w", err)
	}

	if _, err := s.recalc.RecalcFrom(earliest); err != nil {
		return fmt.Errorf("recalc after bulk delete: %w", err)
	}
	return nil
}

// UpsertDailyCheck 幂等写入某日打卡：同一天已有记录则覆盖（check_date 唯一索引）。
// 休肝标记直接影响连续日数判定，因此必定触发级联。
func (s *LedgerService) UpsertDailyCheck(input DailyCheckInput) (*db.DailyCheck, error) {
	date := input.Date
	if date.IsZero() {
		date = s.now()
	}
	checkDate := logic.StartOfDay(date)
	ts := checkDate.Add(12 * time.Hour)

	record := db.DailyCheck{
		CheckDate:     checkDate,
		Timestamp:     ts,
		IsDryDay:      input.IsDryDay,
		Weight:        input.Weight,
		WaistEase:     input.WaistEase,
		FootLightness: input.FootLightness,
		WaterOk:       input.WaterOk,
		FiberOk:       input.FiberOk,
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "check_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"timestamp", "is_dry_day", "weight",
			"waist_ease", "foot_lightness", "water_ok", "fiber_ok", "updated_at",
		}),
	}).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("upsert daily check: %w", err)
	}

	if err := s.db.Where("check_date = ?", checkDate).First(&record).Error; err != nil {
		return nil, fmt.Errorf("reload daily check: %w", err)
	}

	// 打卡附带的体重同步到个人资料
	if input.Weight != nil && *input.Weight > 0 {
		if err := s.settings.SetWeight(*input.Weight); err != nil {
			return nil, err
		}
	}

	if _, err := s.recalc.RecalcFrom(ts); err != nil {
		return &record, fmt.Errorf("recalc after daily check: %w", err)
	}
	return &record, nil
}

// EnsureTodayCheck 在今天还没有打卡记录时补建一条空记录（启动与每日轮转时调用）。
// 空记录不声明休肝，不影响连续日数判定。
func (s *LedgerService) EnsureTodayCheck() error {
	today := logic.StartOfDay(s.now())

	var existing db.DailyCheck
	err := s.db.Where("check_date = ?", today).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("find today check: %w", err)
	}

	record := db.DailyCheck{
		CheckDate: today,
		Timestamp: s.now(),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return fmt.Errorf("create today check: %w", err)
	}
	return nil
}

// ListLogs 返回全部记录（时间升序）。
func (s *LedgerService) ListLogs() ([]db.LogEntry, error) {
	var logs []db.LogEntry
	if err := s.db.Order("timestamp ASC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return logs, nil
}

// ListChecks 返回全部打卡（时间升序）。
func (s *LedgerService) ListChecks() ([]db.DailyCheck, error) {
	var checks []db.DailyCheck
	if err := s.db.Order("check_date ASC").Find(&checks).Error; err != nil {
		return nil, fmt.Errorf("list checks: %w", err)
	}
	return checks, nil
}

// GetLog 按 ID 读取单条记录。
func (s *LedgerService) GetLog(id uint) (*db.LogEntry, error) {
	var entry db.LogEntry
	if err := s.db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, fmt.Errorf("get log entry: %w", err)
	}
	return &entry, nil
}

// LogsBetween 返回区间内的记录（供周视图等使用）。
func (s *LedgerService) LogsBetween(start, end time.Time) ([]db.LogEntry, error) {
	var logs []db.LogEntry
	if err := s.db.Where("timestamp BETWEEN ? AND ?", start, end).
		Order("timestamp ASC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list logs between: %w", err)
	}
	return logs, nil
}

// ListLogsPage 返回按时间倒序的分页记录，供日志列表展示。
func (s *LedgerService) ListLogsPage(offset, limit int) (*LogsPage, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := s.db.Model(&db.LogEntry{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count logs: %w", err)
	}

	var logs []db.LogEntry
	if err := s.db.Order("timestamp DESC").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("page logs: %w", err)
	}

	return &LogsPage{Logs: logs, TotalCount: total}, nil
}
