package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hazypayback/internal/db"
	"github.com/hazypayback/internal/logic"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Preferences 描述显示偏好：两个罐数换算模式对应的酒款与基准运动。
type Preferences struct {
	Mode1Style      string
	Mode2Style      string
	BaseExercise    string
	DefaultExercise string
}

// 偏好默认值
const (
	DefaultMode1Style   = "国産ピルスナー"
	DefaultMode2Style   = "Hazy IPA"
	DefaultBaseExercise = "walking"
)

// SettingsInput 用于更新个人资料与偏好，nil 字段表示不修改。
type SettingsInput struct {
	WeightKg        *float64
	HeightCm        *float64
	AgeYears        *int
	Gender          *string
	Mode1Style      *string
	Mode2Style      *string
	BaseExercise    *string
	DefaultExercise *string
}

// SettingService 提供个人资料与偏好的读取与更新能力。
// 底层是键值存储，缺失项回退到固定默认值，读取永不失败出 0 值。
type SettingService struct {
	db *gorm.DB
}

// NewSettingService 构造 SettingService。
func NewSettingService(gdb *gorm.DB) *SettingService {
	return &SettingService{db: gdb}
}

var profileKeys = []string{
	db.SettingKeyWeight,
	db.SettingKeyHeight,
	db.SettingKeyAge,
	db.SettingKeyGender,
	db.SettingKeyMode1Style,
	db.SettingKeyMode2Style,
	db.SettingKeyBaseExercise,
	db.SettingKeyDefaultExercise,
}

func (s *SettingService) loadValues() (map[string]string, error) {
	var records []db.SystemSetting
	if err := s.db.Where("key IN ?", profileKeys).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	values := make(map[string]string, len(records))
	for _, record := range records {
		values[record.Key] = record.Value
	}
	return values, nil
}

// GetProfile 读取身体参数。解析失败或缺失的字段落回默认值，绝不报错中断计算。
func (s *SettingService) GetProfile() logic.Profile {
	profile := logic.Profile{}

	values, err := s.loadValues()
	if err != nil {
		return profile
	}

	if v, parseErr := strconv.ParseFloat(values[db.SettingKeyWeight], 64); parseErr == nil {
		profile.WeightKg = v
	}
	if v, parseErr := strconv.ParseFloat(values[db.SettingKeyHeight], 64); parseErr == nil {
		profile.HeightCm = v
	}
	if v, parseErr := strconv.Atoi(values[db.SettingKeyAge]); parseErr == nil {
		profile.AgeYears = v
	}
	profile.Gender = strings.TrimSpace(values[db.SettingKeyGender])

	return profile
}

// GetPreferences 读取显示偏好，缺失项使用默认酒款与基准运动。
func (s *SettingService) GetPreferences() Preferences {
	prefs := Preferences{
		Mode1Style:      DefaultMode1Style,
		Mode2Style:      DefaultMode2Style,
		BaseExercise:    DefaultBaseExercise,
		DefaultExercise: DefaultBaseExercise,
	}

	values, err := s.loadValues()
	if err != nil {
		return prefs
	}

	if v := strings.TrimSpace(values[db.SettingKeyMode1Style]); v != "" {
		prefs.Mode1Style = v
	}
	if v := strings.TrimSpace(values[db.SettingKeyMode2Style]); v != "" {
		prefs.Mode2Style = v
	}
	if v := strings.TrimSpace(values[db.SettingKeyBaseExercise]); v != "" {
		prefs.BaseExercise = v
	}
	if v := strings.TrimSpace(values[db.SettingKeyDefaultExercise]); v != "" {
		prefs.DefaultExercise = v
	}

	return prefs
}

// Update 写入提供的设置项，nil 字段保持原值。
func (s *SettingService) Update(input SettingsInput) error {
	pairs := map[string]*string{}

	if input.WeightKg != nil {
		v := strconv.FormatFloat(*input.WeightKg, 'f', -1, 64)
		pairs[db.SettingKeyWeight] = &v
	}
	if input.HeightCm != nil {
		v := strconv.FormatFloat(*input.HeightCm, 'f', -1, 64)
		pairs[db.SettingKeyHeight] = &v
	}
	if input.AgeYears != nil {
		v := strconv.Itoa(*input.AgeYears)
		pairs[db.SettingKeyAge] = &v
	}
	if input.Gender != nil {
		pairs[db.SettingKeyGender] = input.Gender
	}
	if input.Mode1Style != nil {
		pairs[db.SettingKeyMode1Style] = input.Mode1Style
	}
	if input.Mode2Style != nil {
		pairs[db.SettingKeyMode2Style] = input.Mode2Style
	}
	if input.BaseExercise != nil {
		pairs[db.SettingKeyBaseExercise] = input.BaseExercise
	}
	if input.DefaultExercise != nil {
		pairs[db.SettingKeyDefaultExercise] = input.DefaultExercise
	}

	for key, value := range pairs {
		record := db.SystemSetting{Key: key, Value: strings.TrimSpace(*value)}
		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&record).Error; err != nil {
			return fmt.Errorf("save setting %s: %w", key, err)
		}
	}

	return nil
}

// SetWeight 单独记录体重（デイリーチェック附带的体重会同步到这里）。
func (s *SettingService) SetWeight(weightKg float64) error {
	return s.Update(SettingsInput{WeightKg: &weightKg})
}
