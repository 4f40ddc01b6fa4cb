package db

import (
	"time"

	"gorm.io/gorm"
)

// 记录类型
const (
	LogTypeBeer     = "beer"
	LogTypeExercise = "exercise"
)

// LogEntry 表示一条饮酒或运动记录。
// Kcal 采用记账符号约定：饮酒为负（债务），运动为正（还款）。
// Kcal 是派生缓存而非事实来源——必须能由其余字段加上当日生效的连击倍率重新推导，
// 其失效契约由 RecalcService 的级联重算承担。
// BonusMultiplier 冗余保存写入时生效的倍率，方便排查缓存是否过期。
type LogEntry struct {
	gorm.Model
	Timestamp time.Time `gorm:"index"`
	Type      string    `gorm:"size:20;index"`
	Name      string
	Kcal      float64

	// 饮酒字段
	Style    string
	VolumeMl float64
	ABV      float64
	CarbType string `gorm:"size:10"`
	Count    float64
	Brewery  string
	Brand    string
	Rating   int

	// 运动字段
	ExerciseKey     string `gorm:"size:40"`
	RawMinutes      float64
	BonusMultiplier float64

	Memo string
}

// TableName 自定义表名保持命名一致。
func (LogEntry) TableName() string {
	return "log_entries"
}

// IsExercise 判断是否为运动记录。
func (l LogEntry) IsExercise() bool {
	return l.Type == LogTypeExercise
}

// IsBeer 判断是否为饮酒记录。
func (l LogEntry) IsBeer() bool {
	return l.Type == LogTypeBeer
}
