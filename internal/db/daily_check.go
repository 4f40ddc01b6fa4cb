package db

import (
	"time"

	"gorm.io/gorm"
)

// DailyCheck 表示某个日历日的打卡记录。
// CheckDate 为当日零点，唯一索引保证同一天至多一条；写入统一走 OnConflict upsert。
// IsDryDay 为显式休肝声明，与被动推定（当天无饮酒记录）区分开。
type DailyCheck struct {
	gorm.Model
	CheckDate time.Time `gorm:"index:idx_daily_check_date,unique"`
	Timestamp time.Time
	IsDryDay  bool
	Weight    *float64

	// 主观状态打卡
	WaistEase     bool
	FootLightness bool
	WaterOk       bool
	FiberOk       bool
}

// TableName 自定义表名确保唯一索引作用到 check_date。
func (DailyCheck) TableName() string {
	return "daily_checks"
}
