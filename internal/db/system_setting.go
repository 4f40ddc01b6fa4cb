package db

import "gorm.io/gorm"

// SystemSetting 存储可配置的系统级键值对（个人资料与显示偏好）。
type SystemSetting struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (SystemSetting) TableName() string {
	return "system_settings"
}

const (
	// SettingKeyWeight 体重 (kg)
	SettingKeyWeight = "profile_weight"
	// SettingKeyHeight 身高 (cm)
	SettingKeyHeight = "profile_height"
	// SettingKeyAge 年龄
	SettingKeyAge = "profile_age"
	// SettingKeyGender 性别 (male/female)
	SettingKeyGender = "profile_gender"
	// SettingKeyMode1Style 罐数显示模式 1 对应的酒款
	SettingKeyMode1Style = "mode1_style"
	// SettingKeyMode2Style 罐数显示模式 2 对应的酒款
	SettingKeyMode2Style = "mode2_style"
	// SettingKeyBaseExercise 还款换算用的基准运动
	SettingKeyBaseExercise = "base_exercise"
	// SettingKeyDefaultExercise 记录表单默认选中的运动
	SettingKeyDefaultExercise = "default_record_exercise"
)
