package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hazypayback/internal/logic"
	"github.com/hazypayback/internal/service"
)

type settingsPayload struct {
	WeightKg        *float64 `json:"weight_kg"`
	HeightCm        *float64 `json:"height_cm"`
	AgeYears        *int     `json:"age_years"`
	Gender          *string  `json:"gender"`
	Mode1Style      *string  `json:"mode1_style"`
	Mode2Style      *string  `json:"mode2_style"`
	BaseExercise    *string  `json:"base_exercise"`
	DefaultExercise *string  `json:"default_exercise"`
}

// GetSettings 返回个人资料、偏好与可选目录。
func (a *API) GetSettings(c *gin.Context) {
	profile := a.settings.GetProfile()
	prefs := a.settings.GetPreferences()

	exercises := make([]gin.H, 0)
	for _, spec := range logic.ExerciseCatalog() {
		exercises = append(exercises, gin.H{"key": spec.Key, "label": spec.Label, "mets": spec.METs})
	}

	sizes := make([]gin.H, 0, len(logic.ServingSizes))
	for _, size := range logic.ServingSizes {
		sizes = append(sizes, gin.H{"ml": size.Ml, "label": size.Label})
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": gin.H{
			"weight_kg": profile.WeightKg,
			"height_cm": profile.HeightCm,
			"age_years": profile.AgeYears,
			"gender":    profile.Gender,
		},
		"preferences": gin.H{
			"mode1_style":      prefs.Mode1Style,
			"mode2_style":      prefs.Mode2Style,
			"base_exercise":    prefs.BaseExercise,
			"default_exercise": prefs.DefaultExercise,
		},
		"exercises":     exercises,
		"serving_sizes": sizes,
	})
}

// UpdateSettings 更新个人资料/偏好。
// 资料变更不在此处触发级联，存量入账由下一次账本变更或每日轮转收敛。
func (a *API) UpdateSettings(c *gin.Context) {
	var payload settingsPayload
	if !bindJSON(c, &payload, "无效的设置请求") {
		return
	}

	input := service.SettingsInput{
		WeightKg:        payload.WeightKg,
		HeightCm:        payload.HeightCm,
		AgeYears:        payload.AgeYears,
		Gender:          payload.Gender,
		Mode1Style:      payload.Mode1Style,
		Mode2Style:      payload.Mode2Style,
		BaseExercise:    payload.BaseExercise,
		DefaultExercise: payload.DefaultExercise,
	}

	if err := a.settings.Update(input); err != nil {
		respondError(c, http.StatusInternalServerError, "保存设置失败")
		return
	}

	a.GetSettings(c)
}
