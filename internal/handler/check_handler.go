package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hazypayback/internal/db"
	"github.com/hazypayback/internal/service"
)

type dailyCheckPayload struct {
	Date          string   `json:"date"`
	IsDryDay      bool     `json:"is_dry_day"`
	Weight        *float64 `json:"weight"`
	WaistEase     bool     `json:"waist_ease"`
	FootLightness bool     `json:"foot_lightness"`
	WaterOk       bool     `json:"water_ok"`
	FiberOk       bool     `json:"fiber_ok"`
}

func checkToPayload(check db.DailyCheck) gin.H {
	return gin.H{
		"id":             check.ID,
		"date":           check.CheckDate.Format(dateFormat),
		"is_dry_day":     check.IsDryDay,
		"weight":         check.Weight,
		"waist_ease":     check.WaistEase,
		"foot_lightness": check.FootLightness,
		"water_ok":       check.WaterOk,
		"fiber_ok":       check.FiberOk,
	}
}

// UpsertDailyCheck 幂等写入某日打卡。
func (a *API) UpsertDailyCheck(c *gin.Context) {
	var payload dailyCheckPayload
	if !bindJSON(c, &payload, "无效的打卡请求") {
		return
	}

	input := service.DailyCheckInput{
		IsDryDay:      payload.IsDryDay,
		Weight:        payload.Weight,
		WaistEase:     payload.WaistEase,
		FootLightness: payload.FootLightness,
		WaterOk:       payload.WaterOk,
		FiberOk:       payload.FiberOk,
	}
	if payload.Date != "" {
		parsed, err := time.ParseInLocation(dateFormat, payload.Date, time.Local)
		if err != nil {
			respondError(c, http.StatusBadRequest, "无效的日期格式")
			return
		}
		input.Date = parsed
	}

	check, err := a.ledger.UpsertDailyCheck(input)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "保存打卡失败")
		return
	}

	c.JSON(http.StatusOK, checkToPayload(*check))
}

// ListChecks 返回全部打卡记录。
func (a *API) ListChecks(c *gin.Context) {
	checks, err := a.ledger.ListChecks()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取打卡列表失败")
		return
	}

	items := make([]gin.H, 0, len(checks))
	for _, check := range checks {
		items = append(items, checkToPayload(check))
	}

	c.JSON(http.StatusOK, gin.H{"checks": items})
}
