package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetSummary 返回主界面汇总：收支、连续日数、倍率、评级、酒罐换算与还款建议。
func (a *API) GetSummary(c *gin.Context) {
	mode := c.DefaultQuery("mode", "mode1")

	summary, err := a.summaries.Overview(mode)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取汇总数据失败")
		return
	}

	grade := gin.H{
		"rank":           summary.Grade.Rank,
		"label":          summary.Grade.Label,
		"current_streak": summary.Grade.CurrentStreak,
		"is_rookie":      summary.Grade.IsRookie,
		"next":           summary.Grade.Next,
	}
	if summary.Grade.IsRookie {
		grade["raw_rate"] = summary.Grade.RawRate
		grade["target_rate"] = summary.Grade.TargetRate
	}

	payload := gin.H{
		"balance_kcal":   summary.BalanceKcal,
		"current_streak": summary.CurrentStreak,
		"multiplier":     summary.Multiplier,
		"grade":          grade,
		"tank": gin.H{
			"style":         summary.Tank.Style,
			"unit_kcal":     summary.Tank.UnitKcal,
			"can_count":     summary.Tank.CanCount,
			"base_exercise": summary.Tank.BaseExercise,
			"repay_minutes": summary.Tank.RepayMinutes,
		},
	}
	if summary.Suggestion != nil {
		payload["suggestion"] = gin.H{
			"exercise_key": summary.Suggestion.ExerciseKey,
			"label":        summary.Suggestion.Label,
			"minutes":      summary.Suggestion.Minutes,
		}
	}

	c.JSON(http.StatusOK, payload)
}

// GetCalendar 返回指定区间每日的状态分类（周视图/热力图用）。
func (a *API) GetCalendar(c *gin.Context) {
	end, err := parseDateQuery(c, "end", time.Now())
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的 end 日期")
		return
	}
	start, err := parseDateQuery(c, "start", end.AddDate(0, 0, -6))
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的 start 日期")
		return
	}

	items, err := a.summaries.DayStatuses(start, end)
	if err != nil {
		respondError(c, http.StatusBadRequest, "获取日历状态失败")
		return
	}

	days := make([]gin.H, 0, len(items))
	for _, item := range items {
		days = append(days, gin.H{"date": item.Date, "status": item.Status})
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}
