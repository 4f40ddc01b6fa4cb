package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hazypayback/internal/db"
	"github.com/hazypayback/internal/service"
)

type beerLogPayload struct {
	// Date 为 YYYY-MM-DD，缺省为今天
	Date       string   `json:"date"`
	Style      string   `json:"style"`
	SizeMl     float64  `json:"size_ml"`
	Count      float64  `json:"count"`
	ABV        *float64 `json:"abv"`
	IsCustom   bool     `json:"is_custom"`
	CustomType string   `json:"custom_type"`
	VolumeMl   float64  `json:"volume_ml"`
	Brewery    string   `json:"brewery"`
	Brand      string   `json:"brand"`
	Rating     int      `json:"rating"`
	Memo       string   `json:"memo"`
}

type exerciseLogPayload struct {
	Date        string  `json:"date"`
	ExerciseKey string  `json:"exercise_key"`
	Minutes     float64 `json:"minutes"`
	ApplyBonus  bool    `json:"apply_bonus"`
	Memo        string  `json:"memo"`
}

type bulkDeletePayload struct {
	IDs []uint `json:"ids"`
}

func logToPayload(entry db.LogEntry) gin.H {
	item := gin.H{
		"id":        entry.ID,
		"timestamp": entry.Timestamp.UnixMilli(),
		"date":      entry.Timestamp.Format(dateFormat),
		"type":      entry.Type,
		"name":      entry.Name,
		"kcal":      entry.Kcal,
		"memo":      entry.Memo,
	}

	switch entry.Type {
	case db.LogTypeBeer:
		item["style"] = entry.Style
		item["volume_ml"] = entry.VolumeMl
		item["abv"] = entry.ABV
		item["carb_type"] = entry.CarbType
		item["count"] = entry.Count
		item["brewery"] = entry.Brewery
		item["brand"] = entry.Brand
		item["rating"] = entry.Rating
	case db.LogTypeExercise:
		item["exercise_key"] = entry.ExerciseKey
		item["raw_minutes"] = entry.RawMinutes
		item["bonus_multiplier"] = entry.BonusMultiplier
	}
	return item
}

func (p beerLogPayload) toInput() (service.BeerLogInput, error) {
	input := service.BeerLogInput{
		Style:      p.Style,
		SizeMl:     p.SizeMl,
		Count:      p.Count,
		ABV:        p.ABV,
		IsCustom:   p.IsCustom,
		CustomType: p.CustomType,
		VolumeMl:   p.VolumeMl,
		Brewery:    p.Brewery,
		Brand:      p.Brand,
		Rating:     p.Rating,
		Memo:       p.Memo,
	}
	if p.Date != "" {
		parsed, err := time.ParseInLocation(dateFormat, p.Date, time.Local)
		if err != nil {
			return input, err
		}
		// 记在所选日期的正午，避免时区边界落错天
		input.Timestamp = parsed.Add(12 * time.Hour)
	}
	return input, nil
}

// CreateBeerLog 新增饮酒记录。
func (a *API) CreateBeerLog(c *gin.Context) {
	a.saveBeerLog(c, 0)
}

// UpdateBeerLog 更新饮酒记录。
func (a *API) UpdateBeerLog(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的记录 ID")
		return
	}
	a.saveBeerLog(c, id)
}

func (a *API) saveBeerLog(c *gin.Context, id uint) {
	var payload beerLogPayload
	if !bindJSON(c, &payload, "无效的饮酒记录") {
		return
	}

	input, err := payload.toInput()
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的日期格式")
		return
	}

	entry, err := a.ledger.SaveBeerLog(input, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			respondError(c, http.StatusBadRequest, "评分必须在 0-5 之间")
		case errors.Is(err, service.ErrLogNotFound):
			respondError(c, http.StatusNotFound, "记录不存在")
		default:
			respondError(c, http.StatusInternalServerError, "保存饮酒记录失败")
		}
		return
	}

	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	c.JSON(status, logToPayload(*entry))
}

// CreateExerciseLog 新增运动记录。
func (a *API) CreateExerciseLog(c *gin.Context) {
	a.saveExerciseLog(c, 0)
}

// UpdateExerciseLog 更新运动记录。
func (a *API) UpdateExerciseLog(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的记录 ID")
		return
	}
	a.saveExerciseLog(c, id)
}

func (a *API) saveExerciseLog(c *gin.Context, id uint) {
	var payload exerciseLogPayload
	if !bindJSON(c, &payload, "无效的运动记录") {
		return
	}

	input := service.ExerciseLogInput{
		ExerciseKey: payload.ExerciseKey,
		Minutes:     payload.Minutes,
		ApplyBonus:  payload.ApplyBonus,
		Memo:        payload.Memo,
	}
	if payload.Date != "" {
		parsed, err := time.ParseInLocation(dateFormat, payload.Date, time.Local)
		if err != nil {
			respondError(c, http.StatusBadRequest, "无效的日期格式")
			return
		}
		input.Date = parsed
	}

	entry, err := a.ledger.SaveExerciseLog(input, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMinutes):
			respondError(c, http.StatusBadRequest, "运动时长必须为正数")
		case errors.Is(err, service.ErrLogNotFound):
			respondError(c, http.StatusNotFound, "记录不存在")
		default:
			respondError(c, http.StatusInternalServerError, "保存运动记录失败")
		}
		return
	}

	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	c.JSON(status, logToPayload(*entry))
}

// DeleteLog 删除单条记录。
func (a *API) DeleteLog(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的记录 ID")
		return
	}

	if err := a.ledger.DeleteLog(id); err != nil {
		if errors.Is(err, service.ErrLogNotFound) {
			respondError(c, http.StatusNotFound, "记录不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除记录失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// BulkDeleteLogs 批量删除记录。
func (a *API) BulkDeleteLogs(c *gin.Context) {
	var payload bulkDeletePayload
	if !bindJSON(c, &payload, "无效的批量删除请求") {
		return
	}

	if err := a.ledger.BulkDeleteLogs(payload.IDs); err != nil {
		if errors.Is(err, service.ErrLogNotFound) {
			respondError(c, http.StatusNotFound, "记录不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "批量删除失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": len(payload.IDs)})
}

// ListLogs 分页返回记录列表（时间倒序）。
func (a *API) ListLogs(c *gin.Context) {
	offset := parseIntQuery(c, "offset", 0)
	limit := parseIntQuery(c, "limit", 20)

	page, err := a.ledger.ListLogsPage(offset, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取记录列表失败")
		return
	}

	items := make([]gin.H, 0, len(page.Logs))
	for _, entry := range page.Logs {
		items = append(items, logToPayload(entry))
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":        items,
		"total_count": page.TotalCount,
	})
}
