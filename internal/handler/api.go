package handler

import (
	"github.com/hazypayback/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	ledger    *service.LedgerService
	recalc    *service.RecalcService
	summaries *service.SummaryService
	settings  *service.SettingService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB) *API {
	settings := service.NewSettingService(gdb)
	recalc := service.NewRecalcService(gdb, settings)

	return &API{
		db:        gdb,
		ledger:    service.NewLedgerService(gdb, settings, recalc),
		recalc:    recalc,
		summaries: service.NewSummaryService(gdb, settings),
		settings:  settings,
	}
}

// Ledger 暴露底层账本服务，供启动期任务（每日轮转等）复用。
func (a *API) Ledger() *service.LedgerService {
	return a.ledger
}

// Recalc 暴露级联重算服务。
func (a *API) Recalc() *service.RecalcService {
	return a.recalc
}
