package handlers

import (
	"github.com/jmoiron/sqlx"

	"stockledger/internal/repos"
	"stockledger/internal/services"
)

type Deps struct {
	ProductHandler  *ProductHandler
	LocationHandler *LocationHandler
	MovementHandler *MovementHandler
	ReportHandler   *ReportHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	prodRepo := repos.NewProductRepo(db)
	locRepo := repos.NewLocationRepo(db)
	movRepo := repos.NewMovementRepo(db)

	catalog := services.NewCatalogService(prodRepo, locRepo)
	ledger := services.NewLedgerService(movRepo)
	report := services.NewReportService(prodRepo, locRepo, movRepo)

	return &Deps{
		ProductHandler:  &ProductHandler{Catalog: catalog},
		LocationHandler: &LocationHandler{Catalog: catalog},
		MovementHandler: &MovementHandler{Ledger: ledger, Catalog: catalog},
		ReportHandler:   &ReportHandler{Report: report},
	}
}
