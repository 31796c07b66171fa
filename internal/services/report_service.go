package services

import (
	"stockledger/internal/domain"
	"stockledger/internal/repos"
)

type ReportService struct {
	Products  *repos.ProductRepo
	Locations *repos.LocationRepo
	Movements *repos.MovementRepo
}

func NewReportService(products *repos.ProductRepo, locations *repos.LocationRepo, movements *repos.MovementRepo) *ReportService {
	return &ReportService{Products: products, Locations: locations, Movements: movements}
}

// Balances walks the full products x locations grid and nets inbound
// against outbound qty for each cell. Only strictly positive balances are
// reported; zero and negative cells are summarized away, not flagged.
// Nothing is cached: every call rescans the ledger, so the report can
// never disagree with committed movements.
func (s *ReportService) Balances() ([]domain.BalanceRow, error) {
	products, err := s.Products.List()
	if err != nil {
		return nil, err
	}
	locations, err := s.Locations.List()
	if err != nil {
		return nil, err
	}
	in, err := s.Movements.InboundSums()
	if err != nil {
		return nil, err
	}
	out, err := s.Movements.OutboundSums()
	if err != nil {
		return nil, err
	}

	rows := []domain.BalanceRow{}
	for _, p := range products {
		for _, l := range locations {
			key := repos.FlowKey{ProductID: p.ID, LocationID: l.ID}
			balance := in[key] - out[key]
			if balance > 0 {
				rows = append(rows, domain.BalanceRow{Product: p.Name, Location: l.Name, Qty: balance})
			}
		}
	}
	return rows, nil
}
