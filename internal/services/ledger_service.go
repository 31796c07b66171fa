package services

import (
	"time"

	"stockledger/internal/domain"
	"stockledger/internal/repos"
)

// TimestampLayout is how the ledger stores instants. Fixed-width and UTC,
// so lexicographic order on the column is chronological order.
const TimestampLayout = "2006-01-02 15:04:05"

// LedgerService is the only write path into the movements table. There is
// no update path at all; a recording mistake is corrected by a new
// compensating movement.
type LedgerService struct {
	Movements *repos.MovementRepo
	now       func() time.Time
}

func NewLedgerService(movements *repos.MovementRepo) *LedgerService {
	return &LedgerService{Movements: movements, now: time.Now}
}

// WithClock replaces the timestamp source; tests pin it to a fixed instant.
func (s *LedgerService) WithClock(now func() time.Time) *LedgerService {
	s.now = now
	return s
}

// Record appends one movement. An empty timestamp gets the current instant.
// Movements with neither endpoint are accepted; they are balance-neutral
// receipts/issues with no tracked counterpart, and rejecting them is a
// presentation policy, not a ledger rule.
func (s *LedgerService) Record(m domain.Movement) (domain.Movement, error) {
	if m.Timestamp == "" {
		m.Timestamp = s.now().UTC().Format(TimestampLayout)
	}
	if err := s.Movements.Insert(m); err != nil {
		return domain.Movement{}, err
	}
	return m, nil
}

func (s *LedgerService) List() ([]repos.MovementRow, error) {
	return s.Movements.List()
}
