package domain

type Product struct {
	ID   string `db:"product_id" json:"product_id"`
	Name string `db:"name" json:"name"`
}

type Location struct {
	ID   string `db:"location_id" json:"location_id"`
	Name string `db:"name" json:"name"`
}

// Movement is one ledger entry. FromLocation/ToLocation may be empty:
// an inbound receipt has no source, an outbound issue no destination.
type Movement struct {
	ID           string `db:"movement_id" json:"movement_id"`
	Timestamp    string `db:"timestamp" json:"timestamp"` // "2006-01-02 15:04:05" UTC
	ProductID    string `db:"product_id" json:"product_id"`
	FromLocation string `db:"from_location" json:"from_location,omitempty"`
	ToLocation   string `db:"to_location" json:"to_location,omitempty"`
	Qty          int    `db:"qty" json:"qty"`
}

// BalanceRow is one line of the on-hand report.
type BalanceRow struct {
	Product  string `json:"product"`
	Location string `json:"location"`
	Qty      int    `json:"qty"`
}
