package taxlot

// SnapshotPosition is one held position as reported by a broker's holdings
// export: a symbol, a quantity, and (sometimes) a cost basis.
type SnapshotPosition struct {
	Symbol    string   `json:"symbol"`
	Quantity  Quantity `json:"quantity"`
	CostBasis Money    `json:"cost"` // zero when the export does not report it
}

// Snapshot is the state of one account at one point in time. It is the
// bootstrap input for accounts that have positions but no transaction
// history.
type Snapshot struct {
	Account   string             `json:"account"`
	Date      Date               `json:"date"`
	Positions []SnapshotPosition `json:"positions"`
}
