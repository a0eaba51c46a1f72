package taxlot

// NewSplitAction builds a corporate-action record from an effective date and
// a ratio. The kind is derived from the ratio: greater than 1 is a forward
// split, below 1 a reverse split. A non-positive ratio is rejected with an
// InvalidRatioError.
func NewSplitAction(on Date, ratio Quantity) (CorporateActionRecord, error) {
	if !ratio.IsPositive() {
		return CorporateActionRecord{}, &InvalidRatioError{Ratio: ratio}
	}
	kind := Split
	if ratio.LessThan(Q(1)) {
		kind = ReverseSplit
	}
	return CorporateActionRecord{Kind: kind, Date: on, Ratio: ratio}, nil
}

// ApplySplit rescales every lot of the (account, symbol) acquired on or
// before the action's effective date: quantities are multiplied by the
// ratio and the per-share price divided by it, leaving each lot's total
// cost basis unchanged. Open, partial, and closed lots are all adjusted so
// the audit history stays in one consistent unit; lots acquired after the
// effective date are untouched.
//
// The lot set is looked up once and walked once. It returns the number of
// lots adjusted.
func ApplySplit(book *LotBook, account, symbol string, action CorporateActionRecord) (int, error) {
	if !action.Ratio.IsPositive() {
		return 0, &InvalidRatioError{Ratio: action.Ratio}
	}

	adjusted := 0
	for _, lot := range book.Lots(account, symbol) {
		if lot.acquired.After(action.Date) {
			continue
		}
		lot.rescale(action)
		adjusted++
	}
	return adjusted, nil
}
