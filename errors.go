package taxlot

import "fmt"

// InvalidAcquisitionError reports an acquisition transaction that cannot
// become a lot: a non-positive quantity, or no usable cost figure. It is
// fatal to the single lot-creation call, never to a whole batch.
type InvalidAcquisitionError struct {
	TransactionID string
	Reason        string
}

func (e *InvalidAcquisitionError) Error() string {
	return fmt.Sprintf("invalid acquisition %q: %s", e.TransactionID, e.Reason)
}

// InsufficientLotQuantityError reports a specific-id sale whose designated
// lots cannot cover the requested quantity.
type InsufficientLotQuantityError struct {
	Requested Quantity
	Available Quantity
}

func (e *InsufficientLotQuantityError) Error() string {
	return fmt.Sprintf("specific-id sale of %s exceeds the %s available in the designated lots", e.Requested, e.Available)
}

// InvalidRatioError reports a corporate action with a non-positive ratio.
type InvalidRatioError struct {
	Ratio Quantity
}

func (e *InvalidRatioError) Error() string {
	return fmt.Sprintf("corporate-action ratio must be positive, got %s", e.Ratio)
}

// PartialAllocationWarning reports a disposal that exhausted the available
// lots before being fully allocated. It is non-fatal: the allocation result
// is still valid for the filled portion, and the caller decides whether the
// unfilled remainder reflects missing history or a short position.
type PartialAllocationWarning struct {
	Unfilled Quantity
}

func (e *PartialAllocationWarning) Error() string {
	return fmt.Sprintf("allocation left %s unfilled: no remaining lot quantity", e.Unfilled)
}
