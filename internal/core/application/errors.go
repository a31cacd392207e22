package application

import "errors"

var (
	// ErrArbiterOnly is returned when a caller other than the configured
	// arbiter invokes an arbiter-only operation.
	ErrArbiterOnly = errors.New("operation allowed to the arbiter only")
	// ErrBuyerOnly is returned when a caller other than the deal's buyer
	// invokes a buyer-only operation.
	ErrBuyerOnly = errors.New("operation allowed to the deal buyer only")
	// ErrUnauthorizedParticipant is returned when the caller is neither a
	// party of the deal nor the arbiter.
	ErrUnauthorizedParticipant = errors.New("caller is not a participant of the deal")
	// ErrServiceUnavailable is returned when a transfer-issuing operation is
	// re-entered while another one is still in flight.
	ErrServiceUnavailable = errors.New("service is unavailable, try again later")
	// ErrNullArbiterAddress ...
	ErrNullArbiterAddress = errors.New("arbiter address must not be null")
	// ErrInvalidAssetPair ...
	ErrInvalidAssetPair = errors.New("supported assets must be two distinct non-null asset hashes")
)
