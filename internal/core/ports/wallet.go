package ports

import "context"

// Wallet is the transfer capability the escrow engine relies on to move
// funds between the parties and the custody account. Every transfer either
// fully succeeds or fails the whole enclosing operation, partial transfers
// are not possible.
type Wallet interface {
	// TransferIn moves the given amount of asset from the sender to custody.
	TransferIn(ctx context.Context, asset, from string, amount uint64) error
	// TransferOut moves the given amount of asset from custody to the
	// recipient.
	TransferOut(ctx context.Context, asset, to string, amount uint64) error
}
