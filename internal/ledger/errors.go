package ledger

import "errors"

// Errors returned by Transaction and Ledger operations. Callers should
// compare against these with errors.Is rather than matching strings.
var (
	// ErrAlreadySigned is returned by Transaction.Sign when the
	// transaction already carries a signature.
	ErrAlreadySigned = errors.New("ledger: transaction already signed")

	// ErrInvalidTransaction is returned when a transaction's sender,
	// receiver, or amount are not set to something that can be signed
	// or added to a block.
	ErrInvalidTransaction = errors.New("ledger: invalid transaction")

	// ErrUnsignedTransaction is returned when AddBlock receives a
	// non-system transaction without a signature.
	ErrUnsignedTransaction = errors.New("ledger: transaction is not signed")

	// ErrBadSignature is returned when a transaction's signature does
	// not verify against the sender's registered public key.
	ErrBadSignature = errors.New("ledger: signature does not verify")

	// ErrUnknownSender is returned when a transaction's sender has no
	// entry in the key registry.
	ErrUnknownSender = errors.New("ledger: sender has no registered public key")

	// ErrInsufficientFunds is returned when a sender's working balance
	// cannot cover a transaction's amount.
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")

	// ErrEmptyBlock is returned by AddBlock when given no transactions.
	ErrEmptyBlock = errors.New("ledger: block must contain at least one transaction")

	// ErrAddressTaken is returned by Register when the address is
	// already registered.
	ErrAddressTaken = errors.New("ledger: address already registered")

	// ErrAddressInvalid is returned by Register when the address fails
	// the address policy.
	ErrAddressInvalid = errors.New("ledger: address is not valid")

	// ErrChainBroken is returned by Validate describing a structural or
	// cryptographic break in the chain. It is wrapped with details of
	// which block and why.
	ErrChainBroken = errors.New("ledger: chain validation failed")
)
