package ledger

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/address"
	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/foundation/clock"
	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/oracle"
)

// FormatAmount renders amount as the single, versioned decimal string used
// everywhere a transaction's amount enters a hash or a signature: the
// tx_id pre-image, the signing payload, and display(). Any change here
// silently invalidates every previously stored tx_id, signature, and block
// hash — this is the "single largest hazard" the project's specification
// calls out.
//
// The format is fixed-point with 6 digits after the decimal point, the
// same rendering std::to_string(double) produces in the original C++
// implementation this system was ported from.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 6, 64)
}

// Transaction is an immutable, optionally-signed value transfer. Sender
// "System" is the sentinel for system transactions (genesis only), which
// never require a signature.
type Transaction struct {
	sender    string
	receiver  string
	amount    float64
	timestamp string
	metadata  string
	txID      string
	signature string // hex-encoded; empty until Sign is called
}

const maxMetadataLen = 512

// Factory constructs Transaction values, carrying the clock and hash
// oracle every transaction needs at construction time.
type Factory struct {
	Clock  clock.Clock
	Oracle oracle.Oracle
}

// New constructs a transaction. Invalid sender/receiver addresses are
// silently stored as empty strings and non-positive amounts are coerced
// to zero, matching the original system's constructor contract: bad
// input produces an inert transaction that downstream validation will
// reject, rather than a constructor error.
func (f Factory) New(from, to string, amount float64, metadata string) Transaction {
	sender := ""
	if address.IsValid(from) {
		sender = from
	}

	receiver := ""
	if address.IsValid(to) {
		receiver = to
	}

	if amount <= 0 {
		amount = 0
	}

	if len(metadata) > maxMetadataLen {
		metadata = metadata[:maxMetadataLen]
	}

	timestamp := f.Clock.Now()

	tx := Transaction{
		sender:    sender,
		receiver:  receiver,
		amount:    amount,
		timestamp: timestamp,
		metadata:  metadata,
	}
	tx.txID = oracle.HashHex(f.Oracle, []byte(tx.idPreimage()))

	return tx
}

// idPreimage is the deterministic byte string hashed to produce tx_id.
func (tx Transaction) idPreimage() string {
	return tx.sender + tx.receiver + FormatAmount(tx.amount) + tx.timestamp + tx.metadata
}

// signingPayload is the deterministic byte string a signature covers. It
// must be reconstructed identically at signing time and at verification
// time — see FormatAmount's warning.
func (tx Transaction) signingPayload() string {
	return tx.txID + tx.sender + tx.receiver + FormatAmount(tx.amount) + tx.timestamp + tx.metadata
}

// Sign signs the transaction with the given PEM-encoded RSA private key.
// It fails if the transaction is already signed or if the sender,
// receiver, or amount are not set to something signable.
func (tx *Transaction) Sign(o oracle.Oracle, privateKeyPEM string) error {
	if tx.signature != "" {
		return ErrAlreadySigned
	}

	if tx.sender == "" || tx.receiver == "" || tx.amount <= 0 {
		return ErrInvalidTransaction
	}

	sig, err := o.Sign(privateKeyPEM, []byte(tx.signingPayload()))
	if err != nil {
		return fmt.Errorf("ledger: sign transaction %s: %w", tx.txID, err)
	}

	tx.signature = hex.EncodeToString(sig)
	return nil
}

// Verify reports whether the transaction's signature is valid under the
// PEM-encoded RSA public key.
func (tx Transaction) Verify(o oracle.Oracle, publicKeyPEM string) bool {
	sig, err := hex.DecodeString(tx.signature)
	if err != nil {
		return false
	}
	return o.Verify(publicKeyPEM, []byte(tx.signingPayload()), sig)
}

// Display renders the transaction for human consumption and for inclusion
// in a block's hash pre-image. It is part of the protocol: changing its
// format changes every block hash that contains this transaction.
func (tx Transaction) Display() string {
	return fmt.Sprintf(
		"txId: %s, From: %s, To: %s, Amount: %s, Timestamp: %s, Metadata: %s, Signature: %s",
		tx.txID, tx.sender, tx.receiver, FormatAmount(tx.amount), tx.timestamp, tx.metadata, tx.signature,
	)
}

// IsSystem reports whether the sender is the "System" sentinel.
func (tx Transaction) IsSystem() bool {
	return tx.sender == address.System
}

// Accessors. Transactions carry no exported fields so callers can never
// mutate a field out from under a signature.
func (tx Transaction) Sender() string     { return tx.sender }
func (tx Transaction) Receiver() string   { return tx.receiver }
func (tx Transaction) Amount() float64    { return tx.amount }
func (tx Transaction) Timestamp() string  { return tx.timestamp }
func (tx Transaction) Metadata() string   { return tx.metadata }
func (tx Transaction) TxID() string       { return tx.txID }
func (tx Transaction) Signature() string  { return tx.signature }
func (tx Transaction) HasSignature() bool { return tx.signature != "" }
