// Package cli wires the ledger, key management, and console output into
// the interactive menu and the equivalent non-interactive subcommands,
// adapted from the original system's single main() switch statement.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/address"
	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/consoleui"
	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/ledger"
	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/oracle"
	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/persistence"
)

// privateKeySuffix is the filename convention a private key file must
// match before the CLI will read it, matching the original's
// "_private.pem" check.
const privateKeySuffix = "_private.pem"

// App bundles the ledger and its collaborators with the session state an
// interactive menu needs: which user is currently logged in.
type App struct {
	Ledger      *ledger.Ledger
	Oracle      oracle.Oracle
	UI          consoleui.UI
	Log         *zap.SugaredLogger
	Validate    *validator.Validate
	DataDir     string
	CurrentUser string
}

// registerInput is the struct-tag-validated shape of a registration
// request: a single address field gated by the "ledgeraddr" tag that
// NewValidator registers.
type registerInput struct {
	User string `validate:"required,ledgeraddr"`
}

// transactionInput is the struct-tag-validated shape of a send request:
// the receiving address, gated the same way as registerInput, plus a
// strictly positive amount.
type transactionInput struct {
	Receiver string  `validate:"required,ledgeraddr"`
	Amount   float64 `validate:"gt=0"`
}

// NewApp constructs an App around an already-initialized ledger (genesis
// mined) and registers the genesis user's freshly generated key pair,
// persisting the private half to DataDir so the CLI can immediately
// spend from it.
func NewApp(l *ledger.Ledger, o oracle.Oracle, ui consoleui.UI, log *zap.SugaredLogger, dataDir string) (*App, error) {
	v, err := address.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("cli: build validator: %w", err)
	}

	a := &App{
		Ledger:      l,
		Oracle:      o,
		UI:          ui,
		Log:         log,
		Validate:    v,
		DataDir:     dataDir,
		CurrentUser: ledger.GenesisUser,
	}

	if _, ok := l.Registry().Lookup(ledger.GenesisUser); !ok {
		if err := a.registerWithFreshKeys(ledger.GenesisUser); err != nil {
			return nil, fmt.Errorf("cli: register genesis user: %w", err)
		}
	}

	return a, nil
}

// registerWithFreshKeys generates an RSA key pair for user, registers
// the public half with the ledger, and writes the private half to
// <DataDir>/<user>_private.pem.
func (a *App) registerWithFreshKeys(user string) error {
	kp, err := oracle.GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("generate key pair: %w", err)
	}

	if err := a.Ledger.Register(user, kp.PublicKeyPEM); err != nil {
		return fmt.Errorf("register public key: %w", err)
	}

	path := a.privateKeyPath(user)
	if err := os.WriteFile(path, []byte(kp.PrivateKeyPEM), 0o600); err != nil {
		return fmt.Errorf("write private key: %w", err)
	}

	a.Log.Infow("registered user", "user", user, "private_key_path", path)
	return nil
}

func (a *App) privateKeyPath(user string) string {
	return a.DataDir + "/" + user + privateKeySuffix
}

// RegisterUser validates and registers a brand-new user with a fresh
// key pair.
func (a *App) RegisterUser(user string) error {
	if err := a.Validate.Struct(registerInput{User: user}); err != nil {
		return fmt.Errorf("cli: invalid username %q: %w", user, err)
	}
	if err := a.registerWithFreshKeys(user); err != nil {
		return err
	}
	return nil
}

// Users returns every registered username.
func (a *App) Users() []string {
	return a.Ledger.Registry().Addresses()
}

// SelectUser switches the session's current user, failing if the user
// is not registered.
func (a *App) SelectUser(user string) error {
	if _, ok := a.Ledger.Registry().Lookup(user); !ok {
		return fmt.Errorf("user %q not found", user)
	}
	a.CurrentUser = user
	return nil
}

// CreateTransaction builds, signs with the key file at keyPath, and
// submits a single-transaction block from the current user to receiver.
// keyPath must end in "_private.pem", matching the original's file
// convention.
func (a *App) CreateTransaction(receiver string, amount float64, keyPath string) (ledger.Block, ledger.Transaction, error) {
	if err := a.Validate.Struct(transactionInput{Receiver: receiver, Amount: amount}); err != nil {
		return ledger.Block{}, ledger.Transaction{}, fmt.Errorf("cli: invalid transaction input: %w", err)
	}

	if !strings.HasSuffix(keyPath, privateKeySuffix) {
		return ledger.Block{}, ledger.Transaction{}, fmt.Errorf("invalid key file format, expected a %q file", privateKeySuffix)
	}

	keyBytes, err := os.ReadFile(keyPath)
	if err != nil {
		return ledger.Block{}, ledger.Transaction{}, fmt.Errorf("read private key: %w", err)
	}
	if len(keyBytes) == 0 {
		return ledger.Block{}, ledger.Transaction{}, fmt.Errorf("private key is empty")
	}

	tx := a.Ledger.NewTransaction(a.CurrentUser, receiver, amount, "")
	if err := tx.Sign(a.Oracle, string(keyBytes)); err != nil {
		return ledger.Block{}, ledger.Transaction{}, fmt.Errorf("sign transaction: %w", err)
	}

	block, err := a.Ledger.AddBlock([]ledger.Transaction{tx})
	if err != nil {
		return ledger.Block{}, ledger.Transaction{}, fmt.Errorf("add block: %w", err)
	}

	return block, tx, nil
}

// ShowBlockchain renders every block in the chain.
func (a *App) ShowBlockchain() string {
	var b strings.Builder
	for _, block := range a.Ledger.Blocks() {
		b.WriteString(block.Display())
		b.WriteString(strings.Repeat("-", 40) + "\n")
	}
	return b.String()
}

// SaveBlockchain serializes and seals the chain to <DataDir>/<filename>
// under key, returning the path written.
func (a *App) SaveBlockchain(filename string, key []byte) (string, error) {
	path := a.DataDir + "/" + filename
	if err := persistence.Save(a.Ledger, a.Oracle, key, path); err != nil {
		return "", err
	}
	return path, nil
}

// ValidateBlockchain replays the entire chain and reports whether it is
// internally consistent.
func (a *App) ValidateBlockchain() error {
	return a.Ledger.Validate()
}
