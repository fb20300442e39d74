package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/ledger"
)

// defaultEncryptionKey is the 32-byte key the "Save blockchain" menu
// option always seals with, matching the original's hardcoded demo key.
// The menu does not read LEDGER_ENCRYPTION_KEY; only the save subcommand
// does.
const defaultEncryptionKey = "mysecretkeymysecretkeymysecretk!"

// RunMenu drives the interactive 8-option menu against in, writing all
// output through app.UI, until the user chooses to exit or in is
// exhausted. It reproduces the original program's main() switch
// statement option for option.
func RunMenu(app *App, in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for {
		app.UI.MainMenu(app.CurrentUser)

		if !scanner.Scan() {
			return scanner.Err()
		}
		choice := strings.TrimSpace(scanner.Text())

		switch choice {
		case "1":
			handleRegister(app, scanner)
		case "2":
			handleListUsers(app)
		case "3":
			handleSelectUser(app, scanner)
		case "4":
			handleCreateTransaction(app, scanner)
		case "5":
			app.UI.Default(app.ShowBlockchain(), true)
		case "6":
			handleSave(app, scanner)
		case "7":
			handleValidate(app)
		case "8":
			app.UI.SectionHeader("System Shutdown")
			app.UI.Info("Thank you for using Base Blockchain Transaction System!", true)
			return nil
		default:
			app.UI.Error("Invalid menu option")
		}
	}
}

func handleRegister(app *App, scanner *bufio.Scanner) {
	app.UI.SectionHeader("User Registration")
	app.UI.Default("Enter new username: ", false)
	if !scanner.Scan() {
		return
	}
	user := strings.TrimSpace(scanner.Text())

	if err := app.RegisterUser(user); err != nil {
		app.UI.Error("Registration failed: " + err.Error())
		return
	}
	app.UI.Success(fmt.Sprintf("User '%s' registered successfully", user))
}

func handleListUsers(app *App) {
	app.UI.SectionHeader("Registered Users")
	users := app.Users()
	if len(users) == 0 {
		app.UI.Warning("No users registered yet")
		return
	}
	for _, user := range users {
		app.UI.Default(fmt.Sprintf(" - %s (balance: %s)", user, ledgerAmount(app, user)), true)
	}
}

func handleSelectUser(app *App, scanner *bufio.Scanner) {
	app.UI.SectionHeader("User Login")
	app.UI.Default("Enter username: ", false)
	if !scanner.Scan() {
		return
	}
	user := strings.TrimSpace(scanner.Text())

	if err := app.SelectUser(user); err != nil {
		app.UI.Error(err.Error())
		return
	}
	app.UI.Success("Logged in as: " + app.CurrentUser)
	app.UI.Info(fmt.Sprintf("Current balance: %s", ledgerAmount(app, app.CurrentUser)), true)
}

func handleCreateTransaction(app *App, scanner *bufio.Scanner) {
	app.UI.SectionHeader("New Transaction")

	app.UI.Default("Recipient's username: ", false)
	if !scanner.Scan() {
		return
	}
	receiver := strings.TrimSpace(scanner.Text())
	if receiver == "" {
		app.UI.Error("Recipient cannot be empty")
		return
	}

	app.UI.Default("Amount to send: ", false)
	if !scanner.Scan() {
		return
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(scanner.Text()), 64)
	if err != nil {
		app.UI.Error("Invalid amount format")
		return
	}

	balance := app.Ledger.Balance(app.CurrentUser)
	if amount > balance {
		app.UI.Error(fmt.Sprintf("Insufficient funds. Available: %s", ledgerAmount(app, app.CurrentUser)))
		return
	}

	app.UI.Info("Security Verification", true)
	app.UI.Default(fmt.Sprintf("Path to private key file (%s%s): ", app.CurrentUser, privateKeySuffix), false)
	if !scanner.Scan() {
		return
	}
	keyPath := strings.TrimSpace(scanner.Text())

	app.UI.SectionHeader("Processing Transaction")
	block, tx, err := app.CreateTransaction(receiver, amount, keyPath)
	if err != nil {
		app.UI.Error("Transaction failed: " + err.Error())
		return
	}

	app.UI.Info("Transaction Details:", true)
	app.UI.Default(fmt.Sprintf(" - Sender:    %s\n - Receiver:  %s\n - Amount:    %s\n - TX ID:     %s...\n",
		tx.Sender(), tx.Receiver(), ledger.FormatAmount(tx.Amount()), truncate(tx.TxID(), 12)), true)
	app.UI.Mining(fmt.Sprintf("Block #%d mined with nonce %d", block.Index(), block.Nonce()))
}

func handleSave(app *App, scanner *bufio.Scanner) {
	app.UI.SectionHeader("Blockchain Backup")
	path, err := app.SaveBlockchain("blockchain.dat", []byte(defaultEncryptionKey))
	if err != nil {
		app.UI.Error("Save failed: " + err.Error())
		return
	}
	app.UI.Success("Blockchain saved to " + path)
	app.UI.Warning("Keep encryption key safe: " + defaultEncryptionKey)
}

func handleValidate(app *App) {
	app.UI.SectionHeader("Blockchain Validation")
	if err := app.ValidateBlockchain(); err != nil {
		app.UI.Error("Blockchain validation failed: " + err.Error())
		return
	}
	app.UI.Success("Blockchain integrity verified!")
}

func ledgerAmount(app *App, user string) string {
	return fmt.Sprintf("%.6f", app.Ledger.Balance(user))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
