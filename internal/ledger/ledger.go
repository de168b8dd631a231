// Package ledger is the narrow surface the service consumes from the
// external ledger: minting a tokenized ticket category and reading account
// balances. Signing, fees and transport live behind this interface.
package ledger

import (
	"context"
	"strconv"
)

// Balance is one asset line held by a ledger account.
type Balance struct {
	Code   string
	Issuer string
	Amount string
	Native bool
}

// Account is the subset of ledger account state the service reads.
type Account struct {
	ID            string
	SubentryCount int32
	Balances      []Balance
}

type Ledger interface {
	// Mint issues the full supply of an asset code from the issuer to the
	// distributor and returns the transaction hash.
	Mint(ctx context.Context, code string, amount string) (string, error)

	// Account loads current account state, including balances.
	Account(ctx context.Context, accountID string) (*Account, error)
}

// AssetBalance returns the account's balance for the given asset line, or
// false when no trustline exists.
func AssetBalance(acc *Account, code, issuer string) (float64, bool) {
	for _, b := range acc.Balances {
		if !b.Native && b.Code == code && b.Issuer == issuer {
			amount, err := strconv.ParseFloat(b.Amount, 64)
			if err != nil {
				return 0, false
			}
			return amount, true
		}
	}
	return 0, false
}

// NativeBalance returns the account's native (XLM) balance.
func NativeBalance(acc *Account) float64 {
	for _, b := range acc.Balances {
		if b.Native {
			amount, _ := strconv.ParseFloat(b.Amount, 64)
			return amount
		}
	}
	return 0
}
