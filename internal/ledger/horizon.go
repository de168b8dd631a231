package ledger

import (
	"context"
	"fmt"

	"github.com/stellar/go/clients/horizonclient"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/txnbuild"
)

// Tokenization transactions give the user 5 minutes to land on the ledger.
const mintTimeoutSeconds = 300

// HorizonLedger talks to a Horizon server. The issuer account mints every
// ticket asset; the distributor account receives the minted units for
// primary sale.
type HorizonLedger struct {
	client      *horizonclient.Client
	issuer      *keypair.Full
	distributor *keypair.Full
	passphrase  string
}

func NewHorizonLedger(horizonURL, networkPassphrase, issuerSecret, distributorSecret string) (*HorizonLedger, error) {
	issuer, err := keypair.ParseFull(issuerSecret)
	if err != nil {
		return nil, fmt.Errorf("parse issuer key: %w", err)
	}
	distributor, err := keypair.ParseFull(distributorSecret)
	if err != nil {
		return nil, fmt.Errorf("parse distributor key: %w", err)
	}
	return &HorizonLedger{
		client:      &horizonclient.Client{HorizonURL: horizonURL},
		issuer:      issuer,
		distributor: distributor,
		passphrase:  networkPassphrase,
	}, nil
}

// IssuerAddress is the public key all ticket assets are issued under.
func (l *HorizonLedger) IssuerAddress() string {
	return l.issuer.Address()
}

// Mint establishes the distributor's trustline for the asset and pays the
// full supply from the issuer, in a single transaction signed by both.
func (l *HorizonLedger) Mint(ctx context.Context, code string, amount string) (string, error) {
	issuerAccount, err := l.client.AccountDetail(horizonclient.AccountRequest{
		AccountID: l.issuer.Address(),
	})
	if err != nil {
		return "", fmt.Errorf("load issuer account: %w", err)
	}

	asset := txnbuild.CreditAsset{Code: code, Issuer: l.issuer.Address()}
	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        &issuerAccount,
		IncrementSequenceNum: true,
		BaseFee:              txnbuild.MinBaseFee,
		Preconditions: txnbuild.Preconditions{
			TimeBounds: txnbuild.NewTimeout(mintTimeoutSeconds),
		},
		Operations: []txnbuild.Operation{
			&txnbuild.ChangeTrust{
				Line:          txnbuild.ChangeTrustAssetWrapper{Asset: asset},
				SourceAccount: l.distributor.Address(),
			},
			&txnbuild.Payment{
				Destination: l.distributor.Address(),
				Asset:       asset,
				Amount:      amount,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("build mint transaction: %w", err)
	}

	tx, err = tx.Sign(l.passphrase, l.issuer, l.distributor)
	if err != nil {
		return "", fmt.Errorf("sign mint transaction: %w", err)
	}

	resp, err := l.client.SubmitTransaction(tx)
	if err != nil {
		return "", fmt.Errorf("submit mint transaction: %w", err)
	}
	return resp.Hash, nil
}

func (l *HorizonLedger) Account(ctx context.Context, accountID string) (*Account, error) {
	detail, err := l.client.AccountDetail(horizonclient.AccountRequest{AccountID: accountID})
	if err != nil {
		return nil, fmt.Errorf("load account %s: %w", accountID, err)
	}

	acc := &Account{
		ID:            detail.AccountID,
		SubentryCount: detail.SubentryCount,
	}
	for _, b := range detail.Balances {
		acc.Balances = append(acc.Balances, Balance{
			Code:   b.Code,
			Issuer: b.Issuer,
			Amount: b.Balance,
			Native: b.Type == "native",
		})
	}
	return acc, nil
}
