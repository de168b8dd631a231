package service

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/entryx/ticketing/internal/auth"
	"github.com/google/uuid"
	"github.com/stellar/go/keypair"
)

const challengeTTL = 5 * time.Minute

type WalletService interface {
	// Challenge hands out a one-time nonce for the wallet to sign.
	Challenge(ctx context.Context, publicKey string) (string, error)
	// Login verifies the signed nonce against the claimed public key and
	// returns a bearer token for organizer operations.
	Login(ctx context.Context, publicKey, challenge, signature string) (string, error)
}

type walletService struct {
	kv     KV
	tokens *auth.Manager
}

func NewWalletService(kv KV, tokens *auth.Manager) WalletService {
	return &walletService{kv: kv, tokens: tokens}
}

func challengeKey(publicKey string) string {
	return "wallet:challenge:" + publicKey
}

func (s *walletService) Challenge(ctx context.Context, publicKey string) (string, error) {
	if _, err := keypair.ParseAddress(publicKey); err != nil {
		return "", ErrInvalidPublicKey
	}

	nonce := uuid.NewString()
	s.kv.Set(ctx, challengeKey(publicKey), nonce, challengeTTL)
	return nonce, nil
}

func (s *walletService) Login(ctx context.Context, publicKey, challenge, signature string) (string, error) {
	stored, ok := s.kv.Get(ctx, challengeKey(publicKey))
	if !ok || stored != challenge {
		return "", ErrChallengeExpired
	}

	kp, err := keypair.ParseAddress(publicKey)
	if err != nil {
		return "", ErrInvalidPublicKey
	}
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return "", ErrInvalidSignature
	}
	if err := kp.Verify([]byte(challenge), sig); err != nil {
		return "", ErrInvalidSignature
	}

	s.kv.Delete(ctx, challengeKey(publicKey))
	return s.tokens.Issue(publicKey)
}
