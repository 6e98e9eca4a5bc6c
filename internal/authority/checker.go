package authority

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/feral-file/token-tracker/internal/adapter"
	"github.com/feral-file/token-tracker/internal/domain"
	"github.com/feral-file/token-tracker/internal/logger"
)

// Status describes the authorities still held over a token mint
type Status struct {
	MintAddress            string  `json:"mint_address"`
	HasMintAuthority       bool    `json:"has_mint_authority"`
	HasFreezeAuthority     bool    `json:"has_freeze_authority"`
	MintAuthorityAddress   *string `json:"mint_authority_address"`
	FreezeAuthorityAddress *string `json:"freeze_authority_address"`
	// IsSecure is true when neither authority is set, regardless of Settings
	IsSecure bool   `json:"is_secure"`
	Supply   string `json:"supply"`
	Decimals uint8  `json:"decimals"`
}

// Settings controls which authorities IsTokenSecure tolerates
type Settings struct {
	AllowMintAuthority   bool
	AllowFreezeAuthority bool
	// Commitment is the RPC commitment level, defaults to confirmed
	Commitment string
}

// Passes reports whether status satisfies the settings
func (s Settings) Passes(status *Status) bool {
	return (!status.HasMintAuthority || s.AllowMintAuthority) &&
		(!status.HasFreezeAuthority || s.AllowFreezeAuthority)
}

// Checker inspects token mints on chain
//
//go:generate mockgen -source=checker.go -destination=../mocks/authority_checker.go -package=mocks -mock_names=Checker=MockAuthorityChecker
type Checker interface {
	// GetTokenAuthorities returns the mint and freeze authority status of the mint
	GetTokenAuthorities(ctx context.Context, mint string) (*Status, error)

	// IsTokenSecure reports whether the mint passes the configured authority policy
	IsTokenSecure(ctx context.Context, mint string) (bool, error)
}

type checker struct {
	client   adapter.RPCClient
	settings Settings
}

// NewChecker creates a checker on top of a Solana JSON-RPC client
func NewChecker(client adapter.RPCClient, settings Settings) Checker {
	if settings.Commitment == "" {
		settings.Commitment = domain.DEFAULT_COMMITMENT
	}
	return &checker{client: client, settings: settings}
}

// accountInfoResult is the getAccountInfo response with jsonParsed encoding
type accountInfoResult struct {
	Value *struct {
		Owner string          `json:"owner"`
		Data  json.RawMessage `json:"data"`
	} `json:"value"`
}

// parsedAccountData is the data field of a parsed SPL token account.
// Accounts the node cannot parse come back as a [payload, encoding] array instead.
type parsedAccountData struct {
	Program string `json:"program"`
	Parsed  struct {
		Type string `json:"type"`
		Info struct {
			MintAuthority   *string `json:"mintAuthority"`
			FreezeAuthority *string `json:"freezeAuthority"`
			Supply          string  `json:"supply"`
			Decimals        uint8   `json:"decimals"`
			IsInitialized   bool    `json:"isInitialized"`
		} `json:"info"`
	} `json:"parsed"`
}

// GetTokenAuthorities fetches the mint account and reports its authorities
func (c *checker) GetTokenAuthorities(ctx context.Context, mint string) (*Status, error) {
	mint = strings.TrimSpace(mint)
	if !domain.IsValidSolanaAddress(mint) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMint, mint)
	}

	var result accountInfoResult
	err := c.client.CallContext(ctx, &result, "getAccountInfo", mint, map[string]interface{}{
		"encoding":   "jsonParsed",
		"commitment": c.settings.Commitment,
	})
	if err != nil {
		logger.WarnCtx(ctx, "getAccountInfo failed", zap.String("mint", mint), zap.Error(err))
		return nil, fmt.Errorf("failed to get account info for %s: %w", mint, err)
	}

	if result.Value == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrMintAccountNotFound, mint)
	}

	if result.Value.Owner != domain.SPL_TOKEN_PROGRAM_ID && result.Value.Owner != domain.SPL_TOKEN_2022_PROGRAM_ID {
		return nil, fmt.Errorf("%w: %s is owned by %s", domain.ErrNotMintAccount, mint, result.Value.Owner)
	}

	var data parsedAccountData
	if err := json.Unmarshal(result.Value.Data, &data); err != nil || data.Parsed.Type != "mint" {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotMintAccount, mint)
	}

	info := data.Parsed.Info
	status := &Status{
		MintAddress:            mint,
		HasMintAuthority:       info.MintAuthority != nil,
		HasFreezeAuthority:     info.FreezeAuthority != nil,
		MintAuthorityAddress:   info.MintAuthority,
		FreezeAuthorityAddress: info.FreezeAuthority,
		Supply:                 info.Supply,
		Decimals:               info.Decimals,
	}
	status.IsSecure = !status.HasMintAuthority && !status.HasFreezeAuthority

	return status, nil
}

// IsTokenSecure applies the configured policy to the mint's authorities
func (c *checker) IsTokenSecure(ctx context.Context, mint string) (bool, error) {
	status, err := c.GetTokenAuthorities(ctx, mint)
	if err != nil {
		return false, err
	}
	return c.settings.Passes(status), nil
}
