package schema

import "github.com/feral-file/token-tracker/internal/domain"

// Token represents the tokens table - one row per observed token launch
type Token struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	// Time is the observation timestamp in epoch milliseconds, set once at insert
	Time int64 `gorm:"column:time;not null" json:"time"`
	// Name is the display name of the token (not unique)
	Name string `gorm:"column:name;not null;type:text;index:idx_tokens_name" json:"name"`
	// Mint is the on-chain mint address; duplicates are allowed
	Mint string `gorm:"column:mint;not null;type:text;index:idx_tokens_mint" json:"mint"`
	// Creator is the wallet address that launched the token
	Creator string `gorm:"column:creator;not null;type:text;index:idx_tokens_creator" json:"creator"`
	// DuplicateCount starts at 1 and grows each time the name or creator reappears
	DuplicateCount int64 `gorm:"column:duplicate_count;default:1" json:"duplicate_count"`
	// IsScam is set by classification and never reset
	IsScam bool `gorm:"column:is_scam;default:false" json:"is_scam"`
	// IsRugged is set by classification and never reset
	IsRugged bool `gorm:"column:is_rugged;default:false" json:"is_rugged"`
}

// TableName specifies the table name for the Token model
func (Token) TableName() string {
	return "tokens"
}

// Classification returns the lifecycle state derived from the flags
func (t Token) Classification() domain.Classification {
	return domain.ClassificationOf(t.IsScam, t.IsRugged)
}
