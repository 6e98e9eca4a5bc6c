package schema

// CreatorReputation represents the creator_reputation table - the per-creator aggregate ledger.
// Rows are created lazily on the creator's first token insert and are only ever incremented.
type CreatorReputation struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	Creator     string `gorm:"column:creator;not null;uniqueIndex;type:text" json:"creator"`
	ScamCount   int64  `gorm:"column:scam_count;default:0" json:"scam_count"`
	RuggedCount int64  `gorm:"column:rugged_count;default:0" json:"rugged_count"`
	TotalTokens int64  `gorm:"column:total_tokens;default:0" json:"total_tokens"`
}

// TableName specifies the table name for the CreatorReputation model
func (CreatorReputation) TableName() string {
	return "creator_reputation"
}

// ScamRatio returns the share of the creator's tokens flagged as scam
func (r CreatorReputation) ScamRatio() float64 {
	if r.TotalTokens == 0 {
		return 0
	}
	return float64(r.ScamCount) / float64(r.TotalTokens)
}

// RuggedRatio returns the share of the creator's tokens flagged as rugged
func (r CreatorReputation) RuggedRatio() float64 {
	if r.TotalTokens == 0 {
		return 0
	}
	return float64(r.RuggedCount) / float64(r.TotalTokens)
}

// HasHistory reports whether any of the creator's tokens were ever flagged
func (r CreatorReputation) HasHistory() bool {
	return r.ScamCount > 0 || r.RuggedCount > 0
}
