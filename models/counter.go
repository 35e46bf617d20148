package models

// Counter backs the human-readable document numbers (QUO-, PRJ-, INV-).
// Rows are created lazily on first use and only ever mutated through the
// billing package's atomic increment; nothing reads and writes them in
// two steps.
type Counter struct {
	Name  string `gorm:"primaryKey;size:50" json:"name"`
	Value int64  `gorm:"not null;default:0" json:"value"`
}
