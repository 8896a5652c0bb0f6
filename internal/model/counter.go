package model

// Counter is a named monotonically increasing sequence
type Counter struct {
	Name string `gorm:"primaryKey;type:varchar(100)"`
	Seq  int64  `gorm:"not null;default:0"`
}

// SareeNameCounter drives auto-generated saree names
const SareeNameCounter = "saree_name"
