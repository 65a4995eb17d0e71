package models

// Follow is a directed edge in the follow graph: the follower sees the
// followee's posts in their feed. Existence is the only state; there is no
// timestamp and no approval step. The composite primary key guarantees at
// most one edge per ordered pair; follower and followee counts are derived
// queries, never stored counters.
type Follow struct {
	FollowerID uint `gorm:"primaryKey;autoIncrement:false" json:"follower_id"`
	FolloweeID uint `gorm:"primaryKey;autoIncrement:false" json:"followee_id"`

	Follower User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Followee User `gorm:"foreignKey:FolloweeID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
