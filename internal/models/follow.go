package models

import "time"

// Follow is a directed edge: FollowerID follows FollowingID. Both the
// follower and following views of a user are derived from this one table,
// so the two sides of an edge can never disagree.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}
