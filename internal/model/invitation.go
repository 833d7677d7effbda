package model

import (
	"time"

	"github.com/google/uuid"
)

// InvitationTTL 邀请默认有效期
const InvitationTTL = 3 * 24 * time.Hour

// Invitation 管理员入驻邀请
// 消费后只打 is_used 标记，不删除记录，保留审计痕迹
type Invitation struct {
	BaseModel
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Token string `gorm:"size:64;uniqueIndex;not null" json:"-"`

	InvitedByID int64 `gorm:"index;not null" json:"invited_by"`
	InvitedBy   *User `gorm:"foreignKey:InvitedByID" json:"-"`

	IsUsed    bool      `gorm:"default:false" json:"is_used"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

func (Invitation) TableName() string {
	return "invitations"
}

// NewInvitation 构造一条新邀请，token 为不可猜测的随机 UUID
func NewInvitation(email string, inviterID int64, now time.Time) *Invitation {
	return &Invitation{
		Email:       email,
		Token:       uuid.NewString(),
		InvitedByID: inviterID,
		ExpiresAt:   now.Add(InvitationTTL),
	}
}

// ValidAt 在 now 时刻是否可被接受：未消费且未过期
func (i *Invitation) ValidAt(now time.Time) bool {
	return !i.IsUsed && now.Before(i.ExpiresAt)
}

// IsValid 当前时刻是否可被接受
func (i *Invitation) IsValid() bool {
	return i.ValidAt(time.Now())
}
