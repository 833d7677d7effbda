package model

import "time"

// ==================== 角色 ====================

// Role 系统角色，封闭枚举
// 能力判断统一走下面的方法，不要在调用方散落字符串比较
type Role string

const (
	RoleCustomer Role = "customer" // 普通买家
	RoleSeller   Role = "seller"   // 卖家
	RoleAdmin    Role = "admin"    // 管理员
)

// Valid 是否为已知角色
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// CanSell 是否可以发布/管理商品
func (r Role) CanSell() bool {
	return r == RoleSeller || r == RoleAdmin
}

// IsAdmin 是否为管理员
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// RequirePhone 该角色注册时是否必须提供手机号 (超管除外)
func (r Role) RequirePhone() bool {
	return r == RoleSeller || r == RoleCustomer
}

// ==================== OTP 会话 ====================

// OTPTTL OTP 验证码有效期
const OTPTTL = 10 * time.Minute

// OTPSession 账号上的一次性验证码会话，作为值对象整体读写
// 重新生成会覆盖全部三个字段，旧会话随之失效
type OTPSession struct {
	Code     string     `gorm:"size:6" json:"-"`
	Ref      *string    `gorm:"size:64;uniqueIndex" json:"-"` // 会话引用标识，空会话为 NULL
	IssuedAt *time.Time `json:"-"`
}

// Live 是否存在未消费的会话
func (s *OTPSession) Live() bool {
	return s.Code != "" && s.Ref != nil
}

// ExpiredAt 会话在 now 时刻是否已超过有效期
func (s *OTPSession) ExpiredAt(now time.Time) bool {
	if s.IssuedAt == nil {
		return true
	}
	return now.After(s.IssuedAt.Add(OTPTTL))
}

// ==================== 用户 ====================

// User 系统用户
type User struct {
	BaseModel
	Username string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt 哈希
	Phone    string `gorm:"size:20" json:"phone"`

	Role        Role `gorm:"size:20;default:'customer'" json:"role"`
	IsSuperuser bool `gorm:"default:false" json:"-"`

	// 注册后默认未激活，首次 OTP 验证通过才允许登录
	IsActive bool `gorm:"default:false" json:"is_active"`

	// 账号至多持有一个存活的 OTP 会话
	OTP OTPSession `gorm:"embedded;embeddedPrefix:otp_" json:"-"`

	Products []Product `gorm:"foreignKey:OwnerID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// CanInvite 是否可以签发管理员邀请 (仅限超管)
func (u *User) CanInvite() bool {
	return u.IsSuperuser
}

// CanManageProduct 是否可以修改/删除该商品 (拥有者或管理员)
func (u *User) CanManageProduct(p *Product) bool {
	return u.Role.IsAdmin() || p.OwnerID == u.ID
}

// CanManageDiscount 是否可以修改/删除该折扣 (创建人或管理员)
func (u *User) CanManageDiscount(d *Discount) bool {
	return u.Role.IsAdmin() || d.CreatedByID == u.ID
}
