package models

// Profile 用户资料（结算资格校验的数据来源）
type Profile struct {
	FirstName     string `json:"first_name"`     // 名
	LastName      string `json:"last_name"`      // 姓
	Email         string `json:"email"`          // 邮箱
	EmailVerified bool   `json:"email_verified"` // 邮箱是否已验证
	Phone         string `json:"phone"`          // 手机号
	PhoneVerified bool   `json:"phone_verified"` // 手机号是否已验证
	Gender        string `json:"gender"`         // 性别（任意非空值均可）
	DateOfBirth   string `json:"date_of_birth"`  // 出生日期
}
