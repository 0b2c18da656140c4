package service

import "errors"

// 服务层错误（handler 层通过 errors.Is 映射为响应码与 i18n 文案）
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserDisabled        = errors.New("user disabled")
	ErrEmailExists         = errors.New("email already registered")
	ErrEmailInvalid        = errors.New("email invalid")
	ErrPasswordTooShort    = errors.New("password too short")
	ErrLoginFailed         = errors.New("login failed")
	ErrAdminNotFound       = errors.New("admin not found")
	ErrPasswordMismatch    = errors.New("old password mismatch")
	ErrProductNotFound     = errors.New("product not found")
	ErrCartEmpty           = errors.New("cart empty")
	ErrLocationMissing     = errors.New("no delivery location")
	ErrLineNotFound        = errors.New("cart line not found")
	ErrQuantityInvalid     = errors.New("quantity invalid")
	ErrPromoCodeInvalid    = errors.New("promo code invalid")
	ErrLocationNotFound    = errors.New("location not found")
	ErrLocationInvalid     = errors.New("location invalid")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderStatusInvalid  = errors.New("order status transition invalid")
	ErrOrderNotDelivered   = errors.New("order not delivered")
	ErrReviewInvalid       = errors.New("review invalid")
	ErrProfileIncomplete   = errors.New("profile incomplete")
	ErrVerifyTargetInvalid = errors.New("verify target invalid")
	ErrVerifyCodeInvalid   = errors.New("verify code invalid")
	ErrVerifySendTooOften  = errors.New("verify code sent too often")
	ErrCaptchaRequired     = errors.New("captcha required")
	ErrCaptchaInvalid      = errors.New("captcha invalid")
	ErrCaptchaUnavailable  = errors.New("captcha provider unavailable")
)
