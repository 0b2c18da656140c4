package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultLocale 默认语言
const DefaultLocale = "en"

// LocaleHeader 前端传递语言偏好的请求头
const LocaleHeader = "X-Locale"

var supportedLocales = map[string]bool{
	"en":    true,
	"zh-CN": true,
}

// ResolveLocale 解析请求语言（X-Locale 优先，其次 Accept-Language）
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if locale := normalizeLocale(c.GetHeader(LocaleHeader)); locale != "" {
		return locale
	}
	accept := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(accept, ",") {
		lang := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if locale := normalizeLocale(lang); locale != "" {
			return locale
		}
	}
	return DefaultLocale
}

func normalizeLocale(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if supportedLocales[trimmed] {
		return trimmed
	}
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "zh") {
		return "zh-CN"
	}
	if strings.HasPrefix(lower, "en") {
		return "en"
	}
	return ""
}

// T 返回指定语言的文案；未命中时回退默认语言，再回退 key 本身
func T(locale, key string) string {
	if messages, ok := catalog[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 返回带参数的文案
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

var catalog = map[string]map[string]string{
	"en": {
		"error.bad_request":             "invalid request",
		"error.unauthorized":            "unauthorized",
		"error.forbidden":               "permission denied",
		"error.not_found":               "not found",
		"error.internal":                "internal error",
		"error.save_failed":             "failed to save",
		"error.auth_header_missing":     "authorization header missing",
		"error.auth_header_invalid":     "authorization header invalid",
		"error.token_invalid":           "invalid token",
		"error.token_revoked":           "token revoked",
		"error.jwt_secret_missing":      "jwt secret not configured",
		"error.user_disabled":           "account disabled",
		"error.user_id_invalid":         "invalid user id",
		"error.user_id_type_invalid":    "invalid user id type",
		"error.admin_id_invalid":        "invalid admin id",
		"error.admin_id_type_invalid":   "invalid admin id type",
		"error.login_failed":            "invalid email or password",
		"error.login_too_many":          "too many login attempts, try again in %d seconds",
		"error.rate_limited":            "too many requests, try again in %d seconds",
		"error.rate_limit_unavailable":  "rate limiter unavailable",
		"error.register_failed":         "registration failed",
		"error.email_exists":            "email already registered",
		"error.email_invalid":           "invalid email address",
		"error.password_too_short":      "password too short",
		"error.password_old_invalid":    "old password incorrect",
		"error.user_not_found":          "user not found",
		"error.user_fetch_failed":       "failed to load user",
		"error.product_not_found":       "product not found",
		"error.product_fetch_failed":    "failed to load products",
		"error.cart_empty":              "cart is empty",
		"error.cart_fetch_failed":       "failed to load cart",
		"error.cart_update_failed":      "failed to update cart",
		"error.line_not_found":          "item not found in cart",
		"error.quantity_invalid":        "invalid quantity",
		"error.promo_invalid":           "invalid promo code",
		"error.wishlist_fetch_failed":   "failed to load wishlist",
		"error.wishlist_update_failed":  "failed to update wishlist",
		"error.location_not_found":      "address not found",
		"error.location_invalid":        "invalid address",
		"error.location_missing":        "delivery address required",
		"error.location_fetch_failed":   "failed to load addresses",
		"error.location_update_failed":  "failed to update address",
		"error.order_not_found":         "order not found",
		"error.order_status_invalid":    "invalid order status transition",
		"error.order_not_delivered":     "reviews are only allowed for delivered orders",
		"error.review_invalid":          "invalid review",
		"error.review_update_failed":    "failed to update review",
		"error.order_create_failed":     "failed to place order",
		"error.order_fetch_failed":      "failed to load orders",
		"error.profile_incomplete":      "profile incomplete",
		"error.profile_update_failed":   "failed to update profile",
		"error.profile_fetch_failed":    "failed to load profile",
		"error.verify_target_invalid":   "invalid verification target",
		"error.verify_code_invalid":     "invalid verification code",
		"error.verify_send_too_often":   "verification code sent too frequently",
		"error.verify_send_failed":      "failed to send verification code",
		"error.captcha_required":        "captcha required",
		"error.captcha_invalid":         "captcha verification failed",
		"error.captcha_unavailable":     "captcha service unavailable",
		"error.captcha_verify_failed":   "captcha verification error",
		"error.captcha_generate_failed": "failed to generate captcha",
	},
	"zh-CN": {
		"error.bad_request":             "请求参数无效",
		"error.unauthorized":            "未登录或登录已过期",
		"error.forbidden":               "没有操作权限",
		"error.not_found":               "资源不存在",
		"error.internal":                "服务内部错误",
		"error.save_failed":             "保存失败",
		"error.auth_header_missing":     "缺少认证信息",
		"error.auth_header_invalid":     "认证信息格式错误",
		"error.token_invalid":           "无效的 token",
		"error.token_revoked":           "token 已失效",
		"error.jwt_secret_missing":      "JWT 密钥未配置",
		"error.user_disabled":           "账号已被禁用",
		"error.user_id_invalid":         "用户 ID 无效",
		"error.user_id_type_invalid":    "用户 ID 类型错误",
		"error.admin_id_invalid":        "管理员 ID 无效",
		"error.admin_id_type_invalid":   "管理员 ID 类型错误",
		"error.login_failed":            "邮箱或密码错误",
		"error.login_too_many":          "登录尝试过于频繁，请 %d 秒后重试",
		"error.rate_limited":            "请求过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable":  "限流服务不可用",
		"error.register_failed":         "注册失败",
		"error.email_exists":            "邮箱已被注册",
		"error.email_invalid":           "邮箱格式无效",
		"error.password_too_short":      "密码长度不足",
		"error.password_old_invalid":    "原密码错误",
		"error.user_not_found":          "用户不存在",
		"error.user_fetch_failed":       "用户信息加载失败",
		"error.product_not_found":       "商品不存在",
		"error.product_fetch_failed":    "商品加载失败",
		"error.cart_empty":              "购物车为空",
		"error.cart_fetch_failed":       "购物车加载失败",
		"error.cart_update_failed":      "购物车更新失败",
		"error.line_not_found":          "购物车中不存在该商品",
		"error.quantity_invalid":        "数量无效",
		"error.promo_invalid":           "优惠码无效",
		"error.wishlist_fetch_failed":   "心愿单加载失败",
		"error.wishlist_update_failed":  "心愿单更新失败",
		"error.location_not_found":      "收货地址不存在",
		"error.location_invalid":        "收货地址无效",
		"error.location_missing":        "请先设置收货地址",
		"error.location_fetch_failed":   "收货地址加载失败",
		"error.location_update_failed":  "收货地址更新失败",
		"error.order_not_found":         "订单不存在",
		"error.order_status_invalid":    "订单状态流转不合法",
		"error.order_not_delivered":     "仅已送达订单可以评价",
		"error.review_invalid":          "评价内容无效",
		"error.review_update_failed":    "评价更新失败",
		"error.order_create_failed":     "下单失败",
		"error.order_fetch_failed":      "订单加载失败",
		"error.profile_incomplete":      "个人资料不完整",
		"error.profile_update_failed":   "资料更新失败",
		"error.profile_fetch_failed":    "资料加载失败",
		"error.verify_target_invalid":   "验证对象无效",
		"error.verify_code_invalid":     "验证码错误",
		"error.verify_send_too_often":   "验证码发送过于频繁",
		"error.verify_send_failed":      "验证码发送失败",
		"error.captcha_required":        "需要图形验证码",
		"error.captcha_invalid":         "图形验证码校验失败",
		"error.captcha_unavailable":     "图形验证码服务不可用",
		"error.captcha_verify_failed":   "图形验证码校验异常",
		"error.captcha_generate_failed": "图形验证码生成失败",
	},
}
