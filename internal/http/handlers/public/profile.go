package public

import (
	"github.com/shopora-next/internal/http/response"
	"github.com/shopora-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileUpdateRequest 资料更新请求（仅更新出现的字段）
type ProfileUpdateRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Gender      *string `json:"gender"`
	DateOfBirth *string `json:"date_of_birth"`
}

// GetProfile 获取用户资料
func (h *Handler) GetProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	profile, err := h.ProfileService.Get(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.profile_fetch_failed", err)
		return
	}
	response.Success(c, profile)
}

// UpdateProfile 更新用户资料
// 修改邮箱/手机号会重置对应已验证标记，写入相同值同样重置
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	profile, err := h.ProfileService.Update(uid, service.ProfileUpdateInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.profile_update_failed", err)
		return
	}
	response.Success(c, profile)
}

// GetCheckoutEligibility 结算资格检查
// 逐项收集未达标字段，供前端一次性展示
func (h *Handler) GetCheckoutEligibility(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	result, err := h.OrderService.CheckoutEligibility(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.profile_fetch_failed", err)
		return
	}
	response.Success(c, result)
}

// SendVerifyCodeRequest 发送验证码请求
type SendVerifyCodeRequest struct {
	TargetType     string                `json:"target_type" binding:"required"`
	Target         string                `json:"target" binding:"required"`
	CaptchaPayload CaptchaPayloadRequest `json:"captcha_payload"`
}

// SendVerifyCode 发送邮箱/手机验证码（演示环境仅投递日志任务）
func (h *Handler) SendVerifyCode(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req SendVerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if h.CaptchaService != nil {
		if captchaErr := h.CaptchaService.Verify(service.CaptchaSceneSendCode, req.CaptchaPayload.ToServicePayload()); captchaErr != nil {
			respondCaptchaError(c, captchaErr)
			return
		}
	}

	if err := h.VerificationService.SendCode(c.Request.Context(), uid, req.TargetType, req.Target); err != nil {
		respondWithMappedError(c, err, verifyCodeErrorRules, response.CodeInternal, "error.verify_send_failed")
		return
	}
	response.Success(c, gin.H{"sent": true})
}

// VerifyCodeRequest 校验验证码请求
type VerifyCodeRequest struct {
	TargetType string `json:"target_type" binding:"required"`
	Code       string `json:"code" binding:"required"`
}

// VerifyCode 校验验证码；通过后置位对应已验证标记
func (h *Handler) VerifyCode(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	verified, err := h.VerificationService.VerifyCode(c.Request.Context(), uid, req.TargetType, req.Code)
	if err != nil {
		respondWithMappedError(c, err, verifyCodeErrorRules, response.CodeInternal, "error.verify_send_failed")
		return
	}
	if !verified {
		respondError(c, response.CodeBadRequest, "error.verify_code_invalid", nil)
		return
	}

	profile, err := h.ProfileService.Get(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.profile_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"verified": true,
		"profile":  profile,
	})
}
