package public

import (
	"errors"

	"github.com/shopora-next/internal/http/response"
	"github.com/shopora-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var cartMutationErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrLineNotFound, code: response.CodeNotFound, key: "error.line_not_found"},
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, key: "error.quantity_invalid"},
	{target: service.ErrPromoCodeInvalid, code: response.CodeBadRequest, key: "error.promo_invalid"},
}

var locationMutationErrorRules = []mappedHandlerError{
	{target: service.ErrLocationNotFound, code: response.CodeNotFound, key: "error.location_not_found"},
	{target: service.ErrLocationInvalid, code: response.CodeBadRequest, key: "error.location_invalid"},
}

var orderPlaceErrorRules = []mappedHandlerError{
	{target: service.ErrProfileIncomplete, code: response.CodeBadRequest, key: "error.profile_incomplete"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrLocationMissing, code: response.CodeBadRequest, key: "error.location_missing"},
	{target: service.ErrPromoCodeInvalid, code: response.CodeBadRequest, key: "error.promo_invalid"},
}

var orderReviewErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderNotDelivered, code: response.CodeBadRequest, key: "error.order_not_delivered"},
	{target: service.ErrLineNotFound, code: response.CodeNotFound, key: "error.line_not_found"},
	{target: service.ErrReviewInvalid, code: response.CodeBadRequest, key: "error.review_invalid"},
}

var verifyCodeErrorRules = []mappedHandlerError{
	{target: service.ErrVerifyTargetInvalid, code: response.CodeBadRequest, key: "error.verify_target_invalid"},
	{target: service.ErrVerifySendTooOften, code: response.CodeTooManyRequests, key: "error.verify_send_too_often"},
}

func respondCartMutationError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartMutationErrorRules, response.CodeInternal, "error.cart_update_failed")
}

func respondLocationMutationError(c *gin.Context, err error) {
	respondWithMappedError(c, err, locationMutationErrorRules, response.CodeInternal, "error.location_update_failed")
}

func respondOrderPlaceError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderPlaceErrorRules, response.CodeInternal, "error.order_create_failed")
}

func respondOrderReviewError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderReviewErrorRules, response.CodeInternal, "error.review_update_failed")
}

// respondCaptchaError 人机校验失败的统一响应；返回 true 表示已写出响应。
func respondCaptchaError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, service.ErrCaptchaRequired):
		respondError(c, response.CodeBadRequest, "error.captcha_required", nil)
	case errors.Is(err, service.ErrCaptchaInvalid):
		respondError(c, response.CodeBadRequest, "error.captcha_invalid", nil)
	case errors.Is(err, service.ErrCaptchaUnavailable):
		respondError(c, response.CodeInternal, "error.captcha_unavailable", err)
	default:
		respondError(c, response.CodeInternal, "error.captcha_verify_failed", err)
	}
	return true
}
