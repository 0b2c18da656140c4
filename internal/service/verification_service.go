package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopora-next/internal/cache"
	"github.com/shopora-next/internal/constants"
	"github.com/shopora-next/internal/logger"
	"github.com/shopora-next/internal/queue"
)

// VerificationService 远程验证服务抽象
// 真实短信/邮件通道可替换实现而不触碰调用方
type VerificationService interface {
	SendCode(ctx context.Context, userID uint, targetType, target string) error
	VerifyCode(ctx context.Context, userID uint, targetType, code string) (bool, error)
}

// SimulatedVerificationService 模拟实现
// 不产生真实验证码：投递任务仅记录日志，校验时接受固定演示码
type SimulatedVerificationService struct {
	queueClient         *queue.Client
	profiles            *ProfileService
	sendIntervalSeconds int
}

// NewSimulatedVerificationService 创建模拟验证服务
func NewSimulatedVerificationService(queueClient *queue.Client, profiles *ProfileService, sendIntervalSeconds int) *SimulatedVerificationService {
	if sendIntervalSeconds <= 0 {
		sendIntervalSeconds = 60
	}
	return &SimulatedVerificationService{
		queueClient:         queueClient,
		profiles:            profiles,
		sendIntervalSeconds: sendIntervalSeconds,
	}
}

func verifySendThrottleKey(userID uint, targetType string) string {
	return fmt.Sprintf("verify:send:%d:%s", userID, targetType)
}

// SendCode 发送验证码（演示环境仅投递日志任务）
// 同一用户同一目标类型在发送间隔内重复请求返回 ErrVerifySendTooOften
func (s *SimulatedVerificationService) SendCode(ctx context.Context, userID uint, targetType, target string) error {
	if targetType != constants.VerifyTargetEmail && targetType != constants.VerifyTargetPhone {
		return ErrVerifyTargetInvalid
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return ErrVerifyTargetInvalid
	}

	ttl := time.Duration(s.sendIntervalSeconds) * time.Second
	allowed, err := cache.SetNXWithTTL(ctx, verifySendThrottleKey(userID, targetType), "1", ttl)
	if err != nil {
		logger.Warnw("verify_send_throttle_check_failed", "user_id", userID, "target_type", targetType, "error", err)
	} else if !allowed {
		return ErrVerifySendTooOften
	}

	if err := s.queueClient.EnqueueVerifyCodeDeliver(queue.VerifyCodeDeliverPayload{
		UserID:     userID,
		TargetType: targetType,
		Target:     target,
	}); err != nil {
		logger.Warnw("verify_code_deliver_enqueue_failed", "user_id", userID, "target_type", targetType, "error", err)
		return err
	}
	logger.Infow("verify_code_send_requested", "user_id", userID, "target_type", targetType)
	return nil
}

// VerifyCode 校验验证码；通过后置位资料上的对应已验证标记
func (s *SimulatedVerificationService) VerifyCode(_ context.Context, userID uint, targetType, code string) (bool, error) {
	if targetType != constants.VerifyTargetEmail && targetType != constants.VerifyTargetPhone {
		return false, ErrVerifyTargetInvalid
	}
	if strings.TrimSpace(code) != constants.DemoVerifyCode {
		return false, nil
	}
	if _, err := s.profiles.MarkVerified(userID, targetType); err != nil {
		return false, err
	}
	logger.Infow("verify_code_accepted", "user_id", userID, "target_type", targetType)
	return true, nil
}
