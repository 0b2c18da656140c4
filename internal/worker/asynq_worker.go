package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/shopora-next/internal/constants"
	"github.com/shopora-next/internal/logger"
	"github.com/shopora-next/internal/provider"
	"github.com/shopora-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskVerifyCodeDeliver, c.handleVerifyCodeDeliver)
	mux.HandleFunc(queue.TaskOrderPlacedNotify, c.handleOrderPlacedNotify)
}

// handleVerifyCodeDeliver 演示环境不对接真实短信/邮件通道，仅记录投递日志
func (c *Consumer) handleVerifyCodeDeliver(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_verify_code_deliver_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.VerifyCodeDeliverPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_verify_code_deliver_unmarshal_failed", "error", err)
		return err
	}
	target := strings.TrimSpace(payload.Target)
	if target == "" {
		logger.Debugw("worker_verify_code_deliver_skip_empty_target", "user_id", payload.UserID)
		return nil
	}
	logger.Infow("verify_code_delivered_simulated",
		"user_id", payload.UserID,
		"target_type", payload.TargetType,
		"target", maskTarget(target),
		"demo_code", constants.DemoVerifyCode,
	)
	return nil
}

// handleOrderPlacedNotify 下单通知（演示环境仅记录日志）
func (c *Consumer) handleOrderPlacedNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_placed_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderPlacedNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_placed_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderNumber == "" {
		logger.Debugw("worker_order_placed_notify_skip_invalid_payload", "user_id", payload.UserID)
		return nil
	}
	receiver := ""
	if payload.UserID != 0 && c.UserRepo != nil {
		user, err := c.UserRepo.GetByID(payload.UserID)
		if err != nil {
			logger.Warnw("worker_order_placed_notify_fetch_user_failed", "user_id", payload.UserID, "error", err)
			return err
		}
		if user != nil {
			receiver = strings.TrimSpace(user.Email)
		}
	}
	logger.Infow("order_placed_notified_simulated",
		"user_id", payload.UserID,
		"order_number", payload.OrderNumber,
		"total", payload.Total,
		"receiver", maskTarget(receiver),
	)
	return nil
}

// maskTarget 日志脱敏：邮箱保留首字符与域名，手机号保留末四位
func maskTarget(target string) string {
	normalized := strings.TrimSpace(target)
	if normalized == "" {
		return ""
	}
	if at := strings.Index(normalized, "@"); at > 0 {
		return normalized[:1] + "***" + normalized[at:]
	}
	if len(normalized) <= 4 {
		return "****"
	}
	return "****" + normalized[len(normalized)-4:]
}
