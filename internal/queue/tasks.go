package queue

import (
	"encoding/json"

	"github.com/shopora-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskVerifyCodeDeliver 验证码投递任务（演示环境仅记录日志）
	TaskVerifyCodeDeliver = constants.TaskVerifyCodeDeliver
	// TaskOrderPlacedNotify 下单通知任务
	TaskOrderPlacedNotify = constants.TaskOrderPlacedNotify
)

// VerifyCodeDeliverPayload 验证码投递任务载荷
type VerifyCodeDeliverPayload struct {
	UserID     uint   `json:"user_id"`
	TargetType string `json:"target_type"` // email 或 phone
	Target     string `json:"target"`
}

// OrderPlacedNotifyPayload 下单通知任务载荷
type OrderPlacedNotifyPayload struct {
	UserID      uint   `json:"user_id"`
	OrderNumber string `json:"order_number"`
	Total       string `json:"total"`
}

// NewVerifyCodeDeliverTask 创建验证码投递任务
func NewVerifyCodeDeliverTask(payload VerifyCodeDeliverPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskVerifyCodeDeliver, body), nil
}

// NewOrderPlacedNotifyTask 创建下单通知任务
func NewOrderPlacedNotifyTask(payload OrderPlacedNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPlacedNotify, body), nil
}
