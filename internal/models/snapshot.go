package models

import "time"

// Snapshot 用户集合快照表（键值对存储，整体覆盖写入）
type Snapshot struct {
	Key       string    `gorm:"primarykey" json:"key"`          // 快照键（前缀 + 用户 ID）
	ValueJSON JSON      `gorm:"type:json" json:"value"`         // 快照内容
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"` // 更新时间
}

// TableName 指定表名
func (Snapshot) TableName() string {
	return "snapshots"
}
