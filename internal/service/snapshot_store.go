package service

import (
	"encoding/json"
	"fmt"

	"github.com/shopora-next/internal/logger"
	"github.com/shopora-next/internal/models"
	"github.com/shopora-next/internal/repository"
)

// snapshotStore 集合快照读写封装
// 读取失败或内容损坏时按"无数据"处理并回退默认值，绝不中断请求
type snapshotStore struct {
	repo repository.SnapshotRepository
}

func newSnapshotStore(repo repository.SnapshotRepository) snapshotStore {
	return snapshotStore{repo: repo}
}

// key 拼接集合键：前缀 + 用户 ID
func (s snapshotStore) key(prefix string, userID uint) string {
	return fmt.Sprintf("%s:%d", prefix, userID)
}

// load 读取快照；返回是否命中有效数据
func (s snapshotStore) load(key string, dest interface{}) (bool, error) {
	snapshot, err := s.repo.GetByKey(key)
	if err != nil {
		return false, err
	}
	if snapshot == nil || len(snapshot.ValueJSON) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(snapshot.ValueJSON, dest); err != nil {
		logger.Warnw("snapshot_parse_failed_fallback_default", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// save 整体覆盖写入快照
func (s snapshotStore) save(key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = s.repo.Upsert(key, models.JSON(payload))
	return err
}

// delete 删除快照
func (s snapshotStore) delete(key string) error {
	return s.repo.Delete(key)
}
