package repository

import (
	"errors"

	"github.com/shopora-next/internal/models"

	"gorm.io/gorm"
)

// SnapshotRepository 集合快照数据访问接口
type SnapshotRepository interface {
	GetByKey(key string) (*models.Snapshot, error)
	Upsert(key string, value models.JSON) (*models.Snapshot, error)
	Delete(key string) error
	ListByPrefix(prefix string) ([]models.Snapshot, error)
}

// GormSnapshotRepository GORM 实现
type GormSnapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository 创建快照仓库
func NewSnapshotRepository(db *gorm.DB) *GormSnapshotRepository {
	return &GormSnapshotRepository{db: db}
}

// GetByKey 获取快照
func (r *GormSnapshotRepository) GetByKey(key string) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	if err := r.db.Where("key = ?", key).First(&snapshot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}

// Upsert 整体覆盖写入快照
func (r *GormSnapshotRepository) Upsert(key string, value models.JSON) (*models.Snapshot, error) {
	snapshot, err := r.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		snapshot = &models.Snapshot{
			Key:       key,
			ValueJSON: value,
		}
		if err := r.db.Create(snapshot).Error; err != nil {
			return nil, err
		}
		return snapshot, nil
	}

	snapshot.ValueJSON = value
	if err := r.db.Save(snapshot).Error; err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Delete 删除快照（不存在时视为成功）
func (r *GormSnapshotRepository) Delete(key string) error {
	return r.db.Where("key = ?", key).Delete(&models.Snapshot{}).Error
}

// ListByPrefix 按键前缀列出快照（管理端跨用户查询）
func (r *GormSnapshotRepository) ListByPrefix(prefix string) ([]models.Snapshot, error) {
	snapshots := make([]models.Snapshot, 0)
	err := r.db.
		Where("key LIKE ?", prefix+"%").
		Order("key ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}
