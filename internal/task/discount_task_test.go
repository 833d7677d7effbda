package task

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"emb_shop_v1_202601/internal/model"
	"emb_shop_v1_202601/internal/repository"
)

func setupTaskTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Discount{}); err != nil {
		t.Fatalf("迁移表结构失败: %v", err)
	}
	return db
}

func TestDiscountTask_SweepJob(t *testing.T) {
	db := setupTaskTestDB(t)
	repo := repository.NewDiscountRepository(db)
	taskRunner := NewDiscountTask(repo)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	expired := &model.Discount{ProductID: 1, CreatedByID: 1, Type: model.DiscountFixed, Value: decimal.NewFromInt(5), EndAt: &past, Active: true}
	running := &model.Discount{ProductID: 1, CreatedByID: 1, Type: model.DiscountFixed, Value: decimal.NewFromInt(5), EndAt: &future, Active: true}
	for _, d := range []*model.Discount{expired, running} {
		if err := db.Create(d).Error; err != nil {
			t.Fatalf("创建折扣失败: %v", err)
		}
	}

	taskRunner.sweepJob(context.Background())

	// 每次查询用独立的目标结构，避免上一次填充的主键混进查询条件
	var gotExpired model.Discount
	if err := db.First(&gotExpired, expired.ID).Error; err != nil {
		t.Fatalf("读取过期折扣失败: %v", err)
	}
	if gotExpired.Active {
		t.Error("过期折扣应被归档")
	}

	var gotRunning model.Discount
	if err := db.First(&gotRunning, running.ID).Error; err != nil {
		t.Fatalf("读取窗口内折扣失败: %v", err)
	}
	if !gotRunning.Active {
		t.Error("窗口内折扣不应被动")
	}
}
