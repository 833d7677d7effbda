package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"emb_shop_v1_202601/internal/model"
)

// ==================== 测试辅助 ====================

func setupInvitationTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.Invitation{}); err != nil {
		t.Fatalf("迁移表结构失败: %v", err)
	}
	return db
}

// ==================== 单元测试 ====================

func TestInvitationRepo_CreateAndGetByToken(t *testing.T) {
	repo := NewInvitationRepository(setupInvitationTestDB(t))
	ctx := context.Background()

	invitation := model.NewInvitation("admin@test.com", 1, time.Now())
	if err := repo.Create(ctx, invitation); err != nil {
		t.Fatalf("创建邀请失败: %v", err)
	}

	found, err := repo.GetByToken(ctx, invitation.Token)
	if err != nil {
		t.Fatalf("按 token 查询失败: %v", err)
	}
	if found == nil || found.Email != "admin@test.com" {
		t.Errorf("查询结果不匹配: %+v", found)
	}

	missing, err := repo.GetByToken(ctx, "no-such-token")
	if err != nil || missing != nil {
		t.Errorf("未命中应返回 (nil, nil), got (%v, %v)", missing, err)
	}
}

func TestInvitationRepo_DuplicateEmail(t *testing.T) {
	repo := NewInvitationRepository(setupInvitationTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, model.NewInvitation("dup@test.com", 1, time.Now())); err != nil {
		t.Fatalf("首次创建失败: %v", err)
	}

	err := repo.Create(ctx, model.NewInvitation("dup@test.com", 1, time.Now()))
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("重复邮箱应返回 gorm.ErrDuplicatedKey, got %v", err)
	}
}

// check-then-set 在同一条 UPDATE 里完成，第二次消费必然落空
func TestInvitationRepo_MarkUsedOnlyOnce(t *testing.T) {
	repo := NewInvitationRepository(setupInvitationTestDB(t))
	ctx := context.Background()

	invitation := model.NewInvitation("once@test.com", 1, time.Now())
	if err := repo.Create(ctx, invitation); err != nil {
		t.Fatalf("创建邀请失败: %v", err)
	}

	used, err := repo.MarkUsed(ctx, invitation.ID)
	if err != nil {
		t.Fatalf("首次消费失败: %v", err)
	}
	if !used {
		t.Fatal("首次消费应成功")
	}

	used, err = repo.MarkUsed(ctx, invitation.ID)
	if err != nil {
		t.Fatalf("二次消费报错: %v", err)
	}
	if used {
		t.Fatal("二次消费应落空")
	}

	found, _ := repo.GetByToken(ctx, invitation.Token)
	if !found.IsUsed {
		t.Error("消费后 is_used 应为 true")
	}
}

func TestInvitationRepo_List(t *testing.T) {
	repo := NewInvitationRepository(setupInvitationTestDB(t))
	ctx := context.Background()

	for _, email := range []string{"a@test.com", "b@test.com", "c@test.com"} {
		if err := repo.Create(ctx, model.NewInvitation(email, 1, time.Now())); err != nil {
			t.Fatalf("创建邀请失败: %v", err)
		}
	}

	invitations, total, err := repo.List(ctx, 1, 2)
	if err != nil {
		t.Fatalf("查询列表失败: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(invitations) != 2 {
		t.Errorf("第一页应有 2 条, got %d", len(invitations))
	}
	// 倒序：最新的在前
	if invitations[0].Email != "c@test.com" {
		t.Errorf("第一条应为最新签发, got %s", invitations[0].Email)
	}
}
