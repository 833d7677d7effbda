package service

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"emb_shop_v1_202601/internal/model"
	"emb_shop_v1_202601/internal/repository"
	"emb_shop_v1_202601/pkg/mailer"
)

// ==================== 测试辅助 ====================

func setupOTPTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("迁移表结构失败: %v", err)
	}
	return db
}

func newOTPTestService(t *testing.T) (*OTPService, repository.UserRepository, *mailer.Recorder) {
	db := setupOTPTestDB(t)
	userRepo := repository.NewUserRepository(db)
	recorder := &mailer.Recorder{}
	return NewOTPService(userRepo, recorder), userRepo, recorder
}

func createTestUser(t *testing.T, userRepo repository.UserRepository, email string) *model.User {
	user := &model.User{
		Username: email[:len(email)-len("@test.com")],
		Email:    email,
		Password: "not-a-real-hash",
		Phone:    "13800000000",
		Role:     model.RoleCustomer,
	}
	if err := userRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return user
}

// ==================== 单元测试 ====================

func TestOTPService_GenerateAndVerify(t *testing.T) {
	svc, userRepo, _ := newOTPTestService(t)
	ctx := context.Background()

	user := createTestUser(t, userRepo, "alice@test.com")

	ref, code, err := svc.Generate(ctx, user)
	if err != nil {
		t.Fatalf("生成 OTP 会话失败: %v", err)
	}
	if len(code) != 6 {
		t.Errorf("验证码长度 = %d, want 6", len(code))
	}
	if len(ref) != 32 {
		t.Errorf("引用标识长度 = %d, want 32", len(ref))
	}

	// 会话已落库
	stored, err := userRepo.GetByEmail(ctx, "alice@test.com")
	if err != nil || stored == nil {
		t.Fatalf("读取用户失败: %v", err)
	}
	if !stored.OTP.Live() {
		t.Fatal("落库后的会话应处于存活状态")
	}

	if err := svc.Verify(stored, code, ref, time.Now()); err != nil {
		t.Errorf("正确的验证码和引用应校验通过: %v", err)
	}
}

func TestOTPService_VerifyWrongCode(t *testing.T) {
	svc, userRepo, _ := newOTPTestService(t)
	ctx := context.Background()

	user := createTestUser(t, userRepo, "bob@test.com")
	ref, code, err := svc.Generate(ctx, user)
	if err != nil {
		t.Fatalf("生成 OTP 会话失败: %v", err)
	}

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	if err := svc.Verify(user, wrong, ref, time.Now()); err != ErrOTPCodeMismatch {
		t.Errorf("错误验证码应返回 ErrOTPCodeMismatch, got %v", err)
	}
}

// 重新生成后旧引用整体作废
func TestOTPService_RegenerateInvalidatesOldSession(t *testing.T) {
	svc, userRepo, _ := newOTPTestService(t)
	ctx := context.Background()

	user := createTestUser(t, userRepo, "carol@test.com")

	oldRef, oldCode, err := svc.Generate(ctx, user)
	if err != nil {
		t.Fatalf("生成 OTP 会话失败: %v", err)
	}
	newRef, newCode, err := svc.Generate(ctx, user)
	if err != nil {
		t.Fatalf("重新生成 OTP 会话失败: %v", err)
	}

	stored, _ := userRepo.GetByEmail(ctx, "carol@test.com")
	if err := svc.Verify(stored, oldCode, oldRef, time.Now()); err != ErrOTPSessionMismatch {
		t.Errorf("旧会话应返回 ErrOTPSessionMismatch, got %v", err)
	}
	if err := svc.Verify(stored, newCode, newRef, time.Now()); err != nil {
		t.Errorf("新会话应校验通过: %v", err)
	}
}

func TestOTPService_VerifyExpired(t *testing.T) {
	svc, userRepo, _ := newOTPTestService(t)
	ctx := context.Background()

	user := createTestUser(t, userRepo, "dave@test.com")
	ref, code, err := svc.Generate(ctx, user)
	if err != nil {
		t.Fatalf("生成 OTP 会话失败: %v", err)
	}

	// 11 分钟后已超过 10 分钟有效期
	future := time.Now().Add(11 * time.Minute)
	if err := svc.Verify(user, code, ref, future); err != ErrOTPExpired {
		t.Errorf("过期会话应返回 ErrOTPExpired, got %v", err)
	}

	// 有效期边界内仍可用
	within := time.Now().Add(9 * time.Minute)
	if err := svc.Verify(user, code, ref, within); err != nil {
		t.Errorf("有效期内应校验通过: %v", err)
	}
}

func TestOTPService_GenerateAndNotify(t *testing.T) {
	svc, userRepo, recorder := newOTPTestService(t)
	ctx := context.Background()

	user := createTestUser(t, userRepo, "eve@test.com")

	ref, err := svc.GenerateAndNotify(ctx, user, OTPPurposeActivate)
	if err != nil {
		t.Fatalf("GenerateAndNotify 失败: %v", err)
	}
	if ref == "" {
		t.Fatal("应返回非空引用标识")
	}

	sent := recorder.Sent()
	if len(sent) != 1 {
		t.Fatalf("应发送 1 封邮件, got %d", len(sent))
	}
	if sent[0].To != "eve@test.com" {
		t.Errorf("收件人 = %s, want eve@test.com", sent[0].To)
	}
}

// 邮件投递失败不回滚已写入的会话
func TestOTPService_NotifyFailureKeepsSession(t *testing.T) {
	svc, userRepo, recorder := newOTPTestService(t)
	ctx := context.Background()

	user := createTestUser(t, userRepo, "frank@test.com")
	recorder.FailNext = true

	ref, err := svc.GenerateAndNotify(ctx, user, OTPPurposeReset)
	if err != nil {
		t.Fatalf("投递失败不应让 GenerateAndNotify 报错: %v", err)
	}

	stored, _ := userRepo.GetByEmail(ctx, "frank@test.com")
	if !stored.OTP.Live() {
		t.Fatal("投递失败后会话仍应存活")
	}
	if *stored.OTP.Ref != ref {
		t.Errorf("落库引用 = %s, want %s", *stored.OTP.Ref, ref)
	}
}
