package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"emb_shop_v1_202601/internal/repository"
)

// DiscountTask 定时归档已过期的折扣规则。
// 价格解析本身只看时间窗口，这个任务不影响正确性，
// 只是让 active 标记和实际状态保持一致，方便后台筛选与索引命中。
type DiscountTask struct {
	DiscountRepo repository.DiscountRepository
	Cron         *cron.Cron
}

func NewDiscountTask(discountRepo repository.DiscountRepository) *DiscountTask {
	return &DiscountTask{
		DiscountRepo: discountRepo,
		Cron:         cron.New(cron.WithSeconds()), // 支持秒级控制
	}
}

// Start 启动定时任务
func (t *DiscountTask) Start() {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		log.Println("[Task] 服务启动，正在执行首次过期折扣清理...")
		t.sweepJob(ctx)
	}()

	// 每小时整点扫一次
	_, err := t.Cron.AddFunc("0 0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()

		t.sweepJob(ctx)
	})

	if err != nil {
		log.Fatalf("无法启动折扣清理定时任务: %v", err)
	}

	t.Cron.Start()
	log.Println("折扣清理任务已启动 (每小时检查一次)")
}

func (t *DiscountTask) sweepJob(ctx context.Context) {
	affected, err := t.DiscountRepo.DeactivateExpired(ctx, time.Now())
	if err != nil {
		log.Printf("[Cron] 过期折扣清理失败: %v", err)
		return
	}

	if affected > 0 {
		log.Printf("[Cron] 已归档 %d 条过期折扣", affected)
	}
}
