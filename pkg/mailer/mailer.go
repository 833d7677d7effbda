package mailer

import (
	"context"
	"sync"
)

// Sender 外部通知发送器
// 核心流程不等待投递结果：发送失败只记录日志，不回滚已提交的状态变更
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// ==================== 测试用记录器 ====================

// Message 一封已"发送"的邮件
type Message struct {
	To      string
	Subject string
	Body    string
}

// Recorder 测试用 Sender，只记录不发送
type Recorder struct {
	mu   sync.Mutex
	sent []Message

	// FailNext 为 true 时下一次 Send 返回错误，用于验证投递失败不影响主流程
	FailNext bool
}

func (r *Recorder) Send(_ context.Context, to, subject, htmlBody string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailNext {
		r.FailNext = false
		return errSendFailed
	}
	r.sent = append(r.sent, Message{To: to, Subject: subject, Body: htmlBody})
	return nil
}

// Sent 返回已记录邮件的副本
func (r *Recorder) Sent() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.sent))
	copy(out, r.sent)
	return out
}
