package checkout

import (
	"sync"
	"time"
)

// NoticeKind tipo de aviso transitorio.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice aviso transitorio (resultado de escaneo, fallo de venta).
type Notice struct {
	Kind      NoticeKind
	Message   string
	ExpiresAt time.Time
}

// NoticeBoard un único aviso vigente; cada aviso nuevo reemplaza al anterior y vence tras ttl.
type NoticeBoard struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	current *Notice
}

// NewNoticeBoard ttl <= 0 usa 3s.
func NewNoticeBoard(ttl time.Duration) *NoticeBoard {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return &NoticeBoard{ttl: ttl, now: time.Now}
}

// Post publica un aviso.
func (b *NoticeBoard) Post(kind NoticeKind, msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = &Notice{Kind: kind, Message: msg, ExpiresAt: b.now().Add(b.ttl)}
}

// Current aviso vigente, si lo hay.
func (b *NoticeBoard) Current() (Notice, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return Notice{}, false
	}
	if !b.now().Before(b.current.ExpiresAt) {
		b.current = nil
		return Notice{}, false
	}
	return *b.current, true
}
