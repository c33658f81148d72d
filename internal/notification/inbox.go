package notification

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Inbox is the in-app notification list a user sees after login.
type Inbox interface {
	Sink
	List(ctx context.Context, userID uint, unseenOnly bool) ([]models.Notification, error)
	MarkAllSeen(ctx context.Context, userID uint) (int64, error)
}

func toModel(ev Event) models.Notification {
	return models.Notification{
		ID:        ev.ID,
		UserID:    ev.RecipientID,
		Kind:      string(ev.Kind),
		Message:   ev.Message,
		Link:      ev.Link,
		CreatedAt: ev.CreatedAt,
	}
}

// --------------------------------------------------
// Postgres
// --------------------------------------------------

type GormInbox struct {
	db *gorm.DB
}

func NewGormInbox(db *gorm.DB) *GormInbox {
	return &GormInbox{db: db}
}

func (i *GormInbox) Deliver(ctx context.Context, ev Event) error {
	n := toModel(ev)
	return i.db.WithContext(ctx).Create(&n).Error
}

func (i *GormInbox) List(
	ctx context.Context,
	userID uint,
	unseenOnly bool,
) ([]models.Notification, error) {

	q := i.db.WithContext(ctx).Where("user_id = ?", userID)
	if unseenOnly {
		q = q.Where("seen = false")
	}

	var out []models.Notification
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (i *GormInbox) MarkAllSeen(ctx context.Context, userID uint) (int64, error) {
	res := i.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND seen = false", userID).
		Update("seen", true)
	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Memory
// --------------------------------------------------

type MemoryInbox struct {
	mu    sync.Mutex
	items []models.Notification
}

func NewMemoryInbox() *MemoryInbox {
	return &MemoryInbox{}
}

func (i *MemoryInbox) Deliver(_ context.Context, ev Event) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.items = append(i.items, toModel(ev))
	return nil
}

func (i *MemoryInbox) List(
	_ context.Context,
	userID uint,
	unseenOnly bool,
) ([]models.Notification, error) {

	i.mu.Lock()
	defer i.mu.Unlock()

	var out []models.Notification
	for idx := len(i.items) - 1; idx >= 0; idx-- {
		n := i.items[idx]
		if n.UserID != userID || (unseenOnly && n.Seen) {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (i *MemoryInbox) MarkAllSeen(_ context.Context, userID uint) (int64, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	var n int64
	for idx := range i.items {
		if i.items[idx].UserID == userID && !i.items[idx].Seen {
			i.items[idx].Seen = true
			n++
		}
	}
	return n, nil
}

var (
	_ Inbox = (*GormInbox)(nil)
	_ Inbox = (*MemoryInbox)(nil)
)
