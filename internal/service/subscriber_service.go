package service

import (
	"SellerLens/internal/api/dto"
	"SellerLens/internal/pkg/newsletter"
	"SellerLens/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"
)

type SubscriberService interface {
	// Subscribe 重复订阅幂等，退订后再订阅会重新进入同步队列
	Subscribe(ctx context.Context, email string) error
	Unsubscribe(ctx context.Context, email string) error
	ListSubscribers(ctx context.Context, page, pageSize int) ([]*dto.SubscriberDTO, int64, error)
	// SyncPending 把未同步的订阅者推到服务商，定时任务调用
	SyncPending(ctx context.Context, limit int) (int, error)
}

type subscriberServiceImpl struct {
	subscriberRepo repository.SubscriberRepo
	provider       *newsletter.Client
}

func NewSubscriberService(subscriberRepo repository.SubscriberRepo, provider *newsletter.Client) SubscriberService {
	return &subscriberServiceImpl{
		subscriberRepo: subscriberRepo,
		provider:       provider,
	}
}

func (s *subscriberServiceImpl) Subscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrParamInvalid
	}
	if _, err := s.subscriberRepo.Upsert(ctx, email); err != nil {
		return err
	}
	return nil
}

func (s *subscriberServiceImpl) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrParamInvalid
	}
	removed, err := s.subscriberRepo.DeactivateByEmail(ctx, email)
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrSubscriberNotFound
	}

	// 服务商摘除尽力而为，失败不影响本地退订
	if s.provider.Ready() {
		if err := s.provider.RemoveMember(ctx, email); err != nil {
			log.WarnContext(ctx, "remove newsletter member failed", "email", email, "err", err)
		}
	}
	return nil
}

func (s *subscriberServiceImpl) ListSubscribers(ctx context.Context, page, pageSize int) ([]*dto.SubscriberDTO, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	subs, total, err := s.subscriberRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	rows := make([]*dto.SubscriberDTO, 0, len(subs))
	for _, sub := range subs {
		item := &dto.SubscriberDTO{
			ID:        sub.ID,
			Email:     sub.Email,
			IsActive:  sub.IsActive,
			CreatedAt: sub.CreatedAt.Format(time.DateTime),
		}
		if sub.SyncedAt != nil {
			synced := sub.SyncedAt.Format(time.DateTime)
			item.SyncedAt = &synced
		}
		rows = append(rows, item)
	}
	return rows, total, nil
}

func (s *subscriberServiceImpl) SyncPending(ctx context.Context, limit int) (int, error) {
	if !s.provider.Ready() {
		return 0, nil
	}
	if limit <= 0 {
		limit = 100
	}

	pending, err := s.subscriberRepo.FindUnsynced(ctx, limit)
	if err != nil {
		return 0, err
	}

	var syncedIDs []uint64
	for _, sub := range pending {
		if err := s.provider.UpsertMember(ctx, sub.Email); err != nil {
			// 失败的留在队列里，下一轮重试
			log.WarnContext(ctx, "sync newsletter member failed", "email", sub.Email, "err", err)
			continue
		}
		syncedIDs = append(syncedIDs, sub.ID)
	}

	if len(syncedIDs) > 0 {
		if err := s.subscriberRepo.MarkSynced(ctx, syncedIDs, time.Now()); err != nil {
			return 0, err
		}
	}
	return len(syncedIDs), nil
}
