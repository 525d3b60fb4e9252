package service

import (
	"context"
	"errors"

	"pulse-go/internal/apperr"
	infraES "pulse-go/internal/infra/elasticsearch"
	infraKafka "pulse-go/internal/infra/kafka"
	"pulse-go/internal/model"
	"pulse-go/internal/repository"
	"pulse-go/pkg/logger"

	"go.uber.org/zap"
)

const reindexBatchSize = 500

// SearchService 维护帖子检索索引
type SearchService struct {
	posts   *repository.PostRepository
	users   *repository.UserRepository
	indexer PostIndexer
}

func NewSearchService(posts *repository.PostRepository, users *repository.UserRepository, indexer PostIndexer) *SearchService {
	return &SearchService{posts: posts, users: users, indexer: indexer}
}

func (s *SearchService) ownerUsername(ctx context.Context, ownerID string) string {
	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return ""
	}
	return owner.Username
}

// SyncPost 同步单个帖子；帖子已不存在时从索引删除
func (s *SearchService) SyncPost(ctx context.Context, postID string) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return s.indexer.Delete(ctx, postID)
		}
		return err
	}
	return s.indexer.Sync(ctx, infraES.NewPostDoc(post, s.ownerUsername(ctx, post.OwnerID)))
}

// HandlePostEvent 消费帖子事件
func (s *SearchService) HandlePostEvent(ctx context.Context, evt *infraKafka.PostEvent) error {
	switch evt.Type {
	case infraKafka.PostPublished, infraKafka.PostUpdated:
		return s.SyncPost(ctx, evt.PostID)
	case infraKafka.PostDeleted:
		return s.indexer.Delete(ctx, evt.PostID)
	default:
		logger.Warn("Unknown post event type", zap.String("type", evt.Type), zap.String("post_id", evt.PostID))
		return nil
	}
}

// Reindex 分批全量重建索引
func (s *SearchService) Reindex(ctx context.Context) (success, failed int, err error) {
	names := make(map[string]string)
	after := ""
	for {
		batch, err := s.posts.ListAfter(ctx, after, reindexBatchSize)
		if err != nil {
			return success, failed, err
		}
		if len(batch) == 0 {
			break
		}

		docs := make([]*infraES.PostDoc, 0, len(batch))
		for i := range batch {
			docs = append(docs, s.doc(ctx, &batch[i], names))
		}

		ok, bad, err := s.indexer.BulkSync(ctx, docs)
		success += ok
		failed += bad
		if err != nil {
			return success, failed, err
		}
		after = batch[len(batch)-1].ID
	}

	logger.Info("Reindex completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}

func (s *SearchService) doc(ctx context.Context, p *model.Post, names map[string]string) *infraES.PostDoc {
	name, ok := names[p.OwnerID]
	if !ok {
		name = s.ownerUsername(ctx, p.OwnerID)
		names[p.OwnerID] = name
	}
	return infraES.NewPostDoc(p, name)
}
