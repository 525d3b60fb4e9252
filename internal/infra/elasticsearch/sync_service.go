package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pulse-go/internal/model"
	"pulse-go/pkg/logger"

	"go.uber.org/zap"
)

// PostDoc ES 帖子文档结构
type PostDoc struct {
	ID            string `json:"id"`
	OwnerID       string `json:"owner_id"`
	OwnerUsername string `json:"owner_username"`
	Content       string `json:"content"`
	IsPublished   bool   `json:"is_published"`
	Views         int64  `json:"views"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// NewPostDoc 由帖子和作者用户名构造文档
func NewPostDoc(p *model.Post, ownerUsername string) *PostDoc {
	return &PostDoc{
		ID:            p.ID,
		OwnerID:       p.OwnerID,
		OwnerUsername: ownerUsername,
		Content:       p.Content,
		IsPublished:   p.IsPublished,
		Views:         p.Views,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
}

// PostIndex 帖子索引的读写
type PostIndex struct {
	index string
}

func NewPostIndex(index string) *PostIndex {
	return &PostIndex{index: index}
}

// BuildSearchQuery 只匹配正文，按相关度返回 ID
func BuildSearchQuery(text string, size int) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"match": map[string]interface{}{
				"content": map[string]interface{}{
					"query":    text,
					"operator": "and",
				},
			},
		},
		"_source": []string{"id"},
		"size":    size,
	}
}

// SearchPostIDs 全文检索帖子正文，返回命中 ID
func (p *PostIndex) SearchPostIDs(ctx context.Context, text string, size int) ([]string, error) {
	queryJSON, err := json.Marshal(BuildSearchQuery(text, size))
	if err != nil {
		return nil, err
	}

	resp, err := search(ctx, p.index, bytes.NewReader(queryJSON))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("ES search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

// Sync 同步单个帖子到 ES
func (p *PostIndex) Sync(ctx context.Context, doc *PostDoc) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	resp, err := indexDoc(ctx, p.index, doc.ID, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Post synced to ES", zap.String("post_id", doc.ID))
	return nil
}

// Delete 从 ES 删除帖子，文档不存在视为成功
func (p *PostIndex) Delete(ctx context.Context, postID string) error {
	resp, err := deleteDoc(ctx, p.index, postID)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}

// BulkSync 批量同步帖子到 ES
func (p *PostIndex) BulkSync(ctx context.Context, docs []*PostDoc) (success, failed int, err error) {
	var buf strings.Builder
	for _, doc := range docs {
		docBody, err := json.Marshal(doc)
		if err != nil {
			failed++
			continue
		}
		buf.WriteString(fmt.Sprintf(`{"index":{"_index":"%s","_id":"%s"}}`, p.index, doc.ID))
		buf.WriteString("\n")
		buf.Write(docBody)
		buf.WriteString("\n")
	}

	if buf.Len() == 0 {
		return 0, failed, nil
	}

	resp, err := bulk(ctx, strings.NewReader(buf.String()))
	if err != nil {
		return 0, len(docs), err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, len(docs), fmt.Errorf("bulk failed: %s", resp.String())
	}

	var bulkResp struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return len(docs) - failed, failed, nil
	}

	for _, item := range bulkResp.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			success++
		} else {
			failed++
		}
	}

	logger.Info("Bulk sync to ES completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}
