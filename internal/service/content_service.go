// FILE: internal/service/content_service.go
package service

import (
	"context"
	"strings"

	"aura-ops-be/internal/apperror"
	"aura-ops-be/internal/dto"
	"aura-ops-be/internal/pkg/logger"
	"aura-ops-be/pkg/embedding"
	"aura-ops-be/pkg/graph"
	"aura-ops-be/pkg/notice"
)

// IContentService handles the one-way content ingestion: embed the text,
// then write the tagged, categorized node into the graph store.
type IContentService interface {
	SaveContent(ctx context.Context, req *dto.SaveContentRequest) (*dto.SaveContentResponse, error)
}

type contentService struct {
	embeddingProvider embedding.EmbeddingProvider
	contentWriter     graph.ContentWriter
	notices           INoticeService
	sysLogger         logger.ILogger
}

func NewContentService(
	embeddingProvider embedding.EmbeddingProvider,
	contentWriter graph.ContentWriter,
	notices INoticeService,
	sysLogger logger.ILogger,
) IContentService {
	return &contentService{
		embeddingProvider: embeddingProvider,
		contentWriter:     contentWriter,
		notices:           notices,
		sysLogger:         sysLogger,
	}
}

func (s *contentService) SaveContent(ctx context.Context, req *dto.SaveContentRequest) (*dto.SaveContentResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, apperror.NewValidation("content text is required")
	}
	if req.Category == "" {
		return nil, apperror.NewValidation("category is required")
	}
	if req.Subcategory == "" {
		return nil, apperror.NewValidation("subcategory is required")
	}

	vector, err := s.embeddingProvider.Generate(ctx, req.Text)
	if err != nil {
		s.sysLogger.Error("content", "Embedding generation failed", map[string]interface{}{"error": err.Error()})
		s.notices.Publish(notice.LevelError, "Save failed", "Embedding generation failed: "+err.Error(), "")
		return nil, &apperror.UpstreamRequestError{Op: "generate embedding", Detail: err.Error()}
	}

	contentID, err := s.contentWriter.SaveContent(ctx, graph.ContentParams{
		Text:        req.Text,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Tags:        dedupeTags(req.Tags),
		Embedding:   vector,
	})
	if err != nil {
		s.sysLogger.Error("content", "Graph write failed", map[string]interface{}{"error": err.Error()})
		s.notices.Publish(notice.LevelError, "Save failed", "Graph write failed: "+err.Error(), "")
		return nil, &apperror.UpstreamRequestError{Op: "save content", Detail: err.Error()}
	}

	s.sysLogger.Info("content", "Content saved", map[string]interface{}{
		"contentId": contentID,
		"category":  req.Category,
		"tags":      len(req.Tags),
	})

	return &dto.SaveContentResponse{ContentID: contentID}, nil
}

// dedupeTags keeps the tag list a set, preserving first-seen order.
func dedupeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		result = append(result, tag)
	}
	return result
}
