package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcinarr/selvigsm/internal/apperr"
	"github.com/ahmetcinarr/selvigsm/internal/dto"
	"github.com/ahmetcinarr/selvigsm/internal/model"
	"github.com/ahmetcinarr/selvigsm/internal/repository"
	"gorm.io/gorm"
)

type ContentService interface {
	Get(ctx context.Context, key string) (*model.SiteContent, error)
	Update(ctx context.Context, key string, req *dto.ContentRequest) (*model.SiteContent, error)
}

type contentServiceImpl struct {
	contentRepo repository.ContentRepository
}

func NewContentService(contentRepo repository.ContentRepository) ContentService {
	return &contentServiceImpl{
		contentRepo: contentRepo,
	}
}

func (s *contentServiceImpl) Get(ctx context.Context, key string) (*model.SiteContent, error) {
	content, err := s.contentRepo.FindActiveByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "content not found")
		}
		return nil, fmt.Errorf("find content: %w", err)
	}

	return content, nil
}

func (s *contentServiceImpl) Update(ctx context.Context, key string, req *dto.ContentRequest) (*model.SiteContent, error) {
	content := &model.SiteContent{
		PageKey:         key,
		Title:           req.Title,
		Content:         req.Content,
		MetaDescription: req.MetaDescription,
		IsActive:        true,
	}

	if err := s.contentRepo.Upsert(ctx, content); err != nil {
		return nil, fmt.Errorf("upsert content: %w", err)
	}

	return content, nil
}
