package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/brushworks/fieldops-api/internal/repository"
	"github.com/brushworks/fieldops-api/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxImageSize caps a single upload at 20 MB
const maxImageSize = 20 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
}

type ImageService struct {
	db           *gorm.DB
	imageRepo    *repository.ProjectImageRepository
	projectRepo  *repository.ProjectRepository
	activityRepo *repository.ActivityRepository
	store        storage.Storage
	logger       *zap.Logger
}

func NewImageService(
	db *gorm.DB,
	imageRepo *repository.ProjectImageRepository,
	projectRepo *repository.ProjectRepository,
	activityRepo *repository.ActivityRepository,
	store storage.Storage,
	logger *zap.Logger,
) *ImageService {
	return &ImageService{
		db:           db,
		imageRepo:    imageRepo,
		projectRepo:  projectRepo,
		activityRepo: activityRepo,
		store:        store,
		logger:       logger,
	}
}

// Upload stores the file bytes first and records the metadata row after,
// so a failed write never leaves a dangling database entry. The orphaned
// blob from a failed metadata insert is cleaned up inline.
func (s *ImageService) Upload(ctx context.Context, projectID uuid.UUID, filename, contentType, caption string, data io.Reader) (*domain.ProjectImage, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if !allowedImageTypes[contentType] {
		return nil, fmt.Errorf("unsupported content type %q: %w", contentType, ErrInvalidInput)
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	limited := io.LimitReader(data, maxImageSize+1)
	storagePath, size, err := s.store.Upload(ctx, filename, contentType, limited)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}
	if size > maxImageSize {
		_ = s.store.Delete(ctx, storagePath)
		return nil, fmt.Errorf("image exceeds %d bytes: %w", maxImageSize, ErrInvalidInput)
	}

	image := &domain.ProjectImage{
		ProjectID:   projectID,
		Filename:    filename,
		ContentType: contentType,
		StoragePath: storagePath,
		Size:        size,
		Caption:     caption,
		UploadedBy:  actor.UserID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.imageRepo.WithTx(tx).Create(ctx, image); err != nil {
			return fmt.Errorf("failed to record image: %w", err)
		}
		activity := &domain.Activity{
			Title:       fmt.Sprintf("Image uploaded: %s", filename),
			Description: fmt.Sprintf("Image added to project %q", project.Title),
			Type:        domain.ActivityTypeProject,
			RelatedID:   &projectID,
			RelatedType: "project",
			CreatedBy:   actor.UserID,
		}
		return s.activityRepo.WithTx(tx).Create(ctx, activity)
	})
	if err != nil {
		if delErr := s.store.Delete(ctx, storagePath); delErr != nil {
			s.logger.Warn("failed to clean up orphaned blob",
				zap.String("storage_path", storagePath),
				zap.Error(delErr),
			)
		}
		return nil, err
	}

	s.logger.Info("image uploaded",
		zap.String("image_id", image.ID.String()),
		zap.String("project_id", projectID.String()),
		zap.Int64("size", size),
	)
	return image, nil
}

// Download returns the stored bytes plus the metadata needed for response
// headers. The caller owns closing the reader.
func (s *ImageService) Download(ctx context.Context, id uuid.UUID) (*domain.ProjectImage, io.ReadCloser, error) {
	image, err := s.imageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("image %s: %w", id, ErrNotFound)
		}
		return nil, nil, fmt.Errorf("failed to get image: %w", err)
	}

	reader, err := s.store.Download(ctx, image.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read image: %w", err)
	}
	return image, reader, nil
}

func (s *ImageService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.ProjectImage, error) {
	images, err := s.imageRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return images, nil
}

// Delete removes the metadata row first, then the blob. A blob that
// outlives its row is harmless; a row without a blob is a broken link.
func (s *ImageService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := actorFromContext(ctx); err != nil {
		return err
	}

	image, err := s.imageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("image %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to get image: %w", err)
	}

	if err := s.imageRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if err := s.store.Delete(ctx, image.StoragePath); err != nil {
		s.logger.Warn("failed to delete blob",
			zap.String("storage_path", image.StoragePath),
			zap.Error(err),
		)
	}
	return nil
}
