package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"petawards/constant"
	"petawards/dto"
	"petawards/storage"
)

var (
	ErrFavoriteExists   = errors.New("favorite already exists")
	ErrFavoriteNotFound = errors.New("favorite not found")
)

// FavoriteService manages favorite markers: objects named
// "favorite_{userId}_{videoId}.json" whose existence is the relationship.
type FavoriteService interface {
	// Add stores a marker for the entry's file id. A second add for the
	// same pair is rejected with ErrFavoriteExists.
	Add(ctx context.Context, userID string, entry dto.SubmissionEntry) (dto.FileInfo, error)
	Remove(ctx context.Context, userID, videoID string) error
	List(ctx context.Context, userID string) ([]string, error)
}

type favoriteService struct {
	store storage.Store
}

func NewFavoriteService(store storage.Store) FavoriteService {
	return &favoriteService{
		store: store,
	}
}

func (s *favoriteService) Add(ctx context.Context, userID string, entry dto.SubmissionEntry) (dto.FileInfo, error) {
	name := markerName(userID, entry.FileInfo.ID)

	objects, err := s.store.ListAll(ctx)
	if err != nil {
		return dto.FileInfo{}, err
	}
	for _, obj := range objects {
		if obj.Name == name {
			return dto.FileInfo{}, ErrFavoriteExists
		}
	}

	// The marker body is a snapshot of the favorited entry.
	body, err := json.Marshal(entry)
	if err != nil {
		return dto.FileInfo{}, err
	}

	obj, err := s.store.Put(ctx, name, "application/json", bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return dto.FileInfo{}, err
	}
	return dto.FileInfo{
		Name:       obj.Name,
		URL:        s.store.URL(obj.Key),
		UploadedAt: obj.UploadedAt,
		Key:        obj.Key,
		ID:         obj.ID,
		Status:     obj.Status,
	}, nil
}

// Remove deletes the marker by its provider key, found by exact name match
// in the listing.
func (s *favoriteService) Remove(ctx context.Context, userID, videoID string) error {
	name := markerName(userID, videoID)

	objects, err := s.store.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, obj := range objects {
		if obj.Name == name {
			return s.store.Remove(ctx, obj.Key)
		}
	}
	return ErrFavoriteNotFound
}

func (s *favoriteService) List(ctx context.Context, userID string) ([]string, error) {
	objects, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	pattern, err := regexp.Compile("^" + regexp.QuoteMeta(constant.FavoriteMarkerPrefix+userID+"_") + `(.+)\.json$`)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0)
	for _, obj := range objects {
		if match := pattern.FindStringSubmatch(obj.Name); match != nil {
			ids = append(ids, match[1])
		}
	}
	return ids, nil
}

func markerName(userID, videoID string) string {
	return fmt.Sprintf("%s%s_%s.json", constant.FavoriteMarkerPrefix, userID, videoID)
}
