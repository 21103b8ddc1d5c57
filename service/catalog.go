package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"petawards/constant"
	"petawards/dto"
	"petawards/pkg/rabbitmq"
	"petawards/storage"
)

var ErrMissingAssociatedVideo = errors.New("associatedVideo is required")

// defaultFetchParallelism bounds the sidecar fan-out per listing when the
// config does not set a worker count.
const defaultFetchParallelism = 8

// CatalogService builds the correlated submission listing and handles
// submission and file lifecycle against the object store.
type CatalogService interface {
	ListSubmissions(ctx context.Context) ([]dto.SubmissionEntry, error)
	ListFiles(ctx context.Context) ([]dto.FileInfo, error)
	ListVideos(ctx context.Context) ([]dto.VideoFile, error)
	SubmitMetadata(ctx context.Context, req dto.SubmitMetadataRequest) (dto.FileInfo, error)
	UploadFile(ctx context.Context, name, contentType string, body []byte) (dto.FileInfo, error)
	DeleteFile(ctx context.Context, key string) error
}

type catalogService struct {
	store    storage.Store
	cache    *SlotCache[[]dto.SubmissionEntry]
	events   rabbitmq.Publisher
	parallel int
}

func NewCatalogService(store storage.Store, cache *SlotCache[[]dto.SubmissionEntry], events rabbitmq.Publisher, fetchParallelism int) CatalogService {
	if fetchParallelism < 1 {
		fetchParallelism = defaultFetchParallelism
	}
	return &catalogService{
		store:    store,
		cache:    cache,
		events:   events,
		parallel: fetchParallelism,
	}
}

func (s *catalogService) ListSubmissions(ctx context.Context) ([]dto.SubmissionEntry, error) {
	return s.cache.GetOrCompute(ctx, s.correlate)
}

// correlate partitions the flat object listing into videos and metadata
// sidecars, fetches and parses each sidecar, and resolves the playback URL
// by filename. A sidecar that cannot be fetched or parsed is logged and
// dropped; the rest of the batch is unaffected.
func (s *catalogService) correlate(ctx context.Context) ([]dto.SubmissionEntry, error) {
	objects, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	videoURLByName := make(map[string]string)
	var sidecars []storage.Object
	for _, obj := range objects {
		switch {
		case constant.IsMetadataName(obj.Name):
			sidecars = append(sidecars, obj)
		case constant.IsVideoName(obj.Name):
			videoURLByName[obj.Name] = s.store.URL(obj.Key)
		}
	}

	entries := make([]*dto.SubmissionEntry, len(sidecars))
	sem := make(chan struct{}, s.parallel)
	var wg sync.WaitGroup
	for i, sidecar := range sidecars {
		wg.Add(1)
		go func(i int, sidecar storage.Object) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			entry, err := s.buildEntry(ctx, sidecar, videoURLByName)
			if err != nil {
				zerolog.Ctx(ctx).Error().Err(err).Str("object", sidecar.Name).Msg("skipping metadata object")
				return
			}
			entries[i] = entry
		}(i, sidecar)
	}
	wg.Wait()

	result := make([]dto.SubmissionEntry, 0, len(sidecars))
	for _, entry := range entries {
		if entry != nil {
			result = append(result, *entry)
		}
	}
	return result, nil
}

func (s *catalogService) buildEntry(ctx context.Context, sidecar storage.Object, videoURLByName map[string]string) (*dto.SubmissionEntry, error) {
	body, err := s.store.Fetch(ctx, sidecar.Key)
	if err != nil {
		return nil, err
	}

	var parsed dto.SubmitMetadataRequest
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	// The playback URL is kept when the submitter supplied one, otherwise
	// looked up from the uploaded video with the matching filename. The
	// upload method is always recomputed from the shape of
	// associatedVideo; a stored flag is never trusted.
	videoURL := parsed.VideoURL
	if videoURL == "" {
		videoURL = videoURLByName[parsed.AssociatedVideo]
	}
	method := constant.UploadMethodFile
	if strings.HasPrefix(parsed.AssociatedVideo, constant.LinkSubmissionPrefix) {
		method = constant.UploadMethodLink
	}

	return &dto.SubmissionEntry{
		Name:            parsed.Name,
		Email:           parsed.Email,
		Description:     parsed.Description,
		SubmittedAt:     parsed.SubmittedAt,
		AssociatedVideo: parsed.AssociatedVideo,
		VideoTitle:      parsed.VideoTitle,
		VideoURL:        videoURL,
		IsAdopted:       parsed.IsAdopted,
		FileInfo:        s.fileInfo(sidecar),
		UploadMethod:    method,
	}, nil
}

func (s *catalogService) ListFiles(ctx context.Context) ([]dto.FileInfo, error) {
	objects, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	files := make([]dto.FileInfo, 0, len(objects))
	for _, obj := range objects {
		files = append(files, s.fileInfo(obj))
	}
	return files, nil
}

// ListVideos serves the flat per-file view with empty uploader fields;
// submitter details only exist in metadata sidecars.
func (s *catalogService) ListVideos(ctx context.Context) ([]dto.VideoFile, error) {
	objects, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	videos := make([]dto.VideoFile, 0, len(objects))
	for _, obj := range objects {
		videos = append(videos, dto.VideoFile{
			Name:       obj.Name,
			URL:        s.store.URL(obj.Key),
			Size:       obj.Size,
			Type:       "video",
			UploadedAt: obj.UploadedAt,
		})
	}
	return videos, nil
}

func (s *catalogService) SubmitMetadata(ctx context.Context, req dto.SubmitMetadataRequest) (dto.FileInfo, error) {
	if req.AssociatedVideo == "" {
		return dto.FileInfo{}, ErrMissingAssociatedVideo
	}

	body, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return dto.FileInfo{}, err
	}

	name := req.AssociatedVideo + constant.MetadataSuffix
	obj, err := s.store.Put(ctx, name, "application/json", bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return dto.FileInfo{}, err
	}

	if s.events != nil {
		event := dto.SubmissionReceivedEvent{
			ObjectKey:       obj.Key,
			AssociatedVideo: req.AssociatedVideo,
			VideoTitle:      req.VideoTitle,
			ReceivedAt:      obj.UploadedAt,
		}
		if err := s.events.Publish(ctx, rabbitmq.RouteSubmissionReceived, event); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("failed to publish submission event")
		}
	}

	return s.fileInfo(obj), nil
}

func (s *catalogService) UploadFile(ctx context.Context, name, contentType string, body []byte) (dto.FileInfo, error) {
	obj, err := s.store.Put(ctx, name, contentType, bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return dto.FileInfo{}, err
	}
	return s.fileInfo(obj), nil
}

func (s *catalogService) DeleteFile(ctx context.Context, key string) error {
	return s.store.Remove(ctx, key)
}

func (s *catalogService) fileInfo(obj storage.Object) dto.FileInfo {
	return dto.FileInfo{
		Name:       obj.Name,
		URL:        s.store.URL(obj.Key),
		UploadedAt: obj.UploadedAt,
		Key:        obj.Key,
		ID:         obj.ID,
		Status:     obj.Status,
	}
}
