package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petawards/constant"
	"petawards/dto"
)

func newCatalog(store *fakeStore) (CatalogService, *SlotCache[[]dto.SubmissionEntry]) {
	cache := NewSlotCache[[]dto.SubmissionEntry](5 * time.Minute)
	return NewCatalogService(store, cache, nil, 0), cache
}

func metadataBody(t *testing.T, req dto.SubmitMetadataRequest) []byte {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	return body
}

func TestListSubmissionsResolvesUploadedVideo(t *testing.T) {
	store := newFakeStore()
	video := store.addObject("k1", "dog.mp4", []byte("binary"))
	store.addObject("m1", "dog.mp4.metadata.json", metadataBody(t, dto.SubmitMetadataRequest{
		Name:            "Alex",
		Email:           "alex@example.com",
		AssociatedVideo: "dog.mp4",
		VideoTitle:      "Dog",
	}))

	svc, _ := newCatalog(store)
	entries, err := svc.ListSubmissions(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "Dog", entry.VideoTitle)
	assert.Equal(t, store.URL(video.Key), entry.VideoURL)
	assert.Equal(t, constant.UploadMethodFile, entry.UploadMethod)
	assert.Equal(t, "m1", entry.FileInfo.ID)
	assert.Equal(t, store.URL("m1/dog.mp4.metadata.json"), entry.FileInfo.URL)
}

func TestListSubmissionsLinkSubmission(t *testing.T) {
	store := newFakeStore()
	store.addObject("m1", "link_abc123.metadata.json", metadataBody(t, dto.SubmitMetadataRequest{
		AssociatedVideo: "link_abc123",
		VideoTitle:      "Cat compilation",
		VideoURL:        "https://videos.example.com/watch?v=abc123",
	}))

	svc, _ := newCatalog(store)
	entries, err := svc.ListSubmissions(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, constant.UploadMethodLink, entries[0].UploadMethod)
	assert.Equal(t, "https://videos.example.com/watch?v=abc123", entries[0].VideoURL)
}

func TestListSubmissionsIgnoresStoredUploadMethod(t *testing.T) {
	store := newFakeStore()
	// A stale sidecar claiming to be a link while associatedVideo points
	// at a real file. The method must be recomputed, not trusted.
	store.addObject("k1", "fish.webm", []byte("binary"))
	raw := map[string]any{
		"associatedVideo": "fish.webm",
		"videoTitle":      "Fish",
		"uploadMethod":    "link",
	}
	body, err := json.Marshal(raw)
	require.NoError(t, err)
	store.addObject("m1", "fish.webm.metadata.json", body)

	svc, _ := newCatalog(store)
	entries, err := svc.ListSubmissions(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, constant.UploadMethodFile, entries[0].UploadMethod)
}

func TestListSubmissionsSkipsBrokenSidecars(t *testing.T) {
	store := newFakeStore()
	store.addObject("m1", "a.mp4.metadata.json", metadataBody(t, dto.SubmitMetadataRequest{
		AssociatedVideo: "a.mp4", VideoTitle: "A",
	}))
	store.addObject("m2", "b.mp4.metadata.json", []byte("{not json"))
	broken := store.addObject("m3", "c.mp4.metadata.json", metadataBody(t, dto.SubmitMetadataRequest{
		AssociatedVideo: "c.mp4", VideoTitle: "C",
	}))
	store.fetchErr[broken.Key] = assert.AnError
	store.addObject("m4", "d.mp4.metadata.json", metadataBody(t, dto.SubmitMetadataRequest{
		AssociatedVideo: "d.mp4", VideoTitle: "D",
	}))

	svc, _ := newCatalog(store)
	entries, err := svc.ListSubmissions(context.Background())
	require.NoError(t, err)

	titles := make([]string, 0, len(entries))
	for _, entry := range entries {
		titles = append(titles, entry.VideoTitle)
	}
	assert.Equal(t, []string{"A", "D"}, titles)
}

func TestListSubmissionsOnlyCorrelatesVideoFiles(t *testing.T) {
	store := newFakeStore()
	// A favorite marker whose name happens to equal associatedVideo must
	// not be treated as a video.
	store.addObject("f1", "favorite_u1_m9.json", []byte("{}"))
	store.addObject("m1", "x.metadata.json", metadataBody(t, dto.SubmitMetadataRequest{
		AssociatedVideo: "favorite_u1_m9.json",
	}))

	svc, _ := newCatalog(store)
	entries, err := svc.ListSubmissions(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].VideoURL)
}

func TestListSubmissionsCached(t *testing.T) {
	store := newFakeStore()
	store.addObject("m1", "a.mp4.metadata.json", metadataBody(t, dto.SubmitMetadataRequest{
		AssociatedVideo: "a.mp4", VideoTitle: "A",
	}))

	svc, cache := newCatalog(store)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	first, err := svc.ListSubmissions(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	// The listing changes underneath; within the TTL the cached copy wins.
	store.addObject("m2", "b.mp4.metadata.json", metadataBody(t, dto.SubmitMetadataRequest{
		AssociatedVideo: "b.mp4", VideoTitle: "B",
	}))

	second, err := svc.ListSubmissions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	now = now.Add(5*time.Minute + time.Second)
	third, err := svc.ListSubmissions(context.Background())
	require.NoError(t, err)
	assert.Len(t, third, 2)
}

func TestSubmitMetadataStoresSidecar(t *testing.T) {
	store := newFakeStore()
	svc, _ := newCatalog(store)

	info, err := svc.SubmitMetadata(context.Background(), dto.SubmitMetadataRequest{
		Name:            "Sam",
		AssociatedVideo: "hamster.mp4",
		VideoTitle:      "Wheel",
	})
	require.NoError(t, err)
	assert.Equal(t, "hamster.mp4.metadata.json", info.Name)
	assert.Equal(t, constant.ObjectStatusUploaded, info.Status)

	body, err := store.Fetch(context.Background(), info.Key)
	require.NoError(t, err)
	var stored dto.SubmitMetadataRequest
	require.NoError(t, json.Unmarshal(body, &stored))
	assert.Equal(t, "Wheel", stored.VideoTitle)
}

func TestSubmitMetadataRequiresAssociatedVideo(t *testing.T) {
	svc, _ := newCatalog(newFakeStore())
	_, err := svc.SubmitMetadata(context.Background(), dto.SubmitMetadataRequest{VideoTitle: "No link"})
	assert.ErrorIs(t, err, ErrMissingAssociatedVideo)
}

func TestListFilesReturnsEveryObject(t *testing.T) {
	store := newFakeStore()
	store.addObject("k1", "dog.mp4", []byte("binary"))
	store.addObject("m1", "dog.mp4.metadata.json", []byte("{}"))

	svc, _ := newCatalog(store)
	files, err := svc.ListFiles(context.Background())
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestListSubmissionsListFailure(t *testing.T) {
	store := newFakeStore()
	store.listErr = assert.AnError

	svc, _ := newCatalog(store)
	_, err := svc.ListSubmissions(context.Background())
	assert.Error(t, err)
}
