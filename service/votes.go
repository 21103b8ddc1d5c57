package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"petawards/dto"
	"petawards/entities"
	"petawards/pkg/rabbitmq"
	"petawards/repository"
)

// VoteService enforces the single-vote rule. The HasVoted pre-check gives
// callers a fast rejection path; the insert itself is conditional, so two
// concurrent first votes from one user still resolve to a single row.
type VoteService interface {
	HasVoted(ctx context.Context, userID string) (bool, error)
	Submit(ctx context.Context, req dto.SubmitVoteRequest) (*entities.Vote, error)
	Results(ctx context.Context) (*dto.VoteResults, error)
}

type voteService struct {
	repo   repository.VoteRepository
	events rabbitmq.Publisher
}

func NewVoteService(repo repository.VoteRepository, events rabbitmq.Publisher) VoteService {
	return &voteService{
		repo:   repo,
		events: events,
	}
}

func (s *voteService) HasVoted(ctx context.Context, userID string) (bool, error) {
	return s.repo.HasVoted(ctx, userID)
}

func (s *voteService) Submit(ctx context.Context, req dto.SubmitVoteRequest) (*entities.Vote, error) {
	voted, err := s.repo.HasVoted(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if voted {
		return nil, repository.ErrAlreadyVoted
	}

	vote := &entities.Vote{
		UserID:     req.UserID,
		Email:      req.Email,
		VotedAtUtc: time.Now().UTC(),
		VideoID:    req.VideoID,
	}
	if err := s.repo.CreateVote(ctx, vote); err != nil {
		return nil, err
	}

	if s.events != nil {
		event := dto.VoteCastEvent{
			UserID:  vote.UserID,
			VideoID: vote.VideoID,
			CastAt:  vote.VotedAtUtc,
		}
		if err := s.events.Publish(ctx, rabbitmq.RouteVoteCast, event); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("failed to publish vote event")
		}
	}

	return vote, nil
}

// Results joins the vote rows with video display fields and aggregates a
// per-video count, ordered by video id.
func (s *voteService) Results(ctx context.Context) (*dto.VoteResults, error) {
	votes, err := s.repo.ListVotes(ctx)
	if err != nil {
		return nil, err
	}
	videos, err := s.repo.ListVideos(ctx)
	if err != nil {
		return nil, err
	}

	videoByID := make(map[int64]*entities.Video, len(videos))
	for _, video := range videos {
		videoByID[video.ID] = video
	}

	records := make([]dto.VoteRecord, 0, len(votes))
	counts := make(map[int64]int64)
	for _, vote := range votes {
		record := dto.VoteRecord{
			ID:         vote.ID,
			UserID:     vote.UserID,
			Email:      vote.Email,
			VotedAtUtc: vote.VotedAtUtc,
			VideoID:    vote.VideoID,
		}
		if video, ok := videoByID[vote.VideoID]; ok {
			record.VideoName = video.Name
		}
		records = append(records, record)
		counts[vote.VideoID]++
	}

	aggregates := make([]dto.VoteAggregate, 0, len(counts))
	for _, video := range videos {
		if counts[video.ID] == 0 {
			continue
		}
		aggregates = append(aggregates, dto.VoteAggregate{
			VideoID:   video.ID,
			VideoName: video.Name,
			Streamer:  video.Streamer,
			VoteCount: counts[video.ID],
		})
	}

	return &dto.VoteResults{
		Votes:      records,
		Aggregates: aggregates,
	}, nil
}
