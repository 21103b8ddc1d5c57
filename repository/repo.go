package repository

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"petawards/entities"
)

// ErrAlreadyVoted is returned when a vote insert hits the unique user
// constraint. The one-vote-per-user rule lives in the database, not in a
// read-then-write check, so concurrent first votes cannot both land.
var ErrAlreadyVoted = errors.New("user has already voted")

type VoteRepository interface {
	Transaction(ctx context.Context, callback func(ctx context.Context) error, opts ...*sql.TxOptions) error
	GetDB() *gorm.DB
	HasVoted(ctx context.Context, userID string) (bool, error)
	CreateVote(ctx context.Context, vote *entities.Vote) error
	ListVotes(ctx context.Context) ([]*entities.Vote, error)
	ListVideos(ctx context.Context) ([]*entities.Video, error)
	FindVideoById(ctx context.Context, id int64) (*entities.Video, error)
}

type repo struct {
	db *gorm.DB
}

func NewRepo(db *sql.DB) VoteRepository {
	gormDB, _ := gorm.Open(postgres.New(postgres.Config{
		Conn: db}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		},
	)
	return &repo{
		db: gormDB,
	}
}

func (r *repo) GetDB() *gorm.DB {
	return r.db
}

func (r *repo) Transaction(ctx context.Context, callback func(ctx context.Context) error, opts ...*sql.TxOptions) error {
	return r.GetDB().Transaction(func(tx *gorm.DB) error {
		err := callback(ctx)
		if err != nil {
			return err
		}
		return nil
	}, opts...)
}

func (r *repo) HasVoted(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.GetDB().WithContext(ctx).Model(&entities.Vote{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateVote inserts the vote, doing nothing on a user_id conflict and
// reporting the conflict as ErrAlreadyVoted.
func (r *repo) CreateVote(ctx context.Context, vote *entities.Vote) error {
	result := r.GetDB().WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(vote)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyVoted
	}
	return nil
}

func (r *repo) ListVotes(ctx context.Context) ([]*entities.Vote, error) {
	var votes []*entities.Vote
	err := r.GetDB().WithContext(ctx).Order("id ASC").Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

func (r *repo) ListVideos(ctx context.Context) ([]*entities.Video, error) {
	var videos []*entities.Video
	err := r.GetDB().WithContext(ctx).Order("id ASC").Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *repo) FindVideoById(ctx context.Context, id int64) (*entities.Video, error) {
	video := &entities.Video{}
	err := r.GetDB().WithContext(ctx).First(video, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return video, nil
}
