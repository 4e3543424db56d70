package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tweetscope/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultPageSize = 500

// ErrNotFound is returned when a stored analysis or evaluation does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the gorm-backed datastore for tweets, analyses and model evaluations.
type Store struct {
	DB       *gorm.DB
	pageSize int
}

func New(db *gorm.DB, pageSize int) *Store {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Store{DB: db, pageSize: pageSize}
}

// TweetsByHashtag returns up to limit tweets collected for hashtag, ordered by id.
func (s *Store) TweetsByHashtag(ctx context.Context, hashtag string, limit int) ([]models.Tweet, error) {
	return s.pagedTweets(ctx, limit, "search_hashtag = ?", hashtag)
}

// AllTweets returns up to limit tweets regardless of hashtag, ordered by id.
func (s *Store) AllTweets(ctx context.Context, limit int) ([]models.Tweet, error) {
	return s.pagedTweets(ctx, limit, "")
}

// pagedTweets walks the tweets table with an id cursor so no single query
// returns more than one page.
func (s *Store) pagedTweets(ctx context.Context, limit int, where string, args ...any) ([]models.Tweet, error) {
	var tweets []models.Tweet
	var lastID uint

	for len(tweets) < limit {
		size := min(s.pageSize, limit-len(tweets))

		q := s.DB.WithContext(ctx).Where("id > ?", lastID)
		if where != "" {
			q = q.Where(where, args...)
		}

		var page []models.Tweet
		if err := q.Order("id").Limit(size).Find(&page).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch tweets: %w", err)
		}

		tweets = append(tweets, page...)
		if len(page) < size {
			break
		}
		lastID = page[len(page)-1].ID
	}

	return tweets, nil
}

// SaveAnalysis upserts the analysis results for hashtag.
func (s *Store) SaveAnalysis(ctx context.Context, hashtag string, results json.RawMessage, analyzedAt time.Time) error {
	row := models.TweetAnalysis{
		Hashtag:      hashtag,
		AnalysisDate: analyzedAt,
		Results:      results,
	}

	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hashtag"}},
		DoUpdates: clause.AssignmentColumns([]string{"analysis_date", "results", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert analysis for %s: %w", hashtag, err)
	}

	return nil
}

func (s *Store) AnalysisByHashtag(ctx context.Context, hashtag string) (*models.TweetAnalysis, error) {
	analysis, err := gorm.G[models.TweetAnalysis](s.DB).Where("hashtag = ?", hashtag).First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get analysis for %s: %w", hashtag, err)
	}
	return &analysis, nil
}

// InsertEvaluation appends a model evaluation record.
func (s *Store) InsertEvaluation(ctx context.Context, evaluation *models.ModelEvaluation) error {
	if err := gorm.G[models.ModelEvaluation](s.DB).Create(ctx, evaluation); err != nil {
		return fmt.Errorf("failed to insert model evaluation: %w", err)
	}
	return nil
}

func (s *Store) LatestEvaluation(ctx context.Context) (*models.ModelEvaluation, error) {
	evaluation, err := gorm.G[models.ModelEvaluation](s.DB).Order("evaluation_date DESC, id DESC").First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest evaluation: %w", err)
	}
	return &evaluation, nil
}

// SaveTweets inserts tweets, skipping any whose tweet_id is already stored.
// It returns the number of rows inserted.
func (s *Store) SaveTweets(ctx context.Context, tweets []models.Tweet) (int, error) {
	if len(tweets) == 0 {
		return 0, nil
	}

	result := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tweet_id"}},
		DoNothing: true,
	}).CreateInBatches(&tweets, 100)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to save tweets: %w", result.Error)
	}

	return int(result.RowsAffected), nil
}
