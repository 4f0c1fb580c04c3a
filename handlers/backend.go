package handlers

import (
	"context"

	"tubewise/models"
	"tubewise/services/recommender"
)

//go:generate mockgen -destination=mocks/backend.go -package=mocks tubewise/handlers Backend

// Backend is the part of the recommendation service the views talk to.
type Backend interface {
	UserID() int64
	Recommend(ctx context.Context, query string) (*models.Recommendation, error)
	TriggerIngestion(ctx context.Context, topic string, maxResults int) (string, error)
	RecordInteraction(ctx context.Context, videoID string, action models.Action) error
	DeleteInteraction(ctx context.Context, videoID string) error
	History(ctx context.Context) ([]models.Interaction, error)
	WatchLater(ctx context.Context) ([]models.Interaction, error)
	GetUser(ctx context.Context) (*models.User, error)
	Register(ctx context.Context, reg models.Registration) (*models.User, error)
}

var _ Backend = (*recommender.Client)(nil)
