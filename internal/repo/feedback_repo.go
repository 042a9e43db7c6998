package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/siitecch/learn-api/internal/domain"
)

func (s *Store) CreateFeedback(ctx context.Context, f *domain.Feedback) error {
	f.CreatedAt = time.Now().UTC()
	res, err := s.colFeedback.InsertOne(ctx, f)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		f.ID = oid
	}
	return nil
}
