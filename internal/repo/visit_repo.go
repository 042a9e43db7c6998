package repo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/siitecch/learn-api/internal/domain"
)

// RecordVisit bumps today's view counter, creating the day's document on
// first view. Upsert keeps concurrent bumps from racing the existence check.
func (s *Store) RecordVisit(ctx context.Context, now time.Time) (*domain.Visit, error) {
	now = now.UTC()
	year, week := now.ISOWeek()

	res := s.colVisits.FindOneAndUpdate(ctx,
		bson.M{"date": now.Format("2006-01-02")},
		bson.M{
			"$inc": bson.M{"views": 1},
			"$setOnInsert": bson.M{
				"week":  fmt.Sprintf("%d-W%02d", year, week),
				"month": now.Format("2006-01"),
				"year":  now.Format("2006"),
			},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	var v domain.Visit
	if err := res.Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Store) ListVisits(ctx context.Context) ([]domain.Visit, error) {
	cur, err := s.colVisits.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Visit
	for cur.Next(ctx) {
		var v domain.Visit
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, cur.Err()
}
