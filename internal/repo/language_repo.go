package repo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/siitecch/learn-api/internal/domain"
)

var ErrSlugExists = errors.New("slug already exists")

func normalizeSlug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (s *Store) CreateLanguage(ctx context.Context, l *domain.Language) error {
	l.Slug = normalizeSlug(l.Slug)
	if l.Categories == nil {
		l.Categories = []domain.Category{}
	}
	res, err := s.colLanguages.InsertOne(ctx, l)
	if IsDup(err) {
		return ErrSlugExists
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		l.ID = oid
	}
	return nil
}

// ListLanguages returns the catalogue index: name/slug/description only,
// categories elided.
func (s *Store) ListLanguages(ctx context.Context) ([]domain.Language, error) {
	cur, err := s.colLanguages.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"name": 1, "slug": 1, "description": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Language
	for cur.Next(ctx) {
		var l domain.Language
		if err := cur.Decode(&l); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, cur.Err()
}

func (s *Store) FindLanguageBySlug(ctx context.Context, slug string) (*domain.Language, error) {
	var l domain.Language
	err := s.colLanguages.FindOne(ctx, bson.M{"slug": normalizeSlug(slug)}).Decode(&l)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &l, err
}

func (s *Store) FindLanguageByID(ctx context.Context, id primitive.ObjectID) (*domain.Language, error) {
	var l domain.Language
	err := s.colLanguages.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &l, err
}

// FindLanguageByCategoryID locates the owning language of a category by
// matching the subdocument id anywhere in the categories array.
func (s *Store) FindLanguageByCategoryID(ctx context.Context, catID primitive.ObjectID) (*domain.Language, error) {
	var l domain.Language
	err := s.colLanguages.FindOne(ctx, bson.M{"categories._id": catID}).Decode(&l)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &l, err
}

// AddCategory appends a category subdocument with $push. The append is a
// single atomic update, so concurrent writers to the same language cannot
// lose each other's categories.
func (s *Store) AddCategory(ctx context.Context, langID primitive.ObjectID, c *domain.Category) error {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.language.add_category",
		tracer.Tag("language_id", langID.Hex()),
	)
	defer sp.Finish()

	c.ID = primitive.NewObjectID()
	if c.Examples == nil {
		c.Examples = []domain.Example{}
	}
	res, err := s.colLanguages.UpdateOne(ctx,
		bson.M{"_id": langID},
		bson.M{"$push": bson.M{"categories": c}},
	)
	if err != nil {
		sp.SetTag("error", err)
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateCategory sets name/content/video_link on the matched subdocument via
// the positional operator. Targeted $set keeps sibling-category edits from
// clobbering each other (no whole-document rewrite).
func (s *Store) UpdateCategory(ctx context.Context, catID primitive.ObjectID, name, content, videoLink string) error {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.language.update_category",
		tracer.Tag("category_id", catID.Hex()),
	)
	defer sp.Finish()

	res, err := s.colLanguages.UpdateOne(ctx,
		bson.M{"categories._id": catID},
		bson.M{"$set": bson.M{
			"categories.$.name":       name,
			"categories.$.content":    content,
			"categories.$.video_link": videoLink,
		}},
	)
	if err != nil {
		sp.SetTag("error", err)
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetCategoryVideo updates only the video link, scoped to one language so a
// category id from a different language 404s.
func (s *Store) SetCategoryVideo(ctx context.Context, langID, catID primitive.ObjectID, videoURL string) (*domain.Category, error) {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.language.set_video",
		tracer.Tag("language_id", langID.Hex()),
		tracer.Tag("category_id", catID.Hex()),
	)
	defer sp.Finish()

	res := s.colLanguages.FindOneAndUpdate(ctx,
		bson.M{"_id": langID, "categories._id": catID},
		bson.M{"$set": bson.M{"categories.$.video_link": videoURL}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var l domain.Language
	if err := res.Decode(&l); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		sp.SetTag("error", err)
		return nil, err
	}
	for i := range l.Categories {
		if l.Categories[i].ID == catID {
			return &l.Categories[i], nil
		}
	}
	return nil, ErrNotFound
}

// CountVideos counts categories across all languages that carry a non-empty
// video link.
func (s *Store) CountVideos(ctx context.Context) (int64, error) {
	cur, err := s.colLanguages.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: "$categories"}},
		bson.D{{Key: "$match", Value: bson.M{
			"categories.video_link": bson.M{"$nin": bson.A{nil, ""}},
		}}},
		bson.D{{Key: "$count", Value: "totalVideos"}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		TotalVideos int64 `bson:"totalVideos"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].TotalVideos, nil
}
