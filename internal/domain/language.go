package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Language is the aggregate root of the catalogue. Categories and examples
// are subdocuments: they have stable ids but no lifecycle outside their
// owning language document.
type Language struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name"          json:"name"`
	Slug        string             `bson:"slug"          json:"slug"`
	Description string             `bson:"description"   json:"description"`
	Categories  []Category         `bson:"categories"    json:"categories"`
}

type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name"          json:"name"`
	Content   string             `bson:"content"       json:"content"`
	VideoLink string             `bson:"video_link"    json:"video_link"`
	Examples  []Example          `bson:"examples"      json:"examples"`
}

type Example struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Description string             `bson:"description"   json:"description"`
}
