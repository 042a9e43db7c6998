package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Visit is a per-day page-view counter. Week/Month/Year are denormalized so
// the frontend can group without date math.
type Visit struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date  string             `bson:"date"          json:"date"` // YYYY-MM-DD
	Views int64              `bson:"views"         json:"views"`
	Week  string             `bson:"week"          json:"week"`
	Month string             `bson:"month"         json:"month"`
	Year  string             `bson:"year"          json:"year"`
}
