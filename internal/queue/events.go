package queue

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRegistered struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
	Name   string             `json:"name"`
}

type FeedbackReceived struct {
	FeedbackID primitive.ObjectID `json:"feedback_id"`
	Email      string             `json:"email"`
	Subject    string             `json:"subject,omitempty"`
}
