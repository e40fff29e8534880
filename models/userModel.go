package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	First_name    *string            `json:"first_name" validate:"required,min=2,max=100"`
	Last_name     *string            `json:"last_name" validate:"required,min=2,max=100"`
	Password      *string            `json:"password" validate:"required,min=6"`
	Email         *string            `json:"email" validate:"required,email"`
	Token         *string            `json:"token,omitempty"`
	Role          *string            `json:"role"`
	Refresh_token *string            `json:"refresh_token,omitempty"`

	// Tracker state. Coins never go below zero; history is stored
	// newest-first and retained in full, API responses cap it at 5.
	Coins          int            `bson:"coins" json:"coins"`
	Streak         int            `bson:"streak" json:"streak"`
	VideosWatched  int            `bson:"videosWatched" json:"videosWatched"`
	VideosSwitched int            `bson:"videosSwitched" json:"videosSwitched"`
	LastDayWatched *time.Time     `bson:"lastDayWatched,omitempty" json:"lastDayWatched,omitempty"`
	History        []WatchSession `bson:"history" json:"history"`

	Created_at time.Time `json:"created_at"`
	Updated_at time.Time `json:"updated_at"`
	User_id    string    `json:"user_id"`
}
