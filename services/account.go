package services

import (
	"context"
	"errors"
	"time"

	"github.com/YashJain2410/StudyBuddy/config"
	"github.com/YashJain2410/StudyBuddy/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrAccountNotFound = errors.New("account not found")

// GetAccount loads the user document that owns all tracker state.
func GetAccount(userID string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	userCollection := config.OpenCollection("users")

	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
