package services

import (
	"context"
	"time"

	"github.com/YashJain2410/StudyBuddy/config"
	"github.com/YashJain2410/StudyBuddy/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Coin economy tunables.
const (
	InitialCoins  = 50
	DailyBonus    = 1
	StreakBonus   = 5
	TabSwitchCost = 5
)

// maxStreakGapDays is the tolerance window for keeping a streak alive. The
// window is deliberately wider than one day so a late-night session followed
// by an early one still counts as consecutive.
var maxStreakGapDays = 1.5

// LedgerState is the reward-relevant slice of an account.
type LedgerState struct {
	Coins          int
	Streak         int
	LastDayWatched *time.Time
}

// ApplySession returns the state after crediting one finalized session at
// now. Same-day sessions change nothing; the first session of a new day
// earns the daily bonus and moves the streak.
func ApplySession(prev LedgerState, now time.Time) LedgerState {
	next := prev
	if prev.LastDayWatched != nil && SameDay(*prev.LastDayWatched, now) {
		return next
	}

	next.Coins += DailyBonus
	if prev.LastDayWatched == nil {
		next.Streak = 1
	} else if DayGap(*prev.LastDayWatched, now) <= maxStreakGapDays {
		next.Streak = prev.Streak + 1
		if next.Streak > 1 {
			next.Coins += StreakBonus
		}
	} else {
		next.Streak = 1
	}

	day := DayStart(now)
	next.LastDayWatched = &day
	return next
}

// ApplyPenalty deducts a switch penalty from a coin balance, clamped at zero.
func ApplyPenalty(coins, loss int) int {
	if loss < 0 {
		loss = 0
	}
	if coins-loss < 0 {
		return 0
	}
	return coins - loss
}

// ApplyCompletedSession credits the day/streak rewards for one finalized
// session and appends it to the head of the account's history, in a single
// update so concurrent requests serialize on the user document.
func ApplyCompletedSession(userID string, entry models.WatchSession, now time.Time) (*models.User, error) {
	user, err := GetAccount(userID)
	if err != nil {
		return nil, err
	}

	prev := LedgerState{Coins: user.Coins, Streak: user.Streak, LastDayWatched: user.LastDayWatched}
	next := ApplySession(prev, now)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: "coins", Value: next.Coins - prev.Coins}}},
		{Key: "$set", Value: bson.D{
			{Key: "streak", Value: next.Streak},
			{Key: "lastDayWatched", Value: next.LastDayWatched},
			{Key: "updated_at", Value: time.Now()},
		}},
		{Key: "$push", Value: bson.D{{Key: "history", Value: bson.D{
			{Key: "$each", Value: bson.A{entry}},
			{Key: "$position", Value: 0},
		}}}},
	}

	return findAndUpdateAccount(ctx, userID, update)
}

// RecordVideoWatched bumps the watched counter and maintains the streak via
// the same day-boundary transition the finalize path uses.
func RecordVideoWatched(userID string, now time.Time) (*models.User, error) {
	user, err := GetAccount(userID)
	if err != nil {
		return nil, err
	}

	prev := LedgerState{Coins: user.Coins, Streak: user.Streak, LastDayWatched: user.LastDayWatched}
	next := ApplySession(prev, now)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	update := bson.D{
		{Key: "$inc", Value: bson.D{
			{Key: "coins", Value: next.Coins - prev.Coins},
			{Key: "videosWatched", Value: 1},
		}},
		{Key: "$set", Value: bson.D{
			{Key: "streak", Value: next.Streak},
			{Key: "lastDayWatched", Value: next.LastDayWatched},
			{Key: "updated_at", Value: time.Now()},
		}},
	}

	return findAndUpdateAccount(ctx, userID, update)
}

// AddCoins increments the coin balance and returns the new total.
func AddCoins(userID string, amount int) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: "coins", Value: amount}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now()}}},
	}

	user, err := findAndUpdateAccount(ctx, userID, update)
	if err != nil {
		return 0, err
	}
	return user.Coins, nil
}

// DeductSwitchPenalty applies a tab-switch penalty atomically: the clamp at
// zero happens inside the update pipeline, not in a read-then-write.
func DeductSwitchPenalty(userID string, loss int) (*models.User, error) {
	if loss < 0 {
		loss = 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "coins", Value: bson.D{{Key: "$max", Value: bson.A{
				0,
				bson.D{{Key: "$subtract", Value: bson.A{"$coins", loss}}},
			}}}},
			{Key: "videosSwitched", Value: bson.D{{Key: "$add", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$videosSwitched", 0}}},
				1,
			}}}},
			{Key: "updated_at", Value: "$$NOW"},
		}}},
	}

	return findAndUpdateAccount(ctx, userID, update)
}

func findAndUpdateAccount(ctx context.Context, userID string, update interface{}) (*models.User, error) {
	userCollection := config.OpenCollection("users")
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := userCollection.
		FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).
		Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
