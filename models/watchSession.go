package models

import "time"

// WatchSession is one finalized watch interval, embedded in the user's
// history array. Immutable once appended.
type WatchSession struct {
	VideoID        string    `bson:"videoId" json:"videoId"` // YouTube id or local filename
	URL            string    `bson:"url" json:"url"`
	SecondsWatched int       `bson:"secondsWatched" json:"secondsWatched"`
	TabSwitches    int       `bson:"tabSwitches" json:"tabSwitches"`
	WatchedAt      time.Time `bson:"watchedAt" json:"watchedAt"`
	Note           string    `bson:"note,omitempty" json:"note,omitempty"`
	Tag            string    `bson:"tag,omitempty" json:"tag,omitempty"`
}
