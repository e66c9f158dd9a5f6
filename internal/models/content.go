package models

import "time"

// ClubContent is everything the landing page renders apart from the AI box.
type ClubContent struct {
	ClubName     string    `firestore:"clubName" json:"clubName" yaml:"clubName"`
	Tagline      string    `firestore:"tagline" json:"tagline" yaml:"tagline"`
	OpenChatURL  string    `firestore:"openChatUrl" json:"openChatUrl" yaml:"openChatUrl"`
	InstagramURL string    `firestore:"instagramUrl" json:"instagramUrl" yaml:"instagramUrl"`
	MapEmbedURL  string    `firestore:"mapEmbedUrl" json:"mapEmbedUrl" yaml:"mapEmbedUrl"`
	Rules        []Rule    `firestore:"rules" json:"rules" yaml:"rules"`
	TourTips     []string  `firestore:"tourTips" json:"tourTips" yaml:"tourTips"`
	Signals      []Signal  `firestore:"signals" json:"signals" yaml:"signals"`
	UpdatedAt    time.Time `firestore:"updatedAt" json:"updatedAt,omitempty" yaml:"-"`
}

type Rule struct {
	ID          string `firestore:"id" json:"id" yaml:"id"`
	Title       string `firestore:"title" json:"title" yaml:"title"`
	Description string `firestore:"description" json:"description" yaml:"description"`
	Icon        string `firestore:"icon,omitempty" json:"icon,omitempty" yaml:"icon,omitempty"` // "users","message","shield"
}

// Signal is a hand signal used while riding in formation.
type Signal struct {
	ID          string `firestore:"id" json:"id" yaml:"id"`
	Title       string `firestore:"title" json:"title" yaml:"title"`
	Description string `firestore:"description" json:"description" yaml:"description"`
}
