package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostKind classifies what a draft or published post contains.
type PostKind string

const (
	PostScripture   PostKind = "scripture"
	PostMarketVerse PostKind = "market_verse"
	PostAnalysis    PostKind = "market_analysis"
	PostTrending    PostKind = "trending"
	PostNews        PostKind = "news"
	PostProjects    PostKind = "projects"
	PostInsight     PostKind = "insight"
	PostSecurity    PostKind = "security"
	PostEducation   PostKind = "education"
	PostReply       PostKind = "reply"
)

// PostDraft is composed, not-yet-published content. Segments are posted in
// order; a draft with more than one segment becomes a thread. Immutable
// after composition and consumed exactly once by the publisher.
type PostDraft struct {
	Kind     PostKind `json:"kind"`
	Language string   `json:"language"` // primary language, "en" or "en+zh" for bilingual threads
	Segments []string `json:"segments"`
}

// PublishResult reports the outcome of publishing one draft.
// PostIDs holds the platform ids posted so far, in thread order; on a
// mid-thread failure it is shorter than the draft and Err names the
// failing segment.
type PublishResult struct {
	PostIDs   []string `json:"post_ids"`
	Succeeded bool     `json:"succeeded"`
	Err       error    `json:"-"`
}

// PostRecord archives one published segment.
type PostRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID    string             `bson:"post_id" json:"post_id"`
	Kind      PostKind           `bson:"kind" json:"kind"`
	Text      string             `bson:"text" json:"text"`
	InReplyTo string             `bson:"in_reply_to,omitempty" json:"in_reply_to,omitempty"`
	PostedAt  time.Time          `bson:"posted_at" json:"posted_at"`
}
