// Package publisher posts drafts to the platform under quota control.
package publisher

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/gracechain/versebot/internal/models"
)

// Poster sends one post, optionally as a reply, and returns its id.
type Poster interface {
	Post(ctx context.Context, text, inReplyTo string) (string, error)
}

// Archiver records published segments. Failures here are logged and
// swallowed; the archive is an audit trail, not a dependency.
type Archiver interface {
	SavePost(ctx context.Context, record *models.PostRecord) error
}

// Publisher turns drafts into posted threads.
type Publisher struct {
	poster  Poster
	quota   *Quota
	archive Archiver
}

// NewPublisher creates a publisher. archive may be nil.
func NewPublisher(poster Poster, quota *Quota, archive Archiver) *Publisher {
	return &Publisher{poster: poster, quota: quota, archive: archive}
}

// Quota exposes the underlying quota for read-side checks.
func (p *Publisher) Quota() *Quota {
	return p.quota
}

// Publish posts the draft's segments in order, each a reply to the one
// before it. The whole thread is checked against the quota up front;
// when it does not fit, no network call is made. On a mid-thread
// failure the result carries the ids posted so far and only those are
// counted against the quota.
func (p *Publisher) Publish(ctx context.Context, draft models.PostDraft) models.PublishResult {
	n := len(draft.Segments)
	if n == 0 {
		return models.PublishResult{Err: models.ErrEmptyDraft}
	}

	if !p.quota.CanPost(n) {
		log.Warn().Str("kind", string(draft.Kind)).Int("segments", n).Msg("Draft rejected by quota")
		return models.PublishResult{Err: models.ErrQuotaExceeded}
	}

	ids := make([]string, 0, n)
	inReplyTo := ""
	for i, segment := range draft.Segments {
		id, err := p.poster.Post(ctx, segment, inReplyTo)
		if err != nil {
			p.quota.RecordPosts(ctx, len(ids))
			log.Error().Err(err).
				Str("kind", string(draft.Kind)).
				Int("segment", i+1).
				Int("posted", len(ids)).
				Msg("Thread broke mid-publish")
			return models.PublishResult{
				PostIDs: ids,
				Err:     fmt.Errorf("%w: segment %d of %d: %v", models.ErrPublishPartial, i+1, n, err),
			}
		}

		ids = append(ids, id)
		p.archiveSegment(ctx, draft.Kind, id, segment, inReplyTo)
		inReplyTo = id
	}

	p.quota.RecordPosts(ctx, n)
	log.Info().Str("kind", string(draft.Kind)).Strs("post_ids", ids).Msg("Published draft")
	return models.PublishResult{PostIDs: ids, Succeeded: true}
}

// PublishReply posts a single reply to an existing post.
func (p *Publisher) PublishReply(ctx context.Context, text, inReplyTo string) (string, error) {
	if !p.quota.CanPost(1) {
		return "", models.ErrQuotaExceeded
	}

	id, err := p.poster.Post(ctx, text, inReplyTo)
	if err != nil {
		return "", err
	}

	p.quota.RecordPosts(ctx, 1)
	p.archiveSegment(ctx, models.PostReply, id, text, inReplyTo)
	return id, nil
}

func (p *Publisher) archiveSegment(ctx context.Context, kind models.PostKind, id, text, inReplyTo string) {
	if p.archive == nil {
		return
	}
	record := &models.PostRecord{
		PostID:    id,
		Kind:      kind,
		Text:      text,
		InReplyTo: inReplyTo,
	}
	if err := p.archive.SavePost(ctx, record); err != nil {
		log.Warn().Err(err).Str("post_id", id).Msg("Failed to archive post")
	}
}
