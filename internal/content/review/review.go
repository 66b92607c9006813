// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review implements user reviews on catalogue titles and threaded
comments on those reviews.

# Core Responsibility

  - Reviews: Authored text plus a score in [1, 10]. A user may leave at most
    one review per title; the rule is checked in the service and enforced by
    a unique constraint in storage.
  - Comments: Free-form authored replies attached to a review.
  - Access: Reading is public. Writing requires authentication. Editing and
    deleting follow the authored-content policy: the author, a moderator, or
    an administrator.

Every score mutation invalidates the title's cached rating so catalogue reads
recompute the average.
*/
package review

import "time"

// # Core Entities

// Review is a user's opinion of a title with a numeric score.
type Review struct {
	ID      string `json:"id"` // UUIDv7
	TitleID string `json:"title_id"`

	AuthorID string `json:"-"`
	// Author is the author's username, denormalized for list views.
	Author string `json:"author"`

	Text  string `json:"text"`
	Score int    `json:"score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment is a reply attached to a review.
type Comment struct {
	ID       string `json:"id"` // UUIDv7
	ReviewID string `json:"review_id"`

	AuthorID string `json:"-"`
	Author   string `json:"author"`

	Text string `json:"text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Scoring Bounds

const (
	MinScore = 1
	MaxScore = 10
)

// # Field Identifiers

const (
	FieldText  = "text"
	FieldScore = "score"
)

// # Input Limits

const MaxTextLength = 8000
