// Package model holds the records exchanged with the bragboard API.
//
// This package enables bragboard to:
// - Decode API payloads into typed shoutouts, comments, notifications and employees
// - Tolerate partial payloads (missing image, tags or reaction map default to empty)
// - Derive date-only keys used by the engagement series
package model

import (
	"strings"
	"time"
)

// AnonymousAuthor labels shoutouts whose author name is missing.
const AnonymousAuthor = "Anonymous"

// Shoutout is a recognition post, the feed's primary record.
type Shoutout struct {
	ID              ID             `json:"id"`
	AuthorID        ID             `json:"author_id"`
	AuthorName      string         `json:"author_name"`
	Message         string         `json:"message"`
	ImageURL        string         `json:"image_url,omitempty"`
	TaggedUserIDs   []ID           `json:"tagged_user_ids"`
	TaggedUserNames []string       `json:"tagged_user_names"`
	CreatedAt       time.Time      `json:"created_at"`
	Reactions       map[string]int `json:"reactions"`
	CommentsCount   int            `json:"comments_count"`
	IsReported      bool           `json:"is_reported"`
}

// AuthorLabel returns the author name, or AnonymousAuthor when it is blank.
func (s Shoutout) AuthorLabel() string {
	if name := strings.TrimSpace(s.AuthorName); name != "" {
		return name
	}
	return AnonymousAuthor
}

// Day returns the calendar day of CreatedAt as YYYY-MM-DD, in the timestamp's own
// location. ok is false when the timestamp was missing or malformed.
func (s Shoutout) Day() (day string, ok bool) {
	if s.CreatedAt.IsZero() {
		return "", false
	}
	return s.CreatedAt.Format(DateLayout), true
}

// Clone returns a deep copy so callers cannot mutate store-owned slices and maps.
func (s Shoutout) Clone() Shoutout {
	c := s
	c.TaggedUserIDs = append([]ID(nil), s.TaggedUserIDs...)
	c.TaggedUserNames = append([]string(nil), s.TaggedUserNames...)
	c.Reactions = make(map[string]int, len(s.Reactions))
	for k, v := range s.Reactions {
		c.Reactions[k] = v
	}
	return c
}

// TotalReactions sums every emoji counter.
func (s Shoutout) TotalReactions() int {
	total := 0
	for _, n := range s.Reactions {
		total += n
	}
	return total
}

// Comment is a reply attached to exactly one shoutout. Comments are immutable.
type Comment struct {
	ID         ID        `json:"id"`
	ShoutoutID ID        `json:"shoutout_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// Notification is a global broadcast from an admin.
type Notification struct {
	ID        ID        `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Employee is read for tag pickers and identity matching; the feed never owns it.
type Employee struct {
	ID                ID     `json:"id"`
	Name              string `json:"name"`
	Username          string `json:"username"`
	Department        string `json:"department"`
	AppreciationScore int    `json:"appreciation_score"`
}

// Label returns the display name used for mentions.
func (e Employee) Label() string {
	if e.Name != "" {
		return e.Name
	}
	if e.Username != "" {
		return e.Username
	}
	return "ID:" + e.ID.String()
}

// EngagementPoint is one day of the engagement series. It is derived, never stored.
type EngagementPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Contributor is one leaderboard row.
type Contributor struct {
	AuthorName string `json:"author_name"`
	Department string `json:"department,omitempty"`
	Count      int    `json:"count"`
}

// TagCount is the most-tagged result.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// EmployeeOfMonth is the current announcement.
type EmployeeOfMonth struct {
	ID         ID        `json:"id"`
	EmployeeID ID        `json:"employee_id"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	MonthYear  string    `json:"month_year"`
	CreatedAt  time.Time `json:"created_at"`
}

// Metrics are the caller's personal counters.
type Metrics struct {
	ShoutoutsGiven    int `json:"shoutouts_given"`
	ShoutoutsReceived int `json:"shoutouts_received"`
	CommentsMade      int `json:"comments_made"`
}

// Identity is who the caller is, used to match "my posts" locally.
type Identity struct {
	ID   ID
	Name string
}

// Known reports whether the identity carries anything to match on.
func (i Identity) Known() bool {
	return !i.ID.IsZero() || strings.TrimSpace(i.Name) != ""
}

// Image is an optional upload attached to a new shoutout.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// NewShoutout is the create payload.
type NewShoutout struct {
	Message       string
	TaggedUserIDs []ID
	Image         *Image
}
