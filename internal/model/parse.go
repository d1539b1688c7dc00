package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the date-only key used by engagement points.
const DateLayout = "2006-01-02"

// timestamp layouts the backend has been seen to emit; naive values are UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	DateLayout,
}

// ParseTime parses an API timestamp. ok is false for blank or malformed input.
func ParseTime(raw string) (t time.Time, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// flexTime decodes timestamps without failing the surrounding record.
type flexTime time.Time

func (f *flexTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*f = flexTime{}
		return nil
	}
	t, _ := ParseTime(s)
	*f = flexTime(t)
	return nil
}

// flexInt decodes counters sent as numbers, numeric strings or null.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*f = 0
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		data = []byte(strings.TrimSpace(s))
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	*f = flexInt(n)
	return nil
}

func (f flexInt) nonNegative() int {
	if f < 0 {
		return 0
	}
	return int(f)
}

// API response types (private - implementation detail)

type shoutoutWire struct {
	ID              ID                 `json:"id"`
	AuthorID        ID                 `json:"author_id"`
	AuthorName      string             `json:"author_name"`
	Message         string             `json:"message"`
	ImageURL        string             `json:"image_url"`
	TaggedUserIDs   []ID               `json:"tagged_user_ids"`
	TaggedUsers     []ID               `json:"tagged_users"`
	TaggedUserNames []string           `json:"tagged_user_names"`
	CreatedAt       flexTime           `json:"created_at"`
	Reactions       map[string]flexInt `json:"reactions"`
	CommentsCount   flexInt            `json:"comments_count"`
	IsReported      bool               `json:"is_reported"`
}

func (w shoutoutWire) record() Shoutout {
	tagged := w.TaggedUserIDs
	if len(tagged) == 0 {
		tagged = w.TaggedUsers
	}
	names := make([]string, 0, len(w.TaggedUserNames))
	for _, n := range w.TaggedUserNames {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	reactions := make(map[string]int, len(w.Reactions))
	for emoji, n := range w.Reactions {
		if emoji == "" {
			continue
		}
		reactions[emoji] = n.nonNegative()
	}
	return Shoutout{
		ID:              w.ID,
		AuthorID:        w.AuthorID,
		AuthorName:      strings.TrimSpace(w.AuthorName),
		Message:         w.Message,
		ImageURL:        strings.TrimSpace(w.ImageURL),
		TaggedUserIDs:   UniqueIDs(tagged),
		TaggedUserNames: names,
		CreatedAt:       time.Time(w.CreatedAt),
		Reactions:       reactions,
		CommentsCount:   w.CommentsCount.nonNegative(),
		IsReported:      w.IsReported,
	}
}

type commentWire struct {
	ID         ID       `json:"id"`
	ShoutoutID ID       `json:"shoutout_id"`
	AuthorName string   `json:"author_name"`
	UserName   string   `json:"user_name"`
	Content    string   `json:"content"`
	CreatedAt  flexTime `json:"created_at"`
}

type notificationWire struct {
	ID        ID       `json:"id"`
	Message   string   `json:"message"`
	CreatedAt flexTime `json:"created_at"`
}

type employeeWire struct {
	ID                ID      `json:"id"`
	Name              string  `json:"name"`
	Username          string  `json:"username"`
	Department        string  `json:"department"`
	AppreciationScore flexInt `json:"appreciation_score"`
}

type engagementWire struct {
	Date  string  `json:"date"`
	Count flexInt `json:"count"`
}

type contributorWire struct {
	AuthorName string  `json:"author_name"`
	Department string  `json:"department"`
	Count      flexInt `json:"count"`
}

type eomWire struct {
	ID         ID       `json:"id"`
	EmployeeID ID       `json:"employee_id"`
	Name       string   `json:"name"`
	Department string   `json:"department"`
	MonthYear  string   `json:"month_year"`
	CreatedAt  flexTime `json:"created_at"`
}

type metricsWire struct {
	ShoutoutsGiven    flexInt `json:"shoutouts_given"`
	ShoutoutsReceived flexInt `json:"shoutouts_received"`
	CommentsMade      flexInt `json:"comments_made"`
}

// decodeList decodes a JSON array. Any other top-level shape is an empty list,
// matching the dashboard's habit of treating non-arrays as "nothing to show".
func decodeList[W any](data []byte, what string) ([]W, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return []W{}, nil
	}
	var items []W
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse %s response: %w", what, err)
	}
	return items, nil
}

func decodeObject(data []byte, what string, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", what, err)
	}
	return nil
}

// ParseShoutouts decodes a feed payload.
func ParseShoutouts(data []byte) ([]Shoutout, error) {
	wires, err := decodeList[shoutoutWire](data, "shoutouts")
	if err != nil {
		return nil, err
	}
	out := make([]Shoutout, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.record())
	}
	return out, nil
}

// ParseShoutout decodes a single shoutout object.
func ParseShoutout(data []byte) (Shoutout, error) {
	var w shoutoutWire
	if err := decodeObject(data, "shoutout", &w); err != nil {
		return Shoutout{}, err
	}
	return w.record(), nil
}

func (w commentWire) record(shoutoutID ID) Comment {
	author := strings.TrimSpace(w.AuthorName)
	if author == "" {
		author = strings.TrimSpace(w.UserName)
	}
	sid := w.ShoutoutID
	if sid.IsZero() {
		sid = shoutoutID
	}
	return Comment{
		ID:         w.ID,
		ShoutoutID: sid,
		AuthorName: author,
		Content:    w.Content,
		CreatedAt:  time.Time(w.CreatedAt),
	}
}

// ParseComments decodes the comment list of one shoutout. The back-reference is
// filled from shoutoutID when the payload omits it.
func ParseComments(data []byte, shoutoutID ID) ([]Comment, error) {
	wires, err := decodeList[commentWire](data, "comments")
	if err != nil {
		return nil, err
	}
	out := make([]Comment, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.record(shoutoutID))
	}
	return out, nil
}

// ParseComment decodes a single created comment.
func ParseComment(data []byte, shoutoutID ID) (Comment, error) {
	var w commentWire
	if err := decodeObject(data, "comment", &w); err != nil {
		return Comment{}, err
	}
	return w.record(shoutoutID), nil
}

// ParseNotifications decodes the broadcast list.
func ParseNotifications(data []byte) ([]Notification, error) {
	wires, err := decodeList[notificationWire](data, "notifications")
	if err != nil {
		return nil, err
	}
	out := make([]Notification, 0, len(wires))
	for _, w := range wires {
		out = append(out, Notification{ID: w.ID, Message: w.Message, CreatedAt: time.Time(w.CreatedAt)})
	}
	return out, nil
}

// ParseNotification decodes a created notification.
func ParseNotification(data []byte) (Notification, error) {
	var w notificationWire
	if err := decodeObject(data, "notification", &w); err != nil {
		return Notification{}, err
	}
	return Notification{ID: w.ID, Message: w.Message, CreatedAt: time.Time(w.CreatedAt)}, nil
}

func (w employeeWire) record() Employee {
	return Employee{
		ID:                w.ID,
		Name:              strings.TrimSpace(w.Name),
		Username:          strings.TrimSpace(w.Username),
		Department:        w.Department,
		AppreciationScore: w.AppreciationScore.nonNegative(),
	}
}

// ParseEmployees decodes an employee list.
func ParseEmployees(data []byte) ([]Employee, error) {
	wires, err := decodeList[employeeWire](data, "employees")
	if err != nil {
		return nil, err
	}
	out := make([]Employee, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.record())
	}
	return out, nil
}

// ParseEmployee decodes a single user, e.g. the /auth/me response.
func ParseEmployee(data []byte) (Employee, error) {
	var w employeeWire
	if err := decodeObject(data, "user", &w); err != nil {
		return Employee{}, err
	}
	return w.record(), nil
}

// ParseEngagement decodes a server-side daily activity series. Points with an
// unparseable date are dropped.
func ParseEngagement(data []byte) ([]EngagementPoint, error) {
	wires, err := decodeList[engagementWire](data, "daily activity")
	if err != nil {
		return nil, err
	}
	out := make([]EngagementPoint, 0, len(wires))
	for _, w := range wires {
		t, ok := ParseTime(w.Date)
		if !ok {
			continue
		}
		out = append(out, EngagementPoint{Date: t.Format(DateLayout), Count: w.Count.nonNegative()})
	}
	return out, nil
}

// ParseContributors decodes a leaderboard, which is either an array or an
// object wrapping it under "top_contributors".
func ParseContributors(data []byte) ([]Contributor, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapped struct {
			TopContributors json.RawMessage `json:"top_contributors"`
		}
		if err := decodeObject(trimmed, "leaderboard", &wrapped); err != nil {
			return nil, err
		}
		trimmed = wrapped.TopContributors
	}
	wires, err := decodeList[contributorWire](trimmed, "leaderboard")
	if err != nil {
		return nil, err
	}
	out := make([]Contributor, 0, len(wires))
	for _, w := range wires {
		name := strings.TrimSpace(w.AuthorName)
		if name == "" {
			name = AnonymousAuthor
		}
		out = append(out, Contributor{AuthorName: name, Department: w.Department, Count: w.Count.nonNegative()})
	}
	return out, nil
}

// ParseTagCount decodes the most-tagged payload. ok is false when the server
// reports nobody (missing name).
func ParseTagCount(data []byte) (TagCount, bool, error) {
	var w struct {
		Name  string  `json:"name"`
		Count flexInt `json:"count"`
	}
	if err := decodeObject(data, "most tagged", &w); err != nil {
		return TagCount{}, false, err
	}
	if strings.TrimSpace(w.Name) == "" {
		return TagCount{}, false, nil
	}
	return TagCount{Name: strings.TrimSpace(w.Name), Count: w.Count.nonNegative()}, true, nil
}

// ParseEmployeeOfMonth decodes the current announcement.
func ParseEmployeeOfMonth(data []byte) (EmployeeOfMonth, error) {
	var w eomWire
	if err := decodeObject(data, "employee of the month", &w); err != nil {
		return EmployeeOfMonth{}, err
	}
	return EmployeeOfMonth{
		ID:         w.ID,
		EmployeeID: w.EmployeeID,
		Name:       w.Name,
		Department: w.Department,
		MonthYear:  w.MonthYear,
		CreatedAt:  time.Time(w.CreatedAt),
	}, nil
}

// ParseMetrics decodes the personal counters.
func ParseMetrics(data []byte) (Metrics, error) {
	var w metricsWire
	if err := decodeObject(data, "metrics", &w); err != nil {
		return Metrics{}, err
	}
	return Metrics{
		ShoutoutsGiven:    w.ShoutoutsGiven.nonNegative(),
		ShoutoutsReceived: w.ShoutoutsReceived.nonNegative(),
		CommentsMade:      w.CommentsMade.nonNegative(),
	}, nil
}
