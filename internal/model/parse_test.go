package model

import (
	"testing"
	"time"
)

func TestAC100_Feed_ParsesBackendShoutout(t *testing.T) {
	payload := `[{
		"id": 12,
		"author_id": 3,
		"author_name": "Asha",
		"message": "Thanks for the release!",
		"image_url": "/uploads/cake.png",
		"created_at": "2024-05-02T09:15:00.123456",
		"tagged_users": [4, 5, 4],
		"tagged_user_names": ["Ben", "Chen"],
		"reactions": {"👍": 2, "🔥": "3"},
		"comments_count": 1,
		"is_reported": false
	}]`

	shoutouts, err := ParseShoutouts([]byte(payload))
	if err != nil {
		t.Fatalf("user should see the feed, got error: %v", err)
	}
	if len(shoutouts) != 1 {
		t.Fatalf("user should see 1 shoutout, got %d", len(shoutouts))
	}
	s := shoutouts[0]
	if s.ID != "12" || s.AuthorID != "3" {
		t.Errorf("numeric ids should decode to canonical text, got id=%q author=%q", s.ID, s.AuthorID)
	}
	if len(s.TaggedUserIDs) != 2 {
		t.Errorf("tagged ids should be a set, got %v", s.TaggedUserIDs)
	}
	if s.Reactions["🔥"] != 3 || s.Reactions["👍"] != 2 {
		t.Errorf("reaction counters should decode, got %v", s.Reactions)
	}
	want := time.Date(2024, 5, 2, 9, 15, 0, 123456000, time.UTC)
	if !s.CreatedAt.Equal(want) {
		t.Errorf("naive timestamps should be read as UTC, got %v", s.CreatedAt)
	}
	if day, ok := s.Day(); !ok || day != "2024-05-02" {
		t.Errorf("day key should be 2024-05-02, got %q (ok=%v)", day, ok)
	}
}

func TestAC100_Feed_DefaultsMissingOptionalFields(t *testing.T) {
	shoutouts, err := ParseShoutouts([]byte(`[{"id": "a1", "message": "hi"}]`))
	if err != nil {
		t.Fatalf("minimal shoutout should parse, got %v", err)
	}
	s := shoutouts[0]
	if s.Reactions == nil {
		t.Error("reaction map should default to empty, not nil")
	}
	if s.ImageURL != "" || len(s.TaggedUserIDs) != 0 || len(s.TaggedUserNames) != 0 {
		t.Error("missing image and tags should default to empty")
	}
	if _, ok := s.Day(); ok {
		t.Error("missing created_at should not produce a day")
	}
	if s.AuthorLabel() != AnonymousAuthor {
		t.Errorf("missing author should be Anonymous, got %q", s.AuthorLabel())
	}
}

func TestAC100_Feed_ClampsNegativeCounters(t *testing.T) {
	shoutouts, err := ParseShoutouts([]byte(`[{"id": 1, "reactions": {"👍": -4}, "comments_count": -1}]`))
	if err != nil {
		t.Fatal(err)
	}
	if shoutouts[0].Reactions["👍"] != 0 || shoutouts[0].CommentsCount != 0 {
		t.Errorf("counters should never be negative, got %+v", shoutouts[0])
	}
}

func TestAC100_Feed_MalformedTimestampKeepsRecord(t *testing.T) {
	shoutouts, err := ParseShoutouts([]byte(`[{"id": 1, "created_at": "yesterday-ish"}, {"id": 2, "created_at": 17}]`))
	if err != nil {
		t.Fatalf("malformed timestamps should not fail the feed, got %v", err)
	}
	if len(shoutouts) != 2 {
		t.Fatalf("both records should be kept, got %d", len(shoutouts))
	}
	for _, s := range shoutouts {
		if !s.CreatedAt.IsZero() {
			t.Errorf("malformed timestamp should be zero, got %v", s.CreatedAt)
		}
	}
}

func TestAC101_Feed_NonArrayPayloadIsEmpty(t *testing.T) {
	shoutouts, err := ParseShoutouts([]byte(`{"detail": "nothing here"}`))
	if err != nil {
		t.Fatalf("non-array payload should not error, got %v", err)
	}
	if shoutouts == nil || len(shoutouts) != 0 {
		t.Errorf("non-array payload should be an empty feed, got %v", shoutouts)
	}
}

func TestAC101_Feed_InvalidJSONIsAnError(t *testing.T) {
	if _, err := ParseShoutouts([]byte(`[{"id": 1,`)); err == nil {
		t.Error("truncated JSON should be reported")
	}
}

func TestAC102_Comments_FillBackReference(t *testing.T) {
	comments, err := ParseComments([]byte(`[{"id": 9, "content": "+1", "user_id": 2}]`), "12")
	if err != nil {
		t.Fatal(err)
	}
	if comments[0].ShoutoutID != "12" {
		t.Errorf("comment should point at its shoutout, got %q", comments[0].ShoutoutID)
	}
}

func TestAC103_Leaderboard_AcceptsWrappedObject(t *testing.T) {
	rows, err := ParseContributors([]byte(`{"top_contributors": [{"author_name": "Asha", "count": 4}, {"count": 1}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0].AuthorName != "Asha" || rows[1].AuthorName != AnonymousAuthor {
		t.Errorf("wrapped leaderboard should decode, got %+v", rows)
	}
}

func TestAC104_Engagement_DropsBadDates(t *testing.T) {
	points, err := ParseEngagement([]byte(`[{"date": "2024-05-01", "count": 2}, {"date": "n/a", "count": 9}]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 1 || points[0].Date != "2024-05-01" || points[0].Count != 2 {
		t.Errorf("only valid days should remain, got %+v", points)
	}
}

func TestAC105_MostTagged_EmptyNameIsNoResult(t *testing.T) {
	_, ok, err := ParseTagCount([]byte(`{"name": null, "count": 0}`))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("missing name should mean no result")
	}
}

func TestID_Coerced(t *testing.T) {
	cases := []struct {
		a, b ID
		want bool
	}{
		{"7", "7", true},
		{"007", "7", true},
		{" 7", "7", true},
		{"abc", "ABC", true},
		{"7", "8", false},
		{"", "", false},
	}
	for _, tc := range cases {
		if got := tc.a.Coerced(tc.b); got != tc.want {
			t.Errorf("%q vs %q: got %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestIDs_SplitsCommaLists(t *testing.T) {
	ids := IDs("1,2", " 3 ", "")
	if len(ids) != 3 || ids[2] != "3" {
		t.Errorf("expected [1 2 3], got %v", ids)
	}
}
