// Package contracts integration tests verify that the actual client
// correctly parses API responses matching the defined contracts.
package contracts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/oauth2"

	"github.com/gauthierbraillon/bragboard/internal/bragboard"
	"github.com/gauthierbraillon/bragboard/internal/model"
)

func serve(t *testing.T, payload string) *bragboard.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(server.Close)

	tokens := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token", TokenType: "Bearer"})
	return bragboard.NewClient(tokens, bragboard.WithBaseURL(server.URL))
}

// TestBragboardClient_ParsesFeedContract verifies the client
// correctly parses feed responses matching the contract schema.
func TestBragboardClient_ParsesFeedContract(t *testing.T) {
	client := serve(t, FeedContract)

	feed, err := client.FetchFeed(context.Background())
	if err != nil {
		t.Fatalf("client should parse contract response: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("expected 2 shoutouts, got %d", len(feed))
	}

	s := feed[0]
	if s.ID != "12" || s.AuthorID != "3" {
		t.Errorf("expected ids 12/3, got %q/%q", s.ID, s.AuthorID)
	}
	if s.AuthorName != "Asha Rao" {
		t.Errorf("expected author 'Asha Rao', got %q", s.AuthorName)
	}
	if len(s.TaggedUserIDs) != 2 || s.TaggedUserIDs[0] != "5" {
		t.Errorf("expected tagged_users [5 6], got %v", s.TaggedUserIDs)
	}
	if s.Reactions["🎉"] != 4 || s.CommentsCount != 2 {
		t.Errorf("expected engagement 🎉 4 / 2 comments, got %v / %d", s.Reactions, s.CommentsCount)
	}
	if s.CreatedAt.IsZero() {
		t.Error("expected created_at to parse")
	}

	blank := feed[1]
	if !blank.CreatedAt.IsZero() || blank.ImageURL != "" || blank.Reactions == nil {
		t.Errorf("null optional fields should decode to empty values, got %+v", blank)
	}
}

// TestBragboardClient_ResolvesContractImage verifies relative upload paths
// from the contract resolve against the API root.
func TestBragboardClient_ResolvesContractImage(t *testing.T) {
	client := serve(t, FeedContract)
	feed, err := client.FetchFeed(context.Background())
	if err != nil {
		t.Fatalf("client should parse contract response: %v", err)
	}

	url, err := client.ImageURL(feed[0])
	if err != nil {
		t.Fatalf("image should resolve: %v", err)
	}
	if want := client.BaseURL() + "/uploads/release.png"; url != want {
		t.Errorf("expected %q, got %q", want, url)
	}
}

func TestBragboardClient_ParsesCommentsContract(t *testing.T) {
	client := serve(t, CommentsContract)

	comments, err := client.FetchComments(context.Background(), "12")
	if err != nil {
		t.Fatalf("client should parse contract response: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(comments))
	}
	if comments[0].Content != "Well deserved" || comments[0].AuthorName != "Ben Ortiz" {
		t.Errorf("unexpected comment: %+v", comments[0])
	}
	if comments[0].ShoutoutID != model.ID("12") {
		t.Errorf("comment should reference its shoutout, got %q", comments[0].ShoutoutID)
	}
}

func TestBragboardClient_ParsesUserContract(t *testing.T) {
	client := serve(t, UserContract)

	me, err := client.FetchMe(context.Background())
	if err != nil {
		t.Fatalf("client should parse contract response: %v", err)
	}
	if me.ID != "3" || me.Name != "Asha Rao" || me.Department != "Platform" || me.AppreciationScore != 17 {
		t.Errorf("unexpected user: %+v", me)
	}
}

func TestBragboardClient_ParsesMetricsContract(t *testing.T) {
	client := serve(t, MetricsContract)

	metrics, err := client.FetchMetrics(context.Background())
	if err != nil {
		t.Fatalf("client should parse contract response: %v", err)
	}
	if metrics.ShoutoutsGiven != 4 || metrics.ShoutoutsReceived != 9 || metrics.CommentsMade != 2 {
		t.Errorf("unexpected metrics: %+v", metrics)
	}
}

func TestBragboardClient_ParsesEmployeeOfMonthContract(t *testing.T) {
	client := serve(t, EmployeeOfMonthContract)

	eom, err := client.FetchEmployeeOfMonth(context.Background())
	if err != nil {
		t.Fatalf("client should parse contract response: %v", err)
	}
	if eom.Name != "Ben Ortiz" || eom.EmployeeID != "5" || eom.MonthYear != "2025-03" {
		t.Errorf("unexpected announcement: %+v", eom)
	}
}

func TestBragboardClient_ParsesNotificationsContract(t *testing.T) {
	client := serve(t, NotificationsContract)

	items, err := client.FetchNotifications(context.Background())
	if err != nil {
		t.Fatalf("client should parse contract response: %v", err)
	}
	if len(items) != 1 || items[0].ID != "7" || items[0].Message != "Town hall at 4pm" {
		t.Errorf("unexpected notifications: %+v", items)
	}
}
