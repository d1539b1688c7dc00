package insights

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gauthierbraillon/bragboard/internal/model"
)

func byAuthors(names ...string) []model.Shoutout {
	out := make([]model.Shoutout, 0, len(names))
	for i, n := range names {
		out = append(out, model.Shoutout{ID: model.ID(fmt.Sprint(i + 1)), AuthorName: n})
	}
	return out
}

func at(day string, hour int) time.Time {
	t, err := time.Parse(model.DateLayout, day)
	if err != nil {
		panic(err)
	}
	return t.Add(time.Duration(hour) * time.Hour)
}

func TestAC200_TopContributors_CountsAndRanks(t *testing.T) {
	got := TopContributors(byAuthors("A", "B", "A"), 2)

	want := []model.Contributor{{AuthorName: "A", Count: 2}, {AuthorName: "B", Count: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("leaderboard mismatch (-want +got):\n%s", diff)
	}
}

func TestAC200_TopContributors_TiesKeepFirstSeenOrder(t *testing.T) {
	got := TopContributors(byAuthors("C", "B", "A", "B", "C", "A", "D"), 4)

	names := make([]string, 0, len(got))
	for _, c := range got {
		names = append(names, c.AuthorName)
	}
	assert.Equal(t, []string{"C", "B", "A", "D"}, names)
}

func TestAC200_TopContributors_RespectsK(t *testing.T) {
	shoutouts := byAuthors("A", "B", "C", "D", "E", "A")

	for k := 0; k <= 7; k++ {
		got := TopContributors(shoutouts, k)
		assert.LessOrEqual(t, len(got), k, "k=%d", k)
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, got[i-1].Count, got[i].Count, "k=%d must be sorted descending", k)
		}
	}
}

func TestAC200_TopContributors_MissingAuthorIsAnonymous(t *testing.T) {
	got := TopContributors(byAuthors("", "  ", "Asha"), 3)

	require.Len(t, got, 2)
	assert.Equal(t, model.Contributor{AuthorName: model.AnonymousAuthor, Count: 2}, got[0])
}

func TestAC200_TopContributors_EmptyInput(t *testing.T) {
	got := TopContributors(nil, 3)

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAC201_MostTagged_NoTagsIsNoResult(t *testing.T) {
	_, ok := MostTagged(byAuthors("A", "B"))

	assert.False(t, ok)
}

func TestAC201_MostTagged_PicksHighestAndFirstOnTies(t *testing.T) {
	shoutouts := []model.Shoutout{
		{ID: "1", TaggedUserNames: []string{"Ben", "Chen"}},
		{ID: "2", TaggedUserNames: []string{"Chen", "Ben"}},
		{ID: "3", TaggedUserNames: []string{"Dev"}},
	}

	top, ok := MostTagged(shoutouts)

	require.True(t, ok)
	assert.Equal(t, model.TagCount{Name: "Ben", Count: 2}, top)
}

func TestAC202_DailyActivity_AscendingUniqueDays(t *testing.T) {
	shoutouts := []model.Shoutout{
		{ID: "1", CreatedAt: at("2024-05-03", 10)},
		{ID: "2", CreatedAt: at("2024-05-01", 9)},
		{ID: "3", CreatedAt: at("2024-05-03", 18)},
		{ID: "4"}, // no timestamp
		{ID: "5", CreatedAt: at("2024-04-28", 1)},
	}

	got := DailyActivity(shoutouts, 7)

	want := []model.EngagementPoint{
		{Date: "2024-04-28", Count: 1},
		{Date: "2024-05-01", Count: 1},
		{Date: "2024-05-03", Count: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("daily activity mismatch (-want +got):\n%s", diff)
	}
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].Date, got[i].Date)
	}
}

func TestAC202_DailyActivity_KeepsMostRecentWindow(t *testing.T) {
	var shoutouts []model.Shoutout
	for d := 1; d <= 10; d++ {
		shoutouts = append(shoutouts, model.Shoutout{ID: model.ID(fmt.Sprint(d)), CreatedAt: at(fmt.Sprintf("2024-05-%02d", d), 12)})
	}

	got := DailyActivity(shoutouts, 3)

	require.Len(t, got, 3)
	assert.Equal(t, "2024-05-08", got[0].Date)
	assert.Equal(t, "2024-05-10", got[2].Date)
}

func TestAC202_DailyActivity_MissingTimestampOnlyAffectsSeries(t *testing.T) {
	shoutouts := []model.Shoutout{{ID: "1", AuthorName: "A"}, {ID: "2", AuthorName: "A", TaggedUserNames: []string{"B"}}}

	assert.Empty(t, DailyActivity(shoutouts, 7))
	assert.Equal(t, 2, TopContributors(shoutouts, 1)[0].Count)
	_, ok := MostTagged(shoutouts)
	assert.True(t, ok)
}

func TestAC203_FillGaps_InsertsZeroDays(t *testing.T) {
	got := FillGaps([]model.EngagementPoint{{Date: "2024-05-01", Count: 2}, {Date: "2024-05-04", Count: 1}})

	want := []model.EngagementPoint{
		{Date: "2024-05-01", Count: 2},
		{Date: "2024-05-02", Count: 0},
		{Date: "2024-05-03", Count: 0},
		{Date: "2024-05-04", Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dense series mismatch (-want +got):\n%s", diff)
	}
}

func TestAC204_Summarize_IsDeterministic(t *testing.T) {
	shoutouts := []model.Shoutout{
		{ID: "1", AuthorName: "A", TaggedUserNames: []string{"X"}, CreatedAt: at("2024-05-01", 1)},
		{ID: "2", AuthorName: "B", TaggedUserNames: []string{"Y"}, CreatedAt: at("2024-05-02", 1)},
	}

	first := Summarize(shoutouts, Options{})
	second := Summarize(shoutouts, Options{})

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("recomputation should be identical (-first +second):\n%s", diff)
	}
	assert.Equal(t, 2, first.TotalShoutouts)
	require.NotNil(t, first.MostTagged)
	assert.Equal(t, "X", first.MostTagged.Name)
}

func TestAC204_Summarize_EmptyInput(t *testing.T) {
	summary := Summarize(nil, Options{TopK: 3, WindowDays: 7})

	assert.Zero(t, summary.TotalShoutouts)
	assert.Empty(t, summary.TopContributors)
	assert.Nil(t, summary.MostTagged)
	assert.Empty(t, summary.DailyActivity)
}
