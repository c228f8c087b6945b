package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Laustrup/go-gig-booking/internal/domain/gig"
	"github.com/Laustrup/go-gig-booking/internal/domain/tristate"
	"github.com/Laustrup/go-gig-booking/internal/domain/user"
)

func TestFromRecord_DerivesWindow(t *testing.T) {
	openDoors := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	bandA := user.Ref{Kind: user.KindBand, ID: "band-a"}
	venue := user.Ref{Kind: user.KindVenue, ID: "venue-x", Location: "東京都渋谷区"}

	g := gig.NewGig("event-1", []user.Ref{bandA}, openDoors.Add(30*time.Minute), openDoors.Add(2*time.Hour))
	g.ID = "gig-1"

	rec := Record{
		ID:        "event-1",
		Title:     "年末ライブ",
		OpenDoors: &openDoors,
		Venue:     &venue,
		Gigs:      []*gig.Gig{g},
	}

	e, err := FromRecord(rec)
	require.NoError(t, err)

	assert.Equal(t, openDoors.Add(30*time.Minute), *e.StartAt, "構築時に時間帯を再導出する")
	assert.Equal(t, openDoors.Add(2*time.Hour), *e.EndAt)
	assert.Equal(t, 90*time.Minute, e.Duration)
	assert.Equal(t, "東京都渋谷区", e.Location, "未設定のロケーションは会場から引き継ぐ")
	assert.Equal(t, tristate.Undefined, e.Public, "空の三値状態はUndefinedに正規化される")
}

func TestFromRecord_Errors(t *testing.T) {
	openDoors := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	bandA := user.Ref{Kind: user.KindBand, ID: "band-a"}

	_, err := FromRecord(Record{})
	assert.ErrorIs(t, err, ErrTitleRequired)

	// 開場時刻より前に始まる演奏枠を含むレコードは構築できない
	early := gig.NewGig("event-1", []user.Ref{bandA}, openDoors.Add(-time.Hour), openDoors.Add(time.Hour))
	_, err = FromRecord(Record{
		Title:     "ライブ",
		OpenDoors: &openDoors,
		Gigs:      []*gig.Gig{early},
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestToRecord_IncludesDerivedWindow(t *testing.T) {
	openDoors := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	bandA := user.Ref{Kind: user.KindBand, ID: "band-a"}

	e, err := NewEvent("年末ライブ", "説明", &openDoors, nil)
	require.NoError(t, err)

	g := gig.NewGig("", []user.Ref{bandA}, openDoors.Add(30*time.Minute), openDoors.Add(2*time.Hour))
	g.ID = "gig-1"
	_, err = e.AddGigs([]*gig.Gig{g})
	require.NoError(t, err)

	rec := e.ToRecord()

	assert.Equal(t, "年末ライブ", rec.Title)
	assert.Equal(t, openDoors.Add(30*time.Minute), *rec.StartAt)
	assert.Equal(t, openDoors.Add(2*time.Hour), *rec.EndAt)
	assert.Equal(t, int64(90), rec.DurationMinutes)
	assert.Len(t, rec.Gigs, 1)
	assert.Len(t, rec.Requests, 1)
}

func TestRecordRoundTrip(t *testing.T) {
	openDoors := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	bandA := user.Ref{Kind: user.KindBand, ID: "band-a"}

	e, err := NewEvent("年末ライブ", "", &openDoors, nil)
	require.NoError(t, err)
	g := gig.NewGig("", []user.Ref{bandA}, openDoors.Add(time.Hour), openDoors.Add(2*time.Hour))
	g.ID = "gig-1"
	_, err = e.AddGigs([]*gig.Gig{g})
	require.NoError(t, err)

	rebuilt, err := FromRecord(e.ToRecord())
	require.NoError(t, err)

	assert.Equal(t, e.StartAt, rebuilt.StartAt)
	assert.Equal(t, e.EndAt, rebuilt.EndAt)
	assert.Equal(t, e.Duration, rebuilt.Duration)
	assert.Len(t, rebuilt.Requests, len(e.Requests))
}
