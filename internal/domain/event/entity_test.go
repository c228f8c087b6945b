package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Laustrup/go-gig-booking/internal/domain/gig"
	"github.com/Laustrup/go-gig-booking/internal/domain/participation"
	"github.com/Laustrup/go-gig-booking/internal/domain/request"
	"github.com/Laustrup/go-gig-booking/internal/domain/tristate"
	"github.com/Laustrup/go-gig-booking/internal/domain/user"
)

var (
	venueX  = user.Ref{Kind: user.KindVenue, ID: "venue-x", Name: "会場X", Location: "東京都渋谷区"}
	venueY  = user.Ref{Kind: user.KindVenue, ID: "venue-y", Name: "会場Y", Location: "大阪市北区"}
	bandA   = user.Ref{Kind: user.KindBand, ID: "band-a", Name: "バンドA"}
	artistB = user.Ref{Kind: user.KindArtist, ID: "artist-b", Name: "アーティストB"}
)

func performerRequestIDs(e *Event) map[string]bool {
	ids := make(map[string]bool)
	for _, r := range e.Requests {
		if r.User.IsPerformer() {
			ids[r.User.ID] = true
		}
	}
	return ids
}

func TestNewEvent(t *testing.T) {
	openDoors := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)

	e, err := NewEvent("年末ライブ", "年末スペシャル", &openDoors, &venueX)
	require.NoError(t, err)

	assert.Equal(t, "年末ライブ", e.Title)
	assert.Equal(t, tristate.Undefined, e.Public)
	assert.Equal(t, tristate.Undefined, e.Cancelled)
	assert.Equal(t, "東京都渋谷区", e.Location, "ロケーションは会場から引き継ぐ")
	assert.Equal(t, openDoors, *e.StartAt, "演奏枠がなければ開場時刻が開始時刻")

	require.Len(t, e.Requests, 1, "会場宛ての承認チケットが初期発行される")
	assert.Equal(t, venueX.ID, e.Requests[0].User.ID)
	assert.Equal(t, tristate.Undefined, e.Requests[0].Approved)
}

func TestNewEvent_Errors(t *testing.T) {
	_, err := NewEvent("", "", nil, &venueX)
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = NewEvent("ライブ", "", nil, &bandA)
	assert.ErrorIs(t, err, ErrNotVenue)
}

// 演奏枠の追加・削除で時間帯と承認チケットが連動するシナリオ
func TestEvent_GigLifecycleScenario(t *testing.T) {
	openDoors := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)

	e, err := NewEvent("年末ライブ", "", &openDoors, nil)
	require.NoError(t, err)

	g1 := gig.NewGig("", []user.Ref{bandA}, openDoors.Add(30*time.Minute), openDoors.Add(2*time.Hour))
	g1.ID = "gig-1"

	res, err := e.AddGigs([]*gig.Gig{g1})
	require.NoError(t, err)
	require.Len(t, res.Accepted, 1)

	assert.Equal(t, openDoors.Add(30*time.Minute), *e.StartAt)
	assert.Equal(t, openDoors.Add(2*time.Hour), *e.EndAt)
	require.Len(t, e.Requests, 1)
	assert.Equal(t, bandA.ID, e.Requests[0].User.ID)

	g2 := gig.NewGig("", []user.Ref{artistB}, openDoors.Add(2*time.Hour), openDoors.Add(210*time.Minute))
	g2.ID = "gig-2"

	_, err = e.AddGigs([]*gig.Gig{g2})
	require.NoError(t, err)

	assert.Equal(t, openDoors.Add(30*time.Minute), *e.StartAt)
	assert.Equal(t, openDoors.Add(210*time.Minute), *e.EndAt)
	assert.Equal(t, map[string]bool{"band-a": true, "artist-b": true}, performerRequestIDs(e))

	require.NoError(t, e.RemoveGigs([]string{"gig-1"}))

	assert.Equal(t, openDoors.Add(2*time.Hour), *e.StartAt)
	assert.Equal(t, openDoors.Add(210*time.Minute), *e.EndAt)
	assert.Equal(t, map[string]bool{"artist-b": true}, performerRequestIDs(e),
		"演奏枠から消えた出演者のチケットは削除される")
}

func TestEvent_AddGigs_RollbackOnInvalidWindow(t *testing.T) {
	openDoors := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)

	e, err := NewEvent("ライブ", "", &openDoors, &venueX)
	require.NoError(t, err)

	// 開場時刻より前に始まる演奏枠は時間帯導出で弾かれる
	early := gig.NewGig("", []user.Ref{bandA}, openDoors.Add(-time.Hour), openDoors.Add(time.Hour))
	early.ID = "gig-early"

	prevStart, prevEnd := e.StartAt, e.EndAt

	_, err = e.AddGigs([]*gig.Gig{early})
	require.ErrorIs(t, err, ErrInvalidTimeRange)

	assert.Empty(t, e.Gigs, "失敗した追加は巻き戻される")
	assert.Len(t, e.Requests, 1, "発行された承認チケットも巻き戻される")
	assert.Equal(t, venueX.ID, e.Requests[0].User.ID)
	assert.Equal(t, prevStart, e.StartAt)
	assert.Equal(t, prevEnd, e.EndAt)
}

func TestEvent_AddGigs_IdempotentReconciliation(t *testing.T) {
	base := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)

	e, err := NewEvent("ライブ", "", nil, nil)
	require.NoError(t, err)

	g := gig.NewGig("", []user.Ref{bandA}, base, base.Add(time.Hour))
	g.ID = "gig-1"
	_, err = e.AddGigs([]*gig.Gig{g})
	require.NoError(t, err)

	// 空バッチは何も変えない
	res, err := e.AddGigs(nil)
	require.NoError(t, err)
	assert.Empty(t, res.Accepted)
	assert.Len(t, e.Requests, 1)

	// 同じ予約の再追加は棄却され、チケット数も変わらない
	dup := gig.NewGig("", []user.Ref{bandA}, base, base.Add(time.Hour))
	res, err = e.AddGigs([]*gig.Gig{dup})
	require.NoError(t, err)
	assert.Empty(t, res.Accepted)
	assert.Len(t, res.Rejected, 1)
	assert.Len(t, e.Gigs, 1)
	assert.Len(t, e.Requests, 1)
}

func TestEvent_AddGigs_SharedPerformerKeepsSingleRequest(t *testing.T) {
	base := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)

	e, err := NewEvent("ライブ", "", nil, nil)
	require.NoError(t, err)

	g1 := gig.NewGig("", []user.Ref{bandA}, base, base.Add(time.Hour))
	g1.ID = "gig-1"
	g2 := gig.NewGig("", []user.Ref{bandA, artistB}, base.Add(time.Hour), base.Add(2*time.Hour))
	g2.ID = "gig-2"

	_, err = e.AddGigs([]*gig.Gig{g1, g2})
	require.NoError(t, err)

	assert.Len(t, e.Requests, 2, "同じ出演者へのチケットは1件だけ")

	// 片方の枠を消しても、もう片方に残る出演者のチケットは残る
	require.NoError(t, e.RemoveGigs([]string{"gig-1"}))
	assert.Equal(t, map[string]bool{"band-a": true, "artist-b": true}, performerRequestIDs(e))
}

func TestEvent_RemoveGigs_UnknownIDIsNoop(t *testing.T) {
	e, err := NewEvent("ライブ", "", nil, nil)
	require.NoError(t, err)

	require.NoError(t, e.RemoveGigs([]string{"missing"}))
	assert.Empty(t, e.Gigs)
}

func TestEvent_RescheduleGig(t *testing.T) {
	base := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)

	e, err := NewEvent("ライブ", "", nil, nil)
	require.NoError(t, err)

	g := gig.NewGig("", []user.Ref{bandA}, base, base.Add(time.Hour))
	g.ID = "gig-1"
	_, err = e.AddGigs([]*gig.Gig{g})
	require.NoError(t, err)

	updated, err := e.RescheduleGig("gig-1", base.Add(time.Hour), base.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, base.Add(time.Hour), updated.StartAt)
	assert.Equal(t, base.Add(time.Hour), *e.StartAt)
	assert.Equal(t, base.Add(3*time.Hour), *e.EndAt)

	_, err = e.RescheduleGig("missing", base, base.Add(time.Hour))
	assert.ErrorIs(t, err, gig.ErrGigNotFound)
}

func TestEvent_RescheduleGig_RollbackOnInvalidWindow(t *testing.T) {
	openDoors := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)

	e, err := NewEvent("ライブ", "", &openDoors, nil)
	require.NoError(t, err)

	g := gig.NewGig("", []user.Ref{bandA}, openDoors.Add(time.Hour), openDoors.Add(2*time.Hour))
	g.ID = "gig-1"
	_, err = e.AddGigs([]*gig.Gig{g})
	require.NoError(t, err)

	// 開場時刻より前への変更は失敗し、元の時間帯に戻る
	_, err = e.RescheduleGig("gig-1", openDoors.Add(-time.Hour), openDoors.Add(2*time.Hour))
	require.ErrorIs(t, err, ErrInvalidTimeRange)

	assert.Equal(t, openDoors.Add(time.Hour), e.Gigs[0].StartAt)
	assert.Equal(t, openDoors.Add(time.Hour), *e.StartAt)
}

func TestEvent_SetOpenDoors(t *testing.T) {
	openDoors := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)

	t.Run("演奏枠の開始より後への変更はエラーで巻き戻る", func(t *testing.T) {
		e, err := NewEvent("ライブ", "", &openDoors, nil)
		require.NoError(t, err)

		g := gig.NewGig("", []user.Ref{bandA}, openDoors.Add(30*time.Minute), openDoors.Add(90*time.Minute))
		g.ID = "gig-1"
		_, err = e.AddGigs([]*gig.Gig{g})
		require.NoError(t, err)

		late := openDoors.Add(time.Hour)
		err = e.SetOpenDoors(&late)
		require.ErrorIs(t, err, ErrInvalidTimeRange)

		assert.Equal(t, openDoors, *e.OpenDoors)
		assert.Equal(t, openDoors.Add(30*time.Minute), *e.StartAt)
		assert.Equal(t, openDoors.Add(90*time.Minute), *e.EndAt)
	})

	t.Run("演奏枠の開始以前なら変更できる", func(t *testing.T) {
		e, err := NewEvent("ライブ", "", &openDoors, nil)
		require.NoError(t, err)

		g := gig.NewGig("", []user.Ref{bandA}, openDoors.Add(30*time.Minute), openDoors.Add(90*time.Minute))
		g.ID = "gig-1"
		_, err = e.AddGigs([]*gig.Gig{g})
		require.NoError(t, err)

		earlier := openDoors.Add(-time.Hour)
		require.NoError(t, e.SetOpenDoors(&earlier))

		assert.Equal(t, earlier, *e.OpenDoors)
		// 開始時刻は演奏枠から導出されたまま
		assert.Equal(t, openDoors.Add(30*time.Minute), *e.StartAt)
	})

	t.Run("演奏枠がなければ時間帯が開場時刻に追従する", func(t *testing.T) {
		e, err := NewEvent("ライブ", "", &openDoors, nil)
		require.NoError(t, err)
		require.Equal(t, openDoors, *e.StartAt)

		later := openDoors.Add(time.Hour)
		require.NoError(t, e.SetOpenDoors(&later))

		assert.Equal(t, later, *e.StartAt)
		assert.Equal(t, later, *e.EndAt)
	})
}

func TestEvent_AcceptAndDeclineRequest(t *testing.T) {
	e, err := NewEvent("ライブ", "", nil, &venueX)
	require.NoError(t, err)
	e.Requests[0].ID = "req-venue"

	r, err := e.AcceptRequest("req-venue")
	require.NoError(t, err)
	assert.Equal(t, tristate.True, r.Approved)
	assert.True(t, e.VenueHasApproved())

	_, err = e.AcceptRequest("missing")
	assert.ErrorIs(t, err, request.ErrRequestNotFound)

	r, err = e.DeclineRequest("req-venue")
	require.NoError(t, err)
	assert.Equal(t, tristate.False, r.Approved)
	assert.False(t, e.VenueHasApproved())
}

func TestEvent_SetVenue(t *testing.T) {
	e, err := NewEvent("ライブ", "", nil, &venueX)
	require.NoError(t, err)
	require.NoError(t, e.Requests[0].Approve())
	e.Public = tristate.True

	newReq, err := e.SetVenue(venueY)
	require.NoError(t, err)

	assert.Equal(t, venueY.ID, e.Venue.ID)
	assert.Equal(t, tristate.False, e.Public, "会場が変わるとイベントは非公開に戻る")
	assert.Equal(t, tristate.Undefined, newReq.Approved)
	assert.False(t, e.VenueHasApproved(), "新会場の再承認が必要")

	for _, r := range e.Requests {
		assert.NotEqual(t, venueX.ID, r.User.ID, "旧会場のチケットは残らない")
	}

	_, err = e.SetVenue(bandA)
	assert.ErrorIs(t, err, ErrNotVenue)
}

func TestEvent_SetVenue_LocationFallback(t *testing.T) {
	e, err := NewEvent("ライブ", "", nil, nil)
	require.NoError(t, err)
	require.Empty(t, e.Location)

	_, err = e.SetVenue(venueY)
	require.NoError(t, err)
	assert.Equal(t, "大阪市北区", e.Location)

	// 既にロケーションが設定されていれば上書きしない
	e.Location = "名古屋市中区"
	_, err = e.SetVenue(venueX)
	require.NoError(t, err)
	assert.Equal(t, "名古屋市中区", e.Location)
}

func TestEvent_ChangeCancelledStatus(t *testing.T) {
	e, err := NewEvent("ライブ", "", nil, &venueX)
	require.NoError(t, err)

	// 会場以外の呼び出しは黙って現在値を返す
	result := e.ChangeCancelledStatus(venueY)
	assert.Equal(t, tristate.Undefined, result)
	assert.Equal(t, tristate.Undefined, e.Cancelled)

	result = e.ChangeCancelledStatus(venueX)
	assert.Equal(t, tristate.True, result)

	result = e.ChangeCancelledStatus(venueX)
	assert.Equal(t, tristate.False, result)
}

func TestEvent_Participations(t *testing.T) {
	e, err := NewEvent("ライブ", "", nil, nil)
	require.NoError(t, err)

	attendee := user.Ref{Kind: user.KindParticipant, ID: "p1", Name: "参加者1"}
	p := participation.NewParticipation("", attendee, participation.StatusInvited)

	require.NoError(t, e.AddParticipation(p))

	err = e.AddParticipation(participation.NewParticipation("", attendee, participation.StatusAccepted))
	assert.ErrorIs(t, err, participation.ErrAlreadyParticipating)

	updated, err := e.SetParticipation("p1", participation.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, participation.StatusAccepted, updated.Status)

	_, err = e.SetParticipation("missing", participation.StatusAccepted)
	assert.ErrorIs(t, err, participation.ErrParticipationNotFound)

	require.NoError(t, e.RemoveParticipation("p1"))
	assert.Empty(t, e.Participations)

	err = e.RemoveParticipation("p1")
	assert.ErrorIs(t, err, participation.ErrParticipationNotFound)
}

func TestEvent_PostsAndAlbums(t *testing.T) {
	e, err := NewEvent("ライブ", "", nil, nil)
	require.NoError(t, err)

	e.AddPost(&Post{ID: "post-1", AuthorID: "p1", Content: "楽しみ"})
	e.AddAlbum(&Album{ID: "album-1", AuthorID: "p1", Title: "リハーサル"})

	updatedPost, err := e.SetPost(&Post{ID: "post-1", Content: "とても楽しみ"})
	require.NoError(t, err)
	assert.Equal(t, "とても楽しみ", updatedPost.Content)

	_, err = e.SetPost(&Post{ID: "missing"})
	assert.ErrorIs(t, err, ErrPostNotFound)

	updatedAlbum, err := e.SetAlbum(&Album{ID: "album-1", Title: "本番"})
	require.NoError(t, err)
	assert.Equal(t, "本番", updatedAlbum.Title)

	require.NoError(t, e.RemovePost("post-1"))
	require.NoError(t, e.RemoveAlbum("album-1"))
	assert.ErrorIs(t, e.RemovePost("post-1"), ErrPostNotFound)
	assert.ErrorIs(t, e.RemoveAlbum("album-1"), ErrAlbumNotFound)
}
