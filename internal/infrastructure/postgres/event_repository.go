package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Laustrup/go-gig-booking/internal/domain/event"
	"github.com/Laustrup/go-gig-booking/internal/domain/gig"
	"github.com/Laustrup/go-gig-booking/internal/domain/participation"
	"github.com/Laustrup/go-gig-booking/internal/domain/request"
	"github.com/Laustrup/go-gig-booking/internal/domain/transaction"
	"github.com/Laustrup/go-gig-booking/internal/domain/tristate"
	"github.com/Laustrup/go-gig-booking/internal/domain/user"
)

// eventRow はeventsテーブルの行を表す構造体
type eventRow struct {
	ID              string     `db:"id"`
	Title           string     `db:"title"`
	Description     *string    `db:"description"`
	OpenDoors       *time.Time `db:"open_doors"`
	StartAt         *time.Time `db:"start_at"`
	EndAt           *time.Time `db:"end_at"`
	DurationMinutes int64      `db:"duration_minutes"`
	Voluntary       string     `db:"voluntary"`
	Public          string     `db:"public"`
	Cancelled       string     `db:"cancelled"`
	SoldOut         string     `db:"sold_out"`
	Location        *string    `db:"location"`
	Price           int64      `db:"price"`
	TicketsURL      *string    `db:"tickets_url"`
	ContactInfo     *string    `db:"contact_info"`
	VenueKind       *string    `db:"venue_kind"`
	VenueID         *string    `db:"venue_id"`
	VenueName       *string    `db:"venue_name"`
	VenueLocation   *string    `db:"venue_location"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
	Version         int        `db:"version"`
}

func (r *eventRow) venueRef() *user.Ref {
	if r.VenueID == nil {
		return nil
	}
	ref := user.Ref{Kind: user.KindVenue, ID: *r.VenueID}
	if r.VenueKind != nil {
		ref.Kind = user.Kind(*r.VenueKind)
	}
	if r.VenueName != nil {
		ref.Name = *r.VenueName
	}
	if r.VenueLocation != nil {
		ref.Location = *r.VenueLocation
	}
	return &ref
}

type gigRow struct {
	ID        string    `db:"id"`
	EventID   string    `db:"event_id"`
	StartAt   time.Time `db:"start_at"`
	EndAt     time.Time `db:"end_at"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type performerRow struct {
	GigID string `db:"gig_id"`
	Kind  string `db:"kind"`
	ID    string `db:"performer_id"`
	Name  string `db:"name"`
}

type requestRow struct {
	ID           string    `db:"id"`
	EventID      string    `db:"event_id"`
	UserKind     string    `db:"user_kind"`
	UserID       string    `db:"user_id"`
	UserName     string    `db:"user_name"`
	UserLocation string    `db:"user_location"`
	Approved     string    `db:"approved"`
	Message      string    `db:"message"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r *requestRow) toEntity() *request.Request {
	return &request.Request{
		ID:      r.ID,
		EventID: r.EventID,
		User: user.Ref{
			Kind:     user.Kind(r.UserKind),
			ID:       r.UserID,
			Name:     r.UserName,
			Location: r.UserLocation,
		},
		Approved:  tristate.Value(r.Approved),
		Message:   r.Message,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type participationRow struct {
	ID              string    `db:"id"`
	EventID         string    `db:"event_id"`
	ParticipantID   string    `db:"participant_id"`
	ParticipantName string    `db:"participant_name"`
	Status          string    `db:"status"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type postRow struct {
	ID        string    `db:"id"`
	EventID   string    `db:"event_id"`
	AuthorID  string    `db:"author_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type albumRow struct {
	ID        string    `db:"id"`
	EventID   string    `db:"event_id"`
	AuthorID  string    `db:"author_id"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// EventRepository はイベント集約リポジトリのPostgreSQL実装
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository はEventRepositoryを作成する
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create は新しいイベント集約を作成する
func (r *EventRepository) Create(ctx context.Context, tx transaction.Tx, e *event.Event) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return errors.New("トランザクションが不正です")
	}

	query := `
		INSERT INTO events (
			title, description, open_doors, start_at, end_at, duration_minutes,
			voluntary, public, cancelled, sold_out,
			location, price, tickets_url, contact_info,
			venue_kind, venue_id, venue_name, venue_location,
			created_at, updated_at, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id
	`
	var venueKind, venueID, venueName, venueLocation *string
	if e.Venue != nil {
		k := string(e.Venue.Kind)
		venueKind, venueID, venueName, venueLocation = &k, &e.Venue.ID, nullable(e.Venue.Name), nullable(e.Venue.Location)
	}

	err := sqlxTx.QueryRowContext(ctx, query,
		e.Title, nullable(e.Description), e.OpenDoors, e.StartAt, e.EndAt, int64(e.Duration.Minutes()),
		string(e.Voluntary), string(e.Public), string(e.Cancelled), string(e.SoldOut),
		nullable(e.Location), e.Price, nullable(e.TicketsURL), nullable(e.ContactInfo),
		venueKind, venueID, venueName, venueLocation,
		e.CreatedAt, e.UpdatedAt, e.Version,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("イベント作成に失敗しました: %w", err)
	}

	for _, g := range e.Gigs {
		g.EventID = e.ID
	}
	for _, req := range e.Requests {
		req.EventID = e.ID
	}
	for _, p := range e.Participations {
		p.EventID = e.ID
	}

	return r.syncChildren(ctx, sqlxTx, e)
}

// GetByID はIDからイベント集約を取得する
// 子コレクションを読み込んだうえで構築時に時間帯を再導出する
func (r *EventRepository) GetByID(ctx context.Context, id string) (*event.Event, error) {
	query := `
		SELECT id, title, description, open_doors, start_at, end_at, duration_minutes,
		       voluntary, public, cancelled, sold_out,
		       location, price, tickets_url, contact_info,
		       venue_kind, venue_id, venue_name, venue_location,
		       created_at, updated_at, version
		FROM events WHERE id = $1
	`
	var row eventRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, event.ErrEventNotFound
		}
		return nil, fmt.Errorf("イベント取得に失敗しました: %w", err)
	}

	gigs, err := r.loadGigs(ctx, id)
	if err != nil {
		return nil, err
	}
	requests, err := r.loadRequests(ctx, id)
	if err != nil {
		return nil, err
	}
	participations, err := r.loadParticipations(ctx, id)
	if err != nil {
		return nil, err
	}
	posts, err := r.loadPosts(ctx, id)
	if err != nil {
		return nil, err
	}
	albums, err := r.loadAlbums(ctx, id)
	if err != nil {
		return nil, err
	}

	rec := event.Record{
		ID:              row.ID,
		Title:           row.Title,
		OpenDoors:       row.OpenDoors,
		StartAt:         row.StartAt,
		EndAt:           row.EndAt,
		DurationMinutes: row.DurationMinutes,
		Voluntary:       tristate.Value(row.Voluntary),
		Public:          tristate.Value(row.Public),
		Cancelled:       tristate.Value(row.Cancelled),
		SoldOut:         tristate.Value(row.SoldOut),
		Price:           row.Price,
		Venue:           row.venueRef(),
		Gigs:            gigs,
		Requests:        requests,
		Participations:  participations,
		Posts:           posts,
		Albums:          albums,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
		Version:         row.Version,
	}
	if row.Description != nil {
		rec.Description = *row.Description
	}
	if row.Location != nil {
		rec.Location = *row.Location
	}
	if row.TicketsURL != nil {
		rec.TicketsURL = *row.TicketsURL
	}
	if row.ContactInfo != nil {
		rec.ContactInfo = *row.ContactInfo
	}

	e, err := event.FromRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("イベント集約の構築に失敗しました: %w", err)
	}
	return e, nil
}

// List はイベント一覧を取得する（子コレクションなしのサマリー）
func (r *EventRepository) List(ctx context.Context, limit, offset int) ([]*event.Event, error) {
	query := `
		SELECT id, title, description, open_doors, start_at, end_at, duration_minutes,
		       voluntary, public, cancelled, sold_out,
		       location, price, tickets_url, contact_info,
		       venue_kind, venue_id, venue_name, venue_location,
		       created_at, updated_at, version
		FROM events
		ORDER BY start_at DESC NULLS LAST
		LIMIT $1 OFFSET $2
	`
	var rows []eventRow
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("イベント一覧取得に失敗しました: %w", err)
	}

	events := make([]*event.Event, len(rows))
	for i, row := range rows {
		e := &event.Event{
			ID:        row.ID,
			Title:     row.Title,
			OpenDoors: row.OpenDoors,
			StartAt:   row.StartAt,
			EndAt:     row.EndAt,
			Duration:  time.Duration(row.DurationMinutes) * time.Minute,
			Voluntary: tristate.Value(row.Voluntary),
			Public:    tristate.Value(row.Public),
			Cancelled: tristate.Value(row.Cancelled),
			SoldOut:   tristate.Value(row.SoldOut),
			Price:     row.Price,
			Venue:     row.venueRef(),
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
			Version:   row.Version,
		}
		if row.Description != nil {
			e.Description = *row.Description
		}
		if row.Location != nil {
			e.Location = *row.Location
		}
		events[i] = e
	}
	return events, nil
}

// Save はイベント集約を保存する（楽観的ロック）
func (r *EventRepository) Save(ctx context.Context, tx transaction.Tx, e *event.Event) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return errors.New("トランザクションが不正です")
	}

	query := `
		UPDATE events
		SET title = $1, description = $2, open_doors = $3, start_at = $4, end_at = $5,
		    duration_minutes = $6, voluntary = $7, public = $8, cancelled = $9, sold_out = $10,
		    location = $11, price = $12, tickets_url = $13, contact_info = $14,
		    venue_kind = $15, venue_id = $16, venue_name = $17, venue_location = $18,
		    updated_at = $19, version = version + 1
		WHERE id = $20 AND version = $21
	`
	var venueKind, venueID, venueName, venueLocation *string
	if e.Venue != nil {
		k := string(e.Venue.Kind)
		venueKind, venueID, venueName, venueLocation = &k, &e.Venue.ID, nullable(e.Venue.Name), nullable(e.Venue.Location)
	}

	result, err := sqlxTx.ExecContext(ctx, query,
		e.Title, nullable(e.Description), e.OpenDoors, e.StartAt, e.EndAt,
		int64(e.Duration.Minutes()), string(e.Voluntary), string(e.Public), string(e.Cancelled), string(e.SoldOut),
		nullable(e.Location), e.Price, nullable(e.TicketsURL), nullable(e.ContactInfo),
		venueKind, venueID, venueName, venueLocation,
		time.Now(), e.ID, e.Version,
	)
	if err != nil {
		return fmt.Errorf("イベント更新に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新結果の確認に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return event.ErrOptimisticLockConflict
	}

	if err := r.syncChildren(ctx, sqlxTx, e); err != nil {
		return err
	}

	e.Version++
	return nil
}

// Delete はイベント集約を削除する（子テーブルはON DELETE CASCADE）
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("イベント削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("削除結果の確認に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return event.ErrEventNotFound
	}
	return nil
}

// DeclineStaleRequests は指定期間を超えて未決定のままの承認チケットを一括拒否する
func (r *EventRepository) DeclineStaleRequests(ctx context.Context, olderThan time.Duration) (int, error) {
	query := `
		UPDATE requests
		SET approved = $1, updated_at = NOW()
		WHERE approved = $2 AND created_at < NOW() - $3::interval
	`
	interval := fmt.Sprintf("%d seconds", int64(olderThan.Seconds()))
	result, err := r.db.ExecContext(ctx, query, string(tristate.False), string(tristate.Undefined), interval)
	if err != nil {
		return 0, fmt.Errorf("承認チケットの一括拒否に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("更新結果の確認に失敗しました: %w", err)
	}
	return int(rowsAffected), nil
}

// CountPendingRequests は全イベントの未決定の承認チケット数を返す
func (r *EventRepository) CountPendingRequests(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM requests WHERE approved = $1`
	if err := r.db.GetContext(ctx, &count, query, string(tristate.Undefined)); err != nil {
		return 0, fmt.Errorf("承認チケット数の取得に失敗しました: %w", err)
	}
	return count, nil
}

// インターフェースを満たしているか確認
var _ event.Repository = (*EventRepository)(nil)

// === 子コレクションの読み込み ===

func (r *EventRepository) loadGigs(ctx context.Context, eventID string) ([]*gig.Gig, error) {
	var rows []gigRow
	query := `SELECT id, event_id, start_at, end_at, created_at, updated_at FROM gigs WHERE event_id = $1 ORDER BY start_at`
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, fmt.Errorf("演奏枠取得に失敗しました: %w", err)
	}

	var performers []performerRow
	performerQuery := `
		SELECT gp.gig_id, gp.kind, gp.performer_id, gp.name
		FROM gig_performers gp
		JOIN gigs g ON g.id = gp.gig_id
		WHERE g.event_id = $1
	`
	if err := r.db.SelectContext(ctx, &performers, performerQuery, eventID); err != nil {
		return nil, fmt.Errorf("出演者取得に失敗しました: %w", err)
	}

	actByGig := make(map[string][]user.Ref)
	for _, p := range performers {
		actByGig[p.GigID] = append(actByGig[p.GigID], user.Ref{
			Kind: user.Kind(p.Kind),
			ID:   p.ID,
			Name: p.Name,
		})
	}

	gigs := make([]*gig.Gig, len(rows))
	for i, row := range rows {
		gigs[i] = &gig.Gig{
			ID:        row.ID,
			EventID:   row.EventID,
			Act:       actByGig[row.ID],
			StartAt:   row.StartAt,
			EndAt:     row.EndAt,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		}
	}
	return gigs, nil
}

func (r *EventRepository) loadRequests(ctx context.Context, eventID string) ([]*request.Request, error) {
	var rows []requestRow
	query := `
		SELECT id, event_id, user_kind, user_id, user_name, user_location, approved, message, created_at, updated_at
		FROM requests WHERE event_id = $1 ORDER BY created_at
	`
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, fmt.Errorf("承認チケット取得に失敗しました: %w", err)
	}
	requests := make([]*request.Request, len(rows))
	for i, row := range rows {
		requests[i] = row.toEntity()
	}
	return requests, nil
}

func (r *EventRepository) loadParticipations(ctx context.Context, eventID string) ([]*participation.Participation, error) {
	var rows []participationRow
	query := `
		SELECT id, event_id, participant_id, participant_name, status, created_at, updated_at
		FROM participations WHERE event_id = $1 ORDER BY created_at
	`
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, fmt.Errorf("参加取得に失敗しました: %w", err)
	}
	participations := make([]*participation.Participation, len(rows))
	for i, row := range rows {
		participations[i] = &participation.Participation{
			ID:      row.ID,
			EventID: row.EventID,
			Participant: user.Ref{
				Kind: user.KindParticipant,
				ID:   row.ParticipantID,
				Name: row.ParticipantName,
			},
			Status:    participation.Status(row.Status),
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		}
	}
	return participations, nil
}

func (r *EventRepository) loadPosts(ctx context.Context, eventID string) ([]*event.Post, error) {
	var rows []postRow
	query := `SELECT id, event_id, author_id, content, created_at, updated_at FROM posts WHERE event_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, fmt.Errorf("投稿取得に失敗しました: %w", err)
	}
	posts := make([]*event.Post, len(rows))
	for i, row := range rows {
		posts[i] = &event.Post{
			ID:        row.ID,
			AuthorID:  row.AuthorID,
			Content:   row.Content,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		}
	}
	return posts, nil
}

func (r *EventRepository) loadAlbums(ctx context.Context, eventID string) ([]*event.Album, error) {
	var rows []albumRow
	query := `SELECT id, event_id, author_id, title, created_at, updated_at FROM albums WHERE event_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, fmt.Errorf("アルバム取得に失敗しました: %w", err)
	}
	albums := make([]*event.Album, len(rows))
	for i, row := range rows {
		albums[i] = &event.Album{
			ID:        row.ID,
			AuthorID:  row.AuthorID,
			Title:     row.Title,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		}
	}
	return albums, nil
}

// === 子コレクションの保存 ===
// 集約の現在の状態を正として、残っていない行を削除し、新規行を挿入し、既存行を更新する

func (r *EventRepository) syncChildren(ctx context.Context, tx *sqlx.Tx, e *event.Event) error {
	if err := r.syncGigs(ctx, tx, e); err != nil {
		return err
	}
	if err := r.syncRequests(ctx, tx, e); err != nil {
		return err
	}
	if err := r.syncParticipations(ctx, tx, e); err != nil {
		return err
	}
	if err := r.syncPosts(ctx, tx, e); err != nil {
		return err
	}
	return r.syncAlbums(ctx, tx, e)
}

func keptIDs(ids []string) pq.StringArray {
	if ids == nil {
		ids = []string{}
	}
	return pq.StringArray(ids)
}

func (r *EventRepository) syncGigs(ctx context.Context, tx *sqlx.Tx, e *event.Event) error {
	var kept []string
	for _, g := range e.Gigs {
		if g.ID != "" {
			kept = append(kept, g.ID)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM gigs WHERE event_id = $1 AND NOT (id = ANY($2))`,
		e.ID, keptIDs(kept),
	); err != nil {
		return fmt.Errorf("演奏枠削除に失敗しました: %w", err)
	}

	for _, g := range e.Gigs {
		if g.ID == "" {
			err := tx.QueryRowContext(ctx,
				`INSERT INTO gigs (event_id, start_at, end_at, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
				e.ID, g.StartAt, g.EndAt, g.CreatedAt, g.UpdatedAt,
			).Scan(&g.ID)
			if err != nil {
				return fmt.Errorf("演奏枠作成に失敗しました: %w", err)
			}
		} else {
			if _, err := tx.ExecContext(ctx,
				`UPDATE gigs SET start_at = $1, end_at = $2, updated_at = $3 WHERE id = $4`,
				g.StartAt, g.EndAt, g.UpdatedAt, g.ID,
			); err != nil {
				return fmt.Errorf("演奏枠更新に失敗しました: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM gig_performers WHERE gig_id = $1`, g.ID); err != nil {
				return fmt.Errorf("出演者削除に失敗しました: %w", err)
			}
		}
		for _, p := range g.Act {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO gig_performers (gig_id, kind, performer_id, name) VALUES ($1, $2, $3, $4)`,
				g.ID, string(p.Kind), p.ID, p.Name,
			); err != nil {
				return fmt.Errorf("出演者登録に失敗しました: %w", err)
			}
		}
	}
	return nil
}

func (r *EventRepository) syncRequests(ctx context.Context, tx *sqlx.Tx, e *event.Event) error {
	var kept []string
	for _, req := range e.Requests {
		if req.ID != "" {
			kept = append(kept, req.ID)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM requests WHERE event_id = $1 AND NOT (id = ANY($2))`,
		e.ID, keptIDs(kept),
	); err != nil {
		return fmt.Errorf("承認チケット削除に失敗しました: %w", err)
	}

	for _, req := range e.Requests {
		if req.ID == "" {
			err := tx.QueryRowContext(ctx,
				`INSERT INTO requests (event_id, user_kind, user_id, user_name, user_location, approved, message, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
				e.ID, string(req.User.Kind), req.User.ID, req.User.Name, req.User.Location,
				string(req.Approved), req.Message, req.CreatedAt, req.UpdatedAt,
			).Scan(&req.ID)
			if err != nil {
				return fmt.Errorf("承認チケット作成に失敗しました: %w", err)
			}
		} else {
			if _, err := tx.ExecContext(ctx,
				`UPDATE requests SET approved = $1, message = $2, updated_at = $3 WHERE id = $4`,
				string(req.Approved), req.Message, req.UpdatedAt, req.ID,
			); err != nil {
				return fmt.Errorf("承認チケット更新に失敗しました: %w", err)
			}
		}
	}
	return nil
}

func (r *EventRepository) syncParticipations(ctx context.Context, tx *sqlx.Tx, e *event.Event) error {
	var kept []string
	for _, p := range e.Participations {
		if p.ID != "" {
			kept = append(kept, p.ID)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM participations WHERE event_id = $1 AND NOT (id = ANY($2))`,
		e.ID, keptIDs(kept),
	); err != nil {
		return fmt.Errorf("参加削除に失敗しました: %w", err)
	}

	for _, p := range e.Participations {
		if p.ID == "" {
			err := tx.QueryRowContext(ctx,
				`INSERT INTO participations (event_id, participant_id, participant_name, status, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
				e.ID, p.Participant.ID, p.Participant.Name, string(p.Status), p.CreatedAt, p.UpdatedAt,
			).Scan(&p.ID)
			if err != nil {
				return fmt.Errorf("参加作成に失敗しました: %w", err)
			}
		} else {
			if _, err := tx.ExecContext(ctx,
				`UPDATE participations SET status = $1, updated_at = $2 WHERE id = $3`,
				string(p.Status), p.UpdatedAt, p.ID,
			); err != nil {
				return fmt.Errorf("参加更新に失敗しました: %w", err)
			}
		}
	}
	return nil
}

func (r *EventRepository) syncPosts(ctx context.Context, tx *sqlx.Tx, e *event.Event) error {
	var kept []string
	for _, p := range e.Posts {
		if p.ID != "" {
			kept = append(kept, p.ID)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM posts WHERE event_id = $1 AND NOT (id = ANY($2))`,
		e.ID, keptIDs(kept),
	); err != nil {
		return fmt.Errorf("投稿削除に失敗しました: %w", err)
	}

	for _, p := range e.Posts {
		if p.ID == "" {
			err := tx.QueryRowContext(ctx,
				`INSERT INTO posts (event_id, author_id, content, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
				e.ID, p.AuthorID, p.Content, p.CreatedAt, p.UpdatedAt,
			).Scan(&p.ID)
			if err != nil {
				return fmt.Errorf("投稿作成に失敗しました: %w", err)
			}
		} else {
			if _, err := tx.ExecContext(ctx,
				`UPDATE posts SET content = $1, updated_at = $2 WHERE id = $3`,
				p.Content, p.UpdatedAt, p.ID,
			); err != nil {
				return fmt.Errorf("投稿更新に失敗しました: %w", err)
			}
		}
	}
	return nil
}

func (r *EventRepository) syncAlbums(ctx context.Context, tx *sqlx.Tx, e *event.Event) error {
	var kept []string
	for _, a := range e.Albums {
		if a.ID != "" {
			kept = append(kept, a.ID)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM albums WHERE event_id = $1 AND NOT (id = ANY($2))`,
		e.ID, keptIDs(kept),
	); err != nil {
		return fmt.Errorf("アルバム削除に失敗しました: %w", err)
	}

	for _, a := range e.Albums {
		if a.ID == "" {
			err := tx.QueryRowContext(ctx,
				`INSERT INTO albums (event_id, author_id, title, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
				e.ID, a.AuthorID, a.Title, a.CreatedAt, a.UpdatedAt,
			).Scan(&a.ID)
			if err != nil {
				return fmt.Errorf("アルバム作成に失敗しました: %w", err)
			}
		} else {
			if _, err := tx.ExecContext(ctx,
				`UPDATE albums SET title = $1, updated_at = $2 WHERE id = $3`,
				a.Title, a.UpdatedAt, a.ID,
			); err != nil {
				return fmt.Errorf("アルバム更新に失敗しました: %w", err)
			}
		}
	}
	return nil
}
