package event

import "time"

// Post はイベントに添付される投稿を表す
// 集約はID一致による追加・削除・上書きのみを提供し、内容には関与しない
type Post struct {
	ID        string
	AuthorID  string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Album はイベントに添付されるアルバムを表す
type Album struct {
	ID        string
	AuthorID  string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AddPost は投稿を追加する
func (e *Event) AddPost(p *Post) {
	e.Posts = append(e.Posts, p)
	e.touch()
}

// RemovePost はIDが一致する投稿を削除する
func (e *Event) RemovePost(postID string) error {
	for i, p := range e.Posts {
		if p.ID == postID {
			e.Posts = append(e.Posts[:i], e.Posts[i+1:]...)
			e.touch()
			return nil
		}
	}
	return ErrPostNotFound
}

// SetPost はIDが一致する投稿の内容を上書きする
func (e *Event) SetPost(p *Post) (*Post, error) {
	for _, existing := range e.Posts {
		if existing.ID == p.ID {
			existing.Content = p.Content
			existing.UpdatedAt = time.Now()
			e.touch()
			return existing, nil
		}
	}
	return nil, ErrPostNotFound
}

// AddAlbum はアルバムを追加する
func (e *Event) AddAlbum(a *Album) {
	e.Albums = append(e.Albums, a)
	e.touch()
}

// RemoveAlbum はIDが一致するアルバムを削除する
func (e *Event) RemoveAlbum(albumID string) error {
	for i, a := range e.Albums {
		if a.ID == albumID {
			e.Albums = append(e.Albums[:i], e.Albums[i+1:]...)
			e.touch()
			return nil
		}
	}
	return ErrAlbumNotFound
}

// SetAlbum はIDが一致するアルバムのタイトルを上書きする
func (e *Event) SetAlbum(a *Album) (*Album, error) {
	for _, existing := range e.Albums {
		if existing.ID == a.ID {
			existing.Title = a.Title
			existing.UpdatedAt = time.Now()
			e.touch()
			return existing, nil
		}
	}
	return nil, ErrAlbumNotFound
}
