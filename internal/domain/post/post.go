package post

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nghiatran/devconnect/internal/domain/subdoc"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotPostOwner     = errors.New("requester is not the post owner")
	ErrNotCommentAuthor = errors.New("requester is not the comment author")
)

// Like is one user's like entry. A user appears at most once in Likes.
type Like struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user"`
}

func (l Like) ItemID() uuid.UUID { return l.ID }

// Comment carries a name/avatar snapshot taken when it was written; the
// snapshot is never updated afterwards.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

func (c Comment) ItemID() uuid.UUID { return c.ID }

// Post embeds its likes and comments; both share the post's lifecycle.
// Comments are kept oldest-first.
type Post struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthorizeOwner is the ownership gate for owner-scoped mutations.
func (p *Post) AuthorizeOwner(requesterID uuid.UUID) error {
	if p.OwnerID != requesterID {
		return ErrNotPostOwner
	}
	return nil
}

// ToggleLike flips the requester's like entry: present removes it, absent
// appends one. Returns true when the post ends up liked. Two toggles by the
// same user restore the exact original membership and order.
func (p *Post) ToggleLike(userID uuid.UUID) bool {
	for i, l := range p.Likes {
		if l.UserID == userID {
			p.Likes = append(p.Likes[:i:i], p.Likes[i+1:]...)
			return false
		}
	}
	p.Likes = append(p.Likes, Like{ID: uuid.New(), UserID: userID})
	return true
}

// AddComment appends the comment with a fresh id and server timestamp.
func (p *Post) AddComment(c Comment) Comment {
	c.ID = uuid.New()
	c.CreatedAt = time.Now().UTC()
	p.Comments = append(p.Comments, c)
	return c
}

// RemoveComment deletes the comment with the given id, only when the
// requester wrote it. The ownership check compares the comment's author,
// not the post's owner.
func (p *Post) RemoveComment(commentID, requesterID uuid.UUID) error {
	idx := subdoc.IndexOf(p.Comments, commentID)
	if idx < 0 {
		return ErrCommentNotFound
	}
	if p.Comments[idx].UserID != requesterID {
		return ErrNotCommentAuthor
	}
	p.Comments, _ = subdoc.Remove(p.Comments, commentID)
	return nil
}

type Repository interface {
	Save(ctx context.Context, p *Post) error
	Update(ctx context.Context, p *Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)
	ListAll(ctx context.Context) ([]*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}
