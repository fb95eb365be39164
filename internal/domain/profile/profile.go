package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nghiatran/devconnect/internal/domain/subdoc"
)

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrExperienceNotFound = errors.New("experience not found")
	ErrEducationNotFound  = errors.New("education not found")
)

type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Experience is an embedded timeline entry, individually addressable by ID.
// When Current is true readers ignore To; the stored value is left as-is.
type Experience struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

func (e Experience) ItemID() uuid.UUID { return e.ID }

type Education struct {
	ID           uuid.UUID  `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

func (e Education) ItemID() uuid.UUID { return e.ID }

// Profile is unique per owner. UserName/UserAvatar are read-time joins from
// the users table, never written through this entity.
type Profile struct {
	OwnerID        uuid.UUID    `json:"owner_id"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	Status         string       `json:"status"`
	GithubUsername string       `json:"githubusername,omitempty"`
	Skills         []string     `json:"skills"`
	Social         SocialLinks  `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`

	UserName   string `json:"user_name,omitempty"`
	UserAvatar string `json:"user_avatar,omitempty"`
}

// Update is a sparse field bag: a nil pointer means "leave the stored value
// untouched", a non-nil pointer overrides. Skills carries the raw
// comma-delimited string and is parsed on apply.
type Update struct {
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GithubUsername *string
	Skills         *string
	Youtube        *string
	Twitter        *string
	Facebook       *string
	Linkedin       *string
	Instagram      *string
}

// ParseSkills splits a comma-delimited string into trimmed non-empty tokens,
// keeping input order.
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// Apply merges the supplied fields into the profile. Absent fields are
// preserved, so applying a one-field update never clobbers the rest.
func (p *Profile) Apply(u Update) {
	if u.Company != nil {
		p.Company = *u.Company
	}
	if u.Website != nil {
		p.Website = *u.Website
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.Bio != nil {
		p.Bio = *u.Bio
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.GithubUsername != nil {
		p.GithubUsername = *u.GithubUsername
	}
	if u.Skills != nil {
		p.Skills = ParseSkills(*u.Skills)
	}
	if u.Youtube != nil {
		p.Social.Youtube = *u.Youtube
	}
	if u.Twitter != nil {
		p.Social.Twitter = *u.Twitter
	}
	if u.Facebook != nil {
		p.Social.Facebook = *u.Facebook
	}
	if u.Linkedin != nil {
		p.Social.Linkedin = *u.Linkedin
	}
	if u.Instagram != nil {
		p.Social.Instagram = *u.Instagram
	}
}

// AddExperience appends the entry with a freshly generated id and returns it.
func (p *Profile) AddExperience(exp Experience) Experience {
	exp.ID = uuid.New()
	p.Experience = append(p.Experience, exp)
	return exp
}

// RemoveExperience deletes the entry with the given id. A miss returns
// ErrExperienceNotFound and leaves the timeline unchanged.
func (p *Profile) RemoveExperience(id uuid.UUID) error {
	rest, ok := subdoc.Remove(p.Experience, id)
	if !ok {
		return ErrExperienceNotFound
	}
	p.Experience = rest
	return nil
}

func (p *Profile) AddEducation(edu Education) Education {
	edu.ID = uuid.New()
	p.Education = append(p.Education, edu)
	return edu
}

func (p *Profile) RemoveEducation(id uuid.UUID) error {
	rest, ok := subdoc.Remove(p.Education, id)
	if !ok {
		return ErrEducationNotFound
	}
	p.Education = rest
	return nil
}

type Repository interface {
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
	ListAll(ctx context.Context) ([]*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
	DeleteByOwnerID(ctx context.Context, ownerID uuid.UUID) error
}
