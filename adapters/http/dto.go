package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nghiatran/devconnect/internal/application/service"
	"github.com/nghiatran/devconnect/internal/domain/post"
	"github.com/nghiatran/devconnect/internal/domain/profile"
	"github.com/nghiatran/devconnect/internal/domain/user"
	"github.com/nghiatran/devconnect/pkg/apperror"
)

// bindingError turns gin's validator output into the field-level message
// list the API reports for ValidationError.
func bindingError(err error) *apperror.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			msg := fmt.Sprintf("%s is invalid", field)
			if fe.Tag() == "required" {
				msg = fmt.Sprintf("%s is required", field)
			}
			fields = append(fields, apperror.FieldError{Field: field, Message: msg})
		}
		return apperror.NewValidation(fields)
	}
	return apperror.NewInvalidInput("invalid request body", err)
}

// Auth DTOs

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

// Profile DTOs

type UpsertProfileRequest struct {
	Status         *string `json:"status" binding:"required"`
	Skills         *string `json:"skills" binding:"required"`
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	GithubUsername *string `json:"githubusername"`
	Youtube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	Linkedin       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

func (req *UpsertProfileRequest) ToDomainUpdate() profile.Update {
	return profile.Update{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		Status:         req.Status,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		Linkedin:       req.Linkedin,
		Instagram:      req.Instagram,
	}
}

type AddExperienceRequest struct {
	Title       string     `json:"title" binding:"required"`
	Company     string     `json:"company" binding:"required"`
	Location    string     `json:"location"`
	From        *time.Time `json:"from" binding:"required"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type AddEducationRequest struct {
	School       string     `json:"school" binding:"required"`
	Degree       string     `json:"degree" binding:"required"`
	FieldOfStudy string     `json:"fieldofstudy" binding:"required"`
	From         *time.Time `json:"from" binding:"required"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

type ExperienceDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

type EducationDTO struct {
	ID           string     `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

type ProfileUserDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type ProfileDTO struct {
	User           ProfileUserDTO      `json:"user"`
	Company        string              `json:"company,omitempty"`
	Website        string              `json:"website,omitempty"`
	Location       string              `json:"location,omitempty"`
	Bio            string              `json:"bio,omitempty"`
	Status         string              `json:"status"`
	GithubUsername string              `json:"githubusername,omitempty"`
	Skills         []string            `json:"skills"`
	Social         profile.SocialLinks `json:"social"`
	Experience     []ExperienceDTO     `json:"experience"`
	Education      []EducationDTO      `json:"education"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	dto := ProfileDTO{
		User: ProfileUserDTO{
			ID:     p.OwnerID.String(),
			Name:   p.UserName,
			Avatar: p.UserAvatar,
		},
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Bio:            p.Bio,
		Status:         p.Status,
		GithubUsername: p.GithubUsername,
		Skills:         p.Skills,
		Social:         p.Social,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	dto.Experience = make([]ExperienceDTO, len(p.Experience))
	for i, e := range p.Experience {
		dto.Experience[i] = ExperienceDTO{
			ID:          e.ID.String(),
			Title:       e.Title,
			Company:     e.Company,
			Location:    e.Location,
			From:        e.From,
			To:          e.To,
			Current:     e.Current,
			Description: e.Description,
		}
	}
	dto.Education = make([]EducationDTO, len(p.Education))
	for i, e := range p.Education {
		dto.Education[i] = EducationDTO{
			ID:           e.ID.String(),
			School:       e.School,
			Degree:       e.Degree,
			FieldOfStudy: e.FieldOfStudy,
			From:         e.From,
			To:           e.To,
			Current:      e.Current,
			Description:  e.Description,
		}
	}
	return dto
}

// Post DTOs

type CreatePostRequest struct {
	Text string `json:"text" binding:"required"`
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type LikeDTO struct {
	ID     string `json:"id"`
	UserID string `json:"user"`
}

type CommentDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

type PostDTO struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user"`
	Text      string       `json:"text"`
	Name      string       `json:"name"`
	Avatar    string       `json:"avatar"`
	Likes     []LikeDTO    `json:"likes"`
	Comments  []CommentDTO `json:"comments"`
	CreatedAt time.Time    `json:"created_at"`
}

func ToLikeDTOs(likes []post.Like) []LikeDTO {
	out := make([]LikeDTO, len(likes))
	for i, l := range likes {
		out[i] = LikeDTO{ID: l.ID.String(), UserID: l.UserID.String()}
	}
	return out
}

func ToCommentDTOs(comments []post.Comment) []CommentDTO {
	out := make([]CommentDTO, len(comments))
	for i, c := range comments {
		out[i] = CommentDTO{
			ID:        c.ID.String(),
			UserID:    c.UserID.String(),
			Text:      c.Text,
			Name:      c.Name,
			Avatar:    c.Avatar,
			CreatedAt: c.CreatedAt,
		}
	}
	return out
}

func ToPostDTO(p *post.Post) PostDTO {
	return PostDTO{
		ID:        p.ID.String(),
		UserID:    p.OwnerID.String(),
		Text:      p.Text,
		Name:      p.Name,
		Avatar:    p.Avatar,
		Likes:     ToLikeDTOs(p.Likes),
		Comments:  ToCommentDTOs(p.Comments),
		CreatedAt: p.CreatedAt,
	}
}

// GitHub DTOs

type RepoDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
}

func ToRepoDTOs(repos []service.Repo) []RepoDTO {
	out := make([]RepoDTO, len(repos))
	for i, r := range repos {
		out[i] = RepoDTO(r)
	}
	return out
}
