// Package revx is a Go client for the RevX API. It covers authentication,
// project retrieval with client-side filtering, review and contributor
// management, and signed image uploads.
package revx

// User is the account representation returned by the API.
type User struct {
	ID       uint64  `json:"id"`
	Email    string  `json:"email"`
	Username string  `json:"username"`
	FullName string  `json:"full_name"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar"`
	IsAdmin  bool    `json:"is_admin"`
}

// Tag is a project tag from the fixed catalog.
type Tag struct {
	ID   uint64 `json:"tag_id"`
	Name string `json:"tag_name"`
}

// Review carries its rating as a string on the wire.
type Review struct {
	ID        uint64  `json:"id"`
	ProjectID uint64  `json:"project_id"`
	UserID    uint64  `json:"user_id"`
	Rating    string  `json:"rating"`
	Review    string  `json:"review"`
	Username  string  `json:"username,omitempty"`
	FullName  string  `json:"full_name,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
}

// Contributor is a user attached to a project by its owner.
type Contributor struct {
	ID        uint64  `json:"id"`
	ProjectID uint64  `json:"project_id"`
	UserID    uint64  `json:"user_id"`
	Status    string  `json:"status"`
	Username  string  `json:"username,omitempty"`
	FullName  string  `json:"full_name,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
}

// Project is the full project representation. Images are hosted URLs in
// display order. AvgRating is nil when the project has no reviews yet.
type Project struct {
	ID           uint64        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Category     *string       `json:"category,omitempty"`
	OwnerID      uint64        `json:"owner_id"`
	Owner        *User         `json:"owner,omitempty"`
	Tags         []Tag         `json:"tags"`
	Images       []string      `json:"images"`
	Reviews      []Review      `json:"reviews"`
	Contributors []Contributor `json:"contributors"`
	AvgRating    *float64      `json:"avg_rating,omitempty"`
}

// AvgRatingLabel renders the average rating for display, with a fallback
// for projects that have not been reviewed.
func (p *Project) AvgRatingLabel() string {
	if p.AvgRating == nil {
		return "No ratings yet"
	}
	return formatRating(*p.AvgRating)
}

// RegisterInput holds the fields for account creation.
type RegisterInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// ProjectInput is the create/update payload for a project.
type ProjectInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    *string  `json:"category,omitempty"`
	TagIDs      []uint64 `json:"tag_ids"`
	Images      []string `json:"images"`
}

// ReviewInput is the payload for adding a review. Rating is a string
// holding an integer between "1" and "5".
type ReviewInput struct {
	Rating string `json:"rating"`
	Review string `json:"review"`
}

// ProfileInput updates the caller's profile. Nil fields are left unchanged.
type ProfileInput struct {
	Username *string `json:"username,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}
