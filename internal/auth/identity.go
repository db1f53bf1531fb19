package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/users"
)

const (
	CtxIdentity    = "identity"
	CtxCurrentUser = "current_user"
)

// Identity is what an identity provider vouches for on a request.
// Admin is nil when the provider carries no role claim.
type Identity struct {
	UID        string
	Email      string
	FirstName  string
	LastName   string
	PictureURL string
	Admin      *bool
}

// SplitName splits a display name on the first space.
func SplitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	if i := strings.IndexByte(name, ' '); i >= 0 {
		return name[:i], strings.TrimSpace(name[i+1:])
	}
	return name, ""
}

func SetIdentity(c *gin.Context, id Identity) {
	c.Set(CtxIdentity, id)
}

// IdentityFrom returns the identity placed by an auth middleware.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(CtxIdentity)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	if !ok || strings.TrimSpace(id.UID) == "" {
		return Identity{}, false
	}
	return id, true
}

// CurrentUser returns the stored user resolved by SyncUser, or nil.
func CurrentUser(c *gin.Context) *users.User {
	v, ok := c.Get(CtxCurrentUser)
	if !ok {
		return nil
	}
	u, _ := v.(*users.User)
	return u
}

// UserID is shorthand for CurrentUser(c).ID, empty when unauthenticated.
func UserID(c *gin.Context) string {
	if u := CurrentUser(c); u != nil {
		return u.ID
	}
	return ""
}

func (id Identity) toUpsert() users.UpsertUser {
	return users.UpsertUser{
		ID:              strings.TrimSpace(id.UID),
		Email:           optional(id.Email),
		FirstName:       optional(id.FirstName),
		LastName:        optional(id.LastName),
		ProfileImageURL: optional(id.PictureURL),
		IsAdmin:         id.Admin,
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
