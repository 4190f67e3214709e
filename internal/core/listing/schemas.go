package listing

import (
	"strconv"

	"github.com/share2care/admin-console/internal/core/domain"
)

// Users filters volunteers by name, email, mobile or location, creation
// date, account status and approval status.
var Users = Schema[domain.User]{
	Entity:        "users",
	SecondaryName: "approval_status",
	Text: func(u domain.User) []string {
		return []string{u.Name, u.Email, u.Mobile.String(), u.Location}
	},
	Date:      func(u domain.User) string { return u.CreatedAt },
	Status:    func(u domain.User) string { return string(u.Status) },
	Secondary: func(u domain.User) string { return string(u.ApprovalStatus) },
}

// Events filters events by title, location, contact details, category or
// type, event date, status and featured flag.
var Events = Schema[domain.Event]{
	Entity:        "events",
	SecondaryName: "featured",
	Text: func(e domain.Event) []string {
		return []string{e.Title, e.Location, e.ContactEmail, e.ContactPhone, e.CategoryID.String(), e.EventType}
	},
	Date:      func(e domain.Event) string { return e.EventDate },
	Status:    func(e domain.Event) string { return string(e.Status) },
	Secondary: func(e domain.Event) string { return strconv.FormatBool(e.IsFeatured) },
}
