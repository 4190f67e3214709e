package domain

// Category groups events.
type Category struct {
	ID          FlexString `json:"id,omitempty"`
	Name        string     `json:"name"        validate:"required"`
	Description string     `json:"description,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	IsActive    bool       `json:"is_active"`
}

// Setting is a platform-wide key/value pair.
type Setting struct {
	Key         string `json:"key"   validate:"required"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// Page is a CMS page (about us, terms and conditions, ...).
type Page struct {
	ID       FlexString `json:"id,omitempty"`
	Slug     string     `json:"slug"    validate:"required"`
	Title    string     `json:"title"   validate:"required"`
	Content  string     `json:"content" validate:"required"`
	IsActive bool       `json:"is_active"`
}

// ContactStatus tracks handling of a contact-form message.
type ContactStatus string

const (
	ContactNew     ContactStatus = "new"
	ContactRead    ContactStatus = "read"
	ContactReplied ContactStatus = "replied"
)

func (s ContactStatus) Valid() bool {
	return s == ContactNew || s == ContactRead || s == ContactReplied
}

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID        FlexString    `json:"id,omitempty"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone,omitempty"`
	Subject   string        `json:"subject,omitempty"`
	Message   string        `json:"message"`
	Reply     string        `json:"reply,omitempty"`
	Status    ContactStatus `json:"status"`
	CreatedAt string        `json:"created_at,omitempty"`
}

// FormOption is an admin-configurable dropdown choice used by registration forms.
type FormOption struct {
	ID        FlexString `json:"id,omitempty"`
	Type      string     `json:"type"  validate:"required"`
	Label     string     `json:"label" validate:"required"`
	Value     string     `json:"value" validate:"required"`
	SortOrder int        `json:"sort_order,omitempty"`
	IsActive  bool       `json:"is_active"`
}

// ReviewStatus is the moderation state of a review.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

func (s ReviewStatus) Valid() bool {
	return s == ReviewPending || s == ReviewApproved || s == ReviewRejected
}

// Review is feedback left by a volunteer.
type Review struct {
	ID        FlexString   `json:"id,omitempty"`
	UserID    FlexString   `json:"user_id"`
	EventID   FlexString   `json:"event_id,omitempty"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment,omitempty"`
	Status    ReviewStatus `json:"status"`
	CreatedAt string       `json:"created_at,omitempty"`
}
