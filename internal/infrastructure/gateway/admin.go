package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/ports"
)

const (
	pathLogin         = "/admin/login"
	pathUsers         = "/admin/users"
	pathEvents        = "/admin/events"
	pathCategories    = "/admin/categories"
	pathPages         = "/admin/pages"
	pathFormOptions   = "/admin/form-options"
	pathReviews       = "/admin/reviews"
	pathContacts      = "/admin/contacts"
	pathSettings      = "/admin/settings"
	pathSendEmail     = "/admin/send-email"
	pathNotifications = "/admin/notifications"
	pathStats         = "/admin/dashboard/stats"
	pathReports       = "/admin/reports"
)

var (
	_ ports.AuthGateway    = (*Client)(nil)
	_ ports.UserGateway    = (*Client)(nil)
	_ ports.EventGateway   = (*Client)(nil)
	_ ports.CatalogGateway = (*Client)(nil)
	_ ports.Messenger      = (*Client)(nil)
	_ ports.StatsGateway   = (*Client)(nil)
)

// --- Auth ---

type loginResponse struct {
	Token string               `json:"token"`
	Admin *domain.AdminProfile `json:"admin"`
	User  *domain.AdminProfile `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (string, *domain.AdminProfile, error) {
	var out loginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, pathLogin, nil, body, &out); err != nil {
		return "", nil, err
	}
	if out.Token == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	admin := out.Admin
	if admin == nil {
		admin = out.User
	}
	if admin == nil {
		admin = &domain.AdminProfile{Email: email}
	}
	if admin.Role == "" {
		admin.Role = domain.RoleAdmin
	}
	return out.Token, admin, nil
}

// --- Users ---

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	return resource[domain.User]{c, pathUsers}.List(ctx)
}

func (c *Client) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return resource[domain.User]{c, pathUsers}.Get(ctx, id)
}

func (c *Client) UpdateUserStatus(ctx context.Context, id string, status domain.UserStatus) error {
	body := map[string]string{"status": string(status)}
	return c.do(ctx, http.MethodPut, itemPath(pathUsers, id, "status"), nil, body, nil)
}

func (c *Client) UpdateApproval(ctx context.Context, id string, status domain.ApprovalStatus, comments string) (*domain.User, error) {
	body := map[string]string{
		"approval_status": string(status),
		"admin_comments":  comments,
	}
	var out domain.User
	if err := c.do(ctx, http.MethodPut, itemPath(pathUsers, id, "approval"), nil, body, &out); err != nil {
		return nil, err
	}
	if out.ID == "" && out.Email == "" {
		return nil, nil
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return resource[domain.User]{c, pathUsers}.Delete(ctx, id)
}

// --- Events ---

func (c *Client) Events() ports.Resource[domain.Event] {
	return resource[domain.Event]{c, pathEvents}
}

func (c *Client) UpdateEventStatus(ctx context.Context, id string, status domain.EventStatus) error {
	body := map[string]string{"status": string(status)}
	return c.do(ctx, http.MethodPut, itemPath(pathEvents, id, "status"), nil, body, nil)
}

func (c *Client) SetEventFeatured(ctx context.Context, id string, featured bool) error {
	body := map[string]bool{"is_featured": featured}
	return c.do(ctx, http.MethodPut, itemPath(pathEvents, id, "featured"), nil, body, nil)
}

// --- Catalog ---

func (c *Client) Categories() ports.Resource[domain.Category] {
	return resource[domain.Category]{c, pathCategories}
}

func (c *Client) Pages() ports.Resource[domain.Page] {
	return resource[domain.Page]{c, pathPages}
}

func (c *Client) FormOptions() ports.Resource[domain.FormOption] {
	return resource[domain.FormOption]{c, pathFormOptions}
}

func (c *Client) Reviews() ports.Resource[domain.Review] {
	return resource[domain.Review]{c, pathReviews}
}

func (c *Client) Contacts() ports.Resource[domain.Contact] {
	return resource[domain.Contact]{c, pathContacts}
}

func (c *Client) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	return resource[domain.Setting]{c, pathSettings}.List(ctx)
}

func (c *Client) UpdateSetting(ctx context.Context, key, value string) (*domain.Setting, error) {
	out := domain.Setting{Key: key, Value: value}
	if err := c.do(ctx, http.MethodPut, itemPath(pathSettings, key), nil, map[string]string{"value": value}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ToggleFormOption(ctx context.Context, id string) (*domain.FormOption, error) {
	var out domain.FormOption
	if err := c.do(ctx, http.MethodPatch, itemPath(pathFormOptions, id, "toggle"), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateReviewStatus(ctx context.Context, id string, status domain.ReviewStatus) error {
	body := map[string]string{"status": string(status)}
	return c.do(ctx, http.MethodPut, itemPath(pathReviews, id, "status"), nil, body, nil)
}

func (c *Client) UpdateContactStatus(ctx context.Context, id string, status domain.ContactStatus) error {
	body := map[string]string{"status": string(status)}
	return c.do(ctx, http.MethodPut, itemPath(pathContacts, id, "status"), nil, body, nil)
}

func (c *Client) ReplyContact(ctx context.Context, id, reply string) error {
	body := map[string]string{"reply": reply}
	return c.do(ctx, http.MethodPost, itemPath(pathContacts, id, "reply"), nil, body, nil)
}

// --- Messaging ---

func (c *Client) SendEmail(ctx context.Context, email domain.Email) error {
	return c.do(ctx, http.MethodPost, pathSendEmail, nil, email, nil)
}

func (c *Client) SendNotification(ctx context.Context, n domain.Notification) error {
	return c.do(ctx, http.MethodPost, pathNotifications, nil, n, nil)
}

// --- Stats ---

func (c *Client) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var out domain.DashboardStats
	if err := c.do(ctx, http.MethodGet, pathStats, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Report(ctx context.Context, from, to string) (*domain.Report, error) {
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	out := domain.Report{From: from, To: to}
	if err := c.do(ctx, http.MethodGet, pathReports, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
