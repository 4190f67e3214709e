package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/ports"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL + "/api"}, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func TestNew_RejectsInvalidBaseURL(t *testing.T) {
	_, err := New(Config{BaseURL: "not a url"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestListUsers_UnwrapsEnvelopeAndSendsBearer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/users", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"success":true,"message":"ok","data":[
			{"id":1,"name":"Asha Sharma","mobile":9876543210},
			{"id":"2","name":"Ravi Kumar"}
		]}`)
	})

	users, err := c.ListUsers(ports.WithToken(context.Background(), "tok-1"))
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, domain.FlexString("1"), users[0].ID)
	assert.Equal(t, domain.FlexString("9876543210"), users[0].Mobile)
	assert.Equal(t, "Ravi Kumar", users[1].Name)
}

func TestListUsers_WrappedListPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"data":{"users":[{"id":7,"name":"A"}],"pagination":{"total":1}}}`)
	})

	users, err := c.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, domain.FlexString("7"), users[0].ID)
}

func TestListUsers_WrappedPayloadPrefersCollectionKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"data":{
			"skills":[{"id":99,"name":"First aid"}],
			"users":[{"id":7,"name":"A"},{"id":8,"name":"B"}]
		}}`)
	})

	for range 20 {
		users, err := c.ListUsers(context.Background())
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, domain.FlexString("7"), users[0].ID)
	}
}

func TestDecode_WrappedPayloadFallsBackToItems(t *testing.T) {
	var out []domain.Category
	raw := []byte(`{"success":true,"data":{"tags":[{"id":1}],"items":[{"id":2,"name":"Health"}]}}`)

	require.NoError(t, decode(raw, http.StatusOK, "categories", &out))
	require.Len(t, out, 1)
	assert.Equal(t, domain.FlexString("2"), out[0].ID)
}

func TestItemPaths_RejectDotSegmentIDs(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = io.WriteString(w, `{"success":true}`)
	})

	for _, id := range []string{"..", ".", ""} {
		assert.ErrorIs(t, c.DeleteUser(context.Background(), id), domain.ErrValidation, "id %q", id)
		assert.ErrorIs(t, c.Categories().Delete(context.Background(), id), domain.ErrValidation, "id %q", id)
		assert.ErrorIs(t, c.UpdateUserStatus(context.Background(), id, domain.UserActive), domain.ErrValidation, "id %q", id)
	}
	assert.Zero(t, calls, "no request may leave the client")
}

func TestDo_ErrorStatusCarriesAPIMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"success":false,"message":"User not found"}`)
	})

	_, err := c.GetUser(context.Background(), "42")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.True(t, IsAPIError(err, http.StatusNotFound))
	assert.Equal(t, "User not found", err.Error())
}

func TestDo_SuccessFalseIsAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":false,"message":"Email service unavailable"}`)
	})

	err := c.SendEmail(context.Background(), domain.Email{To: "a@b.c", Subject: "s", Body: "b"})
	require.Error(t, err)
	assert.Equal(t, "Email service unavailable", err.Error())
}

func TestDo_ServerErrorWithoutBodyFallsBackToStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := c.DeleteUser(context.Background(), "1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Contains(t, apiErr.Message, "502")
}

func TestUpdateApproval_SendsDecision(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/admin/users/5/approval", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "rejected", body["approval_status"])
		assert.Equal(t, "missing documents", body["admin_comments"])
		_, _ = io.WriteString(w, `{"success":true,"data":{"id":5,"email":"u@x.org","approval_status":"rejected"}}`)
	})

	u, err := c.UpdateApproval(context.Background(), "5", domain.ApprovalRejected, "missing documents")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, domain.ApprovalRejected, u.ApprovalStatus)
}

func TestUpdateApproval_NoEchoReturnsNilUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"message":"updated"}`)
	})

	u, err := c.UpdateApproval(context.Background(), "5", domain.ApprovalApproved, "")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestLogin_DefaultsRole(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"success":true,"data":{"token":"abc","admin":{"id":1,"email":"root@share2care.org"}}}`)
	})

	token, admin, err := c.Login(context.Background(), "root@share2care.org", "pw")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
}

func TestLogin_MissingTokenIsInvalidCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"data":{}}`)
	})

	_, _, err := c.Login(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestResource_CreateAndUpdatePaths(t *testing.T) {
	var seen []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		_, _ = io.WriteString(w, `{"success":true,"data":{"id":3,"name":"Health"}}`)
	})

	cat := &domain.Category{Name: "Health"}
	created, err := c.Categories().Create(context.Background(), cat)
	require.NoError(t, err)
	assert.Equal(t, domain.FlexString("3"), created.ID)

	_, err = c.Categories().Update(context.Background(), "3", cat)
	require.NoError(t, err)

	assert.Equal(t, []string{"POST /api/admin/categories", "PUT /api/admin/categories/3"}, seen)
}

func TestReport_SendsRange(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("from"))
		assert.Equal(t, "2024-01-31", r.URL.Query().Get("to"))
		_, _ = io.WriteString(w, `{"success":true,"data":{"registrations":12}}`)
	})

	rep, err := c.Report(context.Background(), "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, 12, rep.Registrations)
	assert.Equal(t, "2024-01-01", rep.From)
}

func TestDo_CancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"data":[]}`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListUsers(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
