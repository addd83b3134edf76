package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, data any, meta *Meta) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	payload := map[string]any{
		"success":    true,
		"data":       json.RawMessage(raw),
		"request_id": "req-test",
	}
	if meta != nil {
		payload["meta"] = meta
	}
	require.NoError(t, json.NewEncoder(w).Encode(payload))
}

func writeError(t *testing.T, w http.ResponseWriter, status int, code, message string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	payload := map[string]any{
		"success": false,
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
		"request_id": "req-test",
	}
	require.NoError(t, json.NewEncoder(w).Encode(payload))
}

func TestNewValidatesBaseURL(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)

	_, err = New("://bad")
	assert.Error(t, err)

	c, err := New("http://localhost:8080/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.baseURL)
	assert.NotNil(t, c.Auth)
	assert.NotNil(t, c.Finance)
	assert.NotNil(t, c.Appointments)
}

func TestLoginStoresToken(t *testing.T) {
	userID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "dra.silva", req.Identifier)

		writeEnvelope(t, w, http.StatusOK, Session{
			User: User{ID: userID, Username: "dra.silva", Role: "manager"},
			Tokens: &TokenPair{
				AccessToken:  "access-abc",
				RefreshToken: "refresh-def",
			},
		}, nil)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	session, err := c.Auth.Login(context.Background(), LoginRequest{Identifier: "dra.silva", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, userID, session.User.ID)
	assert.Equal(t, "access-abc", c.Token())
}

func TestRequestsCarryBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-abc", r.Header.Get("Authorization"))
		writeEnvelope(t, w, http.StatusOK, []Supplier{}, &Meta{Page: 1, PageSize: 20})
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithToken("access-abc"))
	require.NoError(t, err)

	_, _, err = c.Suppliers.List(context.Background(), nil)
	require.NoError(t, err)
}

func TestListReturnsMeta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/inventory/items", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("page_size"))

		items := []InventoryItem{
			{ID: uuid.New(), Quantity: decimal.NewFromInt(12)},
		}
		writeEnvelope(t, w, http.StatusOK, items, &Meta{Total: 120, Page: 2, PageSize: 50, TotalPages: 3})
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	items, meta, err := c.Inventory.ListItems(context.Background(), &ListOptions{Page: 2, PageSize: 50})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, meta)
	assert.Equal(t, int64(120), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
}

func TestErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/suppliers/" + uuid.Nil.String():
			writeError(t, w, http.StatusNotFound, "NOT_FOUND", "Supplier not found")
		case "/api/v1/clinics":
			writeError(t, w, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
		default:
			writeError(t, w, http.StatusInternalServerError, "INTERNAL_ERROR", "unexpected path")
		}
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.Suppliers.Get(context.Background(), uuid.Nil)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Equal(t, "req-test", apiErr.RequestID)

	_, err = c.Clinics.Create(context.Background(), CreateClinicRequest{Name: "Nova"})
	require.Error(t, err)
	assert.True(t, IsForbidden(err))
	assert.False(t, IsNotFound(err))
}

func TestInClinicSetsQueryParam(t *testing.T) {
	clinicID := uuid.New()
	itemID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, clinicID.String(), r.URL.Query().Get("clinic_id"))
		writeEnvelope(t, w, http.StatusOK, InventoryItem{ID: itemID, ClinicID: clinicID}, nil)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	item, err := c.Inventory.GetItem(context.Background(), itemID, InClinic(clinicID))
	require.NoError(t, err)
	assert.Equal(t, clinicID, item.ClinicID)
}

func TestAgendaSendsDateWindow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/appointments/agenda", r.URL.Path)
		assert.Equal(t, "2026-03-01", r.URL.Query().Get("from"))
		assert.Equal(t, "2026-03-07", r.URL.Query().Get("to"))
		writeEnvelope(t, w, http.StatusOK, []Appointment{{ID: uuid.New(), Status: "confirmed"}}, nil)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	from := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	appts, err := c.Appointments.Agenda(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, "confirmed", appts[0].Status)
}

func TestLogoutClearsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/logout", r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, map[string]string{"message": "logged out"}, nil)
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithToken("access-abc"))
	require.NoError(t, err)

	require.NoError(t, c.Auth.Logout(context.Background()))
	assert.Empty(t, c.Token())
}

func TestInvalidEnvelopeSurfacesAsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>upstream error</html>"))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.Catalog.GetProduct(context.Background(), uuid.New())
	require.Error(t, err)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "INVALID_RESPONSE", apiErr.Code)
}
