package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/campusmart/marketplace/internal/adapter/auth"
	"github.com/campusmart/marketplace/internal/adapter/config"
	"github.com/campusmart/marketplace/internal/adapter/metrics"
	"github.com/campusmart/marketplace/internal/adapter/storage/memory"
	"github.com/campusmart/marketplace/internal/core/domain"
	"github.com/campusmart/marketplace/internal/core/port"
	"github.com/campusmart/marketplace/internal/core/port/mock"
	"github.com/campusmart/marketplace/internal/core/service"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	router  *Router
	store   *memory.Store
	service port.Service
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	seed := []*domain.Product{
		{ID: "p1", Name: "Calculus Textbook", Price: decimal.MustParse("45.99"), Quantity: 1, Category: domain.CategoryBooks},
		{ID: "p3", Name: "University Hoodie", Price: decimal.MustParse("25.50"), Quantity: 5, Category: domain.CategoryClothing},
		{ID: "p4", Name: "Desk Lamp", Price: decimal.MustParse("18.75"), Quantity: 2, Category: domain.CategoryFurniture},
	}
	for i, p := range seed {
		p.SellerID = "seller"
		p.SellerType = domain.SellerTypeStudent
		p.CreatedAt = time.Date(2025, 1, i+1, 0, 0, 0, 0, time.UTC)
		store.SetProduct(p)
	}

	router, svc, _ := newTestRouter(t, store, 5*time.Second)
	return &testServer{router: router, store: store, service: svc}
}

// newTestRouter wires the full handler stack over repo.
func newTestRouter(t *testing.T, repo port.Repository, timeout time.Duration) (*Router, port.Service, port.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	ts, err := auth.New(nil)
	require.NoError(t, err)

	svc, err := service.NewService(repo, repo, repo, ts, nil, logger)
	require.NoError(t, err)

	oh, err := NewOrderHandler(svc, logger)
	require.NoError(t, err)
	ph, err := NewProductHandler(svc, logger)
	require.NoError(t, err)
	uh, err := NewUserHandler(svc, logger)
	require.NoError(t, err)
	ah, err := NewAdminHandler(svc, logger)
	require.NoError(t, err)

	router, err := NewRouter(&config.HTTP{RequestTimeout: timeout}, ts,
		metrics.New(prometheus.NewRegistry()), oh, ph, uh, ah, logger)
	require.NoError(t, err)

	return router, svc, ts
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(authHeaderKey, authType+" "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) register(t *testing.T, email string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Ann", "email": email, "password": "secret1", "type": "Student",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := tokenResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

type orderBody struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Items  []struct {
		Product   string      `json:"product"`
		Quantity  int         `json:"quantity"`
		UnitPrice json.Number `json:"unitPrice"`
	} `json:"items"`
	TotalAmount json.Number `json:"totalAmount"`
	Status      string      `json:"status"`
}

type errorBody struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
	Product   string `json:"product"`
	Fields    []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"fields"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	dec := json.NewDecoder(w.Body)
	dec.UseNumber()
	require.NoError(t, dec.Decode(&v))
	return v
}

func TestRouter_OrderFlow(t *testing.T) {
	s := setupServer(t)
	token := s.register(t, "ann@uni.edu")

	w := s.do(t, http.MethodPost, "/api/orders", token, map[string]any{
		"items": []map[string]any{
			{"product": "p1", "quantity": 1},
			{"product": "p4", "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	order := decode[orderBody](t, w)
	assert.NotEmpty(t, order.ID)
	assert.NotEmpty(t, order.UserID)
	assert.Equal(t, "64.74", order.TotalAmount.String())
	assert.Equal(t, "Pending", order.Status)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "p1", order.Items[0].Product)
	assert.Equal(t, "45.99", order.Items[0].UnitPrice.String())
	assert.Equal(t, "p4", order.Items[1].Product)

	w = s.do(t, http.MethodGet, "/api/orders", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]orderBody](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, order.ID, list[0].ID)

	w = s.do(t, http.MethodGet, "/api/orders/"+order.ID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	other := s.register(t, "bob@uni.edu")
	w = s.do(t, http.MethodGet, "/api/orders/"+order.ID, other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_OrderRejected(t *testing.T) {
	s := setupServer(t)
	token := s.register(t, "ann@uni.edu")

	type rejectTest struct {
		name         string
		body         any
		expStatus    int
		expRetryable bool
		expProduct   string
	}

	tests := []rejectTest{
		{
			name:         "insufficient stock",
			body:         map[string]any{"items": []map[string]any{{"product": "p3", "quantity": 10}}},
			expStatus:    http.StatusBadRequest,
			expRetryable: true,
			expProduct:   "p3",
		},
		{
			name:       "missing product",
			body:       map[string]any{"items": []map[string]any{{"product": "p99", "quantity": 1}}},
			expStatus:  http.StatusNotFound,
			expProduct: "p99",
		},
		{
			name: "valid then missing product",
			body: map[string]any{"items": []map[string]any{
				{"product": "p1", "quantity": 1},
				{"product": "p99", "quantity": 1},
			}},
			expStatus:  http.StatusNotFound,
			expProduct: "p99",
		},
		{
			name:      "empty items",
			body:      map[string]any{"items": []map[string]any{}},
			expStatus: http.StatusBadRequest,
		},
		{
			name:      "zero quantity",
			body:      map[string]any{"items": []map[string]any{{"product": "p1", "quantity": 0}}},
			expStatus: http.StatusBadRequest,
		},
		{
			name:      "broken json",
			body:      `{"items": [`,
			expStatus: http.StatusBadRequest,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/orders", token, test.body)
			require.Equal(t, test.expStatus, w.Code, w.Body.String())

			resp := decode[errorBody](t, w)
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, test.expRetryable, resp.Retryable)
			assert.Equal(t, test.expProduct, resp.Product)
		})
	}

	assert.Equal(t, 0, s.store.OrderCount())
}

func TestRouter_AuthRequired(t *testing.T) {
	s := setupServer(t)

	type authTest struct {
		name   string
		header string
	}

	tests := []authTest{
		{name: "no header", header: ""},
		{name: "wrong type", header: "Basic abc"},
		{name: "no token", header: "Bearer"},
		{name: "bad token", header: "Bearer garbage"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/orders",
				strings.NewReader(`{"items":[{"product":"p1","quantity":1}]}`))
			if test.header != "" {
				req.Header.Set(authHeaderKey, test.header)
			}
			w := httptest.NewRecorder()
			s.router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}

	assert.Equal(t, 0, s.store.OrderCount())
}

func TestRouter_Accounts(t *testing.T) {
	s := setupServer(t)
	s.register(t, "ann@uni.edu")

	w := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Ann", "email": "ann@uni.edu", "password": "secret1", "type": "Student",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "", "email": "nope", "password": "1", "type": "Student",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[errorBody](t, w)
	require.Len(t, resp.Fields, 3)
	assert.Equal(t, "email", resp.Fields[0].Field)
	assert.Equal(t, "name", resp.Fields[1].Field)
	assert.Equal(t, "password", resp.Fields[2].Field)

	w = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "ann@uni.edu", "password": "secret1",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "ann@uni.edu", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_Products(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[[]map[string]any](t, w)
	require.Len(t, all, 3)
	assert.Equal(t, "p4", all[0]["id"])

	w = s.do(t, http.MethodGet, "/api/products?category=Books", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	books := decode[[]map[string]any](t, w)
	require.Len(t, books, 1)
	assert.Equal(t, "p1", books[0]["id"])

	w = s.do(t, http.MethodGet, "/api/products?category=Toys", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/products/p3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	hoodie := decode[map[string]any](t, w)
	assert.Equal(t, json.Number("25.50"), hoodie["price"])

	w = s.do(t, http.MethodGet, "/api/products/p99", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	draft := map[string]any{
		"name":        "Mini Fridge",
		"description": "Fits under a desk",
		"price":       60.5,
		"imageUrl":    "https://example.com/fridge.png",
		"category":    "Electronics",
		"sellerType":  "Society",
		"quantity":    1,
	}

	w = s.do(t, http.MethodPost, "/api/products", "", draft)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := s.register(t, "seller@uni.edu")
	w = s.do(t, http.MethodPost, "/api/products", token, draft)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, w)
	assert.NotEmpty(t, created["id"])
	assert.NotEmpty(t, created["sellerId"])

	draft["price"] = 0
	draft["category"] = "Toys"
	w = s.do(t, http.MethodPost, "/api/products", token, draft)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[errorBody](t, w)
	assert.Len(t, resp.Fields, 2)
}

func TestRouter_Service(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	s.do(t, http.MethodGet, "/api/products", "", nil)

	w = s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "campusmart_http_requests_total")

	w = s.do(t, http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[tokenResponse](t, w).Token
}

func TestRouter_Admin(t *testing.T) {
	s := setupServer(t)
	student := s.register(t, "ann@uni.edu")

	w := s.do(t, http.MethodPost, "/api/orders", student, map[string]any{
		"items": []map[string]any{{"product": "p3", "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	for _, path := range []string{"/api/admin/orders", "/api/admin/users"} {
		w = s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)

		w = s.do(t, http.MethodGet, path, student, nil)
		require.Equal(t, http.StatusForbidden, w.Code, path)
		assert.Equal(t, domain.ErrForbidden.Error(), decode[errorBody](t, w).Error)
	}

	_, err := s.service.EnsureAdmin(context.Background(), "admin@uni.edu", "adminpass")
	require.NoError(t, err)
	admin := s.login(t, "admin@uni.edu", "adminpass")

	w = s.do(t, http.MethodGet, "/api/admin/orders", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	orders := decode[[]orderBody](t, w)
	require.Len(t, orders, 1)
	assert.Equal(t, "51.00", orders[0].TotalAmount.String())

	w = s.do(t, http.MethodGet, "/api/admin/users", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "$2a$")

	users := decode[[]map[string]any](t, w)
	require.Len(t, users, 2)
	types := []any{users[0]["type"], users[1]["type"]}
	assert.ElementsMatch(t, []any{"Student", "Admin"}, types)
}

func TestRouter_StoreUnavailable(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	repo := mock.NewMockRepository(mockCtrl)
	router, _, ts := newTestRouter(t, repo, 5*time.Second)
	s := &testServer{router: router}

	token, err := ts.CreateToken(&domain.User{ID: "u1"})
	require.NoError(t, err)

	repo.EXPECT().GetProduct(gomock.Any(), "p1").
		Return(nil, errors.New("dial tcp 10.0.0.7:5432: connection refused"))

	w := s.do(t, http.MethodPost, "/api/orders", token, map[string]any{
		"items": []map[string]any{{"product": "p1", "quantity": 1}},
	})
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "connection")
	assert.NotContains(t, w.Body.String(), "5432")

	resp := decode[errorBody](t, w)
	assert.Equal(t, domain.ErrStoreUnavailable.Error(), resp.Error)
	assert.True(t, resp.Retryable)
	assert.Empty(t, resp.Product)
}

func TestRouter_RequestTimeout(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	repo := mock.NewMockRepository(mockCtrl)
	router, _, ts := newTestRouter(t, repo, 20*time.Millisecond)
	s := &testServer{router: router}

	token, err := ts.CreateToken(&domain.User{ID: "u1"})
	require.NoError(t, err)

	// the store hangs until the request deadline passes; CreateOrder is never expected
	repo.EXPECT().GetProduct(gomock.Any(), "p1").
		DoAndReturn(func(ctx context.Context, _ string) (*domain.Product, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	w := s.do(t, http.MethodPost, "/api/orders", token, map[string]any{
		"items": []map[string]any{{"product": "p1", "quantity": 1}},
	})
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	resp := decode[errorBody](t, w)
	assert.Equal(t, domain.ErrStoreUnavailable.Error(), resp.Error)
	assert.True(t, resp.Retryable)
}
