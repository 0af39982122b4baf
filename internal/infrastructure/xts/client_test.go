package xts

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Config Tests
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"valid", Config{Endpoint: "https://erp.example.vn/hs/xts"}, false},
		{"missing endpoint", Config{}, true},
		{"relative endpoint", Config{Endpoint: "/hs/xts"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 30*time.Second, tt.config.Timeout)
			assert.NotEmpty(t, tt.config.UserAgent)
		})
	}

	var missing Config
	assert.ErrorIs(t, missing.Validate(), ErrConfigMissingEndpoint)
}

// ---------------------------------------------------------------------------
// Call Tests
// ---------------------------------------------------------------------------

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(Config{Endpoint: srv.URL, InfoBase: "drive"}, opts...)
	require.NoError(t, err)
	return c
}

func TestClient_Call_ListRequestEnvelope(t *testing.T) {
	var body map[string]any
	var user, pass string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json; charset=utf-8", r.Header.Get("Content-Type"))
		user, pass, _ = r.BasicAuth()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = io.WriteString(w, `{"_type":"XTSGetObjectListResponse","dataType":"Orders","objectList":[{"number":"1"}],"total":41}`)
	})

	req := NewGetObjectListRequest("Orders", 20, 20)
	req.Conditions = []Condition{{Property: "customer", ComparisonOperator: "=", Value: NewObjectID("Counterparties", "c1", "ACME")}}
	req.SortBy = []SortBy{{DataField: "date", Direction: SortDescending}}

	ctx := WithCredentials(context.Background(), "admin", "secret")
	var resp GetObjectListResponse
	require.NoError(t, c.Call(ctx, req, &resp))

	assert.Equal(t, "admin", user)
	assert.Equal(t, "secret", pass)
	assert.Equal(t, "XTSGetObjectListRequest", body["_type"])
	assert.Equal(t, "drive", body["_dbId"])
	assert.Equal(t, "Orders", body["dataType"])
	assert.EqualValues(t, 20, body["positionFrom"])
	assert.EqualValues(t, 39, body["positionTo"])
	assert.EqualValues(t, 20, body["limit"])

	cond := body["conditions"].([]any)[0].(map[string]any)
	assert.Equal(t, "XTSCondition", cond["_type"])
	assert.Equal(t, "=", cond["comparisonOperator"])
	value := cond["value"].(map[string]any)
	assert.Equal(t, "XTSObjectId", value["_type"])
	assert.Equal(t, "c1", value["id"])

	sort := body["sortBy"].([]any)[0].(map[string]any)
	assert.Equal(t, "XTSSortBy", sort["_type"])
	assert.Equal(t, "DESC", sort["direction"])

	assert.EqualValues(t, 41, resp.Total)
	assert.Len(t, resp.ObjectList, 1)
}

func TestClient_Call_SignInUsesBodyCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "thu", user)
		assert.Equal(t, "pw", pass)
		_, _ = io.WriteString(w, `{"_type":"XTSSignInResponse","user":{"_type":"XTSObjectId","dataType":"Users","id":"u1","presentation":"Thu"},"defaultValues":{"currency":{"_type":"XTSObjectId","dataType":"Currencies","id":"vnd","presentation":"VND"},"warehouse":null}}`)
	})

	var resp SignInResponse
	require.NoError(t, c.Call(context.Background(), &SignInRequest{UserName: "thu", Password: "pw"}, &resp))
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, "VND", resp.DefaultValues.Currency.Presentation)
	assert.True(t, resp.DefaultValues.Warehouse.IsZero())
}

func TestClient_Call_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		check   func(t *testing.T, err error)
	}{
		{"unauthorized", http.StatusUnauthorized, "", ErrUnauthorized, nil},
		{"forbidden", http.StatusForbidden, "", ErrUnauthorized, nil},
		{
			name:    "server error with envelope",
			status:  http.StatusInternalServerError,
			body:    `{"_type":"XTSErrorResponse","errorCode":"E42","description":"Số lượng không hợp lệ"}`,
			wantErr: ErrRequestFailed,
			check: func(t *testing.T, err error) {
				var remote *RemoteError
				require.ErrorAs(t, err, &remote)
				assert.Equal(t, "E42", remote.Code)
				assert.Equal(t, "Số lượng không hợp lệ", remote.Description)
				assert.Equal(t, http.StatusInternalServerError, remote.StatusCode)
			},
		},
		{"server error plain", http.StatusBadGateway, "gateway down", ErrRequestFailed, nil},
		{"error envelope with 200", http.StatusOK, `{"_type":"XTSErrorResponse","description":"locked"}`, ErrRequestFailed, nil},
		{"wrong type", http.StatusOK, `{"_type":"XTSSignInResponse"}`, ErrInvalidResponse, nil},
		{"not json", http.StatusOK, `<html>`, ErrInvalidResponse, nil},
		{"missing type", http.StatusOK, `{"objectList":[]}`, ErrInvalidResponse, nil},
		{"empty object", http.StatusOK, `{}`, ErrInvalidResponse, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			err := c.Call(context.Background(), &GetObjectsRequest{}, &ObjectsResponse{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}
}

func TestClient_Call_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	c, err := NewClient(Config{Endpoint: endpoint})
	require.NoError(t, err)
	err = c.Call(context.Background(), &GetObjectsRequest{}, nil)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.True(t, IsUnavailable(err))
}

func TestClient_Ping(t *testing.T) {
	var method string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
	require.NoError(t, c.Ping(context.Background()))
	assert.Equal(t, http.MethodHead, method)

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	endpoint := srv.URL
	srv.Close()
	down, err := NewClient(Config{Endpoint: endpoint})
	require.NoError(t, err)
	assert.ErrorIs(t, down.Ping(context.Background()), ErrUnavailable)
}

func TestClient_Call_ResponseTooLarge(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"_type":"XTSGetObjectsResponse","pad":"`)
		_, _ = io.WriteString(w, strings.Repeat("x", maxResponseSize))
		_, _ = io.WriteString(w, `"}`)
	})
	err := c.Call(context.Background(), &GetObjectsRequest{}, &ObjectsResponse{})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Call_NoRetry(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	err := c.Call(context.Background(), &GetObjectsRequest{}, nil)
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Equal(t, 1, calls)
}

func TestClient_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"_type":"XTSGetObjectsResponse","objectList":[]}`)
	}, WithMetrics(m))

	require.NoError(t, c.Call(context.Background(), &GetObjectsRequest{}, nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(TypeGetObjectsRequest, "ok")))

	_, err = NewMetrics(reg)
	assert.Error(t, err, "duplicate registration must fail")
}
