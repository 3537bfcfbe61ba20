package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/mock"
	"github.com/MKhiriev/go-ledger-sync/internal/service"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
	"github.com/MKhiriev/go-ledger-sync/models"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const validToken = "valid-token"

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type testServer struct {
	router  *chi.Mux
	auth    *mock.MockAuthService
	records *mock.MockRecordService
	info    *mock.MockAppInfoService
}

// newTestServer wires a Handler over gomock services and returns its router.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctrl := gomock.NewController(t)

	ts := &testServer{
		auth:    mock.NewMockAuthService(ctrl),
		records: mock.NewMockRecordService(ctrl),
		info:    mock.NewMockAppInfoService(ctrl),
	}
	h := NewHandler(&service.Services{
		AuthService:    ts.auth,
		RecordService:  ts.records,
		AppInfoService: ts.info,
	}, logger.Nop())
	ts.router = h.Init()
	return ts
}

// signedIn makes validToken resolve to ownerID.
func (ts *testServer) signedIn(ownerID int64) {
	ts.auth.EXPECT().ParseToken(gomock.Any(), validToken).Return(models.Token{UserID: ownerID}, nil).AnyTimes()
}

func (ts *testServer) do(t *testing.T, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	require.True(t, len(headers)%2 == 0, "headers come in pairs")

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for i := 0; i < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) doAuthed(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	return ts.do(t, method, target, body, "Authorization", "Bearer "+validToken)
}

func toJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body.Error
}

func sampleRecord(localID string) models.RemoteRecord {
	return models.RemoteRecord{
		Table:     models.TableTransactions,
		LocalID:   localID,
		Payload:   models.Payload{"amount": 10.0},
		CreatedAt: t0,
		UpdatedAt: t0.Add(time.Minute),
	}
}
