package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
	"github.com/MKhiriev/go-ledger-sync/models"
)

const (
	recordsPath = "/api/records/{table}"
	recordPath  = "/api/records/{table}/{localID}"
)

type httpRemoteStore struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPRemoteStore constructs the HTTP/JSON implementation of
// [RemoteStore]. The base URL is taken from adapterCfg.HTTPAddress; a
// missing scheme defaults to http.
func NewHTTPRemoteStore(adapterCfg config.ClientAdapter, logger *logger.Logger) (RemoteStore, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpRemoteStore{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpRemoteStore) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpRemoteStore) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [RemoteStore]. POST /api/auth/register.
func (h *httpRemoteStore) Register(ctx context.Context, user models.User) (models.Session, error) {
	return h.authenticate(ctx, "/api/auth/register", user)
}

// Login implements [RemoteStore]. POST /api/auth/login.
func (h *httpRemoteStore) Login(ctx context.Context, user models.User) (models.Session, error) {
	return h.authenticate(ctx, "/api/auth/login", user)
}

func (h *httpRemoteStore) authenticate(ctx context.Context, path string, user models.User) (models.Session, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post(path)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %s request: %w", ErrTransport, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}

	tokenString, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Session{}, fmt.Errorf("parse bearer token: %w", err)
	}
	token, err := utils.ParseUnverifiedToken(tokenString)
	if err != nil {
		return models.Session{}, fmt.Errorf("parse session token: %w", err)
	}

	h.SetToken(tokenString)
	return models.Session{
		UserID:    token.UserID,
		Login:     user.Login,
		Token:     tokenString,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Ping implements [RemoteStore]. GET /api/health.
func (h *httpRemoteStore) Ping(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get("/api/health")
	if err != nil {
		return fmt.Errorf("%w: ping: %w", ErrTransport, err)
	}
	return mapHTTPError(resp)
}

// FindByLocalID implements [RemoteStore]. GET /api/records/{table}/{localID}.
func (h *httpRemoteStore) FindByLocalID(ctx context.Context, table models.EntityTable, localID string) (models.RemoteRecord, error) {
	var record models.RemoteRecord

	resp, err := h.authedRequest(ctx).
		SetPathParams(map[string]string{"table": table.String(), "localID": localID}).
		SetResult(&record).
		Get(recordPath)
	if err != nil {
		return models.RemoteRecord{}, fmt.Errorf("%w: find record: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RemoteRecord{}, err
	}

	return record, nil
}

// Insert implements [RemoteStore]. POST /api/records/{table}.
func (h *httpRemoteStore) Insert(ctx context.Context, record models.RemoteRecord) (models.RemoteRecord, error) {
	var created models.RemoteRecord

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("table", record.Table.String()).
		SetBody(record).
		SetResult(&created).
		Post(recordsPath)
	if err != nil {
		return models.RemoteRecord{}, fmt.Errorf("%w: insert record: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RemoteRecord{}, err
	}

	return created, nil
}

// Update implements [RemoteStore]. PUT /api/records/{table}/{localID}.
func (h *httpRemoteStore) Update(ctx context.Context, record models.RemoteRecord) (models.RemoteRecord, error) {
	var updated models.RemoteRecord

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParams(map[string]string{"table": record.Table.String(), "localID": record.LocalID}).
		SetBody(record).
		SetResult(&updated).
		Put(recordPath)
	if err != nil {
		return models.RemoteRecord{}, fmt.Errorf("%w: update record: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RemoteRecord{}, err
	}

	return updated, nil
}

type deleteRequest struct {
	DeletedAt time.Time `json:"deleted_at"`
}

// Delete implements [RemoteStore]. DELETE /api/records/{table}/{localID}.
func (h *httpRemoteStore) Delete(ctx context.Context, table models.EntityTable, localID string, deletedAt time.Time) (models.RemoteRecord, error) {
	var deleted models.RemoteRecord

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParams(map[string]string{"table": table.String(), "localID": localID}).
		SetBody(deleteRequest{DeletedAt: deletedAt.UTC()}).
		SetResult(&deleted).
		Delete(recordPath)
	if err != nil {
		return models.RemoteRecord{}, fmt.Errorf("%w: delete record: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RemoteRecord{}, err
	}

	return deleted, nil
}

// QuerySince implements [RemoteStore]. GET /api/records/{table}?since=.
func (h *httpRemoteStore) QuerySince(ctx context.Context, table models.EntityTable, since *time.Time) ([]models.RemoteRecord, error) {
	req := h.authedRequest(ctx).SetPathParam("table", table.String())
	if since != nil {
		req.SetQueryParam("since", since.UTC().Format(time.RFC3339Nano))
	}

	resp, err := req.Get(recordsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: query records: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var records []models.RemoteRecord
	if err = json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, fmt.Errorf("decode records response: %w", err)
	}
	if records == nil {
		records = []models.RemoteRecord{}
	}

	return records, nil
}

func (h *httpRemoteStore) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// IsUnreachable reports whether err means the remote store could not be
// contacted at all, as opposed to answering with an error.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrTransport) ||
		errors.Is(err, ErrBadGateway) ||
		errors.Is(err, ErrServiceUnavailable)
}
