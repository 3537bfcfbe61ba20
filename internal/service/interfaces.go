package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-ledger-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService registers and authenticates owners of the remote store.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// RecordService serves the record API of the remote store. The owner is taken
// from the request context.
type RecordService interface {
	Get(ctx context.Context, table models.EntityTable, localID string) (models.RemoteRecord, error)
	Insert(ctx context.Context, record models.RemoteRecord) (models.RemoteRecord, error)
	Update(ctx context.Context, record models.RemoteRecord) (models.RemoteRecord, error)
	Delete(ctx context.Context, table models.EntityTable, localID string, deletedAt time.Time) (models.RemoteRecord, error)
	ListSince(ctx context.Context, table models.EntityTable, since *time.Time) ([]models.RemoteRecord, error)
}

// AppInfoService reports build metadata of the running binary.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.AppBuildInfo
}
