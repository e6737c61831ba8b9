package services

import (
	"context"

	"github.com/ngcs-mobile/courtclient/internal/client/api"
	"github.com/ngcs-mobile/courtclient/internal/logging"
)

// DataService covers the non-auth remote reads: the app-version gate and
// the home screen unread counters.
type DataService interface {
	CheckVersion(ctx context.Context) (api.VersionInfo, error)
	Compatible(info api.VersionInfo) bool
	UnreadCounts(ctx context.Context) ([]int, error)
}

type dataService struct {
	client api.Client
	// compatibleServerVersion is the server protocol version this build
	// understands, compared against the server's minimum on startup.
	compatibleServerVersion float64
	log                     logging.Logger
}

func NewDataService(client api.Client, compatibleServerVersion float64, log logging.Logger) DataService {
	return &dataService{
		client:                  client,
		compatibleServerVersion: compatibleServerVersion,
		log:                     log.With("component", "data"),
	}
}

func (d *dataService) CheckVersion(ctx context.Context) (api.VersionInfo, error) {
	d.log.Info(ctx, "checking server version compatibility")

	info, err := d.client.GetVersion(ctx)
	if err != nil {
		d.log.Error(ctx, "version check failed", "error", err)
		return api.VersionInfo{}, err
	}

	d.log.Info(ctx, "server version check completed",
		"server_version", info.ServerVersion,
		"min_compatible_version", info.MinCompatibleServerVersion)
	return info, nil
}

func (d *dataService) Compatible(info api.VersionInfo) bool {
	return d.compatibleServerVersion >= info.MinCompatibleServerVersion
}

func (d *dataService) UnreadCounts(ctx context.Context) ([]int, error) {
	counts, err := d.client.UnreadCounts(ctx)
	if err != nil {
		d.log.Error(ctx, "failed to get unread counts", "error", err)
		return nil, err
	}
	return counts, nil
}
