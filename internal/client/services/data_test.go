package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ngcs-mobile/courtclient/internal/client/api"
	"github.com/ngcs-mobile/courtclient/internal/common"
	"github.com/stretchr/testify/require"
)

func TestCheckVersion(t *testing.T) {
	client := &fakeAPIClient{GetVersionRet: api.VersionInfo{
		ServerVersion:              "2.4.1",
		MinCompatibleServerVersion: 2,
	}}
	svc := NewDataService(client, 2, testLogger())

	info, err := svc.CheckVersion(context.Background())
	require.NoError(t, err)
	require.Equal(t, "2.4.1", info.ServerVersion)
}

func TestCheckVersion_FaultPropagates(t *testing.T) {
	client := &fakeAPIClient{GetVersionErr: &api.StatusError{Code: 0, Endpoint: "x"}}
	svc := NewDataService(client, 2, testLogger())

	_, err := svc.CheckVersion(context.Background())
	require.ErrorIs(t, err, common.ErrNoNetwork)
}

func TestCompatible(t *testing.T) {
	svc := NewDataService(&fakeAPIClient{}, 2, testLogger())

	require.True(t, svc.Compatible(api.VersionInfo{MinCompatibleServerVersion: 1}))
	require.True(t, svc.Compatible(api.VersionInfo{MinCompatibleServerVersion: 2}))
	require.False(t, svc.Compatible(api.VersionInfo{MinCompatibleServerVersion: 3}))
}

func TestUnreadCounts(t *testing.T) {
	client := &fakeAPIClient{UnreadRet: []int{1, 2}}
	svc := NewDataService(client, 2, testLogger())

	counts, err := svc.UnreadCounts(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, counts)

	client.UnreadErr = errors.New("boom")
	_, err = svc.UnreadCounts(context.Background())
	require.Error(t, err)
}
