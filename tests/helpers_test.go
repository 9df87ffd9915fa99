package tests

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/metadb"

	"github.com/Lauren6175/arcane-vote/api/client"
	"github.com/Lauren6175/arcane-vote/crypto/ethereum"
	"github.com/Lauren6175/arcane-vote/engine"
	"github.com/Lauren6175/arcane-vote/service"
	"github.com/Lauren6175/arcane-vote/storage"
	"github.com/Lauren6175/arcane-vote/util"
)

// NewTestService starts a full service stack (storage, engine, API server,
// poll monitor) on a random port and returns the engine and the API service.
func NewTestService(t *testing.T, ctx context.Context) (*service.APIService, *engine.Engine) {
	database, err := metadb.New(db.TypePebble, filepath.Join(t.TempDir(), "db"))
	if err != nil {
		t.Fatal(err)
	}
	eng := engine.New(storage.New(database))

	tmpPort := util.RandomInt(40000, 60000)
	apiSrv := service.NewAPI(eng, "127.0.0.1", tmpPort)
	if err := apiSrv.Start(ctx); err != nil {
		t.Fatal(err)
	}
	monitor := service.NewPollMonitor(eng, 500*time.Millisecond)
	if err := monitor.Start(ctx); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(monitor.Stop)

	// Wait for the HTTP server to start
	time.Sleep(500 * time.Millisecond)
	return apiSrv, eng
}

// NewTestSigner creates and initializes a new ethereum signer for testing.
func NewTestSigner() (*ethereum.SignKeys, error) {
	signer := ethereum.NewSignKeys()
	if err := signer.Generate(); err != nil {
		return nil, err
	}
	return signer, nil
}

// NewTestClient creates a new API client for testing.
func NewTestClient(port int) (*client.HTTPclient, error) {
	return client.New(fmt.Sprintf("http://127.0.0.1:%d", port))
}
