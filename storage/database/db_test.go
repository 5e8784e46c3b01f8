package database

import (
	"database/sql"
	"database/sql/driver"
	"io"
	"sync"
	"testing"

	"github.com/jltacademy/backend/core"
)

// countingDriver records connection opens and closes so tests can assert
// that every handle opened during setup is closed again.
type countingDriver struct {
	mu     sync.Mutex
	opened int
	closed int
}

func (d *countingDriver) Open(string) (driver.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.opened++
	return &countingConn{drv: d}, nil
}

type countingConn struct {
	drv *countingDriver
}

func (c *countingConn) Prepare(string) (driver.Stmt, error) { return stubStmt{}, nil }
func (c *countingConn) Begin() (driver.Tx, error)           { return nil, driver.ErrSkip }

func (c *countingConn) Close() error {
	c.drv.mu.Lock()
	defer c.drv.mu.Unlock()
	c.drv.closed++
	return nil
}

type stubStmt struct{}

func (stubStmt) Close() error                               { return nil }
func (stubStmt) NumInput() int                              { return 0 }
func (stubStmt) Exec([]driver.Value) (driver.Result, error) { return driver.RowsAffected(0), nil }
func (stubStmt) Query([]driver.Value) (driver.Rows, error)  { return noRows{}, nil }

type noRows struct{}

func (noRows) Columns() []string         { return nil }
func (noRows) Close() error              { return nil }
func (noRows) Next([]driver.Value) error { return io.EOF }

var countingDrv = &countingDriver{}

func init() {
	sql.Register("countingdb", countingDrv)
}

func TestCreateIfNotExist_closesConnections(t *testing.T) {
	conf := &core.Config{
		Database: core.DatabaseConfig{
			Engine:     "countingdb",
			Name:       "jltacademy",
			DisableTLS: true,
		},
	}

	if err := CreateIfNotExist(conf); err != nil {
		t.Fatalf("CreateIfNotExist() failed: %v", err)
	}

	countingDrv.mu.Lock()
	defer countingDrv.mu.Unlock()
	if countingDrv.opened == 0 {
		t.Fatal("no connections opened")
	}
	if countingDrv.closed != countingDrv.opened {
		t.Errorf("opened %d connections, closed %d", countingDrv.opened, countingDrv.closed)
	}
}
