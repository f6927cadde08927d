package migrator

import (
	"testing"
	"testing/fstest"
)

func TestRunMigrations_BadURL(t *testing.T) {
	files := fstest.MapFS{}
	if err := RunMigrations("postgres://nobody@127.0.0.1:1/none?connect_timeout=1", files); err == nil {
		t.Fatal("expected error for unreachable database")
	}
}
