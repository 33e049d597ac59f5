package db

import "testing"

func TestOpen_EmptyDSN(t *testing.T) {
	db, err := Open("")
	if err == nil {
		if db != nil {
			db.Close()
		}
		t.Fatal("Open with empty DSN should return error")
	}
	if db != nil {
		t.Error("Open should return nil db when error occurs")
	}
}

func TestOpen_InvalidDSN(t *testing.T) {
	testCases := []struct {
		name string
		dsn  string
	}{
		{"not a url", "invalid-dsn"},
		{"missing scheme", "://localhost/unibook"},
		{"bare scheme", "postgres://"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, err := Open(tc.dsn)
			if err == nil {
				if db != nil {
					db.Close()
				}
				t.Errorf("Open with invalid DSN %q should return error", tc.dsn)
			}
			if db != nil {
				t.Error("Open should return nil db when error occurs")
			}
		})
	}
}
