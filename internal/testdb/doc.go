//go:build integration

// Package testdb provides utilities for integration tests against a real
// PostgreSQL database.
//
// Tests run inside a transaction that is rolled back when the test finishes,
// so they can run in parallel and need no cleanup:
//
//	func TestMyStore(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        userStore := postgres.NewPostgresUserStore(tx, nil)
//	        // ...
//	    })
//	}
//
// The connection string is read from MINDCREDIT_TEST_DB_URL, then DATABASE_URL.
// Tests are skipped when neither is set.
package testdb
