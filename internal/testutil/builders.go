package testutil

import (
	"context"
	"database/sql"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Fixture rows shared by repository and HTTP integration tests.
const (
	FixtureCompany1 = "c1"
	FixtureCompany2 = "c2"
	FixtureUser1    = "u1"
	FixtureUser2    = "u2"
	// FixturePassword is the plain-text password of every fixture user.
	FixturePassword = "password1"
)

// Fixtures holds the generated ids of the seeded jobs, ordered as inserted.
type Fixtures struct {
	JobIDs []int
}

// SeedFixtures inserts two companies, three jobs and two users (u1 is an admin).
func SeedFixtures(t TestingTB, db *sql.DB) Fixtures {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, `
		INSERT INTO companies (handle, name, num_employees, description, logo_url)
		VALUES ('c1', 'C1', 1, 'Desc1', 'http://c1.img'),
		       ('c2', 'C2', 2, 'Desc2', 'http://c2.img')`); err != nil {
		t.Fatalf("seed companies: %v", err)
	}

	var fx Fixtures
	rows, err := db.QueryContext(ctx, `
		INSERT INTO jobs (title, salary, equity, company_handle)
		VALUES ('Job1', 100, '0.1', 'c1'),
		       ('Job2', 200, '0.2', 'c1'),
		       ('Job3', 300, '0', 'c2')
		RETURNING id`)
	if err != nil {
		t.Fatalf("seed jobs: %v", err)
	}
	for rows.Next() {
		var id int
		if scanErr := rows.Scan(&id); scanErr != nil {
			t.Fatalf("scan job id: %v", scanErr)
		}
		fx.JobIDs = append(fx.JobIDs, id)
	}
	if closeErr := rows.Close(); closeErr != nil {
		t.Logf("warning: failed to close seed rows: %v", closeErr)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(FixturePassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash fixture password: %v", err)
	}
	if _, err := db.ExecContext(ctx, `
		INSERT INTO users (username, password, first_name, last_name, email, is_admin)
		VALUES ('u1', $1, 'U1F', 'U1L', 'u1@email.com', TRUE),
		       ('u2', $1, 'U2F', 'U2L', 'u2@email.com', FALSE)`, string(hash)); err != nil {
		t.Fatalf("seed users: %v", err)
	}
	return fx
}
