// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

//go:build integration

package store_test

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/deepworktimer/deepworktimer/internal/store"
)

var (
	suiteCtx    context.Context
	pgContainer *tcpostgres.PostgresContainer
	connStr     string
	pg          *store.Postgres
)

var _ = BeforeSuite(func() {
	suiteCtx = context.Background()

	var err error
	pgContainer, err = tcpostgres.Run(suiteCtx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("deepwork_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2)),
	)
	Expect(err).NotTo(HaveOccurred())

	connStr, err = pgContainer.ConnectionString(suiteCtx, "sslmode=disable")
	Expect(err).NotTo(HaveOccurred())

	migrator, err := store.NewMigrator(connStr)
	Expect(err).NotTo(HaveOccurred())
	Expect(migrator.Up()).To(Succeed())
	Expect(migrator.Close()).To(Succeed())

	pg, err = store.NewPostgres(suiteCtx, connStr)
	Expect(err).NotTo(HaveOccurred())
})

var _ = AfterSuite(func() {
	if pg != nil {
		pg.Close()
	}
	if pgContainer != nil {
		Expect(pgContainer.Terminate(suiteCtx)).To(Succeed())
	}
})

func insertUser(username, email string) string {
	id := ulid.Make().String()
	now := time.Now()
	_, err := pg.Pool().Exec(suiteCtx, `
		INSERT INTO users (id, username, email, password_hash, email_verified, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, 'x', TRUE, TRUE, $4, $4)
	`, id, username, email, now)
	Expect(err).NotTo(HaveOccurred())
	return id
}

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

var _ = Describe("Postgres schema", func() {
	Describe("users", func() {
		It("rejects an account with neither password nor social identity", func() {
			_, err := pg.Pool().Exec(suiteCtx, `
				INSERT INTO users (id, username, email, email_verified, is_active, created_at, updated_at)
				VALUES ($1, 'credless', 'credless@example.com', FALSE, TRUE, NOW(), NOW())
			`, ulid.Make().String())
			Expect(err).To(HaveOccurred())
			Expect(pgErrCode(err)).To(Equal(pgerrcode.CheckViolation))
		})

		It("enforces case-insensitive username uniqueness", func() {
			insertUser("casetest", "casetest@example.com")

			_, err := pg.Pool().Exec(suiteCtx, `
				INSERT INTO users (id, username, email, password_hash, email_verified, is_active, created_at, updated_at)
				VALUES ($1, 'CaseTest', 'other@example.com', 'x', TRUE, TRUE, NOW(), NOW())
			`, ulid.Make().String())
			Expect(err).To(HaveOccurred())
			Expect(pgErrCode(err)).To(Equal(pgerrcode.UniqueViolation))
		})

		It("rejects a half-specified social identity", func() {
			_, err := pg.Pool().Exec(suiteCtx, `
				INSERT INTO users (id, username, email, password_hash, social_provider, email_verified, is_active, created_at, updated_at)
				VALUES ($1, 'halfsocial', 'halfsocial@example.com', 'x', 'google', TRUE, TRUE, NOW(), NOW())
			`, ulid.Make().String())
			Expect(err).To(HaveOccurred())
			Expect(pgErrCode(err)).To(Equal(pgerrcode.CheckViolation))
		})
	})

	Describe("selection backstop", func() {
		It("refuses a second selected row per user and kind", func() {
			userID := insertUser("selector", "selector@example.com")

			_, err := pg.Pool().Exec(suiteCtx, `
				INSERT INTO daily_goals (id, user_id, quantity, block_size, is_selected, created_at, updated_at)
				VALUES ($1, $2, 8, 25, TRUE, NOW(), NOW())
			`, ulid.Make().String(), userID)
			Expect(err).NotTo(HaveOccurred())

			_, err = pg.Pool().Exec(suiteCtx, `
				INSERT INTO daily_goals (id, user_id, quantity, block_size, is_selected, created_at, updated_at)
				VALUES ($1, $2, 4, 50, TRUE, NOW(), NOW())
			`, ulid.Make().String(), userID)
			Expect(err).To(HaveOccurred())
			Expect(pgErrCode(err)).To(Equal(pgerrcode.UniqueViolation))
		})

		It("allows one selected row per kind independently", func() {
			userID := insertUser("multikind", "multikind@example.com")

			_, err := pg.Pool().Exec(suiteCtx, `
				INSERT INTO study_categories (id, user_id, title, is_selected, created_at, updated_at)
				VALUES ($1, $2, 'math', TRUE, NOW(), NOW())
			`, ulid.Make().String(), userID)
			Expect(err).NotTo(HaveOccurred())

			_, err = pg.Pool().Exec(suiteCtx, `
				INSERT INTO session_counters (id, user_id, target, completed, is_selected, created_at, updated_at)
				VALUES ($1, $2, 10, 0, TRUE, NOW(), NOW())
			`, ulid.Make().String(), userID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("cascades entity deletion with the owning user", func() {
			userID := insertUser("cascade", "cascade@example.com")

			_, err := pg.Pool().Exec(suiteCtx, `
				INSERT INTO time_settings (id, user_id, is_countdown, is_selected, created_at, updated_at)
				VALUES ($1, $2, TRUE, FALSE, NOW(), NOW())
			`, ulid.Make().String(), userID)
			Expect(err).NotTo(HaveOccurred())

			_, err = pg.Pool().Exec(suiteCtx, `DELETE FROM users WHERE id = $1`, userID)
			Expect(err).NotTo(HaveOccurred())

			var count int
			err = pg.Pool().QueryRow(suiteCtx,
				`SELECT COUNT(*) FROM time_settings WHERE user_id = $1`, userID).Scan(&count)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})
	})

	Describe("migrator", func() {
		It("reports the applied version and nothing pending", func() {
			migrator, err := store.NewMigrator(connStr)
			Expect(err).NotTo(HaveOccurred())
			defer migrator.Close()

			version, dirty, err := migrator.Version()
			Expect(err).NotTo(HaveOccurred())
			Expect(version).To(BeNumerically(">", 0))
			Expect(dirty).To(BeFalse())

			pending, err := migrator.PendingMigrations()
			Expect(err).NotTo(HaveOccurred())
			Expect(pending).To(BeEmpty())
		})
	})
})
