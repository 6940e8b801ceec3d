package store_test

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/idrsdev/agile-task/core/db/sqlc"
	"github.com/idrsdev/agile-task/internal/model"
	"github.com/idrsdev/agile-task/internal/store"
)

var _ = Describe("Stores", func() {
	var (
		ctx    context.Context
		db     *fakeDBTX
		stores *store.Stores
	)

	BeforeEach(func() {
		ctx = context.Background()
		db = &fakeDBTX{}
		stores = store.NewStores(sqlc.New(db))
	})

	Describe("error mapping", func() {
		It("maps no rows to ErrNotFound", func() {
			_, err := stores.Workspaces().GetByID(ctx, 1)

			Expect(err).To(MatchError(store.ErrNotFound))
		})

		It("maps unique violations to ErrDuplicate", func() {
			db.scanFn = func(...any) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
			}

			err := stores.Users().Create(ctx, &model.User{ID: 1, Name: "Ada", Email: "ada@example.com"})

			Expect(err).To(MatchError(store.ErrDuplicate))
		})

		It("passes other errors through", func() {
			boom := errors.New("connection reset")
			db.scanFn = func(...any) error { return boom }

			_, err := stores.Users().GetByID(ctx, 1)

			Expect(err).To(MatchError(boom))
			Expect(err).NotTo(MatchError(store.ErrNotFound))
		})

		It("stores no password hash for sso users", func() {
			db.scanFn = func(...any) error { return pgx.ErrNoRows }
			workosID := "user_01"

			_ = stores.Users().Create(ctx, &model.User{ID: 1, Name: "Sso", Email: "sso@example.com", WorkOSID: &workosID})

			Expect(db.lastArgs).To(HaveLen(6))
			Expect(db.lastArgs[3]).To(BeNil())
		})
	})

	Describe("workspace membership", func() {
		It("reports a new member", func() {
			db.execTag = "INSERT 0 1"

			added, err := stores.Workspaces().AddMember(ctx, 1, 2)

			Expect(err).NotTo(HaveOccurred())
			Expect(added).To(BeTrue())
		})

		It("reports an existing member", func() {
			db.execTag = "INSERT 0 0"

			added, err := stores.Workspaces().AddMember(ctx, 1, 2)

			Expect(err).NotTo(HaveOccurred())
			Expect(added).To(BeFalse())
		})

		It("maps a missing workspace on insert to ErrNotFound", func() {
			db.execErr = &pgconn.PgError{Code: "23503", ConstraintName: "workspace_members_workspace_id_fkey"}

			added, err := stores.Workspaces().AddMember(ctx, 1, 2)

			Expect(err).To(MatchError(store.ErrNotFound))
			Expect(added).To(BeFalse())
		})

		It("reports removing a non-member", func() {
			db.execTag = "DELETE 0"

			removed, err := stores.Workspaces().RemoveMember(ctx, 1, 2)

			Expect(err).NotTo(HaveOccurred())
			Expect(removed).To(BeFalse())
		})

		It("reads the membership flag", func() {
			db.scanFn = func(dest ...any) error {
				*(dest[0].(*bool)) = true
				return nil
			}

			member, err := stores.Workspaces().IsMember(ctx, 1, 2)

			Expect(err).NotTo(HaveOccurred())
			Expect(member).To(BeTrue())
		})
	})

	Describe("workspace listing", func() {
		It("sends an offset that does not wrap for large pages", func() {
			_, _, _ = stores.Workspaces().List(ctx, model.PageRequest{Page: 30_000_000, Limit: 100})

			Expect(db.lastArgs).To(Equal([]any{int32(100), int64(2_999_999_900)}))
		})

		It("offsets creator listings by whole pages", func() {
			_, _, _ = stores.Workspaces().ListByCreator(ctx, 7, model.PageRequest{Page: 3, Limit: 10})

			Expect(db.lastArgs).To(Equal([]any{int64(7), int32(10), int64(20)}))
		})
	})

	Describe("workspace deletion", func() {
		It("returns ErrNotFound when nothing was deleted", func() {
			db.execTag = "DELETE 0"

			Expect(stores.Workspaces().Delete(ctx, 1)).To(MatchError(store.ErrNotFound))
		})

		It("succeeds when a row was deleted", func() {
			db.execTag = "DELETE 1"

			Expect(stores.Workspaces().Delete(ctx, 1)).To(Succeed())
		})
	})

	Describe("role revocation", func() {
		It("reports whether the role was held", func() {
			db.execTag = "DELETE 1"
			revoked, err := stores.Roles().Revoke(ctx, 1, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(revoked).To(BeTrue())

			db.execTag = "DELETE 0"
			revoked, err = stores.Roles().Revoke(ctx, 1, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(revoked).To(BeFalse())
		})
	})

	Describe("workspace event logs", func() {
		It("reports a redelivered message as not inserted", func() {
			db.execTag = "INSERT 0 0"

			inserted, err := stores.WorkspaceEventLogs().Create(ctx, &model.WorkspaceEventLog{
				ID:          1,
				WorkspaceID: 2,
				ActorID:     3,
				EventType:   model.WorkspaceEventCreated,
				MessageID:   "1700000000000-0",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(inserted).To(BeFalse())
		})
	})
})
