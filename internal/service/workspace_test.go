package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/idrsdev/agile-task/core/config"
	"github.com/idrsdev/agile-task/internal/model"
	"github.com/idrsdev/agile-task/internal/service"
	"github.com/idrsdev/agile-task/internal/store"
)

var _ = Describe("WorkspaceService", func() {
	var (
		ctx       context.Context
		db        *memDB
		publisher *recordingPublisher
		svc       service.WorkspaceService
	)

	const (
		owner    int64 = 7
		member   int64 = 8
		outsider int64 = 9
	)

	BeforeEach(func() {
		ctx = context.Background()
		db = newMemDB()
		publisher = &recordingPublisher{}
		svc = service.NewWorkspaceService(
			db.Workspaces(),
			db.Users(),
			db.WorkspaceEventLogs(),
			publisher,
			config.PagingConfig{DefaultLimit: 10, MaxLimit: 100},
		)
		for _, u := range []int64{owner, member, outsider} {
			db.addUser(model.User{ID: u, Name: fmt.Sprintf("user-%d", u), Email: fmt.Sprintf("u%d@example.com", u)})
		}
	})

	seed := func(wsID, creator int64) {
		db.addWorkspace(model.Workspace{ID: wsID, Name: fmt.Sprintf("ws-%d", wsID), CreatorID: creator})
	}

	memberIDs := func(wsID int64) []int64 {
		users, err := svc.ListMembers(ctx, wsID, owner)
		Expect(err).NotTo(HaveOccurred())
		ids := make([]int64, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		return ids
	}

	Describe("Create", func() {
		It("stores a workspace owned by the caller", func() {
			ws, err := svc.Create(ctx, "Acme", owner)

			Expect(err).NotTo(HaveOccurred())
			Expect(ws.ID).To(BeNumerically(">", 0))
			Expect(ws.Name).To(Equal("Acme"))
			Expect(ws.CreatorID).To(Equal(owner))
			Expect(publisher.types()).To(Equal([]model.WorkspaceEventType{model.WorkspaceEventCreated}))

			page, err := svc.ListCreatedBy(ctx, owner, model.PageRequest{})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(1))
			Expect(page.Items[0].ID).To(Equal(ws.ID))
		})

		It("trims the name", func() {
			ws, err := svc.Create(ctx, "  Acme  ", owner)

			Expect(err).NotTo(HaveOccurred())
			Expect(ws.Name).To(Equal("Acme"))
		})

		DescribeTable("rejects invalid names",
			func(name string) {
				_, err := svc.Create(ctx, name, owner)
				Expect(err).To(MatchError(service.ErrValidation))
			},
			Entry("empty", ""),
			Entry("whitespace", "   \t"),
			Entry("too long", strings.Repeat("x", 256)),
		)

		It("succeeds even when publishing fails", func() {
			publisher.err = errors.New("redis down")

			_, err := svc.Create(ctx, "Acme", owner)

			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Get", func() {
		BeforeEach(func() {
			seed(1, owner)
			_, err := svc.AddMember(ctx, 1, member, owner)
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns the detail to the creator", func() {
			detail, err := svc.Get(ctx, 1, owner)

			Expect(err).NotTo(HaveOccurred())
			Expect(detail.Owner.ID).To(Equal(owner))
			Expect(detail.Members).To(HaveLen(1))
			Expect(detail.Members[0].ID).To(Equal(member))
		})

		It("returns the detail to a member", func() {
			_, err := svc.Get(ctx, 1, member)

			Expect(err).NotTo(HaveOccurred())
		})

		It("forbids an outsider", func() {
			_, err := svc.Get(ctx, 1, outsider)

			Expect(err).To(MatchError(service.ErrForbidden))
		})

		It("returns not found for an unknown workspace", func() {
			_, err := svc.Get(ctx, 404, owner)

			Expect(err).To(MatchError(service.ErrWorkspaceNotFound))
		})

		It("tolerates a missing owner row", func() {
			seed(2, 12345)
			_, err := svc.AddMember(ctx, 2, member, 12345)
			Expect(err).NotTo(HaveOccurred())

			detail, err := svc.Get(ctx, 2, member)

			Expect(err).NotTo(HaveOccurred())
			Expect(detail.Owner).To(BeNil())
		})

		It("wraps unexpected store errors", func() {
			db.failNext = errors.New("connection reset")

			_, err := svc.Get(ctx, 1, owner)

			Expect(err).To(HaveOccurred())
			Expect(err).NotTo(MatchError(service.ErrWorkspaceNotFound))
		})
	})

	Describe("Update", func() {
		BeforeEach(func() { seed(1, owner) })

		It("renames for the creator", func() {
			name := "Renamed"
			ws, err := svc.Update(ctx, 1, owner, model.WorkspaceUpdate{Name: &name})

			Expect(err).NotTo(HaveOccurred())
			Expect(ws.Name).To(Equal("Renamed"))
		})

		It("returns not found for an unknown workspace", func() {
			name := "Renamed"
			_, err := svc.Update(ctx, 404, owner, model.WorkspaceUpdate{Name: &name})

			Expect(err).To(MatchError(service.ErrWorkspaceNotFound))
			Expect(publisher.types()).To(BeEmpty())
		})

		It("leaves the name alone when absent", func() {
			ws, err := svc.Update(ctx, 1, owner, model.WorkspaceUpdate{})

			Expect(err).NotTo(HaveOccurred())
			Expect(ws.Name).To(Equal("ws-1"))
		})

		It("forbids anyone but the creator", func() {
			_, err := svc.AddMember(ctx, 1, member, owner)
			Expect(err).NotTo(HaveOccurred())

			name := "Hijacked"
			_, err = svc.Update(ctx, 1, member, model.WorkspaceUpdate{Name: &name})

			Expect(err).To(MatchError(service.ErrForbidden))
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() { seed(1, owner) })

		It("forbids a non-creator and keeps the workspace", func() {
			err := svc.Delete(ctx, 1, outsider)

			Expect(err).To(MatchError(service.ErrForbidden))
			_, err = svc.Get(ctx, 1, owner)
			Expect(err).NotTo(HaveOccurred())
		})

		It("removes the workspace for the creator", func() {
			Expect(svc.Delete(ctx, 1, owner)).To(Succeed())

			_, err := svc.Get(ctx, 1, owner)
			Expect(err).To(MatchError(service.ErrWorkspaceNotFound))
			Expect(publisher.types()).To(ContainElement(model.WorkspaceEventDeleted))
		})

		It("returns not found for an unknown workspace", func() {
			Expect(svc.Delete(ctx, 404, owner)).To(MatchError(service.ErrWorkspaceNotFound))
		})
	})

	Describe("membership", func() {
		BeforeEach(func() { seed(1, owner) })

		It("adds and then removes a member", func() {
			change, err := svc.AddMember(ctx, 1, member, owner)
			Expect(err).NotTo(HaveOccurred())
			Expect(change.MemberID).To(Equal(member))

			page, err := svc.ListMemberOf(ctx, member, model.PageRequest{})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(Equal(int64(1)))

			_, err = svc.RemoveMember(ctx, 1, member, owner)
			Expect(err).NotTo(HaveOccurred())

			page, err = svc.ListMemberOf(ctx, member, model.PageRequest{})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(BeEmpty())

			Expect(publisher.types()).To(Equal([]model.WorkspaceEventType{
				model.WorkspaceEventMemberAdded,
				model.WorkspaceEventMemberRemoved,
			}))
		})

		It("rejects a duplicate add", func() {
			_, err := svc.AddMember(ctx, 1, member, owner)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.AddMember(ctx, 1, member, owner)
			Expect(err).To(MatchError(service.ErrAlreadyMember))
			Expect(memberIDs(1)).To(Equal([]int64{member}))
			Expect(publisher.types()).To(Equal([]model.WorkspaceEventType{model.WorkspaceEventMemberAdded}))
		})

		It("rejects adding the creator", func() {
			_, err := svc.AddMember(ctx, 1, owner, owner)

			Expect(err).To(MatchError(service.ErrValidation))
		})

		It("rejects an unknown user", func() {
			_, err := svc.AddMember(ctx, 1, 555, owner)

			Expect(err).To(MatchError(service.ErrUserNotFound))
		})

		It("only lets the creator manage members", func() {
			_, err := svc.AddMember(ctx, 1, member, owner)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.AddMember(ctx, 1, outsider, member)
			Expect(err).To(MatchError(service.ErrForbidden))
			Expect(memberIDs(1)).To(Equal([]int64{member}))

			_, err = svc.RemoveMember(ctx, 1, member, member)
			Expect(err).To(MatchError(service.ErrForbidden))
			Expect(memberIDs(1)).To(Equal([]int64{member}))
		})

		It("reports removing a non-member", func() {
			_, err := svc.AddMember(ctx, 1, member, owner)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.RemoveMember(ctx, 1, outsider, owner)

			Expect(err).To(MatchError(service.ErrNotMember))
			Expect(memberIDs(1)).To(Equal([]int64{member}))
			Expect(publisher.types()).To(Equal([]model.WorkspaceEventType{model.WorkspaceEventMemberAdded}))
		})

		It("reports a workspace deleted while adding a member as not found", func() {
			db.addMemberErr = store.ErrNotFound

			_, err := svc.AddMember(ctx, 1, member, owner)

			Expect(err).To(MatchError(service.ErrWorkspaceNotFound))
			Expect(publisher.types()).To(BeEmpty())
		})

		It("checks the workspace before the target user", func() {
			_, err := svc.AddMember(ctx, 404, 555, owner)

			Expect(err).To(MatchError(service.ErrWorkspaceNotFound))
		})

		It("lists members only for the creator and members", func() {
			_, err := svc.AddMember(ctx, 1, member, owner)
			Expect(err).NotTo(HaveOccurred())

			users, err := svc.ListMembers(ctx, 1, member)
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(1))

			_, err = svc.ListMembers(ctx, 1, outsider)
			Expect(err).To(MatchError(service.ErrForbidden))
		})

		It("does not list creator-only workspaces as memberships", func() {
			page, err := svc.ListMemberOf(ctx, owner, model.PageRequest{})

			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(BeEmpty())
		})
	})

	Describe("pagination", func() {
		BeforeEach(func() {
			for i := int64(1); i <= 25; i++ {
				seed(i, owner)
			}
		})

		It("returns the second page of ten", func() {
			page, err := svc.ListAll(ctx, model.PageRequest{Page: 2, Limit: 10})

			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(Equal(int64(25)))
			Expect(page.TotalPages).To(Equal(int64(3)))
			Expect(page.Items).To(HaveLen(10))
			Expect(page.Items[0].ID).To(Equal(int64(11)))
			Expect(page.Items[9].ID).To(Equal(int64(20)))
		})

		It("returns a short final page", func() {
			page, err := svc.ListCreatedBy(ctx, owner, model.PageRequest{Page: 3, Limit: 10})

			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(5))
		})

		It("returns an empty page past the end", func() {
			page, err := svc.ListAll(ctx, model.PageRequest{Page: 9, Limit: 10})

			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).NotTo(BeNil())
			Expect(page.Items).To(BeEmpty())
			Expect(page.Total).To(Equal(int64(25)))
		})

		It("applies defaults and caps the limit", func() {
			page, err := svc.ListAll(ctx, model.PageRequest{})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Page).To(Equal(int32(1)))
			Expect(page.Limit).To(Equal(int32(10)))

			page, err = svc.ListAll(ctx, model.PageRequest{Page: 1, Limit: 1000})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Limit).To(Equal(int32(100)))
			Expect(page.Items).To(HaveLen(25))
		})

		It("rejects a page number past the supported range", func() {
			_, err := svc.ListAll(ctx, model.PageRequest{Page: 30_000_000, Limit: 100})

			Expect(err).To(MatchError(service.ErrValidation))
		})

		It("returns an empty page at the largest page number", func() {
			page, err := svc.ListAll(ctx, model.PageRequest{Page: 1_000_000, Limit: 100})

			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(BeEmpty())
			Expect(page.Total).To(Equal(int64(25)))
		})

		It("rejects negative paging", func() {
			_, err := svc.ListAll(ctx, model.PageRequest{Page: -1, Limit: 10})
			Expect(err).To(MatchError(service.ErrValidation))

			_, err = svc.ListAll(ctx, model.PageRequest{Page: 1, Limit: -5})
			Expect(err).To(MatchError(service.ErrValidation))
		})
	})

	Describe("ListActivity", func() {
		BeforeEach(func() {
			seed(1, owner)
			for i := int64(1); i <= 30; i++ {
				_, err := db.WorkspaceEventLogs().Create(ctx, &model.WorkspaceEventLog{
					ID:          i,
					WorkspaceID: 1,
					ActorID:     owner,
					EventType:   model.WorkspaceEventUpdated,
					MessageID:   fmt.Sprintf("1-%d", i),
				})
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("returns the newest twenty by default", func() {
			logs, err := svc.ListActivity(ctx, 1, owner, 0)

			Expect(err).NotTo(HaveOccurred())
			Expect(logs).To(HaveLen(20))
			Expect(logs[0].ID).To(Equal(int64(30)))
		})

		It("forbids an outsider", func() {
			_, err := svc.ListActivity(ctx, 1, outsider, 10)

			Expect(err).To(MatchError(service.ErrForbidden))
		})
	})
})
