package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/idrsdev/agile-task/internal/model"
	"github.com/idrsdev/agile-task/internal/service"
)

var _ = Describe("UserService", func() {
	var (
		ctx context.Context
		db  *memDB
		svc service.UserService
	)

	BeforeEach(func() {
		ctx = context.Background()
		db = newMemDB()
		svc = service.NewUserService(db.Users(), db.Roles())
		db.addUser(model.User{ID: 7, Name: "Ada", Email: "ada@example.com"})
		Expect(db.Roles().Assign(ctx, 7, 2)).To(Succeed())
	})

	It("returns the profile with roles", func() {
		profile, err := svc.Me(ctx, 7)

		Expect(err).NotTo(HaveOccurred())
		Expect(profile.Name).To(Equal("Ada"))
		Expect(profile.Roles).To(ConsistOf(model.Role{ID: 2, Name: model.RoleMember}))
	})

	It("returns not found for an unknown user", func() {
		_, err := svc.Me(ctx, 404)

		Expect(err).To(MatchError(service.ErrUserNotFound))
	})

	It("updates the trimmed name", func() {
		user, err := svc.UpdateProfile(ctx, 7, "  Grace ")

		Expect(err).NotTo(HaveOccurred())
		Expect(user.Name).To(Equal("Grace"))
	})

	It("rejects a blank name", func() {
		_, err := svc.UpdateProfile(ctx, 7, "   ")

		Expect(err).To(MatchError(service.ErrValidation))
	})

	It("assigns and revokes admin", func() {
		Expect(svc.AssignRole(ctx, 7, model.RoleAdmin)).To(Succeed())

		roles, err := svc.RolesFor(ctx, 7)
		Expect(err).NotTo(HaveOccurred())
		Expect(model.HasAnyRole(roles, model.RoleAdmin)).To(BeTrue())

		Expect(svc.RevokeRole(ctx, 7, model.RoleAdmin)).To(Succeed())
		Expect(svc.RevokeRole(ctx, 7, model.RoleAdmin)).To(Succeed())

		roles, err = svc.RolesFor(ctx, 7)
		Expect(err).NotTo(HaveOccurred())
		Expect(model.HasAnyRole(roles, model.RoleAdmin)).To(BeFalse())
	})

	It("rejects an unknown role", func() {
		Expect(svc.AssignRole(ctx, 7, model.RoleName("owner"))).To(MatchError(service.ErrRoleNotFound))
	})

	It("rejects an unknown user", func() {
		Expect(svc.AssignRole(ctx, 404, model.RoleAdmin)).To(MatchError(service.ErrUserNotFound))
	})

	It("lists every role", func() {
		roles, err := svc.ListRoles(ctx)

		Expect(err).NotTo(HaveOccurred())
		Expect(roles).To(HaveLen(2))
	})
})
