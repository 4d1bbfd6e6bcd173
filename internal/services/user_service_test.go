package services_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tsmfield/os-backend/internal/domain/entities"
	"github.com/tsmfield/os-backend/internal/domain/errors"
	"github.com/tsmfield/os-backend/internal/domain/valueobjects"
	"github.com/tsmfield/os-backend/internal/services"
)

var _ = Describe("UserService", func() {
	var (
		ctx      context.Context
		userRepo *fakeUserRepository
		service  *services.UserService
		admin    *entities.User
		tech     *entities.User
	)

	BeforeEach(func() {
		ctx = context.Background()
		userRepo = newFakeUserRepository()
		service = services.NewUserService(userRepo, &fakeLogger{})

		mk := func(email string, role entities.Role) *entities.User {
			username, err := valueobjects.NewUsername(email)
			Expect(err).NotTo(HaveOccurred())
			user := &entities.User{Username: username, Name: email, Role: role}
			Expect(userRepo.Create(ctx, user)).To(Succeed())
			return user
		}

		admin = mk("admin", entities.RoleAdmin)
		tech = mk("tecnico", entities.RoleUser)
	})

	Describe("ListUsers", func() {
		It("lista todos os usuários para um admin", func() {
			users, err := service.ListUsers(ctx, admin)

			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(2))
		})

		It("recusa a listagem para usuário comum", func() {
			_, err := service.ListUsers(ctx, tech)
			Expect(err).To(MatchError(errors.ErrForbidden))
		})
	})

	Describe("DeleteUser", func() {
		It("remove o usuário alvo", func() {
			Expect(service.DeleteUser(ctx, admin, tech.ID)).To(Succeed())

			remaining, err := userRepo.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(remaining).To(HaveLen(1))
			Expect(remaining[0].ID).To(Equal(admin.ID))
		})

		It("impede o admin de deletar a própria conta", func() {
			err := service.DeleteUser(ctx, admin, admin.ID)
			Expect(err).To(MatchError(errors.ErrSelfDeletion))
		})

		It("recusa a remoção para usuário comum", func() {
			err := service.DeleteUser(ctx, tech, admin.ID)
			Expect(err).To(MatchError(errors.ErrForbidden))
		})

		It("retorna ErrUserNotFound para alvo inexistente", func() {
			err := service.DeleteUser(ctx, admin, "nope")
			Expect(err).To(MatchError(errors.ErrUserNotFound))
		})
	})
})
