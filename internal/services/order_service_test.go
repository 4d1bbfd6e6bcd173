package services_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tsmfield/os-backend/internal/domain/entities"
	"github.com/tsmfield/os-backend/internal/domain/errors"
	"github.com/tsmfield/os-backend/internal/domain/repositories"
	"github.com/tsmfield/os-backend/internal/services"
)

var _ = Describe("OrderService", func() {
	var (
		ctx       context.Context
		orderRepo *fakeOrderRepository
		exporter  *fakeExporter
		service   *services.OrderService
		tech      *entities.User
	)

	BeforeEach(func() {
		ctx = context.Background()
		orderRepo = newFakeOrderRepository()
		exporter = &fakeExporter{}
		service = services.NewOrderService(orderRepo, exporter, &fakeLogger{}, false)
		tech = &entities.User{ID: "user-tech", Role: entities.RoleUser}
	})

	Describe("CreateOrder", func() {
		It("cria a ordem com os campos informados e o autor da sessão", func() {
			order, err := service.CreateOrder(ctx, tech, services.CreateOrderInput{
				TicketNumber: strPtr("CH-1001"),
				ClientName:   strPtr("ACME"),
				Status:       entities.StatusEmRota,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(order.ID).NotTo(BeEmpty())
			Expect(order.Status).To(Equal(entities.StatusEmRota))
			Expect(order.CreatedBy).To(Equal("user-tech"))
			Expect(*order.TicketNumber).To(Equal("CH-1001"))
			Expect(order.OSNumber).To(BeNil())
		})

		It("assume ABERTO quando o status não é informado", func() {
			order, err := service.CreateOrder(ctx, tech, services.CreateOrderInput{})

			Expect(err).NotTo(HaveOccurred())
			Expect(order.Status).To(Equal(entities.StatusAberto))
		})

		It("normaliza verificações ausentes para lista vazia", func() {
			order, err := service.CreateOrder(ctx, tech, services.CreateOrderInput{})

			Expect(err).NotTo(HaveOccurred())
			Expect(order.Verifications).NotTo(BeNil())
			Expect(order.Verifications).To(BeEmpty())
		})

		It("permite buscar a ordem criada pelo ID", func() {
			created, err := service.CreateOrder(ctx, tech, services.CreateOrderInput{
				PAT: strPtr("PAT-7"),
			})
			Expect(err).NotTo(HaveOccurred())

			found, err := service.GetOrder(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*found.PAT).To(Equal("PAT-7"))
		})
	})

	Describe("GetOrder", func() {
		It("retorna ErrOrderNotFound para ID inexistente", func() {
			_, err := service.GetOrder(ctx, "nope")
			Expect(err).To(MatchError(errors.ErrOrderNotFound))
		})
	})

	Describe("ListOrders", func() {
		It("coloca as URGENTE na frente preservando a ordem de criação", func() {
			mk := func(client, status string) {
				_, err := service.CreateOrder(ctx, tech, services.CreateOrderInput{
					ClientName: strPtr(client),
					Status:     status,
				})
				Expect(err).NotTo(HaveOccurred())
			}

			mk("ACME", entities.StatusAberto)
			mk("Beta", entities.StatusUrgente)
			mk("Gamma", entities.StatusResolvido)
			mk("Delta", entities.StatusUrgente)

			orders, err := service.ListOrders(ctx, repositories.OrderFilters{})
			Expect(err).NotTo(HaveOccurred())

			names := make([]string, len(orders))
			for i, o := range orders {
				names[i] = *o.ClientName
			}
			Expect(names).To(Equal([]string{"Beta", "Delta", "ACME", "Gamma"}))
		})

		It("delimita o período de abertura por comparação lexical", func() {
			for _, date := range []string{"2024/01/01", "2024/06/15", "2024/12/31"} {
				_, err := service.CreateOrder(ctx, tech, services.CreateOrderInput{
					OpeningDate: strPtr(date),
				})
				Expect(err).NotTo(HaveOccurred())
			}

			orders, err := service.ListOrders(ctx, repositories.OrderFilters{
				DateStart: "2024/06/01",
				DateEnd:   "2024/12/01",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(orders).To(HaveLen(1))
			Expect(*orders[0].OpeningDate).To(Equal("2024/06/15"))
		})

		It("o limite inferior do período sozinho corta as mais antigas", func() {
			for _, date := range []string{"2024/01/01", "2024/12/31"} {
				_, err := service.CreateOrder(ctx, tech, services.CreateOrderInput{
					OpeningDate: strPtr(date),
				})
				Expect(err).NotTo(HaveOccurred())
			}

			orders, err := service.ListOrders(ctx, repositories.OrderFilters{
				DateStart: "2024/06/01",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(orders).To(HaveLen(1))
			Expect(*orders[0].OpeningDate).To(Equal("2024/12/31"))
		})

		It("ordens sem data de abertura ficam fora do filtro de período", func() {
			_, err := service.CreateOrder(ctx, tech, services.CreateOrderInput{})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.CreateOrder(ctx, tech, services.CreateOrderInput{
				OpeningDate: strPtr("2024/06/15"),
			})
			Expect(err).NotTo(HaveOccurred())

			orders, err := service.ListOrders(ctx, repositories.OrderFilters{
				DateStart: "2024/01/01",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(orders).To(HaveLen(1))
		})

		It("filtra por substring de O.S. e de série do equipamento", func() {
			_, err := service.CreateOrder(ctx, tech, services.CreateOrderInput{
				OSNumber:        strPtr("OS-2024-001"),
				EquipmentSerial: strPtr("BRX-55321"),
			})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.CreateOrder(ctx, tech, services.CreateOrderInput{
				OSNumber:        strPtr("OS-2024-002"),
				EquipmentSerial: strPtr("KYO-90117"),
			})
			Expect(err).NotTo(HaveOccurred())

			orders, err := service.ListOrders(ctx, repositories.OrderFilters{OSNumber: "2024-001"})
			Expect(err).NotTo(HaveOccurred())
			Expect(orders).To(HaveLen(1))
			Expect(*orders[0].OSNumber).To(Equal("OS-2024-001"))

			orders, err = service.ListOrders(ctx, repositories.OrderFilters{EquipmentSerial: "kyo"})
			Expect(err).NotTo(HaveOccurred())
			Expect(orders).To(HaveLen(1))
			Expect(*orders[0].EquipmentSerial).To(Equal("KYO-90117"))
		})

		It("filtra por substring sem perder a priorização", func() {
			_, err := service.CreateOrder(ctx, tech, services.CreateOrderInput{
				Unit: strPtr("Filial Centro"), Status: entities.StatusAberto,
			})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.CreateOrder(ctx, tech, services.CreateOrderInput{
				Unit: strPtr("Filial Norte"), Status: entities.StatusUrgente,
			})
			Expect(err).NotTo(HaveOccurred())

			orders, err := service.ListOrders(ctx, repositories.OrderFilters{Unit: "filial"})
			Expect(err).NotTo(HaveOccurred())
			Expect(orders).To(HaveLen(2))
			Expect(orders[0].Status).To(Equal(entities.StatusUrgente))
		})
	})

	Describe("UpdateOrder", func() {
		It("aplica o patch parcial deixando os demais campos intocados", func() {
			created, err := service.CreateOrder(ctx, tech, services.CreateOrderInput{
				TicketNumber: strPtr("CH-1"),
				ClientName:   strPtr("ACME"),
			})
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.UpdateOrder(ctx, tech, created.ID, repositories.OrderPatch{
				TechnicalReport: strPtr("fusor trocado"),
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(*updated.TechnicalReport).To(Equal("fusor trocado"))
			Expect(*updated.TicketNumber).To(Equal("CH-1"))
			Expect(*updated.ClientName).To(Equal("ACME"))
		})

		It("renova updated_at mesmo com patch vazio", func() {
			created, err := service.CreateOrder(ctx, tech, services.CreateOrderInput{})
			Expect(err).NotTo(HaveOccurred())
			before := created.UpdatedAt

			updated, err := service.UpdateOrder(ctx, tech, created.ID, repositories.OrderPatch{})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.UpdatedAt.After(before)).To(BeTrue())
		})

		It("substitui o checklist inteiro quando presente no patch", func() {
			created, err := service.CreateOrder(ctx, tech, services.CreateOrderInput{
				Verifications: []entities.Verification{
					{Item: "Fusor", Status: entities.VerificationBoa},
				},
			})
			Expect(err).NotTo(HaveOccurred())

			replacement := []entities.Verification{
				{Item: "Tracionador", Status: entities.VerificationRuim, Observation: strPtr("desgastado")},
				{Item: "Placa lógica", Status: entities.VerificationNA},
			}
			updated, err := service.UpdateOrder(ctx, tech, created.ID, repositories.OrderPatch{
				Verifications: &replacement,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Verifications).To(HaveLen(2))
			Expect(updated.Verifications[0].Item).To(Equal("Tracionador"))
		})

		It("retorna ErrOrderNotFound para ID inexistente", func() {
			_, err := service.UpdateOrder(ctx, tech, "nope", repositories.OrderPatch{})
			Expect(err).To(MatchError(errors.ErrOrderNotFound))
		})

		Context("com a política de propriedade ligada", func() {
			BeforeEach(func() {
				service = services.NewOrderService(orderRepo, exporter, &fakeLogger{}, true)
			})

			It("recusa mutação por quem não criou a ordem", func() {
				created, err := service.CreateOrder(ctx, tech, services.CreateOrderInput{})
				Expect(err).NotTo(HaveOccurred())

				other := &entities.User{ID: "user-other", Role: entities.RoleUser}
				_, err = service.UpdateOrder(ctx, other, created.ID, repositories.OrderPatch{})
				Expect(err).To(MatchError(errors.ErrForbidden))
			})

			It("permite mutação pelo criador e por admins", func() {
				created, err := service.CreateOrder(ctx, tech, services.CreateOrderInput{})
				Expect(err).NotTo(HaveOccurred())

				_, err = service.UpdateOrder(ctx, tech, created.ID, repositories.OrderPatch{})
				Expect(err).NotTo(HaveOccurred())

				admin := &entities.User{ID: "user-admin", Role: entities.RoleAdmin}
				_, err = service.UpdateOrder(ctx, admin, created.ID, repositories.OrderPatch{})
				Expect(err).NotTo(HaveOccurred())
			})
		})
	})

	Describe("DeleteOrder", func() {
		It("remove a ordem e o segundo delete retorna ErrOrderNotFound", func() {
			created, err := service.CreateOrder(ctx, tech, services.CreateOrderInput{})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.DeleteOrder(ctx, tech, created.ID)).To(Succeed())

			err = service.DeleteOrder(ctx, tech, created.ID)
			Expect(err).To(MatchError(errors.ErrOrderNotFound))
		})
	})

	Describe("Stats", func() {
		It("publica os oito status conhecidos zerados quando não há ordens", func() {
			stats, err := service.Stats(ctx)
			Expect(err).NotTo(HaveOccurred())

			for _, status := range entities.OrderStatuses {
				Expect(stats).To(HaveKeyWithValue(status, int64(0)))
			}
			Expect(stats).To(HaveKeyWithValue(services.StatsTotalKey, int64(0)))
		})

		It("conta por status e o total é a soma das contagens", func() {
			for _, status := range []string{
				entities.StatusUrgente,
				entities.StatusUrgente,
				entities.StatusAberto,
				entities.StatusResolvido,
			} {
				_, err := service.CreateOrder(ctx, tech, services.CreateOrderInput{Status: status})
				Expect(err).NotTo(HaveOccurred())
			}

			stats, err := service.Stats(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(stats[entities.StatusUrgente]).To(Equal(int64(2)))
			Expect(stats[entities.StatusAberto]).To(Equal(int64(1)))
			Expect(stats[entities.StatusResolvido]).To(Equal(int64(1)))
			Expect(stats[entities.StatusEmRota]).To(Equal(int64(0)))
			Expect(stats[services.StatsTotalKey]).To(Equal(int64(4)))
		})

		It("mantém status desconhecidos na própria chave, sem quebrar a soma", func() {
			_, err := service.CreateOrder(ctx, tech, services.CreateOrderInput{Status: entities.StatusAberto})
			Expect(err).NotTo(HaveOccurred())

			// grava um status fora do vocabulário direto no repositório
			Expect(orderRepo.Create(ctx, &entities.ServiceOrder{Status: "LEGADO"})).To(Succeed())

			stats, err := service.Stats(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(stats).To(HaveKeyWithValue("LEGADO", int64(1)))
			Expect(stats[services.StatsTotalKey]).To(Equal(int64(2)))
		})
	})

	Describe("Export", func() {
		It("exporta o backlog completo já priorizado", func() {
			_, err := service.CreateOrder(ctx, tech, services.CreateOrderInput{
				ClientName: strPtr("ACME"), Status: entities.StatusAberto,
			})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.CreateOrder(ctx, tech, services.CreateOrderInput{
				ClientName: strPtr("Beta"), Status: entities.StatusUrgente,
			})
			Expect(err).NotTo(HaveOccurred())

			content, err := service.Export(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(content).NotTo(BeEmpty())

			Expect(exporter.received).To(HaveLen(2))
			Expect(*exporter.received[0].ClientName).To(Equal("Beta"))
			Expect(*exporter.received[1].ClientName).To(Equal("ACME"))
		})
	})

	It("updated_at da criação não fica no futuro", func() {
		created, err := service.CreateOrder(ctx, tech, services.CreateOrderInput{})
		Expect(err).NotTo(HaveOccurred())
		Expect(created.UpdatedAt).To(BeTemporally("~", time.Now().UTC(), time.Second))
	})
})
