package http

import (
	errs "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tsmfield/os-backend/internal/domain/errors"
	"github.com/tsmfield/os-backend/internal/domain/repositories"
	"github.com/tsmfield/os-backend/internal/handlers/dto"
	"github.com/tsmfield/os-backend/internal/handlers/middleware"
	"github.com/tsmfield/os-backend/internal/infrastructure/export"
	"github.com/tsmfield/os-backend/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// OrderHandler lida com requisições HTTP de ordens de serviço
type OrderHandler struct {
	orderService *services.OrderService
}

// NewOrderHandler cria um novo OrderHandler
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// CreateOrder abre uma nova ordem de serviço
// @Summary Criar ordem de serviço
// @Tags service-orders
// @Accept json
// @Produce json
// @Param request body dto.CreateOrderRequest true "Dados da ordem"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /service-orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, dto.BindingErrors(err)))
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), caller, req.ToCreateOrderInput())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalErrorResponseI18n(c))
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

// ListOrders lista ordens com filtros, URGENTE sempre primeiro
// @Summary Listar ordens de serviço
// @Tags service-orders
// @Produce json
// @Param status query string false "Status exato"
// @Param pat query string false "Substring de PAT"
// @Param ticket_number query string false "Substring do chamado"
// @Param os_number query string false "Substring da O.S."
// @Param equipment_serial query string false "Substring do serial"
// @Param unit query string false "Substring da unidade"
// @Param date_start query string false "Data de abertura inicial (comparação lexical)"
// @Param date_end query string false "Data de abertura final (comparação lexical)"
// @Success 200 {array} dto.OrderResponse
// @Security BearerAuth
// @Router /service-orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	filters := repositories.OrderFilters{
		Status:          c.Query("status"),
		PAT:             c.Query("pat"),
		TicketNumber:    c.Query("ticket_number"),
		OSNumber:        c.Query("os_number"),
		EquipmentSerial: c.Query("equipment_serial"),
		Unit:            c.Query("unit"),
		DateStart:       c.Query("date_start"),
		DateEnd:         c.Query("date_end"),
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalErrorResponseI18n(c))
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponses(orders))
}

// GetOrder busca uma ordem por ID
// @Summary Buscar ordem de serviço
// @Tags service-orders
// @Produce json
// @Param id path string true "ID da ordem"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /service-orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errs.Is(err, errors.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, dto.NotFoundErrorResponseI18n(c, "Service order"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.InternalErrorResponseI18n(c))
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// UpdateOrder aplica uma atualização parcial numa ordem
// @Summary Atualizar ordem de serviço
// @Tags service-orders
// @Accept json
// @Produce json
// @Param id path string true "ID da ordem"
// @Param request body dto.UpdateOrderRequest true "Campos a atualizar"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /service-orders/{id} [put]
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, dto.BindingErrors(err)))
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), caller, c.Param("id"), req.ToOrderPatch())
	if err != nil {
		switch {
		case errs.Is(err, errors.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, dto.NotFoundErrorResponseI18n(c, "Service order"))
		case errs.Is(err, errors.ErrForbidden):
			c.JSON(http.StatusForbidden, dto.ForbiddenErrorResponseI18n(c))
		default:
			c.JSON(http.StatusInternalServerError, dto.InternalErrorResponseI18n(c))
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// DeleteOrder remove uma ordem por ID
// @Summary Deletar ordem de serviço
// @Tags service-orders
// @Produce json
// @Param id path string true "ID da ordem"
// @Success 200 {object} map[string]string
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /service-orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	err := h.orderService.DeleteOrder(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		switch {
		case errs.Is(err, errors.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, dto.NotFoundErrorResponseI18n(c, "Service order"))
		case errs.Is(err, errors.ErrForbidden):
			c.JSON(http.StatusForbidden, dto.ForbiddenErrorResponseI18n(c))
		default:
			c.JSON(http.StatusInternalServerError, dto.InternalErrorResponseI18n(c))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": dto.T(c, "message.order_deleted")})
}

// Stats retorna contagem por status mais o total
// @Summary Estatísticas das ordens
// @Tags service-orders
// @Produce json
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /service-orders/stats [get]
func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.orderService.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalErrorResponseI18n(c))
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportOrders gera o relatório XLSX do backlog completo
// @Summary Exportar ordens para planilha
// @Tags service-orders
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /service-orders/export [get]
func (h *OrderHandler) ExportOrders(c *gin.Context) {
	content, err := h.orderService.Export(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalErrorResponseI18n(c))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.Filename))
	c.Data(http.StatusOK, xlsxContentType, content)
}
