package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-comercial-api/internal/application/dto"
	"github.com/jhoicas/gestion-comercial-api/internal/application/sales"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/entity"
)

const queryDateLayout = "2006-01-02"

// SaleHandler maneja las peticiones HTTP del libro de ventas (protegido).
type SaleHandler struct {
	ledger    *sales.Ledger
	documents *sales.DocumentsUseCase
	dailyDays int
}

// NewSaleHandler construye el handler. dailyDays es la ventana por defecto de /sales/daily.
func NewSaleHandler(ledger *sales.Ledger, documents *sales.DocumentsUseCase, dailyDays int) *SaleHandler {
	return &SaleHandler{ledger: ledger, documents: documents, dailyDays: dailyDays}
}

// Create godoc
// @Summary      Registrar venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Datos de la venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	sale, err := h.ledger.CreateSale(c.Context(), sales.FromRequest(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sales.ToSaleResponse(sale))
}

// List godoc
// @Summary      Listar ventas
// @Description  Por período (start_date/end_date, YYYY-MM-DD inclusive), por cliente o por producto.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        client_id   query  string  false  "ID del cliente"
// @Param        product_id  query  string  false  "ID del producto"
// @Success      200  {object}  dto.SaleListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var q dto.SalesQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}

	var (
		list []*entity.Sale
		err  error
	)
	switch {
	case q.ClientID != "":
		list, err = h.ledger.GetSalesByClient(c.Context(), q.ClientID)
	case q.ProductID != "":
		list, err = h.ledger.GetSalesByProduct(c.Context(), q.ProductID)
	default:
		start, end, perr := h.periodBounds(q.StartDate, q.EndDate)
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: perr.Error()})
		}
		list, err = h.ledger.GetSalesByPeriod(c.Context(), start, end)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sales.ToSaleList(list))
}

// Daily godoc
// @Summary      Ventas diarias
// @Description  Una entrada por día de los últimos `days` días (hoy incluido), orden ascendente.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Días de la ventana"  default(7)
// @Success      200   {object}  dto.DailySalesResponse
// @Router       /api/sales/daily [get]
func (h *SaleHandler) Daily(c *fiber.Ctx) error {
	days := c.QueryInt("days", h.dailyDays)
	if days > 366 {
		days = 366
	}
	out, err := h.ledger.CalculateDailySales(c.Context(), days)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sales.ToDailySalesResponse(out))
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.ledger.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sales.ToSaleResponse(sale))
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una venta
// @Description  pending→completed, pending→cancelled, completed→cancelled. Anular repone el stock.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.UpdateSaleStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.SaleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/status [patch]
func (h *SaleHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateSaleStatusRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	sale, err := h.ledger.UpdateStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sales.ToSaleResponse(sale))
}

// Receipt godoc
// @Summary      Descargar comprobante PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	data, filename, err := h.documents.DownloadReceiptPDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// Export godoc
// @Summary      Exportar ventas a Excel
// @Tags         sales
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        start_date  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales/export [get]
func (h *SaleHandler) Export(c *fiber.Ctx) error {
	start, end, err := h.periodBounds(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	data, filename, err := h.documents.ExportSales(c.Context(), start, end)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// periodBounds interpreta start_date/end_date en la zona del reporte.
// end_date incluye el día completo; vacío = sin límite.
func (h *SaleHandler) periodBounds(startDate, endDate string) (*time.Time, *time.Time, error) {
	loc := h.ledger.Location()
	var start, end *time.Time
	if startDate != "" {
		t, err := time.ParseInLocation(queryDateLayout, startDate, loc)
		if err != nil {
			return nil, nil, errInvalidDate("start_date", startDate)
		}
		start = &t
	}
	if endDate != "" {
		t, err := time.ParseInLocation(queryDateLayout, endDate, loc)
		if err != nil {
			return nil, nil, errInvalidDate("end_date", endDate)
		}
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		end = &t
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "end_date anterior a start_date")
	}
	return start, end, nil
}

func errInvalidDate(field, value string) error {
	return fiber.NewError(fiber.StatusBadRequest, field+" inválido: "+strconv.Quote(value)+" (formato YYYY-MM-DD)")
}
