package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/parcerias-admin/internal/application/dto"
	"github.com/jhoicas/parcerias-admin/pkg/cnpj"
)

// FormatCNPJ godoc
// @Summary      Aplicar máscara de CNPJ
// @Description  Máscara progresiva 00.000.000/0000-00 sobre lo tecleado, más chequeos de largo y dígitos verificadores.
// @Tags         cnpj
// @Produce      json
// @Security     BearerAuth
// @Param        value  query  string  false  "texto tecleado"
// @Success      200    {object}  dto.CNPJFormatResponse
// @Router       /api/cnpj/format [get]
func FormatCNPJ(c *fiber.Ctx) error {
	value := c.Query("value")
	digits := cnpj.Unformat(value)
	return c.JSON(dto.CNPJFormatResponse{
		Formatted:        cnpj.Format(value),
		Digits:           digits,
		ValidLength:      cnpj.HasValidLength(value),
		ValidCheckDigits: cnpj.HasValidCheckDigits(value),
	})
}
