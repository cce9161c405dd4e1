package http

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/punchlist/traslados-api/internal/application/dto"
	"github.com/punchlist/traslados-api/internal/application/signing"
	"github.com/punchlist/traslados-api/internal/domain"
)

// SigningHandler maneja la superficie pública de firma: no requiere auth,
// el token de capacidad en la URL es la única credencial. Los mensajes de
// error de esta superficie van en inglés (los ven contrapartes externas).
type SigningHandler struct {
	uc *signing.SignUseCase
}

// NewSigningHandler construye el handler.
func NewSigningHandler(uc *signing.SignUseCase) *SigningHandler {
	return &SigningHandler{uc: uc}
}

// GetPage godoc
// @Summary      Datos de la página pública de firma
// @Tags         signing
// @Produce      json
// @Param        token  query  string  true  "Token de capacidad"
// @Success      200  {object}  dto.SigningPageData
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      410  {object}  dto.ErrorResponse
// @Router       /sign [get]
func (h *SigningHandler) GetPage(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Missing signing token."})
	}
	page, err := h.uc.SigningPage(c.Context(), token)
	if err != nil {
		return signingError(c, err)
	}
	return c.JSON(page)
}

// PostSignature godoc
// @Summary      Firmar un traslado
// @Description  Acepta una firma dibujada (data-URI), una copia firmada subida, o ambas.
// @Tags         signing
// @Accept       mpfd
// @Produce      json
// @Param        token           query     string  false  "Token de capacidad (o campo token del formulario)"
// @Param        signer_name     formData  string  false  "Nombre del firmante"
// @Param        signature_data  formData  string  false  "Firma dibujada como data-URI"
// @Param        signed_file     formData  file    false  "Copia firmada (imagen o PDF)"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      410  {object}  dto.ErrorResponse
// @Router       /sign [post]
func (h *SigningHandler) PostSignature(c *fiber.Ctx) error {
	// La página de firma también envía el token como campo oculto del formulario.
	token := c.Query("token")
	if token == "" {
		token = c.FormValue("token")
	}
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Missing signing token."})
	}

	req := signing.SignRequest{
		Token:      token,
		SignerName: c.FormValue("signer_name"),
	}

	if dataURI := c.FormValue("signature_data"); dataURI != "" {
		req.Artifacts = append(req.Artifacts, signing.DrawnSignature{DataURI: dataURI})
	}

	if fh, err := c.FormFile("signed_file"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Could not read the uploaded file."})
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Could not read the uploaded file."})
		}
		req.Artifacts = append(req.Artifacts, signing.UploadedCopy{
			Data:     data,
			Mime:     fh.Header.Get("Content-Type"),
			Filename: fh.Filename,
		})
	}

	if err := h.uc.Sign(c.Context(), req); err != nil {
		return signingError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Transfer signed successfully."})
}

// signingError mapea errores de dominio de la superficie pública a HTTP.
func signingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrTokenNotFound), errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TOKEN_NOT_FOUND", Message: "This signing link is not valid."})
	case errors.Is(err, domain.ErrTokenExpired):
		return c.Status(fiber.StatusGone).JSON(dto.ErrorResponse{Code: "TOKEN_EXPIRED", Message: "This signing link has expired. Please request a new transfer form."})
	case errors.Is(err, domain.ErrMissingSignatureArtifact):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SIGNATURE", Message: "Provide a drawn signature or upload a signed copy."})
	case errors.Is(err, domain.ErrInvalidSignatureEncoding):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "The signature could not be decoded."})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "The request is not valid."})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "Something went wrong. Please try again."})
	}
}
