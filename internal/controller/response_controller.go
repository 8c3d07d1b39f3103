package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/itdept/dutyreport/internal/dto"
	"github.com/itdept/dutyreport/internal/service"
	"github.com/rs/zerolog/log"
)

type ResponseController struct {
	submissionService service.SubmissionService
}

func NewResponseController(submissionService service.SubmissionService) *ResponseController {
	return &ResponseController{submissionService: submissionService}
}

// SaveResponse godoc
// @Summary Submit one daily report
// @Description Persists the submission, renders it to a PDF and emails it to the distribution list. The returned fileName addresses the PDF under /pdfs/.
// @Tags Responses
// @Accept json
// @Produce json
// @Param submission body dto.SaveResponseRequest true "Complete daily report payload"
// @Success 200 {object} dto.SaveResponseResult
// @Failure 400 {object} dto.ErrorResponse "Missing answers or malformed body"
// @Failure 500 {object} dto.ErrorResponse "Persistence, rendering or mail failure"
// @Router /save-response [post]
func (c *ResponseController) SaveResponse(ctx *gin.Context) {
	var req dto.SaveResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SaveResponse: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return
	}

	result, err := c.submissionService.Save(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrMissingAnswers) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing answers"})
			return
		}
		log.Error().Err(err).Str("username", req.Username).Msg("SaveResponse: pipeline failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Message: "Internal Server Error",
			Error:   err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, result)
}
