package controller

import (
	"survey_tool_backend/internal/service"
	"survey_tool_backend/internal/util"
	"survey_tool_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type ResponseController struct {
	Service *service.ResponseService
}

func NewResponseController(svc *service.ResponseService) *ResponseController {
	return &ResponseController{Service: svc}
}

// @Summary 提交问卷回答
// @Description 校验可见性和题型约束，计算总分并持久化回答
// @Tags 回答
// @Accept json
// @Produce json
// @Param id path string true "问卷ID"
// @Param body body service.SubmitResponseRequest true "回答内容"
// @Success 201 {object} util.Response{data=service.SubmitResponseResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /surveys/{id}/responses [post]
func (c *ResponseController) Submit(ctx *gin.Context) {
	var req service.SubmitResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.Submit(ctx.Param("id"), req)
	if err != nil {
		monitoring.SubmissionCounter.WithLabelValues(submitOutcome(err)).Inc()
		util.HandleServiceError(ctx, err)
		return
	}

	monitoring.SubmissionCounter.WithLabelValues("accepted").Inc()
	monitoring.SubmissionScore.Observe(float64(result.TotalScore))

	util.Created(ctx, result)
}

// @Summary 回答详情
// @Tags 回答
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "问卷ID"
// @Param responseId path string true "回答ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /surveys/{id}/responses/{responseId} [get]
func (c *ResponseController) Get(ctx *gin.Context) {
	response, err := c.Service.GetResponse(ctx.Param("id"), ctx.Param("responseId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, response)
}

// @Summary 问卷回答列表
// @Tags 回答
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "问卷ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /surveys/{id}/responses [get]
func (c *ResponseController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)

	responses, total, err := c.Service.ListResponses(ctx.Param("id"), page, limit)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  responses,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func submitOutcome(err error) string {
	if util.IsValidation(err) {
		return "validation_failed"
	}
	if err == util.ErrSurveyNotFound {
		return "survey_not_found"
	}
	return "error"
}
