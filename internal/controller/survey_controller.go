package controller

import (
	"strconv"
	"survey_tool_backend/internal/service"
	"survey_tool_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SurveyController struct {
	Service *service.SurveyService
}

func NewSurveyController(svc *service.SurveyService) *SurveyController {
	return &SurveyController{Service: svc}
}

// @Summary 创建问卷
// @Description 创建带条件显示规则的问卷，返回新问卷 ID
// @Tags 问卷
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.UpsertSurveyRequest true "问卷内容"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /surveys [post]
func (c *SurveyController) Create(ctx *gin.Context) {
	var req service.UpsertSurveyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id, err := c.Service.Create(req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"id": id})
}

// @Summary 问卷列表
// @Tags 问卷
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /surveys [get]
func (c *SurveyController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)

	summaries, total, err := c.Service.List(page, limit)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  summaries,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 问卷详情
// @Description 返回问卷及其全部问题、选项和可见性规则
// @Tags 问卷
// @Produce json
// @Param id path string true "问卷ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /surveys/{id} [get]
func (c *SurveyController) Get(ctx *gin.Context) {
	survey, err := c.Service.Get(ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, survey)
}

// @Summary 更新问卷
// @Description 整体替换问卷内容，问题和选项会拿到新 ID
// @Tags 问卷
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "问卷ID"
// @Param body body service.UpsertSurveyRequest true "问卷内容"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /surveys/{id} [put]
func (c *SurveyController) Update(ctx *gin.Context) {
	var req service.UpsertSurveyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.Update(ctx.Param("id"), req); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 删除问卷
// @Tags 问卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "问卷ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /surveys/{id} [delete]
func (c *SurveyController) Delete(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Param("id")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

func pagination(ctx *gin.Context) (int, int) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
