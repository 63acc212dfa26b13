package controller_admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nsvip/anidex-backend/api/controller"
	"github.com/nsvip/anidex-backend/domain"
	"github.com/nsvip/anidex-backend/domain/domain_catalog"
)

type AdminAnimeController struct {
	service domain_catalog.AdminAnimeService
}

func NewAdminAnimeController(service domain_catalog.AdminAnimeService) *AdminAnimeController {
	return &AdminAnimeController{service: service}
}

// Create POST /admin/anime 建档。ID由标题派生，请求中给的id被忽略
func (ctrl *AdminAnimeController) Create(c *gin.Context) {
	var anime domain_catalog.Anime
	if err := c.ShouldBindJSON(&anime); err != nil {
		controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	created, err := ctrl.service.Create(c.Request.Context(), &anime)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			controller.ErrorResponse(c, http.StatusConflict, "ANIME_EXISTS", err.Error())
			return
		}
		respondAdminError(c, err)
		return
	}

	controller.SuccessResponse(c, "anime", created, 1)
}

// updateAnimeRequest JSON部分更新请求体，字段缺省表示不触碰
type updateAnimeRequest struct {
	Title      *string                      `json:"title"`
	CoverURL   *string                      `json:"cover_url"`
	BannerURL  *string                      `json:"banner_url"`
	Year       *int                         `json:"year"`
	Type       *string                      `json:"type"`
	Genres     *[]string                    `json:"genres"`
	Status     *domain_catalog.AnimeStatus  `json:"status"`
	Synopsis   *string                      `json:"synopsis"`
	Rating     *float64                     `json:"rating"`
	Popularity *int                         `json:"popularity"`
	Featured   *bool                        `json:"featured"`
	TrailerURL *string                      `json:"trailer_url"`
	Studios    *[]domain_catalog.Studio     `json:"studios"`
	Cast       *[]domain_catalog.CastMember `json:"cast"`
	Episodes   *[]domain_catalog.Episode    `json:"episodes"`

	ProviderAID *string `json:"provider_a_id"`
	ProviderBID *int    `json:"provider_b_id"`
}

// Update PUT /admin/anime/:id
func (ctrl *AdminAnimeController) Update(c *gin.Context) {
	id := c.Param("id")

	var req updateAnimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	update := domain_catalog.UpdateAnimeInput{
		Title:       req.Title,
		CoverURL:    req.CoverURL,
		BannerURL:   req.BannerURL,
		Year:        req.Year,
		Type:        req.Type,
		Genres:      req.Genres,
		Status:      req.Status,
		Synopsis:    req.Synopsis,
		Rating:      req.Rating,
		Popularity:  req.Popularity,
		Featured:    req.Featured,
		TrailerURL:  req.TrailerURL,
		Studios:     req.Studios,
		Cast:        req.Cast,
		Episodes:    req.Episodes,
		ProviderAID: req.ProviderAID,
		ProviderBID: req.ProviderBID,
	}

	if err := ctrl.service.Update(c.Request.Context(), id, update); err != nil {
		respondAdminError(c, err)
		return
	}

	controller.SuccessResponse(c, "anime_id", id, 1)
}

// Delete DELETE /admin/anime/:id
func (ctrl *AdminAnimeController) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := ctrl.service.Delete(c.Request.Context(), id); err != nil {
		respondAdminError(c, err)
		return
	}

	controller.SuccessResponse(c, "anime_id", id, 1)
}

// GetByID GET /admin/anime/:id 馆藏原始数据，不做外部合并
func (ctrl *AdminAnimeController) GetByID(c *gin.Context) {
	id := c.Param("id")

	anime, err := ctrl.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondAdminError(c, err)
		return
	}
	if anime == nil {
		controller.ErrorResponse(c, http.StatusNotFound, "ANIME_NOT_FOUND", "anime not found: "+id)
		return
	}

	controller.SuccessResponse(c, "anime", anime, 1)
}

func respondAdminError(c *gin.Context, err error) {
	var confErr *domain.ConfigurationError
	if errors.As(err, &confErr) {
		controller.ErrorResponse(c, http.StatusBadRequest, "CONFIGURATION_ERROR", confErr.Message)
		return
	}

	var storeErr *domain.StoreError
	if errors.As(err, &storeErr) {
		if storeErr.Kind == domain.ErrKindNotFound {
			controller.ErrorResponse(c, http.StatusNotFound, string(storeErr.Kind), storeErr.Message)
			return
		}
		controller.ErrorResponse(c, http.StatusInternalServerError, string(storeErr.Kind), storeErr.Message)
		return
	}

	controller.ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
}
