package controller_catalog

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nsvip/anidex-backend/api/controller"
	"github.com/nsvip/anidex-backend/domain"
	"github.com/nsvip/anidex-backend/domain/domain_catalog"
)

type CatalogController struct {
	service domain_catalog.CatalogService
}

func NewCatalogController(service domain_catalog.CatalogService) *CatalogController {
	return &CatalogController{service: service}
}

// List GET /anime 目录列表查询。筛选与排序全部走查询参数
func (ctrl *CatalogController) List(c *gin.Context) {
	filter, err := parseQueryFilter(c)
	if err != nil {
		controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	items, err := ctrl.service.List(c.Request.Context(), filter)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	controller.SuccessResponse(c, "anime", items, len(items))
}

// Search GET /anime/search?q=term&count=n
func (ctrl *CatalogController) Search(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "query parameter q is required")
		return
	}

	count := domain_catalog.DefaultListCount
	if raw := c.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "count must be an integer")
			return
		}
		count = parsed
	}

	items, err := ctrl.service.Search(c.Request.Context(), term, count)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	controller.SuccessResponse(c, "anime", items, len(items))
}

// GetByID GET /anime/:id 单条查询，附带外部元数据合并
func (ctrl *CatalogController) GetByID(c *gin.Context) {
	id := c.Param("id")

	anime, err := ctrl.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if anime == nil {
		controller.ErrorResponse(c, http.StatusNotFound, "ANIME_NOT_FOUND", "anime not found: "+id)
		return
	}

	controller.SuccessResponse(c, "anime", anime, 1)
}

// GetByIDs GET /anime/batch?ids=a,b,c 批量查询，结果保持入参顺序
func (ctrl *CatalogController) GetByIDs(c *gin.Context) {
	raw := c.Query("ids")
	if raw == "" {
		controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "query parameter ids is required")
		return
	}

	ids := make([]string, 0)
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	items, err := ctrl.service.GetByIDs(c.Request.Context(), ids)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	controller.SuccessResponse(c, "anime", items, len(items))
}

// UniqueValues GET /anime/values/:field 筛选面板词表
func (ctrl *CatalogController) UniqueValues(c *gin.Context) {
	field := c.Param("field")

	values, err := ctrl.service.UniqueValues(c.Request.Context(), field)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	controller.SuccessResponse(c, "values", values, len(values))
}

// Count GET /anime/count
func (ctrl *CatalogController) Count(c *gin.Context) {
	count, err := ctrl.service.Count(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	controller.SuccessResponse(c, "total", count, int(count))
}

func parseQueryFilter(c *gin.Context) (domain_catalog.QueryFilter, error) {
	filter := domain_catalog.QueryFilter{
		Genre:     c.Query("genre"),
		Type:      c.Query("type"),
		Status:    c.Query("status"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Search:    c.Query("search"),
		Count:     domain_catalog.DefaultListCount,
	}

	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errors.New("year must be an integer")
		}
		filter.Year = year
	}
	if raw := c.Query("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, errors.New("featured must be a boolean")
		}
		filter.Featured = &featured
	}
	if raw := c.Query("count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errors.New("count must be an integer")
		}
		filter.Count = count
	}

	return filter, nil
}

// respondStoreError 按规范化错误分类映射HTTP状态码
func respondStoreError(c *gin.Context, err error) {
	var confErr *domain.ConfigurationError
	if errors.As(err, &confErr) {
		controller.ErrorResponse(c, http.StatusBadRequest, "CONFIGURATION_ERROR", confErr.Message)
		return
	}

	var storeErr *domain.StoreError
	if errors.As(err, &storeErr) {
		switch storeErr.Kind {
		case domain.ErrKindMissingIndex:
			controller.ErrorResponse(c, http.StatusInternalServerError, string(storeErr.Kind), storeErr.Message)
		case domain.ErrKindPermissionDenied:
			controller.ErrorResponse(c, http.StatusForbidden, string(storeErr.Kind), storeErr.Message)
		case domain.ErrKindUnavailable:
			controller.ErrorResponse(c, http.StatusServiceUnavailable, string(storeErr.Kind), storeErr.Message)
		case domain.ErrKindNotFound:
			controller.ErrorResponse(c, http.StatusNotFound, string(storeErr.Kind), storeErr.Message)
		default:
			controller.ErrorResponse(c, http.StatusInternalServerError, string(storeErr.Kind), storeErr.Message)
		}
		return
	}

	controller.ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
}
