package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/spark-api/internal/models"
	appErrors "github.com/noah-isme/spark-api/pkg/errors"
)

// filterFromQuery reads the filter controls shared by listing, smart search and export.
func filterFromQuery(c *gin.Context) models.CatalogFilter {
	return models.NewCatalogFilter(
		c.Query("state"),
		c.Query("field"),
		c.Query("grade"),
		c.Query("category"),
		c.Query("search"),
	)
}

func programIDParam(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, appErrors.ErrValidation.WithMessage("program id must be a positive integer")
	}
	return id, nil
}

func intakeFilterFromQuery(c *gin.Context) models.IntakeFilter {
	filter := models.IntakeFilter{Status: c.Query("status")}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filter.Limit = limit
	}
	return filter
}
