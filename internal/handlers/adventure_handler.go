package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kornnellio/adventuretime-sub001/internal/models"
	"github.com/kornnellio/adventuretime-sub001/internal/services"
)

func CreateAdventure(as *services.AdventureService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var adventure models.Adventure
		if err := c.ShouldBindJSON(&adventure); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := as.CreateAdventure(c.Request.Context(), &adventure)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Adventure created successfully"))
	}
}

func ListAdventures(as *services.AdventureService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offsetInt, limitInt, ok := pagination(c)
		if !ok {
			return
		}

		filter := models.AdventureFilter{
			CategoryID: c.Query("category"),
			Difficulty: c.Query("difficulty"),
			Location:   c.Query("location"),
		}

		adventures, total, err := as.ListAdventures(c.Request.Context(), filter, offsetInt, limitInt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		page := (offsetInt / limitInt) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(adventures, page, limitInt, total))
	}
}

func GetAdventureByID(as *services.AdventureService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid adventure ID format"))
			return
		}

		adventure, err := as.GetAdventureByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if adventure == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("adventure not found"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(adventure, ""))
	}
}

func UpdateAdventure(as *services.AdventureService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid adventure ID format"))
			return
		}

		var updates map[string]interface{}
		if err := c.ShouldBindJSON(&updates); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		updated, err := as.UpdateAdventure(c.Request.Context(), id, updates)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		if updated == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("adventure not found"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Adventure updated successfully"))
	}
}

func DeleteAdventure(as *services.AdventureService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid adventure ID format"))
			return
		}

		if err := as.DeleteAdventure(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Adventure deleted successfully"))
	}
}

func CreateCategory(as *services.AdventureService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := c.ShouldBindJSON(&category); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := as.CreateCategory(c.Request.Context(), &category)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Category created successfully"))
	}
}

func ListCategories(as *services.AdventureService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := as.ListCategories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(categories, ""))
	}
}

func DeleteCategory(as *services.AdventureService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid category ID format"))
			return
		}

		if err := as.DeleteCategory(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Category deleted successfully"))
	}
}

// pagination reads limit/offset query params, writing the error response
// itself on bad input.
func pagination(c *gin.Context) (offset, limit int, ok bool) {
	limitInt, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limitInt <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid limit parameter"))
		return 0, 0, false
	}
	offsetInt, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offsetInt < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid offset parameter"))
		return 0, 0, false
	}
	return offsetInt, limitInt, true
}
