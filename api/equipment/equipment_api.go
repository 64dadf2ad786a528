package equipment

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"sportloan.GO/api"
	"sportloan.GO/core/policy"
	"sportloan.GO/model/entity"
	equipmentEntity "sportloan.GO/model/entity/equipment"
	equipmentService "sportloan.GO/service/equipment"
	mediaService "sportloan.GO/service/media"
)

func init() {
	api.RegisterModule(RegisterEquipmentRoutes)
}

func RegisterEquipmentRoutes(apiGroup *echo.Group, db *gorm.DB) {
	svc := equipmentService.NewEquipmentService(db)
	media := mediaService.NewMediaService(db)
	g := apiGroup.Group("/equipment")
	manager := policy.Require(policy.Manager)

	// GET /api/equipment – full list, or search with ?q= and ?type=
	g.GET("", func(c echo.Context) error {
		q := c.QueryParam("q")
		typeID, _ := strconv.ParseUint(c.QueryParam("type"), 10, 32)
		var (
			items []equipmentEntity.Item
			err   error
		)
		if q != "" || typeID > 0 {
			items, err = svc.Search(q, uint(typeID))
		} else {
			items, err = svc.List()
		}
		if err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusOK, items)
	})

	g.GET("/types", func(c echo.Context) error {
		types, err := svc.ListTypes()
		if err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusOK, types)
	})

	g.POST("/types", func(c echo.Context) error {
		var t entity.ItemType
		if err := c.Bind(&t); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := svc.CreateType(&t); err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusCreated, t)
	}, manager)

	g.GET("/:id", func(c echo.Context) error {
		id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
		item, err := svc.Get(uint(id))
		if err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusOK, item)
	})

	g.POST("", func(c echo.Context) error {
		var item equipmentEntity.Item
		if err := c.Bind(&item); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := svc.Create(&item); err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusCreated, item)
	}, manager)

	g.PUT("/:id", func(c echo.Context) error {
		id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
		var item equipmentEntity.Item
		if err := c.Bind(&item); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		item.ItemID = uint(id)
		if err := svc.Update(&item); err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusOK, item)
	}, manager)

	g.DELETE("/:id", func(c echo.Context) error {
		id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
		if err := svc.Delete(uint(id)); err != nil {
			return api.JSONError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}, manager)

	// POST /api/equipment/:id/photo – multipart upload, stored as webp
	g.POST("/:id/photo", func(c echo.Context) error {
		id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
		fh, err := c.FormFile("photo")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "photo file is required"})
		}
		f, err := fh.Open()
		if err != nil {
			return api.JSONError(c, err)
		}
		defer f.Close()
		ref, err := media.StorePhoto(uint(id), f)
		if err != nil {
			if err == mediaService.ErrBadImage {
				return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
			}
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusCreated, echo.Map{"photo_ref": ref})
	}, manager)

	g.GET("/:id/photo", func(c echo.Context) error {
		id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
		item, err := svc.Get(uint(id))
		if err != nil {
			return api.JSONError(c, err)
		}
		if item.PhotoRef == "" {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item has no photo"})
		}
		return c.File(media.PhotoPath(item.PhotoRef))
	})

	// POST /api/equipment/import – CSV upload, upsert by catalog number
	g.POST("/import", func(c echo.Context) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "CSV file is required"})
		}
		f, err := fh.Open()
		if err != nil {
			return api.JSONError(c, err)
		}
		defer f.Close()
		res, err := equipmentService.ImportItems(db, f, equipmentService.ImportOptions{})
		if err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"total":    res.TotalRows,
			"created":  res.Created,
			"updated":  res.Updated,
			"skipped":  res.Skipped,
			"warnings": res.Warnings,
		})
	}, manager)
}
