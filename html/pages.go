package html

import (
	"embed"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"sportloan.GO/api"
	parts "sportloan.GO/html/parts"
	borrowService "sportloan.GO/service/borrow"
	equipmentService "sportloan.GO/service/equipment"
	reportService "sportloan.GO/service/report"
)

//go:embed templates/*.html
var templateFS embed.FS

type Template struct {
	Templates *template.Template
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.Templates.ExecuteTemplate(w, name, data)
}

func init() {
	api.RegisterHTMLModule(RegisterPageRoutes)
}

// RegisterPageRoutes mounts the server-rendered pages on the Echo root.
func RegisterPageRoutes(e *echo.Echo, db *gorm.DB) {
	e.Renderer = &Template{
		Templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}

	reports := reportService.NewReportService(db)
	borrowals := borrowService.NewBorrowService(db)
	equipment := equipmentService.NewEquipmentService(db)
	css, _ := parts.GetCriticalCSS()

	e.GET("/", func(c echo.Context) error {
		dash, err := reports.Dashboard()
		if err != nil {
			return c.String(http.StatusInternalServerError, "Error loading dashboard")
		}
		open, err := reports.Overdue(time.Now())
		if err != nil {
			return c.String(http.StatusInternalServerError, "Error loading overdue list")
		}
		return c.Render(http.StatusOK, "index.html", map[string]interface{}{
			"Dashboard":   dash,
			"Overdue":     open,
			"CriticalCSS": template.CSS(css),
		})
	})

	e.GET("/equipment/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			return c.String(http.StatusBadRequest, "Invalid item ID")
		}
		item, err := equipment.Get(uint(id))
		if err != nil {
			return c.String(http.StatusNotFound, "Item not found")
		}
		return c.Render(http.StatusOK, "item.html", map[string]interface{}{
			"Item":        item,
			"CriticalCSS": template.CSS(css),
		})
	})

	e.GET("/borrowals/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			return c.String(http.StatusBadRequest, "Invalid borrowal ID")
		}
		b, err := borrowals.Get(uint(id))
		if err != nil {
			return c.String(http.StatusNotFound, "Borrowal not found")
		}
		return c.Render(http.StatusOK, "borrowal.html", map[string]interface{}{
			"Borrowal":    b,
			"CriticalCSS": template.CSS(css),
		})
	})
}
