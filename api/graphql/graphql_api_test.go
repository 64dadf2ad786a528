package graphql

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	entity "sportloan.GO/model/entity"
	borrowEntity "sportloan.GO/model/entity/borrow"
	equipmentEntity "sportloan.GO/model/entity/equipment"
)

func graphqlTestEnv(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.Member{},
		&entity.UserAccount{},
		&entity.ItemType{},
		&equipmentEntity.Item{},
		&borrowEntity.Borrowal{},
		&borrowEntity.Line{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	e := echo.New()
	RegisterGraphQLRoutes(e, db)
	return e, db
}

func query(t *testing.T, e *echo.Echo, q string) map[string]json.RawMessage {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"query": q})
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("graphql status = %d, body %s", rec.Code, rec.Body)
	}
	var resp struct {
		Data   map[string]json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Errors) > 0 {
		t.Fatalf("graphql errors: %+v", resp.Errors)
	}
	return resp.Data
}

func TestGraphQL_ItemsQuery(t *testing.T) {
	e, db := graphqlTestEnv(t)
	db.Create(&equipmentEntity.Item{CatalogNumber: "C-1", Name: "Football", TypeID: 1, Stock: 4})
	db.Create(&equipmentEntity.Item{CatalogNumber: "C-2", Name: "Net", TypeID: 2, Stock: 1})

	data := query(t, e, `{ items { name stock } }`)
	var items []struct {
		Name  string `json:"name"`
		Stock int32  `json:"stock"`
	}
	if err := json.Unmarshal(data["items"], &items); err != nil {
		t.Fatalf("unmarshal items: %v", err)
	}
	if len(items) != 2 || items[0].Name != "Football" || items[0].Stock != 4 {
		t.Errorf("items = %+v", items)
	}

	data = query(t, e, `{ items(q: "net") { name } }`)
	if err := json.Unmarshal(data["items"], &items); err != nil {
		t.Fatalf("unmarshal items: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Net" {
		t.Errorf("filtered items = %+v", items)
	}
}

func TestGraphQL_OpenBorrowal(t *testing.T) {
	e, db := graphqlTestEnv(t)
	db.Create(&borrowEntity.Borrowal{
		Ref: "ref-1", MemberIdentity: "M-1", BorrowerName: "Ada Lovelace",
		Status: borrowEntity.StatusOpen, DueAt: time.Now().Add(time.Hour),
		Lines: []borrowEntity.Line{{ItemID: 1, BorrowedQty: 2, Status: borrowEntity.StatusOpen}},
	})

	data := query(t, e, `{ openBorrowal(identity: "M-1") { ref status lines { borrowedQty } } }`)
	var b struct {
		Ref    string `json:"ref"`
		Status string `json:"status"`
		Lines  []struct {
			BorrowedQty int32 `json:"borrowedQty"`
		} `json:"lines"`
	}
	if err := json.Unmarshal(data["openBorrowal"], &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if b.Ref != "ref-1" || b.Status != "open" || len(b.Lines) != 1 || b.Lines[0].BorrowedQty != 2 {
		t.Errorf("openBorrowal = %+v", b)
	}

	data = query(t, e, `{ openBorrowal(identity: "ghost") { ref } }`)
	if string(data["openBorrowal"]) != "null" {
		t.Errorf("openBorrowal(ghost) = %s, want null", data["openBorrowal"])
	}
}

func TestGraphQL_Dashboard(t *testing.T) {
	e, db := graphqlTestEnv(t)
	db.Create(&equipmentEntity.Item{CatalogNumber: "C-1", Name: "Football", TypeID: 1, Stock: 4})

	data := query(t, e, `{ dashboard { totalItems availableUnits } }`)
	var d struct {
		TotalItems     int32 `json:"totalItems"`
		AvailableUnits int32 `json:"availableUnits"`
	}
	if err := json.Unmarshal(data["dashboard"], &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.TotalItems != 1 || d.AvailableUnits != 4 {
		t.Errorf("dashboard = %+v", d)
	}
}
