package equipment

import (
	"strings"
	"testing"
)

const importCSV = `catalog_number,name,type,detail,stock,price
C-1,Football,Balls,size 5,4,19.90
C-2,Basketball,Balls,,2,24.50
C-3,Net,Accessories,training net,1,89.00
,Ghost,Balls,,1,0
C-4,,Balls,,1,0
C-5,Cone,Accessories,,notanumber,0
`

func TestImportItems(t *testing.T) {
	db := testDB(t)
	res, err := ImportItems(db, strings.NewReader(importCSV), ImportOptions{})
	if err != nil {
		t.Fatalf("ImportItems: %v", err)
	}
	if res.TotalRows != 6 {
		t.Errorf("total = %d, want 6", res.TotalRows)
	}
	if res.Created != 3 {
		t.Errorf("created = %d, want 3", res.Created)
	}
	if res.Skipped != 3 {
		t.Errorf("skipped = %d, want 3", res.Skipped)
	}
	if len(res.Warnings) != 3 {
		t.Errorf("warnings = %v, want 3", res.Warnings)
	}

	svc := NewEquipmentService(db)
	types, err := svc.ListTypes()
	if err != nil {
		t.Fatalf("ListTypes: %v", err)
	}
	if len(types) != 2 {
		t.Errorf("types = %+v, want Balls and Accessories", types)
	}
	items, err := svc.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
}

func TestImportItems_UpdateExisting(t *testing.T) {
	db := testDB(t)
	if _, err := ImportItems(db, strings.NewReader(importCSV), ImportOptions{}); err != nil {
		t.Fatalf("first import: %v", err)
	}

	second := "catalog_number,name,type,stock\nC-1,Football,Balls,9\nC-9,Whistle,Accessories,5\n"
	res, err := ImportItems(db, strings.NewReader(second), ImportOptions{})
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if res.Created != 1 || res.Updated != 1 {
		t.Errorf("created=%d updated=%d, want 1/1", res.Created, res.Updated)
	}

	svc := NewEquipmentService(db)
	items, err := svc.Search("Football", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(items) != 1 || items[0].Stock != 9 {
		t.Errorf("football = %+v, want stock 9", items)
	}
}

func TestImportItems_DryRunWritesNothing(t *testing.T) {
	db := testDB(t)
	res, err := ImportItems(db, strings.NewReader(importCSV), ImportOptions{DryRun: true})
	if err != nil {
		t.Fatalf("ImportItems: %v", err)
	}
	if res.Created != 3 {
		t.Errorf("created = %d, want 3 (counted only)", res.Created)
	}
	svc := NewEquipmentService(db)
	items, err := svc.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %d, want 0 after dry run", len(items))
	}
}

func TestImportItems_MissingCatalogColumn(t *testing.T) {
	db := testDB(t)
	if _, err := ImportItems(db, strings.NewReader("name,stock\nBall,1\n"), ImportOptions{}); err == nil {
		t.Fatal("expected error for missing catalog_number column")
	}
}
