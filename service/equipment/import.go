package equipment

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"sportloan.GO/model/entity"
	equipmentEntity "sportloan.GO/model/entity/equipment"
)

// ImportOptions configures an equipment import run.
type ImportOptions struct {
	BatchSize int
	DryRun    bool
}

// ImportResult holds counters and timing from an import run.
type ImportResult struct {
	TotalRows int
	Created   int
	Updated   int
	Skipped   int
	Warnings  []string
	TotalTime time.Duration
}

var importColumns = map[string]bool{
	"catalog_number": true, "name": true, "type": true,
	"detail": true, "stock": true, "price": true,
}

// ImportItems reads CSV data from r and upserts equipment items keyed by
// catalog number. Unknown item type names are created on the fly.
func ImportItems(db *gorm.DB, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	start := time.Now()
	if opts.BatchSize <= 0 {
		opts.BatchSize = 200
	}

	reader := csv.NewReader(r)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	colIndex := make(map[string]int, len(headers))
	result := &ImportResult{}
	for i, h := range headers {
		h = strings.TrimSpace(strings.ToLower(h))
		if !importColumns[h] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("column %q: unknown, skipping", h))
			continue
		}
		colIndex[h] = i
	}
	_, ok := colIndex["catalog_number"]
	if !ok {
		return nil, fmt.Errorf("CSV must contain a 'catalog_number' column")
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV rows: %w", err)
	}
	result.TotalRows = len(rows)

	svc := NewEquipmentService(db)
	typeIDs, err := typeIDsByName(db, svc)
	if err != nil {
		return nil, err
	}

	field := func(row []string, name string) string {
		i, ok := colIndex[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for n, row := range rows {
			catalog := field(row, "catalog_number")
			if catalog == "" {
				result.Skipped++
				result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: empty catalog number", n+2))
				continue
			}

			stock := 0
			if s := field(row, "stock"); s != "" {
				stock, err = strconv.Atoi(s)
				if err != nil || stock < 0 {
					result.Skipped++
					result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: bad stock %q", n+2, s))
					continue
				}
			}

			typeID := uint(0)
			if typeName := field(row, "type"); typeName != "" {
				typeID, err = ensureType(tx, typeIDs, typeName)
				if err != nil {
					return err
				}
			}

			var existing equipmentEntity.Item
			lookup := tx.Where("catalog_number = ?", catalog).First(&existing)
			if lookup.Error != nil && lookup.Error != gorm.ErrRecordNotFound {
				return lookup.Error
			}

			item := equipmentEntity.Item{
				CatalogNumber: catalog,
				Name:          field(row, "name"),
				TypeID:        typeID,
				Detail:        field(row, "detail"),
				Stock:         stock,
				Price:         field(row, "price"),
			}
			if item.Name == "" {
				result.Skipped++
				result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: empty name", n+2))
				continue
			}

			if opts.DryRun {
				if lookup.Error == nil {
					result.Updated++
				} else {
					result.Created++
				}
				continue
			}

			if lookup.Error == nil {
				item.ItemID = existing.ItemID
				item.PhotoRef = existing.PhotoRef
				if err := tx.Save(&item).Error; err != nil {
					return err
				}
				result.Updated++
			} else {
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
				result.Created++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.TotalTime = time.Since(start)
	return result, nil
}

func typeIDsByName(db *gorm.DB, svc *EquipmentService) (map[string]uint, error) {
	types, err := svc.ListTypes()
	if err != nil {
		return nil, err
	}
	out := make(map[string]uint, len(types))
	for _, t := range types {
		out[strings.ToLower(t.Name)] = t.TypeID
	}
	return out, nil
}

func ensureType(tx *gorm.DB, known map[string]uint, name string) (uint, error) {
	key := strings.ToLower(name)
	if id, ok := known[key]; ok {
		return id, nil
	}
	t := entity.ItemType{Name: name}
	if err := tx.Create(&t).Error; err != nil {
		return 0, err
	}
	known[key] = t.TypeID
	return t.TypeID, nil
}
