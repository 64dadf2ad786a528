package equipment

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	equipmentEntity "sportloan.GO/model/entity/equipment"
)

// ErrNotFound is returned when no item matches the given id.
var ErrNotFound = errors.New("equipment item not found")

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *EquipmentRepository) WithTx(tx *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: tx}
}

func (r *EquipmentRepository) List() ([]equipmentEntity.Item, error) {
	var items []equipmentEntity.Item
	err := r.db.Order("item_id").Find(&items).Error
	return items, err
}

// Search filters by name substring or catalog number, and optionally by type.
func (r *EquipmentRepository) Search(term string, typeID uint) ([]equipmentEntity.Item, error) {
	q := r.db.Order("item_id")
	if term != "" {
		like := "%" + term + "%"
		q = q.Where("name LIKE ? OR catalog_number LIKE ?", like, like)
	}
	if typeID != 0 {
		q = q.Where("type_id = ?", typeID)
	}
	var items []equipmentEntity.Item
	err := q.Find(&items).Error
	return items, err
}

func (r *EquipmentRepository) Get(id uint) (*equipmentEntity.Item, error) {
	var item equipmentEntity.Item
	if err := r.db.First(&item, "item_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// GetForUpdate locks the item row for the duration of the surrounding
// transaction so stock checks read live values.
func (r *EquipmentRepository) GetForUpdate(id uint) (*equipmentEntity.Item, error) {
	var item equipmentEntity.Item
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&item, "item_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *EquipmentRepository) Create(item *equipmentEntity.Item) error {
	return r.db.Create(item).Error
}

func (r *EquipmentRepository) Update(item *equipmentEntity.Item) error {
	var existing equipmentEntity.Item
	if err := r.db.First(&existing, "item_id = ?", item.ItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return r.db.Save(item).Error
}

func (r *EquipmentRepository) Delete(id uint) error {
	res := r.db.Delete(&equipmentEntity.Item{}, "item_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustStock applies stock += delta without clamping. The transaction layer
// owns the sufficiency check; callers must never let the result go negative.
func (r *EquipmentRepository) AdjustStock(id uint, delta int) error {
	res := r.db.Model(&equipmentEntity.Item{}).
		Where("item_id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TotalStock sums available units across all items (dashboard figure).
func (r *EquipmentRepository) TotalStock() (int64, error) {
	var total int64
	err := r.db.Model(&equipmentEntity.Item{}).
		Select("COALESCE(SUM(stock), 0)").Scan(&total).Error
	return total, err
}

func (r *EquipmentRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&equipmentEntity.Item{}).Count(&n).Error
	return n, err
}
