package equipment

import (
	"gorm.io/gorm"

	entity "sportloan.GO/model/entity"
)

type TypeRepository struct {
	db *gorm.DB
}

func NewTypeRepository(db *gorm.DB) *TypeRepository {
	return &TypeRepository{db: db}
}

func (r *TypeRepository) List() ([]entity.ItemType, error) {
	var types []entity.ItemType
	err := r.db.Order("type_id").Find(&types).Error
	return types, err
}

func (r *TypeRepository) Create(t *entity.ItemType) error {
	return r.db.Create(t).Error
}

// NameMap returns type_id -> name for display lookups.
func (r *TypeRepository) NameMap() (map[uint]string, error) {
	types, err := r.List()
	if err != nil {
		return nil, err
	}
	out := make(map[uint]string, len(types))
	for _, t := range types {
		out[t.TypeID] = t.Name
	}
	return out, nil
}
