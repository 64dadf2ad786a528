package equipment

import (
	"errors"

	"gorm.io/gorm"

	entity "sportloan.GO/model/entity"
	equipmentEntity "sportloan.GO/model/entity/equipment"
	borrowRepo "sportloan.GO/model/repository/borrow"
	equipmentRepo "sportloan.GO/model/repository/equipment"
)

var (
	ErrItemNotFound = errors.New("equipment item not found")
	// ErrItemOnLoan guards deletion of an item referenced by an open
	// borrowal line. The registry stays decoupled from loans; this service
	// is the composition layer that enforces the cross-entity rule.
	ErrItemOnLoan     = errors.New("equipment item is referenced by an open borrowal")
	ErrIncompleteItem = errors.New("catalog number, name and type are required")
	ErrNegativeStock  = errors.New("stock must not be negative")
)

type EquipmentService struct {
	items  *equipmentRepo.EquipmentRepository
	types  *equipmentRepo.TypeRepository
	loans  *borrowRepo.BorrowRepository
	search *Searcher
}

func NewEquipmentService(db *gorm.DB) *EquipmentService {
	return &EquipmentService{
		items:  equipmentRepo.NewEquipmentRepository(db),
		types:  equipmentRepo.NewTypeRepository(db),
		loans:  borrowRepo.NewBorrowRepository(db),
		search: NewSearcher(equipmentRepo.NewEquipmentRepository(db)),
	}
}

func (s *EquipmentService) List() ([]equipmentEntity.Item, error) {
	return s.items.List()
}

// Search delegates to the searcher (Elasticsearch when configured, SQL
// filtering otherwise).
func (s *EquipmentService) Search(term string, typeID uint) ([]equipmentEntity.Item, error) {
	return s.search.Search(term, typeID)
}

func (s *EquipmentService) Get(id uint) (*equipmentEntity.Item, error) {
	item, err := s.items.Get(id)
	if err != nil {
		if errors.Is(err, equipmentRepo.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *EquipmentService) Create(item *equipmentEntity.Item) error {
	if item.CatalogNumber == "" || item.Name == "" || item.TypeID == 0 {
		return ErrIncompleteItem
	}
	if item.Stock < 0 {
		return ErrNegativeStock
	}
	item.ItemID = 0
	return s.items.Create(item)
}

func (s *EquipmentService) Update(item *equipmentEntity.Item) error {
	if item.CatalogNumber == "" || item.Name == "" || item.TypeID == 0 {
		return ErrIncompleteItem
	}
	if item.Stock < 0 {
		return ErrNegativeStock
	}
	if err := s.items.Update(item); err != nil {
		if errors.Is(err, equipmentRepo.ErrNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	return nil
}

// Delete forbids removing an item that an open borrowal still references;
// the stock reconciliation on return would otherwise have nothing to credit.
func (s *EquipmentService) Delete(id uint) error {
	n, err := s.loans.CountOpenByItem(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrItemOnLoan
	}
	if err := s.items.Delete(id); err != nil {
		if errors.Is(err, equipmentRepo.ErrNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	return nil
}

func (s *EquipmentService) ListTypes() ([]entity.ItemType, error) {
	return s.types.List()
}

func (s *EquipmentService) CreateType(t *entity.ItemType) error {
	if t.Name == "" {
		return ErrIncompleteItem
	}
	t.TypeID = 0
	return s.types.Create(t)
}

// SetPhotoRef records the stored photo location for an item.
func (s *EquipmentService) SetPhotoRef(id uint, ref string) error {
	item, err := s.Get(id)
	if err != nil {
		return err
	}
	item.PhotoRef = ref
	return s.items.Update(item)
}
