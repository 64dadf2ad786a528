package equipment

// Item represents one row of the equipment_item ledger. Stock is the only
// field mutated after creation outside of plain CRUD edits; borrow and return
// transactions are the sole writers while a loan references the item.
type Item struct {
	ItemID        uint   `gorm:"column:item_id;primaryKey;autoIncrement" json:"item_id"`
	CatalogNumber string `gorm:"column:catalog_number;type:varchar(32);not null" json:"catalog_number"`
	Name          string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	TypeID        uint   `gorm:"column:type_id;not null;default:0" json:"type_id"`
	Detail        string `gorm:"column:detail;type:varchar(255)" json:"detail"`
	Stock         int    `gorm:"column:stock;not null;default:0" json:"stock"`
	Price         string `gorm:"column:price;type:varchar(32)" json:"price"`
	PhotoRef      string `gorm:"column:photo_ref;type:varchar(255)" json:"photo_ref"`
}

func (Item) TableName() string {
	return "equipment_item"
}
