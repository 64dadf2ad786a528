package entity

type ItemType struct {
	TypeID uint   `gorm:"column:type_id;primaryKey;autoIncrement" json:"type_id"`
	Name   string `gorm:"column:name;type:varchar(64);not null" json:"name"`
}

func (ItemType) TableName() string {
	return "equipment_item_type"
}
