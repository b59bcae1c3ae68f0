package models

// Item is one normalized catalog entry.
type Item struct {
	ID           string    `json:"id" msgpack:"id" db:"id"`
	Rarity       Rarity    `json:"rarity" msgpack:"rarity" db:"rarity"`
	Variant      Variant   `json:"variant" msgpack:"variant" db:"variant"`
	CollectionID string    `json:"collection_id" msgpack:"collection_id" db:"collection_id"`
	Wear         WearRange `json:"wear_range" msgpack:"wear_range"`
	WeaponLabel  string    `json:"weapon" msgpack:"weapon" db:"weapon_label"` // e.g. AK-47
	DisplayName  string    `json:"name" msgpack:"name" db:"display_name"`     // e.g. AK-47 | Redline
	Category     string    `json:"category" msgpack:"category" db:"category"` // e.g. Rifle, Pistol
	ImageRef     string    `json:"image" msgpack:"image" db:"image_ref"`
}
