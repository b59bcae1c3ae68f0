package models

// CollectionKind tells weapon cases apart from map collections.
type CollectionKind string

const (
	KindWeaponCase CollectionKind = "weaponcase"
	KindItemSet    CollectionKind = "itemset"
)

// Collection is a weapon case or map collection that owns skins.
type Collection struct {
	ID   string         `json:"id" msgpack:"id" db:"id"`
	Name string         `json:"name" msgpack:"name" db:"name"`
	Kind CollectionKind `json:"kind" msgpack:"kind" db:"kind"`
}
