package grocery

// Category is a shopping-list section. It is a coarser partition than the
// quick-food category and is what the shopping screen groups by.
type Category string

const (
	CategoryProduce Category = "produce"
	CategoryMeat    Category = "meat"
	CategoryDairy   Category = "dairy"
	CategoryPantry  Category = "pantry"
	CategoryOther   Category = "other"
)
