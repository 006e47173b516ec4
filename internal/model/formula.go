package model

// Formula is a catalog entry for a compounded product. ID 0 marks an
// unpersisted draft; saving it back-fills the generated id.
type Formula struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description string  `json:"description" db:"description"`
	Price       float64 `json:"price" db:"price"`
}

type SaveFormulaRequest struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}
