package models

// OwnerCategory classifies task ownership for filtering: tasks owned by the
// viewer, tasks owned by anyone else, and unassigned tasks.
type OwnerCategory string

const (
	OwnerMine    OwnerCategory = "mine"
	OwnerOthers  OwnerCategory = "others"
	OwnerUnowned OwnerCategory = "unowned"
)

// ValidOwnerCategory reports whether c is a known owner category.
func ValidOwnerCategory(c OwnerCategory) bool {
	switch c {
	case OwnerMine, OwnerOthers, OwnerUnowned:
		return true
	}
	return false
}

// SortKey names a sortable column of the task list.
type SortKey string

const (
	SortByNumber   SortKey = "number"
	SortByTitle    SortKey = "title"
	SortByStatus   SortKey = "status"
	SortByOwner    SortKey = "owner"
	SortByComments SortKey = "comments"
)

// ValidSortKey reports whether k is a known sort key.
func ValidSortKey(k SortKey) bool {
	switch k {
	case SortByNumber, SortByTitle, SortByStatus, SortByOwner, SortByComments:
		return true
	}
	return false
}
