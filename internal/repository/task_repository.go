package repository

import (
	"fmt"
	"strconv"

	"github.com/taskboard/taskboard-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// CreateWithNumber assigns number = highest existing number + 1 and inserts,
// all inside one transaction. The read locks the highest-numbered row, not an
// aggregate: Postgres rejects FOR UPDATE on aggregate queries, and a plain
// row read locks fine on both MySQL and Postgres. Two concurrent creates
// serialize on that lock and can never share a number; when the table is
// empty there is no row to lock and the unique index on number rejects the
// loser. SQLite serializes writers on its own and rejects FOR UPDATE syntax.
func (r *GormTaskRepository) CreateWithNumber(task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.Task{}).Select("number").Order("number DESC").Limit(1)
		if tx.Dialector.Name() != "sqlite" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var last struct{ Number uint64 }
		if err := q.Scan(&last).Error; err != nil {
			return err
		}

		task.Number = last.Number + 1
		return tx.Create(task).Error
	})
}

// FindByNumber finds a task by display number with optional preloading
func (r *GormTaskRepository) FindByNumber(number uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("number = ?", number).First(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// sortColumn maps a sort key to the SQL expression ordered and compared on.
// Owner sorts on the denormalized name; NULL collapses to '' so unowned
// tasks group together deterministically.
func sortColumn(key models.SortKey) string {
	switch key {
	case models.SortByTitle:
		return "tasks.title"
	case models.SortByStatus:
		return "tasks.status"
	case models.SortByOwner:
		return "COALESCE(tasks.owner_name, '')"
	case models.SortByComments:
		return "tasks.comment_count"
	default:
		return "tasks.number"
	}
}

// SortValue renders the value a task has under a sort key, in the string
// form carried inside continuation cursors.
func SortValue(task models.Task, key models.SortKey) string {
	switch key {
	case models.SortByTitle:
		return task.Title
	case models.SortByStatus:
		return string(task.Status)
	case models.SortByOwner:
		if task.OwnerName != nil {
			return *task.OwnerName
		}
		return ""
	case models.SortByComments:
		return strconv.FormatInt(task.CommentCount, 10)
	default:
		return strconv.FormatUint(task.Number, 10)
	}
}

// cursorArg converts the cursor's string sort value back into the type the
// column comparison needs.
func cursorArg(key models.SortKey, value string) (interface{}, error) {
	switch key {
	case models.SortByNumber, models.SortByComments:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("non-numeric cursor value %q", value)
		}
		return n, nil
	default:
		return value, nil
	}
}

// ListPage retrieves one page of tasks matching the filter using keyset
// continuation. Ordering is (sort key, number) in the requested direction;
// the number tie-break keeps page boundaries stable when rows share a sort
// value.
func (r *GormTaskRepository) ListPage(filter TaskFilter) ([]models.Task, bool, error) {
	// Empty selection on either dimension matches nothing.
	if len(filter.Statuses) == 0 || len(filter.Owners) == 0 {
		return []models.Task{}, false, nil
	}

	query := r.db.Model(&models.Task{}).Where("tasks.status IN ?", filter.Statuses)

	ownerCond, ownerArgs := ownerPredicate(filter.Owners, filter.ViewerID)
	query = query.Where(ownerCond, ownerArgs...)

	// Private tasks are visible to their owner only.
	if filter.ViewerID != nil {
		query = query.Where("tasks.visibility = ? OR tasks.owner_id = ?", models.VisibilityPublic, *filter.ViewerID)
	} else {
		query = query.Where("tasks.visibility = ?", models.VisibilityPublic)
	}

	col := sortColumn(filter.SortKey)

	if filter.After != nil {
		arg, err := cursorArg(filter.SortKey, filter.After.SortValue)
		if err != nil {
			return nil, false, err
		}
		if filter.Desc {
			query = query.Where(
				fmt.Sprintf("(%s < ?) OR (%s = ? AND tasks.number < ?)", col, col),
				arg, arg, filter.After.Number,
			)
		} else {
			query = query.Where(
				fmt.Sprintf("(%s > ?) OR (%s = ? AND tasks.number > ?)", col, col),
				arg, arg, filter.After.Number,
			)
		}
	}

	dir := "ASC"
	if filter.Desc {
		dir = "DESC"
	}
	query = query.Order(fmt.Sprintf("%s %s, tasks.number %s", col, dir, dir))

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}

	// Fetch one extra row to learn whether the result set continues.
	var tasks []models.Task
	if err := query.Limit(limit + 1).Find(&tasks).Error; err != nil {
		return nil, false, err
	}

	hasMore := len(tasks) > limit
	if hasMore {
		tasks = tasks[:limit]
	}

	return tasks, hasMore, nil
}

// ownerPredicate builds the OR of the selected owner categories. Categories
// that need a viewer collapse sensibly for anonymous requests: "mine"
// matches nothing, "others" matches every owned task.
func ownerPredicate(owners []models.OwnerCategory, viewerID *uint64) (string, []interface{}) {
	conds := make([]string, 0, len(owners))
	args := make([]interface{}, 0, len(owners))

	for _, cat := range owners {
		switch cat {
		case models.OwnerMine:
			if viewerID == nil {
				conds = append(conds, "1 = 0")
			} else {
				conds = append(conds, "tasks.owner_id = ?")
				args = append(args, *viewerID)
			}
		case models.OwnerOthers:
			if viewerID == nil {
				conds = append(conds, "tasks.owner_id IS NOT NULL")
			} else {
				conds = append(conds, "(tasks.owner_id IS NOT NULL AND tasks.owner_id <> ?)")
				args = append(args, *viewerID)
			}
		case models.OwnerUnowned:
			conds = append(conds, "tasks.owner_id IS NULL")
		}
	}

	if len(conds) == 0 {
		return "1 = 0", nil
	}

	cond := conds[0]
	for _, c := range conds[1:] {
		cond = cond + " OR " + c
	}
	return "(" + cond + ")", args
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}
