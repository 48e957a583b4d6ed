package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard-api/internal/constants"
	"github.com/taskboard/taskboard-api/internal/models"
)

// ListParams holds the decoded query-string parameters of a task list
// request.
type ListParams struct {
	Statuses []models.TaskStatus
	Owners   []models.OwnerCategory
	SortKey  models.SortKey
	Desc     bool
	Limit    int
	Cursor   string
}

// GetListParams extracts filter, sort and continuation parameters from the
// request. An absent statuses/owners parameter selects everything; a present
// but empty one is an empty selection and matches nothing.
func GetListParams(c *gin.Context) ListParams {
	params := ListParams{
		SortKey: models.SortKey(c.DefaultQuery("sort", string(models.SortByNumber))),
		Desc:    c.Query("dir") == "desc",
		Cursor:  c.Query("cursor"),
	}

	// Raw value; the service clamps it to the page-size bounds.
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))

	if raw, ok := c.GetQuery("statuses"); ok {
		for _, s := range splitCSV(raw) {
			params.Statuses = append(params.Statuses, models.TaskStatus(s))
		}
	} else {
		params.Statuses = []models.TaskStatus{
			models.TaskStatusNew,
			models.TaskStatusInProgress,
			models.TaskStatusDone,
		}
	}

	if raw, ok := c.GetQuery("owners"); ok {
		for _, o := range splitCSV(raw) {
			params.Owners = append(params.Owners, models.OwnerCategory(o))
		}
	} else {
		params.Owners = []models.OwnerCategory{
			models.OwnerMine,
			models.OwnerOthers,
			models.OwnerUnowned,
		}
	}

	return params
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
