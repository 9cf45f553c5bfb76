package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageParamsOffset(t *testing.T) {
	p := PageParams{Page: 3, PerPage: 25}
	assert.Equal(t, 50, p.Offset())

	first := PageParams{Page: 1, PerPage: 25}
	assert.Equal(t, 0, first.Offset())
}

func TestOrderClauseWhitelist(t *testing.T) {
	allowed := map[string]string{
		"created_at": "campaign_created_at",
		"name":       "campaign_name",
	}

	p := PageParams{SortBy: "name", SortOrder: "asc"}
	assert.Equal(t, "campaign_name ASC", p.OrderClause(allowed, "campaign_created_at"))

	p = PageParams{SortBy: "drop table", SortOrder: "desc"}
	assert.Equal(t, "campaign_created_at DESC", p.OrderClause(allowed, "campaign_created_at"), "unknown columns fall back")
}

func TestNewPageMeta(t *testing.T) {
	meta := NewPageMeta(PageParams{Page: 2, PerPage: 25}, 51)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, int64(51), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
}
