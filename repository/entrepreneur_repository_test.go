package repository

import (
	"strings"
	"testing"

	"nexusconnect-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListQueryDefaults(t *testing.T) {
	query, args := buildListQuery(models.ProfileFilter{Limit: 20}, true)

	assert.Contains(t, query, "status = 'published' AND COALESCE(is_active, TRUE)")
	assert.Contains(t, query, "ORDER BY created_at DESC")
	assert.True(t, strings.HasSuffix(query, "LIMIT $1 OFFSET $2"))
	assert.Equal(t, []any{20, 0}, args)
	assert.NotContains(t, query, "phone")
	assert.NotContains(t, query, "user_id")
}

func TestBuildListQueryWithoutActiveColumn(t *testing.T) {
	query, _ := buildListQuery(models.ProfileFilter{Limit: 20}, false)

	assert.Contains(t, query, "status = 'published'")
	assert.NotContains(t, query, "is_active")
}

func TestBuildListQueryAllFilters(t *testing.T) {
	minRating := 3.5
	id := uuid.New()
	query, args := buildListQuery(models.ProfileFilter{
		CountryCode: "sn",
		City:        "Da_kar",
		ProfileType: "freelance",
		MinRating:   &minRating,
		Tags:        []string{"design", "web"},
		IDs:         []uuid.UUID{id},
		SortBy:      "rating",
		Ascending:   true,
		Limit:       10,
		Offset:      30,
	}, true)

	assert.Contains(t, query, "country_code = $1")
	assert.Contains(t, query, "city ILIKE $2")
	assert.Contains(t, query, "profile_type = $3")
	assert.Contains(t, query, "rating >= $4")
	assert.Contains(t, query, "tags @> $5")
	assert.Contains(t, query, "id = ANY($6::uuid[])")
	assert.Contains(t, query, "ORDER BY rating ASC")

	require.Len(t, args, 8)
	assert.Equal(t, "SN", args[0])
	assert.Equal(t, `%Da\_kar%`, args[1])
	assert.Equal(t, 3.5, args[3])
	assert.Equal(t, []string{"design", "web"}, args[4])
	assert.Equal(t, []string{id.String()}, args[5])
	assert.Equal(t, 10, args[6])
	assert.Equal(t, 30, args[7])
}

func TestBuildListQueryUnknownSortFallsBackToCreatedAt(t *testing.T) {
	query, _ := buildListQuery(models.ProfileFilter{SortBy: "name; DROP TABLE", Limit: 1}, true)
	assert.Contains(t, query, "ORDER BY created_at DESC")
	assert.NotContains(t, query, "DROP")
}

func TestBuildUpdate(t *testing.T) {
	set, args := buildUpdate(map[string]interface{}{
		"city":        "Dakar",
		"description": "Studio",
		"is_active":   false,
		"user_id":     "ignored",
	}, true)

	assert.Equal(t, "city = $1, description = $2, is_active = $3, updated_at = NOW()", set)
	assert.Equal(t, []any{"Dakar", "Studio", false}, args)
}

func TestBuildUpdateDropsActiveColumn(t *testing.T) {
	set, args := buildUpdate(map[string]interface{}{"is_active": true}, false)

	assert.Equal(t, "updated_at = NOW()", set)
	assert.Empty(t, args)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
