// internal/localization/localizer_test.go
package localization

import (
	"context"
	"database/sql"
	"testing"

	"return-notify-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: srv.Addr()}), srv
}

func TestRenderTemplate(t *testing.T) {
	tests := []struct {
		name   string
		tmpl   string
		params map[string]interface{}
		want   string
	}{
		{
			name:   "string and int params",
			tmpl:   "Status changed from {{FROM}} to {{TO}} ({{ID}})",
			params: map[string]interface{}{"FROM": "Opened", "TO": "Closed", "ID": 7},
			want:   "Status changed from Opened to Closed (7)",
		},
		{
			name:   "missing params removed",
			tmpl:   "Hello {{NAME}}{{UNKNOWN}}",
			params: map[string]interface{}{"NAME": "Jane"},
			want:   "Hello Jane",
		},
		{
			name: "no params",
			tmpl: "Plain text",
			want: "Plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderTemplate(tt.tmpl, tt.params))
		})
	}
}

func TestLocalizer_Render_DefaultCatalog(t *testing.T) {
	loc := NewLocalizer(nil, nil, logger.NewNoOpLogger())

	out, err := loc.Render(context.Background(), KeyNewPositionAdded, nil, 14)

	assert.NoError(t, err)
	assert.Equal(t, "A new position has been added to the goods return.", out)
}

func TestLocalizer_Render_StatusChange(t *testing.T) {
	loc := NewLocalizer(nil, nil, logger.NewNoOpLogger())

	out, err := loc.Render(context.Background(), KeyPositionStatusHasChanged, map[string]interface{}{
		"FROM": "Registered",
		"TO":   "Refunded",
	}, 14)

	assert.NoError(t, err)
	assert.Equal(t, "The goods return status has changed from Registered to Refunded.", out)
}

func TestLocalizer_Render_SellerOverride(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT template FROM message_templates`).
		WithArgs(14, KeyNewPositionAdded).
		WillReturnRows(sqlmock.NewRows([]string{"template"}).
			AddRow("Custom wording for seller 14"))

	loc := NewLocalizer(db, nil, logger.NewNoOpLogger())

	out, err := loc.Render(context.Background(), KeyNewPositionAdded, nil, 14)

	assert.NoError(t, err)
	assert.Equal(t, "Custom wording for seller 14", out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocalizer_Render_CachesLookup(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cache, srv := newTestCache(t)

	// Only one DB round-trip expected; the second render hits the cache.
	mock.ExpectQuery(`SELECT template FROM message_templates`).
		WithArgs(14, KeyNewPositionAdded).
		WillReturnError(sql.ErrNoRows)

	loc := NewLocalizer(db, cache, logger.NewNoOpLogger())

	out1, err := loc.Render(context.Background(), KeyNewPositionAdded, nil, 14)
	require.NoError(t, err)
	out2, err := loc.Render(context.Background(), KeyNewPositionAdded, nil, 14)
	require.NoError(t, err)

	assert.Equal(t, out1, out2)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.True(t, srv.Exists("msg:14:"+KeyNewPositionAdded))
}

func TestLocalizer_Render_UnknownKey(t *testing.T) {
	loc := NewLocalizer(nil, nil, logger.NewNoOpLogger())

	out, err := loc.Render(context.Background(), "NoSuchKey", nil, 14)

	assert.NoError(t, err)
	assert.Empty(t, out)
}
