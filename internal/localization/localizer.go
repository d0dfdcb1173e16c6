// internal/localization/localizer.go

// Package localization renders notification texts from template keys.
// Sellers may override the built-in catalog with their own wording; the
// overrides live in Postgres and sit behind a Redis cache.
package localization

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"return-notify-workers/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

// Message template keys used by the return-status operation.
const (
	KeyNewPositionAdded              = "NewPositionAdded"
	KeyPositionStatusHasChanged      = "PositionStatusHasChanged"
	KeyComplaintEmployeeEmailSubject = "complaintEmployeeEmailSubject"
	KeyComplaintEmployeeEmailBody    = "complaintEmployeeEmailBody"
	KeyComplaintClientEmailSubject   = "complaintClientEmailSubject"
	KeyComplaintClientEmailBody      = "complaintClientEmailBody"
	KeyComplaintClientSmsBody        = "complaintClientSmsBody"
)

// defaultCatalog is the wording used when a seller has no override.
var defaultCatalog = map[string]string{
	KeyNewPositionAdded:         "A new position has been added to the goods return.",
	KeyPositionStatusHasChanged: "The goods return status has changed from {{FROM}} to {{TO}}.",

	KeyComplaintEmployeeEmailSubject: "Goods return update: complaint {{COMPLAINT_NUMBER}}",
	KeyComplaintEmployeeEmailBody: "Complaint {{COMPLAINT_NUMBER}} (id {{COMPLAINT_ID}}) was updated.\n" +
		"Client: {{CLIENT_NAME}} (id {{CLIENT_ID}})\n" +
		"Creator: {{CREATOR_NAME}}, expert: {{EXPERT_NAME}}\n" +
		"Consumption: {{CONSUMPTION_NUMBER}}, agreement: {{AGREEMENT_NUMBER}}\n" +
		"Date: {{DATE}}\n" +
		"{{DIFFERENCES}}",

	KeyComplaintClientEmailSubject: "Your goods return {{COMPLAINT_NUMBER}} was updated",
	KeyComplaintClientEmailBody: "Hello {{CLIENT_NAME}},\n\n" +
		"There is an update on your goods return {{COMPLAINT_NUMBER}} dated {{DATE}}.\n" +
		"{{DIFFERENCES}}\n\n" +
		"Agreement: {{AGREEMENT_NUMBER}}",

	KeyComplaintClientSmsBody: "Goods return {{COMPLAINT_NUMBER}}: {{DIFFERENCES}}",
}

const cacheTTL = 10 * time.Minute

// Localizer resolves a template key for a seller and renders it with the
// given params.
type Localizer struct {
	db     *sql.DB
	cache  *redis.Client
	logger logger.Logger
}

func NewLocalizer(db *sql.DB, cache *redis.Client, log logger.Logger) *Localizer {
	return &Localizer{
		db:     db,
		cache:  cache,
		logger: log,
	}
}

// Render resolves key for sellerID and substitutes params. Unknown keys
// render to "" rather than failing; the template completeness gate
// downstream catches texts that end up empty.
func (l *Localizer) Render(ctx context.Context, key string, params map[string]interface{}, sellerID int) (string, error) {
	tmpl, err := l.lookup(ctx, key, sellerID)
	if err != nil {
		return "", err
	}
	return renderTemplate(tmpl, params), nil
}

func (l *Localizer) lookup(ctx context.Context, key string, sellerID int) (string, error) {
	cacheKey := fmt.Sprintf("msg:%d:%s", sellerID, key)

	if l.cache != nil {
		if tmpl, err := l.cache.Get(ctx, cacheKey).Result(); err == nil {
			return tmpl, nil
		} else if !errors.Is(err, redis.Nil) {
			l.logger.Warn("message cache read failed", map[string]interface{}{
				"key":   cacheKey,
				"error": err.Error(),
			})
		}
	}

	tmpl, found, err := l.lookupOverride(ctx, key, sellerID)
	if err != nil {
		return "", err
	}
	if !found {
		tmpl = defaultCatalog[key]
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, cacheKey, tmpl, cacheTTL).Err(); err != nil {
			l.logger.Warn("message cache write failed", map[string]interface{}{
				"key":   cacheKey,
				"error": err.Error(),
			})
		}
	}

	return tmpl, nil
}

func (l *Localizer) lookupOverride(ctx context.Context, key string, sellerID int) (string, bool, error) {
	if l.db == nil {
		return "", false, nil
	}

	var tmpl string
	err := l.db.QueryRowContext(ctx,
		`SELECT template FROM message_templates WHERE seller_id = $1 AND key = $2`,
		sellerID, key,
	).Scan(&tmpl)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("message template lookup: %w", err)
	}
	return tmpl, true, nil
}

// renderTemplate substitutes {{NAME}} placeholders and removes any that
// have no value.
func renderTemplate(tmpl string, params map[string]interface{}) string {
	result := tmpl

	for k, v := range params {
		placeholder := "{{" + k + "}}"
		value := ""
		switch val := v.(type) {
		case string:
			value = val
		case int:
			value = fmt.Sprintf("%d", val)
		default:
			if v != nil {
				value = fmt.Sprintf("%v", v)
			}
		}
		result = strings.ReplaceAll(result, placeholder, value)
	}

	// Remaining placeholders had no value supplied.
	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		end += start + 2
		result = result[:start] + result[end:]
	}

	return result
}
