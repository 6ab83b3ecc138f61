// Ограничения на вложения документов редактора.
//
// Основные возможности:
//   - Без внешнего сервиса ограничений загрузки не лимитируются (CommunityLimiter).
//   - Внешний сервис ограничений опрашивается по HTTP (ExternalLimiter).
package limiter

import (
	"context"
	"log/slog"

	"github.com/aisa-it/richtext/internal/richtext/config"
	"github.com/gofrs/uuid"
)

// Unlimited - остаток вложений, когда ограничения не заданы.
const Unlimited = 99999999

type LimiterInt interface {
	// CanAddAttachment разрешает загрузку файла размером size байт в документ.
	// Для загрузок без документа documentId не задан.
	CanAddAttachment(ctx context.Context, documentId uuid.NullUUID, size int64) bool
	// GetRemainingAttachments возвращает число вложений, которое еще можно добавить, или -1, если остаток неизвестен.
	GetRemainingAttachments(ctx context.Context, documentId uuid.NullUUID) int
}

var Limiter LimiterInt = CommunityLimiter{}

func Init(cfg *config.Config) {
	if cfg.ExternalLimiter == nil {
		slog.Info("Using Community limiter")
		Limiter = CommunityLimiter{}
		return
	}
	slog.Info("Using external limiter", "url", cfg.ExternalLimiter.String())
	Limiter = NewExternalLimiter(cfg.ExternalLimiter)
}

type CommunityLimiter struct{}

func (c CommunityLimiter) CanAddAttachment(ctx context.Context, documentId uuid.NullUUID, size int64) bool {
	return true
}

func (c CommunityLimiter) GetRemainingAttachments(ctx context.Context, documentId uuid.NullUUID) int {
	return Unlimited
}
