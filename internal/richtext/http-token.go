package richtext

import (
	"net/http"
	"time"

	"github.com/aisa-it/richtext/internal/richtext/apierrors"
	"github.com/aisa-it/richtext/internal/richtext/dao"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	cloudTokenTTL   = time.Hour
	cloudRoleWriter = "writer"
)

type cloudTokenRequest struct {
	UserId string `json:"user_id" validate:"omitempty,max=100"`
	Name   string `json:"name" validate:"omitempty,max=100"`
	Role   string `json:"role" validate:"omitempty,oneof=reader commentator writer"`
}

// CloudServicesClaims - содержимое токена облачных сервисов редактора: окружение в aud, пользователь в sub и user, права в auth.
type CloudServicesClaims struct {
	jwt.RegisteredClaims
	User map[string]string `json:"user,omitempty"`
	Auth map[string]any    `json:"auth"`
}

func newCloudServicesClaims(req cloudTokenRequest, now time.Time) CloudServicesClaims {
	if req.UserId == "" {
		req.UserId = dao.GenUUID().String()
	}
	if req.Role == "" {
		req.Role = cloudRoleWriter
	}

	claims := CloudServicesClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   req.UserId,
			Audience:  jwt.ClaimStrings{cfg.CloudServicesEnvID},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cloudTokenTTL)),
		},
		Auth: map[string]any{
			"collaboration": map[string]any{
				"*": map[string]string{"role": req.Role},
			},
		},
	}
	if req.Name != "" {
		claims.User = map[string]string{"name": req.Name}
	}
	return claims
}

// getCloudServicesToken godoc
// @id getCloudServicesToken
// @Summary Редактор: токен облачных сервисов
// @Description Токен подписывается ключом доступа окружения (HS256). Если облачные сервисы не настроены, возвращается 404.
// @Tags Editor
// @Accept json
// @Produce plain
// @Param data body cloudTokenRequest false "Пользователь"
// @Success 200 {string} string "Токен"
// @Failure 404 {object} apierrors.DefinedError "Облачные сервисы не настроены"
// @Router /api/editor/token/ [post]
func (s *Services) getCloudServicesToken(c echo.Context) error {
	if !cfg.CloudServicesEnabled() {
		return EErrorDefined(c, apierrors.ErrCloudServicesDisabled)
	}

	var req cloudTokenRequest
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrDocBadRequest)
	}
	if err := c.Validate(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrDocRequestValidate)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, newCloudServicesClaims(req, time.Now())).
		SignedString([]byte(cfg.CloudServicesAccessKey))
	if err != nil {
		return EErrorDefined(c, apierrors.ErrTokenSign)
	}
	return c.String(http.StatusOK, token)
}
