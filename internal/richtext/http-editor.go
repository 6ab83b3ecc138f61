package richtext

import (
	"net/http"

	"github.com/aisa-it/richtext/internal/richtext/apierrors"
	"github.com/aisa-it/richtext/internal/richtext/editorconfig"
	"github.com/labstack/echo/v4"
)

const tokenPath = "/api/editor/token/"

func (s *Services) AddEditorServices(g *echo.Group) {
	editorGroup := g.Group("editor/")

	editorGroup.GET("config/", s.getEditorConfig)
	editorGroup.GET("plugins/", s.getPlugins)
	editorGroup.GET("check/", s.checkEditorConfig)

	editorGroup.POST("upload/", s.uploadFile)
	editorGroup.Any("tus/*", s.tusHandler)

	editorGroup.POST("export/:format/", s.exportHTML)
	editorGroup.POST("token/", s.getCloudServicesToken)
}

// envOverrides - значения окружения, которые накладываются на любую сборку.
func envOverrides(base editorconfig.Config) editorconfig.Overrides {
	var o editorconfig.Overrides
	if cfg.LicenseKey != "" {
		o.LicenseKey = editorconfig.Ptr(cfg.LicenseKey)
	}
	if cfg.Language != "" {
		o.Language = editorconfig.Ptr(cfg.Language)
	}

	upload := editorconfig.SimpleUpload{}
	if base.SimpleUpload != nil {
		upload = *base.SimpleUpload
	}
	upload.UploadURL = cfg.UploadURL
	o.SimpleUpload = &upload

	if cfg.CloudServicesEnabled() {
		tokenURL := cfg.WebURL.JoinPath(tokenPath).String()
		o.CloudServices = &editorconfig.CloudServices{TokenURL: tokenURL}
		for _, e := range []struct {
			src *editorconfig.ExportConfig
			dst **editorconfig.ExportConfig
		}{
			{base.ExportPdf, &o.ExportPdf},
			{base.ExportWord, &o.ExportWord},
		} {
			if e.src == nil {
				continue
			}
			ec := e.src.Clone()
			ec.TokenURL = editorconfig.TokenURL(tokenURL)
			*e.dst = &ec
		}
	}
	return o
}

// editorConfig собирает конфигурацию сборки с подстановкой окружения и удаляет команды без плагинов.
func (s *Services) editorConfig(build string) (editorconfig.Config, error) {
	if build == "" {
		build = editorconfig.BuildClassic
	}
	base, ok := editorconfig.Build(build)
	if !ok {
		return editorconfig.Config{}, apierrors.ErrUnknownBuild.WithFormattedMessage(build)
	}
	return editorconfig.Resolve(editorconfig.Merge(base, envOverrides(base)), s.manifest), nil
}

// getEditorConfig godoc
// @id getEditorConfig
// @Summary Редактор: конфигурация сборки
// @Tags Editor
// @Produce json
// @Param build query string false "Имя сборки" default(classic)
// @Success 200 {object} editorconfig.Config "Конфигурация редактора"
// @Failure 400 {object} apierrors.DefinedError "Неизвестная сборка"
// @Router /api/editor/config/ [get]
func (s *Services) getEditorConfig(c echo.Context) error {
	ec, err := s.editorConfig(c.QueryParam("build"))
	if err != nil {
		return EError(c, err)
	}

	data, err := ec.JSON()
	if err != nil {
		return EErrorDefined(c, apierrors.ErrEditorConfigMarshal)
	}
	return c.JSONBlob(http.StatusOK, data)
}

type pluginsResponse struct {
	BuiltinPlugins any      `json:"builtinPlugins"`
	Capabilities   []string `json:"capabilities"`
}

// getPlugins godoc
// @id getPlugins
// @Summary Редактор: манифест плагинов сборки
// @Tags Editor
// @Produce json
// @Success 200 {object} pluginsResponse "Плагины в порядке регистрации и их команды"
// @Router /api/editor/plugins/ [get]
func (s *Services) getPlugins(c echo.Context) error {
	return c.JSON(http.StatusOK, pluginsResponse{
		BuiltinPlugins: s.manifest,
		Capabilities:   s.manifest.Capabilities(),
	})
}

type checkResponse struct {
	Build      string                    `json:"build"`
	Unresolved []editorconfig.Unresolved `json:"unresolved"`
}

// checkEditorConfig godoc
// @id checkEditorConfig
// @Summary Редактор: проверка панели инструментов по манифесту
// @Description Возвращает команды панели инструментов, для которых в сборке нет плагина. Такие команды удаляются из конфигурации.
// @Tags Editor
// @Produce json
// @Param build query string false "Имя сборки" default(classic)
// @Success 200 {object} checkResponse "Неразрешенные команды"
// @Failure 400 {object} apierrors.DefinedError "Неизвестная сборка"
// @Router /api/editor/check/ [get]
func (s *Services) checkEditorConfig(c echo.Context) error {
	build := c.QueryParam("build")
	if build == "" {
		build = editorconfig.BuildClassic
	}
	base, ok := editorconfig.Build(build)
	if !ok {
		return EErrorDefined(c, apierrors.ErrUnknownBuild.WithFormattedMessage(build))
	}

	unresolved := editorconfig.Check(base, s.manifest)
	if unresolved == nil {
		unresolved = []editorconfig.Unresolved{}
	}
	return c.JSON(http.StatusOK, checkResponse{Build: build, Unresolved: unresolved})
}
