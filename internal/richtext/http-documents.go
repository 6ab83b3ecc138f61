package richtext

import (
	"errors"
	"net/http"

	"github.com/aisa-it/richtext/internal/richtext/apierrors"
	"github.com/aisa-it/richtext/internal/richtext/dao"
	"github.com/aisa-it/richtext/internal/richtext/editorconfig"
	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type DocumentContext struct {
	echo.Context
	Document dao.Document
}

func (s *Services) DocumentMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		docId, err := uuid.FromString(c.Param("docId"))
		if err != nil {
			return EErrorDefined(c, apierrors.ErrInvalidID)
		}

		doc, err := dao.GetDocument(s.db, docId)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return EErrorDefined(c, apierrors.ErrDocNotFound)
			}
			return EError(c, err)
		}
		return next(DocumentContext{c, *doc})
	}
}

func (s *Services) AddDocumentServices(g *echo.Group) {
	g.POST("documents/", s.createDocument)

	docGroup := g.Group("documents/:docId", s.DocumentMiddleware)
	docGroup.GET("/", s.getDocument)
	docGroup.PUT("/", s.updateDocument)
	docGroup.GET("/export/:format/", s.exportDocument)
}

// createDocument godoc
// @id createDocument
// @Summary Документы: создание документа
// @Description Разметка очищается политикой htmlSupport, загруженные файлы из разметки привязываются к документу.
// @Tags Documents
// @Accept json
// @Produce json
// @Param data body dao.Document true "Документ"
// @Success 201 {object} dao.Document "Созданный документ"
// @Failure 400 {object} apierrors.DefinedError "Некорректный запрос"
// @Router /api/documents/ [post]
func (s *Services) createDocument(c echo.Context) error {
	var doc dao.Document
	if err := c.Bind(&doc); err != nil {
		return EErrorDefined(c, apierrors.ErrDocBadRequest)
	}
	doc.ID = uuid.Nil
	doc.Assets = nil
	if err := c.Validate(&doc); err != nil {
		return EErrorDefined(c, apierrors.ErrDocRequestValidate)
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Assets").Create(&doc).Error; err != nil {
			return err
		}
		return dao.AttachAssets(tx, &doc)
	}); err != nil {
		if errors.Is(err, dao.ErrUnknownBuild) {
			return EErrorDefined(c, apierrors.ErrUnknownBuild.WithFormattedMessage(doc.Build))
		}
		return EError(c, err)
	}

	created, err := dao.GetDocument(s.db, doc.ID)
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// getDocument godoc
// @id getDocument
// @Summary Документы: получение документа
// @Tags Documents
// @Produce json
// @Param docId path string true "ID документа"
// @Success 200 {object} dao.Document "Документ"
// @Failure 404 {object} apierrors.DefinedError "Документ не найден"
// @Router /api/documents/{docId}/ [get]
func (s *Services) getDocument(c echo.Context) error {
	return c.JSON(http.StatusOK, c.(DocumentContext).Document)
}

// documentUpdateRequest - изменяемые поля документа. Сборка документа после создания не меняется.
type documentUpdateRequest struct {
	Title   *string         `json:"title" validate:"omitempty,min=1,max=150"`
	Content *dao.EditorHTML `json:"content"`
}

func (s *Services) updateDocument(c echo.Context) error {
	doc := c.(DocumentContext).Document

	var req documentUpdateRequest
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrDocBadRequest)
	}
	if err := c.Validate(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrDocRequestValidate)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		doc.Title = *req.Title
		updates["title"] = doc.Title
	}
	if req.Content != nil {
		doc.Content = *req.Content
		updates["content"] = doc.Content
	}
	if len(updates) == 0 {
		return c.JSON(http.StatusOK, doc)
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&dao.Document{}).Where("id = ?", doc.ID).Updates(updates).Error; err != nil {
			return err
		}
		if req.Content == nil {
			return nil
		}
		return dao.AttachAssets(tx, &doc)
	}); err != nil {
		return EError(c, err)
	}

	updated, err := dao.GetDocument(s.db, doc.ID)
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// exportDocument godoc
// @id exportDocument
// @Summary Документы: экспорт сохраненного документа
// @Description Содержимое получается колбэком экспорта сборки документа, параметры страницы берутся из converterOptions сборки.
// @Tags Documents
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param docId path string true "ID документа"
// @Param format path string true "Формат" Enums(pdf, word)
// @Success 200 {file} binary "Файл документа"
// @Failure 400 {object} apierrors.DefinedError "Некорректный запрос"
// @Router /api/documents/{docId}/export/{format}/ [get]
func (s *Services) exportDocument(c echo.Context) error {
	doc := c.(DocumentContext).Document
	format := c.Param("format")

	ec, err := s.editorConfig(doc.Build)
	if err != nil {
		return EError(c, err)
	}

	var exportCfg *editorconfig.ExportConfig
	switch format {
	case FormatPdf:
		exportCfg = ec.ExportPdf
	case FormatWord:
		exportCfg = ec.ExportWord
	}
	if exportCfg == nil {
		return EErrorDefined(c, apierrors.ErrUnsupportedFormat.WithFormattedMessage(format))
	}

	data, err := exportCfg.Data(&doc)
	if err != nil {
		return EError(c, err)
	}

	name := exportCfg.FileName
	if name == "" {
		name = doc.Title
	}
	return s.sendExport(c, format, string(data), exportCfg.ConverterOptions, name)
}
