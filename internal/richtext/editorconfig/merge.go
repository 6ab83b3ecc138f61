package editorconfig

// Overrides - частичное переопределение конфигурации. nil означает "оставить значение по умолчанию".
// Записи возможностей (heading, image, exportPdf...) заменяются целиком.
type Overrides struct {
	LicenseKey    *string
	Language      *string
	Toolbar       *Toolbar
	Heading       *HeadingConfig
	Image         *ImageConfig
	Table         *TableConfig
	HtmlSupport   *HtmlSupport
	ExportPdf     *ExportConfig
	ExportWord    *ExportConfig
	SimpleUpload  *SimpleUpload
	CloudServices *CloudServices
}

// Merge накладывает переопределения на базовую конфигурацию.
// Ни base, ни o не изменяются: результат не разделяет с ними срезы и указатели.
func Merge(base Config, o Overrides) Config {
	res := base.Clone()

	if o.LicenseKey != nil {
		res.LicenseKey = *o.LicenseKey
	}
	if o.Language != nil {
		res.Language = *o.Language
	}
	if o.Toolbar != nil {
		res.Toolbar = o.Toolbar.Clone()
	}

	// Переиспользуем глубокое копирование Config для записей возможностей
	patch := Config{
		Heading:       o.Heading,
		Image:         o.Image,
		Table:         o.Table,
		HtmlSupport:   o.HtmlSupport,
		ExportPdf:     o.ExportPdf,
		ExportWord:    o.ExportWord,
		SimpleUpload:  o.SimpleUpload,
		CloudServices: o.CloudServices,
	}.Clone()

	if patch.Heading != nil {
		res.Heading = patch.Heading
	}
	if patch.Image != nil {
		res.Image = patch.Image
	}
	if patch.Table != nil {
		res.Table = patch.Table
	}
	if patch.HtmlSupport != nil {
		res.HtmlSupport = patch.HtmlSupport
	}
	if patch.ExportPdf != nil {
		res.ExportPdf = patch.ExportPdf
	}
	if patch.ExportWord != nil {
		res.ExportWord = patch.ExportWord
	}
	if patch.SimpleUpload != nil {
		res.SimpleUpload = patch.SimpleUpload
	}
	if patch.CloudServices != nil {
		res.CloudServices = patch.CloudServices
	}
	return res
}

// Then объединяет два набора переопределений, значения other приоритетнее.
func (o Overrides) Then(other Overrides) Overrides {
	res := o
	if other.LicenseKey != nil {
		res.LicenseKey = other.LicenseKey
	}
	if other.Language != nil {
		res.Language = other.Language
	}
	if other.Toolbar != nil {
		res.Toolbar = other.Toolbar
	}
	if other.Heading != nil {
		res.Heading = other.Heading
	}
	if other.Image != nil {
		res.Image = other.Image
	}
	if other.Table != nil {
		res.Table = other.Table
	}
	if other.HtmlSupport != nil {
		res.HtmlSupport = other.HtmlSupport
	}
	if other.ExportPdf != nil {
		res.ExportPdf = other.ExportPdf
	}
	if other.ExportWord != nil {
		res.ExportWord = other.ExportWord
	}
	if other.SimpleUpload != nil {
		res.SimpleUpload = other.SimpleUpload
	}
	if other.CloudServices != nil {
		res.CloudServices = other.CloudServices
	}
	return res
}
