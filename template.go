package noticeharvest

// Default page URLs of the three notice listings.
const (
	DefaultRecallsURL       = "https://fdaghana.gov.gh/newsroom/product-recalls-and-alerts/"
	DefaultAlertsURL        = "https://fdaghana.gov.gh/newsroom/public-alerts/"
	DefaultPressReleasesURL = "https://fdaghana.gov.gh/newsroom/press-release/"
)

// AnyColumn marks a template whose detail link may sit in any cell.
const AnyColumn = -1

// Template describes one of the fixed listing pages and how its table rows
// map onto fields.
type Template struct {
	// Name identifies the template on the command line and in logs.
	Name string

	// Entry is the record variant produced for rows of this template.
	Entry EntryType

	// URL is the listing page to render.
	URL string

	// Columns names the fields by cell position.
	Columns []string

	// PrimaryField must hold at least MinPrimaryLength characters for a
	// row to be processed.
	PrimaryField string

	// DateField holds the issue date used for the artifact date stamp.
	DateField string

	// LinkColumn is the cell searched for the detail link, or AnyColumn.
	LinkColumn int

	// Dir is the subdirectory of the output root holding this template's
	// artifacts.
	Dir string

	// ArtifactPrefix starts every generated artifact filename.
	ArtifactPrefix string

	// TitlePrefix starts the heading of every generated artifact.
	TitlePrefix string
}

// MinPrimaryLength is the shortest primary field a row may have before it
// is skipped as stray whitespace or filler.
const MinPrimaryLength = 5

// Title returns the heading for a generated artifact.
func (t Template) Title(name string) string {
	return t.TitlePrefix + ": " + name
}

// RecallsTemplate is the product recall listing.
var RecallsTemplate = Template{
	Name:  "recalls",
	Entry: EntryRecall,
	URL:   DefaultRecallsURL,
	Columns: []string{
		FieldDateRecallIssued,
		FieldProductName,
		FieldProductType,
		FieldManufacturer,
		FieldRecallingFirm,
		FieldBatches,
		FieldManufacturingDate,
		FieldExpiryDate,
	},
	PrimaryField:   FieldProductName,
	DateField:      FieldDateRecallIssued,
	LinkColumn:     1,
	Dir:            "recalls",
	ArtifactPrefix: "Recall_Summary",
	TitlePrefix:    "Recall Summary",
}

// AlertsTemplate is the public alert listing.
var AlertsTemplate = Template{
	Name:           "alerts",
	Entry:          EntryAlert,
	URL:            DefaultAlertsURL,
	Columns:        []string{FieldDateIssued, FieldAlertTitle},
	PrimaryField:   FieldAlertTitle,
	DateField:      FieldDateIssued,
	LinkColumn:     AnyColumn,
	Dir:            "alerts",
	ArtifactPrefix: "Alert",
	TitlePrefix:    "Alert",
}

// PressReleasesTemplate is the press release listing.
var PressReleasesTemplate = Template{
	Name:           "press-releases",
	Entry:          EntryPressRelease,
	URL:            DefaultPressReleasesURL,
	Columns:        []string{FieldDate, FieldTitle},
	PrimaryField:   FieldTitle,
	DateField:      FieldDate,
	LinkColumn:     AnyColumn,
	Dir:            "press-releases",
	ArtifactPrefix: "Press_Release",
	TitlePrefix:    "Press Release",
}

// Templates returns the three templates in run order.
func Templates() []Template {
	return []Template{RecallsTemplate, AlertsTemplate, PressReleasesTemplate}
}

// FindTemplate returns the template with the given name.
func FindTemplate(name string) (Template, error) {
	for _, t := range Templates() {
		if t.Name == name {
			return t, nil
		}
	}
	return Template{}, Errorf(EINVALID, "unknown template %q", name)
}
