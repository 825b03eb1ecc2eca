package loader

// OSCAL-shaped document types for the on-disk data files. Only the fields
// the engine consumes are modeled; everything else in the source documents
// is ignored.

type catalogFile struct {
	Catalog oscalCatalog `json:"catalog"`
}

type oscalCatalog struct {
	Groups   []oscalGroup   `json:"groups"`
	Controls []oscalControl `json:"controls"`
}

type oscalGroup struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Controls []oscalControl `json:"controls"`
}

type oscalControl struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Class    string         `json:"class"`
	Parts    []oscalPart    `json:"parts"`
	Links    []oscalLink    `json:"links"`
	Controls []oscalControl `json:"controls"` // nested enhancements
}

type oscalPart struct {
	Name  string `json:"name"`
	Prose string `json:"prose"`
}

type oscalLink struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}

type profileFile struct {
	Profile oscalProfile `json:"profile"`
}

type oscalProfile struct {
	Imports []oscalImport `json:"imports"`
}

type oscalImport struct {
	IncludeControls []oscalIncludeControls `json:"include-controls"`
}

type oscalIncludeControls struct {
	WithIDs []string `json:"with-ids"`
}

type csfFile struct {
	Framework csfFramework `json:"framework"`
}

type csfFramework struct {
	Functions []csfFunction `json:"functions"`
}

type csfFunction struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Categories []csfCategory `json:"categories"`
}

type csfCategory struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Subcategories []csfSubcategory `json:"subcategories"`
}

type csfSubcategory struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

type mappingsFile struct {
	Mappings map[string][]string `json:"mappings"` // control id -> subcategory ids
}
