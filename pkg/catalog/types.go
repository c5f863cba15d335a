package catalog

import "encoding/json"

// EasyEDA document types found in the svgs listing.
const (
	DocTypeSymbol    = 2
	DocTypeFootprint = 4
)

// SVGsResponse is the product preview listing returned by
// /api/products/{code}/svgs.
type SVGsResponse struct {
	Success bool       `json:"success"`
	Result  []SVGEntry `json:"result"`
}

// SVGEntry is one document preview of a product.
type SVGEntry struct {
	DocType       int    `json:"docType"`
	ComponentUUID string `json:"component_uuid"`
	SVG           string `json:"svg"`
}

// Find returns the first entry of the given document type.
func (r *SVGsResponse) Find(docType int) (*SVGEntry, bool) {
	for i := range r.Result {
		if r.Result[i].DocType == docType {
			return &r.Result[i], true
		}
	}
	return nil, false
}

// DocumentResponse is returned by /api/components/{uuid}. The dataStr is
// kept undecoded so it can be saved verbatim.
type DocumentResponse struct {
	Success bool `json:"success"`
	Result  struct {
		DataStr json.RawMessage `json:"dataStr"`
	} `json:"result"`
}

// DataStr is the editor document of a symbol or footprint. Only the parts
// needed to find the attached 3D model are decoded.
type DataStr struct {
	Head  Head              `json:"head"`
	Shape []json.RawMessage `json:"shape"`
}

// Head holds document-level parameters.
type Head struct {
	CPara map[string]string `json:"c_para"`
}

// Model3D identifies the 3D model attached to a footprint.
type Model3D struct {
	UUID  string `json:"uuid"`
	Title string `json:"title"`
}

// Part is everything the catalog knows about one product code.
type Part struct {
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	SymbolUUID    string   `json:"symbolUuid,omitempty"`
	FootprintUUID string   `json:"footprintUuid,omitempty"`
	Model         *Model3D `json:"model,omitempty"`
	ViewerURL     string   `json:"viewerUrl,omitempty"`
}
