package documents

// Document is one raw record from the document search api. Like the
// project api, no field is guaranteed present.
type Document struct {
	Id         string `json:"id"`
	DocType    string `json:"docty"`
	ReportName string `json:"repnme"`
	DocDate    string `json:"docdt"`
	Url        string `json:"url"`
	PdfUrl     string `json:"pdfurl"`
	TxtUrl     string `json:"txturl"`
	ReportNo   string `json:"repnb"`
	DocName    string `json:"docna"`
	SubTitle   string `json:"subtitl"`
	Language   string `json:"lang_exact"`
}

// Title prefers the document name over the report name, falling back
// to a placeholder when both are missing.
func (d Document) Title() string {
	if d.DocName != "" {
		return d.DocName
	}
	if d.ReportName != "" {
		return d.ReportName
	}
	return "Untitled"
}

type searchResponse struct {
	Documents struct {
		Docs []Document `json:"docs"`
	} `json:"documents"`
}
