package s3

// Object is one stored blob: a generated invoice PDF or an uploaded company
// logo.
type Object struct {
	ID   string     `json:"id"`
	Data []byte     `json:"data"`
	Kind ObjectKind `json:"kind"`
	Type ObjectType `json:"type"`
}

type ObjectKind string

const (
	ObjectKindPdf   ObjectKind = "pdf"
	ObjectKindImage ObjectKind = "image"
)

type ObjectType string

const (
	ObjectTypeInvoicePdf ObjectType = "invoice_pdf"
	ObjectTypeLogo       ObjectType = "logo"
)

func NewPdfObject(id string, data []byte) *Object {
	return &Object{
		ID:   id,
		Data: data,
		Kind: ObjectKindPdf,
		Type: ObjectTypeInvoicePdf,
	}
}

func NewLogoObject(id string, data []byte) *Object {
	return &Object{
		ID:   id,
		Data: data,
		Kind: ObjectKindImage,
		Type: ObjectTypeLogo,
	}
}
